// Package notify sends operational email via Resend.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/FACorreiaa/quote-desk/internal/domain/importer"
)

// EmailNotifier mails the import report to the back-office inbox.
// With no API key configured it degrades to a log line, so local runs
// never need Resend credentials.
type EmailNotifier struct {
	client *resend.Client
	from   string
	to     string
	logger *slog.Logger
}

// NewEmailNotifier creates a notifier. apiKey may be empty.
func NewEmailNotifier(apiKey, from, to string, logger *slog.Logger) *EmailNotifier {
	var client *resend.Client
	if apiKey != "" {
		client = resend.NewClient(apiKey)
	}
	if from == "" {
		from = "QuoteDesk <reports@quotedesk.local>"
	}
	return &EmailNotifier{client: client, from: from, to: to, logger: logger}
}

// SendImportReport mails a summary of one import batch.
func (n *EmailNotifier) SendImportReport(_ context.Context, report *importer.ImportReport) error {
	if n.client == nil || n.to == "" {
		n.logger.Info("resend not configured, skipping import report email")
		return nil
	}

	subject := fmt.Sprintf("見積取込結果: %d/%d 件成功", report.Succeeded, report.Attempted)

	var b strings.Builder
	fmt.Fprintf(&b, "<h2>見積書取込レポート</h2>")
	fmt.Fprintf(&b, "<p>処理 %d 件 / 成功 %d 件 / 失敗 %d 件</p>",
		report.Attempted, report.Succeeded, len(report.Errors))
	fmt.Fprintf(&b, "<p>顧客: 新規 %d / 既存 %d</p>",
		report.Customers.Created, report.Customers.Skipped)
	fmt.Fprintf(&b, "<p>商品: 新規 %d / 価格更新 %d / 据え置き %d</p>",
		report.Products.Created, report.Products.Updated, report.Products.Skipped)

	if len(report.Errors) > 0 {
		b.WriteString("<h3>エラー</h3><ul>")
		for _, e := range report.Errors {
			fmt.Fprintf(&b, "<li>%s: %s</li>", e.File, e.Message)
		}
		b.WriteString("</ul>")
	}

	_, err := n.client.Emails.Send(&resend.SendEmailRequest{
		From:    n.from,
		To:      []string{n.to},
		Subject: subject,
		Html:    b.String(),
	})
	return err
}
