package estimates

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/quote-desk/internal/domain/catalog"
	"github.com/FACorreiaa/quote-desk/pkg/money"
)

const sheetName = "見積書"

// RenderExcel writes the estimate as a 見積書 workbook to w.
func RenderExcel(w io.Writer, e *Estimate, customer *catalog.Customer) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("remove default sheet: %w", err)
	}

	set := func(cell string, value any) {
		_ = f.SetCellValue(sheetName, cell, value)
	}

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})

	_ = f.MergeCell(sheetName, "A1", "F1")
	set("A1", "御見積書")
	_ = f.SetCellStyle(sheetName, "A1", "F1", titleStyle)

	set("A3", customer.CompanyName+" 御中")
	if customer.Address != nil {
		set("A4", *customer.Address)
	}
	set("E3", "見積日")
	set("F3", e.EstimateDate.Format("2006/01/02"))
	if e.SalesPerson != nil {
		set("E4", "担当")
		set("F4", *e.SalesPerson)
	}

	set("A6", "御見積金額")
	set("B6", money.NewYen(e.TotalAmount).Display())

	headers := []string{"No.", "品名", "数量", "単位", "単価", "金額"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 8)
		set(cell, h)
	}
	_ = f.SetCellStyle(sheetName, "A8", "F8", headerStyle)

	row := 9
	for i, d := range e.Details {
		set(fmt.Sprintf("A%d", row), i+1)
		set(fmt.Sprintf("B%d", row), d.ProductName)
		set(fmt.Sprintf("C%d", row), d.Quantity)
		set(fmt.Sprintf("D%d", row), d.Unit)
		set(fmt.Sprintf("E%d", row), d.UnitPrice)
		set(fmt.Sprintf("F%d", row), d.Amount)
		row++
	}

	set(fmt.Sprintf("E%d", row), "合計")
	set(fmt.Sprintf("F%d", row), e.TotalAmount)

	if e.Notes != nil {
		set(fmt.Sprintf("A%d", row+2), "備考")
		set(fmt.Sprintf("B%d", row+2), *e.Notes)
	}

	_ = f.SetColWidth(sheetName, "B", "B", 36)
	_ = f.SetColWidth(sheetName, "E", "F", 14)

	return f.Write(w)
}
