// Package categorization assigns catalog categories to product names
// by keyword matching.
package categorization

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// FallbackCategory is assigned when no keyword matches.
const FallbackCategory = "その他"

// CategoryRule binds a category label to the keywords that select it.
// Rule order is priority order: when keywords from several categories
// match one name, the earliest category wins.
type CategoryRule struct {
	Category string
	Keywords []string
}

// DefaultRules is the built-in rule table, tuned for the product mix
// seen in supplier and partner quotations.
var DefaultRules = []CategoryRule{
	{Category: "IT・開発", Keywords: []string{
		"開発", "システム", "プログラム", "api", "サーバー", "クラウド", "saas",
		"アプリ", "web", "データベース", "db", "テスト", "レビュー", "設計",
	}},
	{Category: "ネットワーク", Keywords: []string{
		"ルーター", "スイッチ", "wi-fi", "lan", "ネットワーク", "ケーブル", "hdmi",
	}},
	{Category: "ハードウェア", Keywords: []string{
		"パソコン", "pc", "サーバ", "モニター", "プリンター", "複合機",
		"タブレット", "ノートpc", "laptop",
	}},
	{Category: "サービス", Keywords: []string{
		"保守", "メンテナンス", "作業", "支援", "サポート", "プラン",
		"ライセンス", "オンサイト", "運用",
	}},
	{Category: "ソフトウェア", Keywords: []string{
		"office", "microsoft", "google", "workspace", "ソフトウェア", "アプリケーション",
	}},
	{Category: "家電", Keywords: []string{
		"冷蔵庫", "洗濯機", "エアコン", "電子レンジ", "テレビ",
	}},
	{Category: "家具", Keywords: []string{
		"テーブル", "椅子", "デスク", "チェア", "棚",
	}},
}

// Classifier matches product names against the rule table with a
// single Aho-Corasick pass.
type Classifier struct {
	matcher *ahocorasick.Matcher
	// keyword index -> rule index, in matcher pattern order
	ruleOf []int
	rules  []CategoryRule
}

// NewClassifier builds a classifier from the given rules. Matching is
// case-insensitive; keywords are substring matches.
func NewClassifier(rules []CategoryRule) *Classifier {
	var patterns []string
	var ruleOf []int
	for i, rule := range rules {
		for _, kw := range rule.Keywords {
			patterns = append(patterns, strings.ToLower(kw))
			ruleOf = append(ruleOf, i)
		}
	}
	return &Classifier{
		matcher: ahocorasick.NewStringMatcher(patterns),
		ruleOf:  ruleOf,
		rules:   rules,
	}
}

// NewDefaultClassifier builds a classifier over DefaultRules.
func NewDefaultClassifier() *Classifier {
	return NewClassifier(DefaultRules)
}

// Classify returns the category for a product name, or
// FallbackCategory when no keyword matches.
func (c *Classifier) Classify(name string) string {
	hits := c.matcher.MatchThreadSafe([]byte(strings.ToLower(name)))
	if len(hits) == 0 {
		return FallbackCategory
	}

	best := len(c.rules)
	for _, h := range hits {
		if r := c.ruleOf[h]; r < best {
			best = r
		}
	}
	return c.rules[best].Category
}
