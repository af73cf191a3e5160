package catalog

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/unicode/norm"
)

// DuplicatePair is a pair of customers whose company names are close
// enough to be the same company entered twice.
type DuplicatePair struct {
	A        Customer `json:"a"`
	B        Customer `json:"b"`
	Distance int      `json:"distance"`
}

var entitySuffixes = []string{
	"株式会社",
	"有限会社",
	"合同会社",
	"一般社団法人",
	"財団法人",
	"社団法人",
	"医療法人",
}

// normalizeCompanyName folds full-width and half-width variants and
// strips legal-entity suffixes, so "ｻﾝﾌﾟﾙ株式会社" and "サンプル(株)"
// style variants compare on the trade name alone. NFKC composes
// half-width kana with their dakuten marks into single code points.
// Merging still uses exact names; this normalization is only for
// duplicate reporting.
func normalizeCompanyName(name string) string {
	s := norm.NFKC.String(strings.TrimSpace(name))
	for _, suffix := range entitySuffixes {
		s = strings.ReplaceAll(s, suffix, "")
	}
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// FindDuplicateCustomers reports customer pairs whose normalized names
// are within maxDistance Levenshtein edits of each other.
func FindDuplicateCustomers(customers []Customer, maxDistance int) []DuplicatePair {
	normalized := make([]string, len(customers))
	for i, c := range customers {
		normalized[i] = normalizeCompanyName(c.CompanyName)
	}

	var pairs []DuplicatePair
	for i := 0; i < len(customers); i++ {
		if normalized[i] == "" {
			continue
		}
		for j := i + 1; j < len(customers); j++ {
			if normalized[j] == "" {
				continue
			}
			d := fuzzy.LevenshteinDistance(normalized[i], normalized[j])
			if d <= maxDistance {
				pairs = append(pairs, DuplicatePair{
					A:        customers[i],
					B:        customers[j],
					Distance: d,
				})
			}
		}
	}
	return pairs
}
