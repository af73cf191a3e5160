package parser

import (
	"regexp"
	"strings"
)

// Label tokens as they appear in quotation PDFs.
const (
	addresseeLabel = "宛先"
	workSiteLabel  = "作業場所"
)

// legalEntitySuffixes identify a company-style line in the addressee
// block. Matching any of them accepts the line as the customer name.
var legalEntitySuffixes = []string{
	"株式会社",
	"有限会社",
	"合同会社",
	"一般社団法人",
	"財団法人",
	"社団法人",
	"医療法人",
}

// addresseeSkipMarkers mark lines in the addressee block that belong to
// contacts or the issuing company, not the customer.
var addresseeSkipMarkers = []string{"ご担当", "発行元"}

// otherFieldLabels mark lines that start a different labeled field. A
// candidate address line containing one of these is rejected.
var otherFieldLabels = []string{"作業日", "作業名", "項目"}

// workSiteSameLine captures an address that follows the work-site label
// on the same line, separated by a colon variant or whitespace.
var workSiteSameLine = regexp.MustCompile(`作業場所[︓:：\s]+(.+)`)

// fieldStrategy tries to extract a field value given the index of the
// line containing its label. Strategies are tried in a fixed order and
// the first success wins.
type fieldStrategy func(lines []string, idx int) (string, bool)

var addresseeStrategies = []fieldStrategy{legalSuffixScan}

var addressStrategies = []fieldStrategy{sameLineValue, nextLineValue}

// LocateCustomerName scans one page's lines for the addressee block and
// returns the first plausible company name. The boolean is false when
// no label or no acceptable line is found.
func LocateCustomerName(lines []string) (string, bool) {
	return locate(lines, addresseeLabel, addresseeStrategies)
}

// LocateAddress scans one page's lines for the work-site label and
// returns the address text that follows it.
func LocateAddress(lines []string) (string, bool) {
	return locate(lines, workSiteLabel, addressStrategies)
}

func locate(lines []string, label string, strategies []fieldStrategy) (string, bool) {
	for i, line := range lines {
		if !strings.Contains(line, label) {
			continue
		}
		for _, strategy := range strategies {
			if v, ok := strategy(lines, i); ok {
				return v, true
			}
		}
	}
	return "", false
}

// legalSuffixScan looks up to 4 lines past the addressee label for the
// first line carrying a legal-entity suffix, skipping blanks and
// contact/issuer lines.
func legalSuffixScan(lines []string, idx int) (string, bool) {
	for j := idx + 1; j < len(lines) && j <= idx+4; j++ {
		candidate := strings.TrimSpace(lines[j])
		if candidate == "" || containsAny(candidate, addresseeSkipMarkers) {
			continue
		}
		if containsAny(candidate, legalEntitySuffixes) {
			return candidate, true
		}
	}
	return "", false
}

// sameLineValue extracts everything after the work-site label delimiter
// when label and value share a line.
func sameLineValue(lines []string, idx int) (string, bool) {
	m := workSiteSameLine.FindStringSubmatch(lines[idx])
	if m == nil {
		return "", false
	}
	v := strings.TrimSpace(m[1])
	return v, v != ""
}

// nextLineValue takes the line after a bare work-site label, unless
// that line looks like another field label.
func nextLineValue(lines []string, idx int) (string, bool) {
	if idx+1 >= len(lines) {
		return "", false
	}
	next := strings.TrimSpace(lines[idx+1])
	if next == "" || containsAny(next, otherFieldLabels) {
		return "", false
	}
	return next, true
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
