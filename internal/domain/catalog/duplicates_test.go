package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCompanyName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"株式会社サンプル商事", "サンプル商事"},
		{"サンプル商事 株式会社", "サンプル商事"},
		{"ｻﾝﾌﾟﾙ商事", "サンプル商事"},
		{"ﾃﾞｻﾞｲﾝﾗﾎﾞ株式会社", "デザインラボ"},
		{"ABC Ｃｌｅａｎ株式会社", "abcclean"},
		{"  医療法人ひかり会 ", "ひかり会"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeCompanyName(tt.in), tt.in)
	}
}

func TestFindDuplicateCustomers(t *testing.T) {
	customers := []Customer{
		{CompanyName: "株式会社サンプル商事"},
		{CompanyName: "サンプル商事株式会社"},
		{CompanyName: "ｻﾝﾌﾟﾙ商亊株式会社"},
		{CompanyName: "株式会社まったく別の会社"},
	}

	pairs := FindDuplicateCustomers(customers, 1)

	require.Len(t, pairs, 3)
	// the two exact-after-normalization names are distance 0
	assert.Equal(t, 0, pairs[0].Distance)
	assert.Equal(t, "株式会社サンプル商事", pairs[0].A.CompanyName)
	assert.Equal(t, "サンプル商事株式会社", pairs[0].B.CompanyName)
}

func TestFindDuplicateCustomers_NoFalsePairs(t *testing.T) {
	customers := []Customer{
		{CompanyName: "株式会社東京清掃"},
		{CompanyName: "株式会社大阪設備"},
	}
	assert.Empty(t, FindDuplicateCustomers(customers, 1))
}
