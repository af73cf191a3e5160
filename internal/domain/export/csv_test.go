package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/quote-desk/internal/domain/catalog"
)

func TestWriteCustomersCSV(t *testing.T) {
	addr := "東京都港区1-2-3"
	km := 4.5
	customers := []catalog.Customer{
		{CompanyName: "株式会社サンプル商事", Address: &addr, DistanceKm: &km, Phone: "03-0000-0000"},
		{CompanyName: "有限会社テスト"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCustomersCSV(&buf, customers))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "company_name,postal_code,address,phone,email,contact_person,distance_km", lines[0])
	assert.Contains(t, lines[1], "株式会社サンプル商事")
	assert.Contains(t, lines[1], "東京都港区1-2-3")
	assert.Contains(t, lines[1], "4.5")
}

func TestWriteProductsCSV(t *testing.T) {
	products := []catalog.Product{
		{ProductName: "定期清掃", ProductCategory: "サービス", BasePrice: 30000, Unit: "式"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteProductsCSV(&buf, products))

	out := buf.String()
	assert.Contains(t, out, "product_name,product_category,base_price,unit")
	assert.Contains(t, out, "定期清掃,サービス,30000,式")
}
