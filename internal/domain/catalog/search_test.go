package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchIndex(t *testing.T) {
	si, err := NewSearchIndex()
	require.NoError(t, err)
	defer si.Close()

	products := []Product{
		{ID: uuid.New(), ProductName: "業務用エアコンクリーニング", ProductCategory: "サービス", Unit: "台", BasePrice: 25000},
		{ID: uuid.New(), ProductName: "エアコン室外機洗浄", ProductCategory: "サービス", Unit: "台", BasePrice: 8000},
		{ID: uuid.New(), ProductName: "サーバー保守プラン", ProductCategory: "IT・開発", Unit: "式", BasePrice: 50000},
	}
	require.NoError(t, si.IndexProducts(products))

	t.Run("japanese term matches", func(t *testing.T) {
		results, err := si.Search("エアコン", 10)
		require.NoError(t, err)
		require.Len(t, results, 2)
		for _, r := range results {
			assert.Contains(t, r.Name, "エアコン")
		}
	})

	t.Run("unrelated term matches nothing", func(t *testing.T) {
		results, err := si.Search("冷蔵庫", 10)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("limit caps results", func(t *testing.T) {
		results, err := si.Search("エアコン", 1)
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})
}
