package catalog

import (
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/cjk"
	"github.com/blevesearch/bleve/v2/mapping"
)

// ProductDocument is the searchable projection of a product.
type ProductDocument struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Unit     string  `json:"unit"`
	Price    float64 `json:"price"`
}

// ProductSearchResult is one hit with its relevance score.
type ProductSearchResult struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// SearchIndex provides full-text product search using Bleve with a
// CJK analyzer, so Japanese product names tokenize into bigrams
// instead of one opaque term.
type SearchIndex struct {
	index   bleve.Index
	indexMu sync.RWMutex
}

// NewSearchIndex creates an in-memory product index. The index is
// rebuilt from the database at startup and after imports, so it does
// not need to persist.
func NewSearchIndex() (*SearchIndex, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}
	return &SearchIndex{index: index}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = cjk.AnalyzerName

	keywordFieldMapping := bleve.NewTextFieldMapping()
	keywordFieldMapping.Analyzer = keyword.Name

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("name", textFieldMapping)
	docMapping.AddFieldMappingsAt("category", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("unit", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("price", bleve.NewNumericFieldMapping())

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = cjk.AnalyzerName
	return indexMapping
}

// IndexProducts replaces the indexed documents with the given
// products in one batch.
func (si *SearchIndex) IndexProducts(products []Product) error {
	si.indexMu.Lock()
	defer si.indexMu.Unlock()

	batch := si.index.NewBatch()
	for _, p := range products {
		doc := ProductDocument{
			ID:       p.ID.String(),
			Name:     p.ProductName,
			Category: p.ProductCategory,
			Unit:     p.Unit,
			Price:    float64(p.BasePrice),
		}
		if err := batch.Index(doc.ID, doc); err != nil {
			return fmt.Errorf("failed to index product %s: %w", p.ID, err)
		}
	}

	if err := si.index.Batch(batch); err != nil {
		return fmt.Errorf("failed to execute batch index: %w", err)
	}
	return nil
}

// Search performs a full-text search over product names.
func (si *SearchIndex) Search(query string, limit int) ([]ProductSearchResult, error) {
	si.indexMu.RLock()
	defer si.indexMu.RUnlock()

	if limit <= 0 {
		limit = 10
	}

	matchQuery := bleve.NewMatchQuery(query)
	matchQuery.SetField("name")

	searchRequest := bleve.NewSearchRequest(matchQuery)
	searchRequest.Size = limit
	searchRequest.Fields = []string{"name", "category"}

	searchResults, err := si.index.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]ProductSearchResult, 0, len(searchResults.Hits))
	for _, hit := range searchResults.Hits {
		r := ProductSearchResult{ID: hit.ID, Score: hit.Score}
		if name, ok := hit.Fields["name"].(string); ok {
			r.Name = name
		}
		if category, ok := hit.Fields["category"].(string); ok {
			r.Category = category
		}
		results = append(results, r)
	}
	return results, nil
}

// Close releases the index resources.
func (si *SearchIndex) Close() error {
	return si.index.Close()
}
