package importer

import "github.com/FACorreiaa/quote-desk/internal/domain/catalog"

// OutcomeCounts tallies merge outcomes for one entity kind.
type OutcomeCounts struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

func (c *OutcomeCounts) add(o catalog.Outcome) {
	switch o {
	case catalog.OutcomeCreated:
		c.Created++
	case catalog.OutcomeUpdated:
		c.Updated++
	case catalog.OutcomeSkipped:
		c.Skipped++
	}
}

func (c *OutcomeCounts) merge(other OutcomeCounts) {
	c.Created += other.Created
	c.Updated += other.Updated
	c.Skipped += other.Skipped
}

// ImportError records one document that failed, without aborting the
// rest of the batch.
type ImportError struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

// ImportReport summarizes one import batch.
type ImportReport struct {
	Attempted int           `json:"attempted"`
	Succeeded int           `json:"succeeded"`
	Customers OutcomeCounts `json:"customers"`
	Products  OutcomeCounts `json:"products"`
	Errors    []ImportError `json:"errors"`
}
