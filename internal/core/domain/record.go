package domain

import "time"

// LabelValuesPair is the vendor's generic key-to-multivalue representation
// for bibliographic record fields. Labels carry no schema guarantee and
// are matched case-insensitively by consumers.
type LabelValuesPair struct {
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

// Record is a single bibliographic item as returned by the search service
type Record struct {
	// UT is the record's unique identifier. It is passed through
	// unvalidated; an absent identifier serialises as empty.
	UT       string            `json:"ut"`
	Titles   []LabelValuesPair `json:"titles"`
	Authors  []LabelValuesPair `json:"authors"`
	Source   []LabelValuesPair `json:"source"`
	Keywords []LabelValuesPair `json:"keywords"`
}

// SearchResultSet is the raw outcome of one search call
type SearchResultSet struct {
	RecordsSearched int64    `json:"recordsSearched"`
	RecordsFound    int      `json:"recordsFound"`
	Records         []Record `json:"records"`
}

// Execution is the audit record of one search invocation
type Execution struct {
	ID              int64     `json:"id"`
	ExecutedAt      time.Time `json:"executedAt"`
	DatabaseID      string    `json:"databaseId"`
	UserQuery       string    `json:"userQuery"`
	RecordsSearched int64     `json:"recordsSearched"`
	RecordsFound    int       `json:"recordsFound"`
	RecordsListed   int       `json:"recordsListed"`
	Succeeded       bool      `json:"succeeded"`
	Error           string    `json:"error,omitempty"`
}
