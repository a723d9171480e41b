package domain

// QueryLanguage is fixed by the vendor contract
const QueryLanguage = "en"

// QueryParameters is the search-criteria half of a request payload
type QueryParameters struct {
	DatabaseID       string           `json:"databaseId"`
	QueryLanguage    string           `json:"queryLanguage"`
	SymbolicTimeSpan SymbolicTimeSpan `json:"symbolicTimeSpan,omitempty"`
	TimeSpan         *TimeSpan        `json:"timeSpan,omitempty"`
	UserQuery        string           `json:"userQuery"`
	Editions         []Edition        `json:"editions"`
}

// RetrieveParameters is the pagination/sort half of a request payload
type RetrieveParameters struct {
	FirstRecord int         `json:"firstRecord"`
	Count       int         `json:"count"`
	Fields      []SortField `json:"fields"`
}

// SearchRequest is an immutable snapshot of one search invocation,
// derived from a QueryConfiguration by the request builder
type SearchRequest struct {
	Query    QueryParameters    `json:"query"`
	Retrieve RetrieveParameters `json:"retrieve"`
}
