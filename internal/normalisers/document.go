// Package normalisers transforms raw search results and the request that
// produced them into the fixed-schema Bibliosight XML document.
package normalisers

import "encoding/xml"

// NamespaceURI is the namespace of every element in the output document
const NamespaceURI = "http://www.leedsmet.ac.uk/inn/repository/bibliosight/"

// Document is the root of the output tree. Element order is fixed and
// must not change: existing consumers of saved files depend on it.
type Document struct {
	XMLName   xml.Name       `xml:"bibliosight:bibliosight"`
	Namespace string         `xml:"xmlns:bibliosight,attr"`
	Response  SearchResponse `xml:"bibliosight:searchResponse"`
}

// SearchResponse wraps execution metadata, the normalised item list, and
// the echoed request parameters
type SearchResponse struct {
	NumberOfItemsSearched int64       `xml:"bibliosight:numberOfItemsSearched"`
	NumberOfItemsFound    int         `xml:"bibliosight:numberOfItemsFound"`
	NumberOfItemsListed   int         `xml:"bibliosight:numberOfItemsListed"`
	DateCreated           string      `xml:"bibliosight:dateCreated"`
	Items                 Items       `xml:"bibliosight:items"`
	Request               RequestEcho `xml:"bibliosight:searchRequest"`
}

// Items is the normalised item list
type Items struct {
	Items []Item `xml:"bibliosight:item"`
}

// Item is one normalised bibliographic record
type Item struct {
	Titles   TitleList   `xml:"bibliosight:titles"`
	Authors  AuthorList  `xml:"bibliosight:authors"`
	Source   Source      `xml:"bibliosight:source"`
	Keywords KeywordList `xml:"bibliosight:keywords"`
	UT       string      `xml:"bibliosight:ut"`
}

// TitleList carries the flattened title values with their count
type TitleList struct {
	Count  int      `xml:"bibliosight:count,attr"`
	Titles []string `xml:"bibliosight:title"`
}

// AuthorList carries the flattened author values with their count
type AuthorList struct {
	Count   int      `xml:"bibliosight:count,attr"`
	Authors []string `xml:"bibliosight:author"`
}

// KeywordList carries the flattened keyword values with their count
type KeywordList struct {
	Count    int      `xml:"bibliosight:count,attr"`
	Keywords []string `xml:"bibliosight:keyword"`
}

// Source holds the recognised source-metadata labels. Absent labels
// produce no element at all, not an empty one.
type Source struct {
	BookSeriesTitle *string    `xml:"bibliosight:bookSeriesTitle"`
	Title           *string    `xml:"bibliosight:title"`
	Volume          *string    `xml:"bibliosight:volume"`
	Issue           *string    `xml:"bibliosight:issue"`
	Pages           *string    `xml:"bibliosight:pages"`
	Published       *Published `xml:"bibliosight:published"`
}

// Published groups the publication date and year, emitted only when at
// least one of them is present
type Published struct {
	Date *string `xml:"bibliosight:date"`
	Year *string `xml:"bibliosight:year"`
}

// RequestEcho is the full request echoed into the document for
// audit/reproducibility
type RequestEcho struct {
	Query    QueryParametersEcho    `xml:"bibliosight:queryParameters"`
	Retrieve RetrieveParametersEcho `xml:"bibliosight:retrieveParameters"`
}

// QueryParametersEcho echoes the search-criteria half of the request.
// The symbolicTimeSpan and timeSpan elements are always present, empty
// when the corresponding criterion was inactive.
type QueryParametersEcho struct {
	DatabaseID       string       `xml:"bibliosight:databaseId"`
	Editions         EditionList  `xml:"bibliosight:editions"`
	SymbolicTimeSpan string       `xml:"bibliosight:symbolicTimeSpan"`
	TimeSpan         TimeSpanEcho `xml:"bibliosight:timeSpan"`
	UserQuery        UserQuery    `xml:"bibliosight:userQuery"`
}

// EditionList wraps the requested editions with their count
type EditionList struct {
	Count    int           `xml:"bibliosight:count,attr"`
	Editions []EditionEcho `xml:"bibliosight:edition"`
}

// EditionEcho is one requested edition with its collection attribute
type EditionEcho struct {
	Collection string `xml:"bibliosight:collection,attr"`
	Edition    string `xml:",chardata"`
}

// TimeSpanEcho echoes an explicit date range; begin/end appear only when
// a range was active
type TimeSpanEcho struct {
	Begin *string `xml:"bibliosight:begin"`
	End   *string `xml:"bibliosight:end"`
}

// UserQuery echoes the free-text query with its language attribute
type UserQuery struct {
	Language string `xml:"bibliosight:language,attr"`
	Query    string `xml:",chardata"`
}

// RetrieveParametersEcho echoes the pagination/sort half of the request
type RetrieveParametersEcho struct {
	Fields      FieldList `xml:"bibliosight:fields"`
	Count       int       `xml:"bibliosight:count"`
	FirstRecord int       `xml:"bibliosight:firstRecord"`
}

// FieldList wraps the sort fields with their count
type FieldList struct {
	Count  int         `xml:"bibliosight:count,attr"`
	Fields []FieldEcho `xml:"bibliosight:field"`
}

// FieldEcho is one sort criterion
type FieldEcho struct {
	Name string `xml:"bibliosight:name"`
	Sort string `xml:"bibliosight:sort"`
}
