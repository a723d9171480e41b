package normalisers

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/leedsmet/bibliosight-core/internal/core/domain"
)

// Recognised source-metadata labels, matched case-insensitively. Unknown
// labels are silently ignored.
const (
	labelBookSeriesTitle = "bookseriestitle"
	labelIssue           = "issue"
	labelPages           = "pages"
	labelPublishedDate   = "published.bibliodate"
	labelPublishedYear   = "published.biblioyear"
	labelSourceTitle     = "sourcetitle"
	labelVolume          = "volume"
)

// Transformer maps one search execution into the output document
type Transformer struct {
	// ExecutionDate is the pre-formatted query execution timestamp
	ExecutionDate string

	// Query and Retrieve are the request halves echoed into the document
	Query    domain.QueryParameters
	Retrieve domain.RetrieveParameters

	// Results is the raw result set from query execution
	Results *domain.SearchResultSet
}

// Document builds the output tree from the transformer state
func (t *Transformer) Document() *Document {
	return &Document{
		Namespace: NamespaceURI,
		Response: SearchResponse{
			NumberOfItemsSearched: t.Results.RecordsSearched,
			NumberOfItemsFound:    t.Results.RecordsFound,
			NumberOfItemsListed:   len(t.Results.Records),
			DateCreated:           t.ExecutionDate,
			Items:                 t.itemsElement(),
			Request: RequestEcho{
				Query:    t.queryParametersElement(),
				Retrieve: t.retrieveParametersElement(),
			},
		},
	}
}

// Serialise builds the document and renders it as indented UTF-8 XML.
// Any construction or marshalling failure wraps into ErrTransformation.
func (t *Transformer) Serialise() (string, error) {
	if t.Results == nil {
		return "", fmt.Errorf("%w: no search results to transform", domain.ErrTransformation)
	}

	data, err := xml.MarshalIndent(t.Document(), "", "    ")
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTransformation, err)
	}

	return xml.Header + string(data), nil
}

func (t *Transformer) itemsElement() Items {
	items := Items{Items: make([]Item, 0, len(t.Results.Records))}
	for _, record := range t.Results.Records {
		items.Items = append(items.Items, itemElement(record))
	}
	return items
}

// itemElement normalises one record: title, author and keyword pairs are
// flattened value by value; source pairs are scanned for the recognised
// labels; the unique identifier is passed through as-is.
func itemElement(record domain.Record) Item {
	titles := flattenValues(record.Titles)
	authors := flattenValues(record.Authors)
	keywords := flattenValues(record.Keywords)

	return Item{
		Titles:   TitleList{Count: len(titles), Titles: titles},
		Authors:  AuthorList{Count: len(authors), Authors: authors},
		Source:   sourceElement(record.Source),
		Keywords: KeywordList{Count: len(keywords), Keywords: keywords},
		UT:       record.UT,
	}
}

// flattenValues collapses label/value pairs into a flat ordered sequence
// of every value in every pair
func flattenValues(pairs []domain.LabelValuesPair) []string {
	var out []string
	for _, pair := range pairs {
		out = append(out, pair.Values...)
	}
	return out
}

func sourceElement(pairs []domain.LabelValuesPair) Source {
	var source Source

	for _, pair := range pairs {
		if len(pair.Values) == 0 {
			continue
		}
		value := pair.Values[0]

		switch strings.ToLower(pair.Label) {
		case labelBookSeriesTitle:
			source.BookSeriesTitle = &value
		case labelIssue:
			source.Issue = &value
		case labelPages:
			source.Pages = &value
		case labelPublishedDate:
			if source.Published == nil {
				source.Published = &Published{}
			}
			source.Published.Date = &value
		case labelPublishedYear:
			if source.Published == nil {
				source.Published = &Published{}
			}
			source.Published.Year = &value
		case labelSourceTitle:
			source.Title = &value
		case labelVolume:
			source.Volume = &value
		}
	}

	return source
}

func (t *Transformer) queryParametersElement() QueryParametersEcho {
	echo := QueryParametersEcho{
		DatabaseID:       t.Query.DatabaseID,
		SymbolicTimeSpan: string(t.Query.SymbolicTimeSpan),
		UserQuery: UserQuery{
			Language: t.Query.QueryLanguage,
			Query:    t.Query.UserQuery,
		},
	}

	echo.Editions = EditionList{
		Count:    len(t.Query.Editions),
		Editions: make([]EditionEcho, 0, len(t.Query.Editions)),
	}
	for _, edition := range t.Query.Editions {
		echo.Editions.Editions = append(echo.Editions.Editions, EditionEcho{
			Collection: edition.Collection,
			Edition:    edition.Edition,
		})
	}

	if t.Query.TimeSpan != nil {
		begin := t.Query.TimeSpan.Begin
		end := t.Query.TimeSpan.End
		echo.TimeSpan = TimeSpanEcho{Begin: &begin, End: &end}
	}

	return echo
}

func (t *Transformer) retrieveParametersElement() RetrieveParametersEcho {
	echo := RetrieveParametersEcho{
		Count:       t.Retrieve.Count,
		FirstRecord: t.Retrieve.FirstRecord,
		Fields: FieldList{
			Count:  len(t.Retrieve.Fields),
			Fields: make([]FieldEcho, 0, len(t.Retrieve.Fields)),
		},
	}
	for _, field := range t.Retrieve.Fields {
		echo.Fields.Fields = append(echo.Fields.Fields, FieldEcho{
			Name: field.Name,
			Sort: field.Sort,
		})
	}
	return echo
}
