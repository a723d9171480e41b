package normalisers

import (
	"errors"
	"strings"
	"testing"

	"github.com/leedsmet/bibliosight-core/internal/core/domain"
)

func sampleResults() *domain.SearchResultSet {
	return &domain.SearchResultSet{
		RecordsSearched: 40000000,
		RecordsFound:    2,
		Records: []domain.Record{
			{
				UT: "000265986300007",
				Titles: []domain.LabelValuesPair{
					{Label: "Title", Values: []string{"Knowledge transfer in practice"}},
				},
				Authors: []domain.LabelValuesPair{
					{Label: "Authors", Values: []string{"Smith, J", "Jones, K"}},
				},
				Source: []domain.LabelValuesPair{
					{Label: "SourceTitle", Values: []string{"Journal of Knowledge"}},
					{Label: "Volume", Values: []string{"12"}},
					{Label: "Issue", Values: []string{"3"}},
					{Label: "Pages", Values: []string{"101-118"}},
					{Label: "Published.BiblioDate", Values: []string{"JUN"}},
					{Label: "Published.BiblioYear", Values: []string{"2009"}},
				},
				Keywords: []domain.LabelValuesPair{
					{Label: "Keywords", Values: []string{"knowledge", "transfer", "repositories"}},
				},
			},
			{
				UT: "000265986300008",
				Titles: []domain.LabelValuesPair{
					{Label: "Title", Values: []string{"A second paper"}},
				},
			},
		},
	}
}

func sampleTransformer() *Transformer {
	return &Transformer{
		ExecutionDate: "2009-06-15T10:30:00+0100",
		Query: domain.QueryParameters{
			DatabaseID:       "WOS",
			QueryLanguage:    "en",
			SymbolicTimeSpan: domain.SymbolicTimeSpanOneWeek,
			UserQuery:        "TI=(Business)",
			Editions: []domain.Edition{
				{Collection: "WOS", Edition: "SCI"},
				{Collection: "WOS", Edition: "SSCI"},
			},
		},
		Retrieve: domain.RetrieveParameters{
			FirstRecord: 1,
			Count:       100,
			Fields:      []domain.SortField{{Name: "Date", Sort: "D"}},
		},
		Results: sampleResults(),
	}
}

func TestTransformerDocument_Counts(t *testing.T) {
	doc := sampleTransformer().Document()

	if doc.Response.NumberOfItemsSearched != 40000000 {
		t.Errorf("unexpected searched count: %d", doc.Response.NumberOfItemsSearched)
	}
	if doc.Response.NumberOfItemsFound != 2 {
		t.Errorf("unexpected found count: %d", doc.Response.NumberOfItemsFound)
	}
	if doc.Response.NumberOfItemsListed != 2 {
		t.Errorf("unexpected listed count: %d", doc.Response.NumberOfItemsListed)
	}
	if doc.Response.DateCreated != "2009-06-15T10:30:00+0100" {
		t.Errorf("unexpected date created: %q", doc.Response.DateCreated)
	}
}

func TestTransformerDocument_ItemNormalisation(t *testing.T) {
	doc := sampleTransformer().Document()

	if len(doc.Response.Items.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(doc.Response.Items.Items))
	}

	item := doc.Response.Items.Items[0]
	if item.UT != "000265986300007" {
		t.Errorf("unexpected ut: %q", item.UT)
	}
	if item.Titles.Count != 1 || item.Titles.Titles[0] != "Knowledge transfer in practice" {
		t.Errorf("unexpected titles: %+v", item.Titles)
	}
	if item.Authors.Count != 2 {
		t.Errorf("expected 2 authors, got %d", item.Authors.Count)
	}
	if item.Keywords.Count != 3 {
		t.Errorf("expected 3 keywords, got %d", item.Keywords.Count)
	}

	src := item.Source
	if src.Title == nil || *src.Title != "Journal of Knowledge" {
		t.Errorf("unexpected source title: %v", src.Title)
	}
	if src.Volume == nil || *src.Volume != "12" {
		t.Errorf("unexpected volume: %v", src.Volume)
	}
	if src.Published == nil {
		t.Fatal("expected published element")
	}
	if src.Published.Date == nil || *src.Published.Date != "JUN" {
		t.Errorf("unexpected published date: %v", src.Published.Date)
	}
	if src.Published.Year == nil || *src.Published.Year != "2009" {
		t.Errorf("unexpected published year: %v", src.Published.Year)
	}
}

func TestTransformerDocument_AbsentSourceLabels(t *testing.T) {
	doc := sampleTransformer().Document()

	// The second record carries no source metadata at all
	src := doc.Response.Items.Items[1].Source
	if src.Title != nil || src.Volume != nil || src.Issue != nil || src.Pages != nil {
		t.Errorf("expected empty source, got %+v", src)
	}
	if src.Published != nil {
		t.Error("expected no published element")
	}
	if src.BookSeriesTitle != nil {
		t.Error("expected no book series title")
	}
}

func TestSourceElement_CaseInsensitiveLabels(t *testing.T) {
	src := sourceElement([]domain.LabelValuesPair{
		{Label: "SOURCETITLE", Values: []string{"Upper"}},
		{Label: "volume", Values: []string{"7"}},
		{Label: "BookSeriesTitle", Values: []string{"Series"}},
	})

	if src.Title == nil || *src.Title != "Upper" {
		t.Errorf("expected case-insensitive match, got %v", src.Title)
	}
	if src.Volume == nil || *src.Volume != "7" {
		t.Errorf("unexpected volume: %v", src.Volume)
	}
	if src.BookSeriesTitle == nil || *src.BookSeriesTitle != "Series" {
		t.Errorf("unexpected book series title: %v", src.BookSeriesTitle)
	}
}

func TestSourceElement_SkipsUnknownAndEmpty(t *testing.T) {
	src := sourceElement([]domain.LabelValuesPair{
		{Label: "SourceTitle", Values: nil},
		{Label: "SomethingElse", Values: []string{"ignored"}},
		{Label: "Pages", Values: []string{"1-10", "extra ignored"}},
	})

	if src.Title != nil {
		t.Errorf("empty values must not set the element, got %v", src.Title)
	}
	if src.Pages == nil || *src.Pages != "1-10" {
		t.Errorf("expected first value only, got %v", src.Pages)
	}
}

func TestTransformerSerialise(t *testing.T) {
	out, err := sampleTransformer().Serialise()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(out, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>") {
		t.Errorf("expected XML declaration, got:\n%s", out[:60])
	}
	if !strings.Contains(out, `<bibliosight:bibliosight xmlns:bibliosight="http://www.leedsmet.ac.uk/inn/repository/bibliosight/">`) {
		t.Errorf("expected namespaced root, got:\n%s", out)
	}

	// Fixed element order inside the response
	order := []string{
		"<bibliosight:numberOfItemsSearched>",
		"<bibliosight:numberOfItemsFound>",
		"<bibliosight:numberOfItemsListed>",
		"<bibliosight:dateCreated>",
		"<bibliosight:items>",
		"<bibliosight:searchRequest>",
		"<bibliosight:queryParameters>",
		"<bibliosight:retrieveParameters>",
	}
	last := -1
	for _, el := range order {
		idx := strings.Index(out, el)
		if idx < 0 {
			t.Fatalf("missing element %s in:\n%s", el, out)
		}
		if idx < last {
			t.Errorf("element %s out of order", el)
		}
		last = idx
	}

	if !strings.Contains(out, `<bibliosight:titles bibliosight:count="1">`) {
		t.Errorf("expected title count attribute, got:\n%s", out)
	}
	if !strings.Contains(out, `<bibliosight:authors bibliosight:count="2">`) {
		t.Errorf("expected author count attribute, got:\n%s", out)
	}
	if !strings.Contains(out, `<bibliosight:edition bibliosight:collection="WOS">SCI</bibliosight:edition>`) {
		t.Errorf("expected edition with collection attribute, got:\n%s", out)
	}
	if !strings.Contains(out, `<bibliosight:userQuery bibliosight:language="en">TI=(Business)</bibliosight:userQuery>`) {
		t.Errorf("expected user query with language attribute, got:\n%s", out)
	}
}

func TestTransformerSerialise_NilResults(t *testing.T) {
	tr := &Transformer{}
	_, err := tr.Serialise()
	if !errors.Is(err, domain.ErrTransformation) {
		t.Fatalf("expected ErrTransformation, got %v", err)
	}
}

func TestTransformerDocument_TimeSpanEcho(t *testing.T) {
	tr := sampleTransformer()
	tr.Query.SymbolicTimeSpan = ""
	tr.Query.TimeSpan = &domain.TimeSpan{Begin: "2009-01-01", End: "2009-06-30"}

	doc := tr.Document()
	echo := doc.Response.Request.Query

	if echo.SymbolicTimeSpan != "" {
		t.Errorf("expected empty symbolic span, got %q", echo.SymbolicTimeSpan)
	}
	if echo.TimeSpan.Begin == nil || *echo.TimeSpan.Begin != "2009-01-01" {
		t.Errorf("unexpected begin: %v", echo.TimeSpan.Begin)
	}
	if echo.TimeSpan.End == nil || *echo.TimeSpan.End != "2009-06-30" {
		t.Errorf("unexpected end: %v", echo.TimeSpan.End)
	}
}
