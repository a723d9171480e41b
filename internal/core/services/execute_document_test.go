package services

import (
	"context"
	"testing"

	"github.com/leedsmet/bibliosight-core/internal/core/domain"
	"github.com/leedsmet/bibliosight-core/internal/core/ports/driven/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExecuteProducesCompleteDocument runs the full flow against the
// scripted gateways and checks the shape of the published document
func TestExecuteProducesCompleteDocument(t *testing.T) {
	auth := mocks.NewMockAuthenticator("token-123")
	gw := mocks.NewMockSearchGateway(&domain.SearchResultSet{
		RecordsSearched: 38502384,
		RecordsFound:    1,
		Records: []domain.Record{{
			UT: "000265986300007",
			Titles: []domain.LabelValuesPair{
				{Label: "Title", Values: []string{"Open repositories in practice"}},
			},
			Authors: []domain.LabelValuesPair{
				{Label: "Authors", Values: []string{"Smith, J"}},
			},
			Source: []domain.LabelValuesPair{
				{Label: "SourceTitle", Values: []string{"Journal of Repositories"}},
				{Label: "Published.BiblioYear", Values: []string{"2009"}},
			},
		}},
	})
	factory := mocks.NewMockGatewayFactory(auth, gw)
	history := mocks.NewMockHistoryStore()

	svc := newTestQueryService(factory, nil, history)
	searchableConfiguration(svc)

	svc.Execute(context.Background())

	out := svc.ResultOutput()
	require.NotEmpty(t, out)

	assert.Contains(t, out, "<bibliosight:numberOfItemsSearched>38502384</bibliosight:numberOfItemsSearched>")
	assert.Contains(t, out, "<bibliosight:numberOfItemsFound>1</bibliosight:numberOfItemsFound>")
	assert.Contains(t, out, "<bibliosight:numberOfItemsListed>1</bibliosight:numberOfItemsListed>")
	assert.Contains(t, out, "<bibliosight:ut>000265986300007</bibliosight:ut>")
	assert.Contains(t, out, "<bibliosight:title>Open repositories in practice</bibliosight:title>")
	assert.Contains(t, out, "<bibliosight:year>2009</bibliosight:year>")

	// The request that produced the document is echoed into it
	assert.Contains(t, out, "<bibliosight:databaseId>WOS</bibliosight:databaseId>")
	assert.Contains(t, out, `<bibliosight:userQuery bibliosight:language="en">TI=(Business)</bibliosight:userQuery>`)

	// And the execution is recorded to the audit trail
	require.Len(t, history.All(), 1)
	row := history.All()[0]
	assert.True(t, row.Succeeded)
	assert.Equal(t, int64(38502384), row.RecordsSearched)

	// Frozen clock, so the timestamp is deterministic
	assert.Contains(t, out, "<bibliosight:dateCreated>2009-06-15T10:30:00+0000</bibliosight:dateCreated>")
}
