// Package driving defines the inbound port of the core: the operations a
// client surface (HTTP adapter, tests) may invoke on the query model.
package driving

import (
	"context"

	"github.com/leedsmet/bibliosight-core/internal/core/domain"
)

// QueryService is the query model: the owner of the mutable search
// configuration and the orchestrator of search execution.
//
// Every setter notifies observers unconditionally and writes a log line
// only when the value actually changed. Execution failures never surface
// as errors here; they are reported through the log and an empty result
// output.
type QueryService interface {
	// Configuration returns a snapshot of the current configuration
	Configuration() domain.QueryConfiguration

	SetDatabaseID(v string)
	SetDateMode(v domain.DateMode)
	SetEditions(v []domain.Edition)
	SetFirstRecord(v int)
	SetMaxResultCount(v int)
	SetProxyHost(v string)
	SetProxyPort(v int)
	SetSortFields(v []domain.SortField)
	SetSymbolicTimeSpan(v domain.SymbolicTimeSpan)
	SetTimeSpan(v *domain.TimeSpan)
	SetUserQuery(v string)

	// Execute runs the full search flow with the current configuration
	Execute(ctx context.Context)

	// Log returns the accumulated user-facing log
	Log() string

	// ResultOutput returns the serialised result document of the last
	// successful execution, or "" when none is available
	ResultOutput() string

	// Subscribe registers an observer for change events; the returned
	// function cancels the subscription
	Subscribe(o domain.Observer) func()
}
