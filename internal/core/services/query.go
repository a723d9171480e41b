package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/leedsmet/bibliosight-core/internal/core/domain"
	"github.com/leedsmet/bibliosight-core/internal/core/ports/driven"
	"github.com/leedsmet/bibliosight-core/internal/core/ports/driving"
	"github.com/leedsmet/bibliosight-core/internal/normalisers"
)

// Timestamp layout for the dateCreated element of the output document
const executionDateLayout = "2006-01-02T15:04:05-0700"

// Ensure queryService implements QueryService
var _ driving.QueryService = (*queryService)(nil)

// queryService owns the mutable query configuration, runs the session
// client, feeds its output to the normaliser, and publishes result and
// log as observable state.
type queryService struct {
	// execMu serialises executions: one search in flight at a time
	execMu sync.Mutex

	// mu guards the observable state below
	mu           sync.RWMutex
	cfg          domain.QueryConfiguration
	log          string
	resultOutput string

	broadcaster *domain.Broadcaster
	session     *SessionClient
	cache       driven.ResultCache
	history     driven.HistoryStore
	logger      *slog.Logger

	now func() time.Time
}

// NewQueryService creates the query model. Cache and history are
// optional; a nil value disables the concern.
func NewQueryService(
	gateways driven.GatewayFactory,
	cache driven.ResultCache,
	history driven.HistoryStore,
	logger *slog.Logger,
) driving.QueryService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &queryService{
		broadcaster: domain.NewBroadcaster(),
		cache:       cache,
		history:     history,
		logger:      logger,
		now:         time.Now,
	}
	s.session = NewSessionClient(gateways, logger, s.appendToLog)
	return s
}

// Configuration returns a snapshot of the current configuration
func (s *queryService) Configuration() domain.QueryConfiguration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Clone()
}

// Subscribe registers an observer for change events
func (s *queryService) Subscribe(o domain.Observer) func() {
	return s.broadcaster.Subscribe(o)
}

// Log returns the accumulated user-facing log
func (s *queryService) Log() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.log
}

// ResultOutput returns the serialised document of the last successful
// execution, or ""
func (s *queryService) ResultOutput() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resultOutput
}

func (s *queryService) SetDatabaseID(v string) {
	s.mu.Lock()
	old := s.cfg.DatabaseID
	s.cfg.DatabaseID = v
	s.mu.Unlock()

	if v != old {
		s.appendToLog("Setting database Id to " + v)
	}
	s.broadcaster.Publish(domain.DatabaseIDChanged{Old: old, New: v})
}

// SetDateMode switches between range and recent date searching. The
// change is not logged, only broadcast.
func (s *queryService) SetDateMode(v domain.DateMode) {
	s.mu.Lock()
	old := s.cfg.DateMode
	s.cfg.DateMode = v
	s.mu.Unlock()

	s.broadcaster.Publish(domain.DateModeChanged{Old: old, New: v})
}

func (s *queryService) SetEditions(v []domain.Edition) {
	s.mu.Lock()
	old := s.cfg.Editions
	s.cfg.Editions = v
	s.mu.Unlock()

	if v == nil {
		s.appendToLog("Warning: Editions has been given a null value.")
	} else if !slices.Equal(v, old) {
		codes := make([]string, len(v))
		for i, e := range v {
			codes[i] = e.Edition
		}
		s.appendToLog("Setting editions to " + strings.Join(codes, ", "))
	}
	s.broadcaster.Publish(domain.EditionsChanged{Old: old, New: v})
}

func (s *queryService) SetFirstRecord(v int) {
	clamped, wasClamped := domain.ClampFirstRecord(v)

	s.mu.Lock()
	old := s.cfg.FirstRecord
	s.cfg.FirstRecord = clamped
	s.mu.Unlock()

	if v != old {
		if wasClamped {
			s.appendToLog(fmt.Sprintf("Start record cannot be lower than %d", domain.MinFirstRecord))
		}
		s.appendToLog(fmt.Sprintf("Setting start record to %d", clamped))
	}
	s.broadcaster.Publish(domain.FirstRecordChanged{Old: old, New: clamped})
}

func (s *queryService) SetMaxResultCount(v int) {
	clamped, wasClamped := domain.ClampResultCount(v)

	s.mu.Lock()
	old := s.cfg.MaxResultCount
	s.cfg.MaxResultCount = clamped
	s.mu.Unlock()

	if v != old {
		if wasClamped {
			if v > domain.MaxMaxResultCount {
				s.appendToLog(fmt.Sprintf("Maximum records to retrieve cannot be greater than %d", domain.MaxMaxResultCount))
			} else {
				s.appendToLog(fmt.Sprintf("Maximum records to retrieve cannot be lower than %d", domain.MinMaxResultCount))
			}
		}
		s.appendToLog(fmt.Sprintf("Setting maximum records to retrieve to %d", clamped))
	}
	s.broadcaster.Publish(domain.MaxResultCountChanged{Old: old, New: clamped})
}

func (s *queryService) SetProxyHost(v string) {
	s.mu.Lock()
	old := s.cfg.ProxyHost
	s.cfg.ProxyHost = v
	s.mu.Unlock()

	if v != old {
		s.appendToLog("Setting proxy host name to " + v)
	}
	s.broadcaster.Publish(domain.ProxyHostChanged{Old: old, New: v})
}

func (s *queryService) SetProxyPort(v int) {
	s.mu.Lock()
	old := s.cfg.ProxyPort
	s.cfg.ProxyPort = v
	s.mu.Unlock()

	if v != old {
		s.appendToLog(fmt.Sprintf("Setting proxy host port to %d", v))
	}
	s.broadcaster.Publish(domain.ProxyPortChanged{Old: old, New: v})
}

func (s *queryService) SetSortFields(v []domain.SortField) {
	s.mu.Lock()
	old := s.cfg.SortFields
	s.cfg.SortFields = v
	s.mu.Unlock()

	if v == nil {
		s.appendToLog("Warning: Sort fields has been given a null value.")
	} else if !slices.Equal(v, old) {
		display := make([]string, len(v))
		for i, f := range v {
			display[i] = f.Name + "(" + f.Sort + ")"
		}
		s.appendToLog("Setting sort fields to " + strings.Join(display, ", "))
	}
	s.broadcaster.Publish(domain.SortFieldsChanged{Old: old, New: v})
}

func (s *queryService) SetSymbolicTimeSpan(v domain.SymbolicTimeSpan) {
	s.mu.Lock()
	old := s.cfg.SymbolicTimeSpan
	s.cfg.SymbolicTimeSpan = v
	s.mu.Unlock()

	if v == "" {
		s.appendToLog("Warning: Recent date has been given a null value.")
	} else if v != old {
		s.appendToLog("Setting recent date to " + string(v))
	}
	s.broadcaster.Publish(domain.SymbolicTimeSpanChanged{Old: old, New: v})
}

func (s *queryService) SetTimeSpan(v *domain.TimeSpan) {
	s.mu.Lock()
	old := s.cfg.TimeSpan
	s.cfg.TimeSpan = v
	s.mu.Unlock()

	if v == nil {
		s.appendToLog("Warning: Date range has been given a null value.")
	} else if old == nil || *old != *v {
		s.appendToLog("Setting date range to " + v.Begin + " to " + v.End)
	}
	s.broadcaster.Publish(domain.TimeSpanChanged{Old: old, New: v})
}

func (s *queryService) SetUserQuery(v string) {
	s.mu.Lock()
	old := s.cfg.UserQuery
	s.cfg.UserQuery = v
	s.mu.Unlock()

	if v != old {
		s.appendToLog("Setting user query to " + v)
	}
	s.broadcaster.Publish(domain.UserQueryChanged{Old: old, New: v})
}

// Execute runs one end-to-end search: build the request, consult the
// result cache, run the session client, normalise the results, and
// publish the serialised document. Every failure is converted into a log
// entry plus a cleared result output; nothing propagates to the caller.
func (s *queryService) Execute(ctx context.Context) {
	s.execMu.Lock()
	defer s.execMu.Unlock()

	s.appendToLog("Building query...")

	cfg := s.Configuration()
	req, warnings := BuildSearchRequest(cfg)
	for _, w := range warnings {
		s.appendToLog(w)
	}

	fingerprint := requestFingerprint(&req)
	if s.cache != nil {
		doc, err := s.cache.Get(ctx, fingerprint)
		switch {
		case err == nil:
			s.logger.Info("result served from cache", "fingerprint", fingerprint)
			s.appendToLog("Result served from cache")
			s.setResultOutput(doc)
			return
		case !errors.Is(err, domain.ErrNotFound):
			s.logger.Warn("result cache lookup failed", "error", err)
		}
	}

	executedAt := s.now()
	results, err := s.session.Execute(ctx, &req, cfg.Proxy())
	if err != nil {
		s.appendToLog("Error: " + err.Error())
		s.clearResultOutput()
		s.recordExecution(ctx, executedAt, &req, results, err)
		return
	}

	// A zero-or-negative found count produces no document; the previous
	// result output is left as it was.
	if results == nil || results.RecordsFound <= 0 {
		s.recordExecution(ctx, executedAt, &req, results, nil)
		return
	}

	s.appendToLog("Transforming search results into XML")
	transformer := normalisers.Transformer{
		ExecutionDate: executedAt.Format(executionDateLayout),
		Query:         req.Query,
		Retrieve:      req.Retrieve,
		Results:       results,
	}

	document, err := transformer.Serialise()
	if err != nil {
		s.logger.Error("search results transformation could not be completed", "error", err)
		s.appendToLog("Error: " + err.Error())
		s.clearResultOutput()
		s.recordExecution(ctx, executedAt, &req, results, err)
		return
	}

	s.setResultOutput(document)

	if s.cache != nil {
		if err := s.cache.Set(ctx, fingerprint, document); err != nil {
			s.logger.Warn("result cache store failed", "error", err)
		}
	}
	s.recordExecution(ctx, executedAt, &req, results, nil)
}

// appendToLog adds a line to the observable log and broadcasts the change
func (s *queryService) appendToLog(line string) {
	s.mu.Lock()
	old := s.log
	if old != "" {
		s.log = old + "\n" + line
	} else {
		s.log = line
	}
	updated := s.log
	s.mu.Unlock()

	s.broadcaster.Publish(domain.LogChanged{Old: old, New: updated})
}

func (s *queryService) setResultOutput(v string) {
	s.mu.Lock()
	old := s.resultOutput
	s.resultOutput = v
	s.mu.Unlock()

	s.broadcaster.Publish(domain.ResultOutputChanged{Old: old, New: v})
}

func (s *queryService) clearResultOutput() {
	s.setResultOutput("")
}

// recordExecution stores the audit row for one execution, best-effort
func (s *queryService) recordExecution(ctx context.Context, executedAt time.Time, req *domain.SearchRequest, results *domain.SearchResultSet, execErr error) {
	if s.history == nil {
		return
	}

	exec := &domain.Execution{
		ExecutedAt: executedAt,
		DatabaseID: req.Query.DatabaseID,
		UserQuery:  req.Query.UserQuery,
		Succeeded:  execErr == nil,
	}
	if execErr != nil {
		exec.Error = execErr.Error()
	}
	if results != nil {
		exec.RecordsSearched = results.RecordsSearched
		exec.RecordsFound = results.RecordsFound
		exec.RecordsListed = len(results.Records)
	}

	if err := s.history.Record(ctx, exec); err != nil {
		s.logger.Warn("search history could not be recorded", "error", err)
	}
}

// requestFingerprint derives the cache key for a request payload
func requestFingerprint(req *domain.SearchRequest) string {
	data, err := json.Marshal(req)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
