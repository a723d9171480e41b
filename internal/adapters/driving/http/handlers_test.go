package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/leedsmet/bibliosight-core/internal/core/domain"
	"github.com/leedsmet/bibliosight-core/internal/core/ports/driven/mocks"
)

// mockQueryService records setter calls and serves canned state
type mockQueryService struct {
	cfg          domain.QueryConfiguration
	log          string
	resultOutput string
	executeCalls int
	setterCalls  []string
}

func (m *mockQueryService) Configuration() domain.QueryConfiguration { return m.cfg }

func (m *mockQueryService) SetDatabaseID(v string) {
	m.cfg.DatabaseID = v
	m.setterCalls = append(m.setterCalls, "databaseId")
}

func (m *mockQueryService) SetDateMode(v domain.DateMode) {
	m.cfg.DateMode = v
	m.setterCalls = append(m.setterCalls, "dateMode")
}

func (m *mockQueryService) SetEditions(v []domain.Edition) {
	m.cfg.Editions = v
	m.setterCalls = append(m.setterCalls, "editions")
}

func (m *mockQueryService) SetFirstRecord(v int) {
	m.cfg.FirstRecord, _ = domain.ClampFirstRecord(v)
	m.setterCalls = append(m.setterCalls, "firstRecord")
}

func (m *mockQueryService) SetMaxResultCount(v int) {
	m.cfg.MaxResultCount, _ = domain.ClampResultCount(v)
	m.setterCalls = append(m.setterCalls, "maxResultCount")
}

func (m *mockQueryService) SetProxyHost(v string) {
	m.cfg.ProxyHost = v
	m.setterCalls = append(m.setterCalls, "proxyHost")
}

func (m *mockQueryService) SetProxyPort(v int) {
	m.cfg.ProxyPort = v
	m.setterCalls = append(m.setterCalls, "proxyPort")
}

func (m *mockQueryService) SetSortFields(v []domain.SortField) {
	m.cfg.SortFields = v
	m.setterCalls = append(m.setterCalls, "sortFields")
}

func (m *mockQueryService) SetSymbolicTimeSpan(v domain.SymbolicTimeSpan) {
	m.cfg.SymbolicTimeSpan = v
	m.setterCalls = append(m.setterCalls, "symbolicTimeSpan")
}

func (m *mockQueryService) SetTimeSpan(v *domain.TimeSpan) {
	m.cfg.TimeSpan = v
	m.setterCalls = append(m.setterCalls, "timeSpan")
}

func (m *mockQueryService) SetUserQuery(v string) {
	m.cfg.UserQuery = v
	m.setterCalls = append(m.setterCalls, "userQuery")
}

func (m *mockQueryService) Execute(context.Context) { m.executeCalls++ }

func (m *mockQueryService) Log() string { return m.log }

func (m *mockQueryService) ResultOutput() string { return m.resultOutput }

func (m *mockQueryService) Subscribe(domain.Observer) func() { return func() {} }

func newTestServer(qs *mockQueryService, history *mocks.MockHistoryStore) *Server {
	cfg := DefaultConfig()
	cfg.Version = "test"
	if history != nil {
		return NewServer(cfg, qs, history, nil, nil)
	}
	return NewServer(cfg, qs, nil, nil, nil)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(&mockQueryService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandleVersion(t *testing.T) {
	s := newTestServer(&mockQueryService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["version"] != "test" {
		t.Errorf("unexpected version: %q", resp["version"])
	}
}

func TestHandleGetQuery(t *testing.T) {
	qs := &mockQueryService{cfg: domain.QueryConfiguration{DatabaseID: "WOS", FirstRecord: 1}}
	s := newTestServer(qs, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/query", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var cfg domain.QueryConfiguration
	if err := json.NewDecoder(rec.Body).Decode(&cfg); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if cfg.DatabaseID != "WOS" || cfg.FirstRecord != 1 {
		t.Errorf("unexpected configuration: %+v", cfg)
	}
}

func TestHandleUpdateQuery_PartialUpdate(t *testing.T) {
	qs := &mockQueryService{cfg: domain.QueryConfiguration{DatabaseID: "WOS", UserQuery: "keep me"}}
	s := newTestServer(qs, nil)

	body := `{"firstRecord": 5, "symbolicTimeSpan": "1week"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/query", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// Only the two fields present in the body are applied
	if len(qs.setterCalls) != 2 {
		t.Errorf("expected 2 setter calls, got %v", qs.setterCalls)
	}
	if qs.cfg.FirstRecord != 5 {
		t.Errorf("expected first record 5, got %d", qs.cfg.FirstRecord)
	}
	if qs.cfg.SymbolicTimeSpan != domain.SymbolicTimeSpanOneWeek {
		t.Errorf("expected symbolic span, got %q", qs.cfg.SymbolicTimeSpan)
	}
	if qs.cfg.UserQuery != "keep me" {
		t.Errorf("absent fields must stay untouched, got %q", qs.cfg.UserQuery)
	}
}

func TestHandleUpdateQuery_InvalidBody(t *testing.T) {
	s := newTestServer(&mockQueryService{}, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/query", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleSearch(t *testing.T) {
	qs := &mockQueryService{}
	s := newTestServer(qs, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewReader(nil))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if qs.executeCalls != 1 {
		t.Errorf("expected 1 execute call, got %d", qs.executeCalls)
	}
}

func TestHandleGetResult(t *testing.T) {
	qs := &mockQueryService{resultOutput: `<?xml version="1.0"?><bibliosight:bibliosight/>`}
	s := newTestServer(qs, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/result", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/xml") {
		t.Errorf("unexpected content type: %q", ct)
	}
	if rec.Body.String() != qs.resultOutput {
		t.Errorf("unexpected body: %q", rec.Body.String())
	}
}

func TestHandleGetResult_NoResult(t *testing.T) {
	s := newTestServer(&mockQueryService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/result", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleGetLog(t *testing.T) {
	qs := &mockQueryService{log: "Building query...\nSending query request..."}
	s := newTestServer(qs, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/log", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("unexpected content type: %q", ct)
	}
	if rec.Body.String() != qs.log {
		t.Errorf("unexpected body: %q", rec.Body.String())
	}
}

func TestHandleListHistory(t *testing.T) {
	history := mocks.NewMockHistoryStore()
	_ = history.Record(context.Background(), &domain.Execution{
		ExecutedAt: time.Date(2009, 6, 15, 10, 30, 0, 0, time.UTC),
		DatabaseID: "WOS",
		UserQuery:  "TI=(Business)",
		Succeeded:  true,
	})

	s := newTestServer(&mockQueryService{}, history)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history?limit=5", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var rows []*domain.Execution
	if err := json.NewDecoder(rec.Body).Decode(&rows); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].DatabaseID != "WOS" || !rows[0].Succeeded {
		t.Errorf("unexpected row: %+v", rows[0])
	}
}

func TestHandleListHistory_NotConfigured(t *testing.T) {
	s := newTestServer(&mockQueryService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotImplemented {
		t.Errorf("expected 501, got %d", rec.Code)
	}
}
