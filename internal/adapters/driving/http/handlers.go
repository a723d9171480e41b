package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/leedsmet/bibliosight-core/internal/core/domain"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// QueryUpdateRequest is a partial update of the query configuration.
// Only the fields present in the request body are applied.
// @Description Partial query configuration update
type QueryUpdateRequest struct {
	DatabaseID       *string                  `json:"databaseId"`
	DateMode         *domain.DateMode         `json:"dateMode"`
	Editions         *[]domain.Edition        `json:"editions"`
	FirstRecord      *int                     `json:"firstRecord"`
	MaxResultCount   *int                     `json:"maxResultCount"`
	ProxyHost        *string                  `json:"proxyHost"`
	ProxyPort        *int                     `json:"proxyPort"`
	SortFields       *[]domain.SortField      `json:"sortFields"`
	SymbolicTimeSpan *domain.SymbolicTimeSpan `json:"symbolicTimeSpan"`
	TimeSpan         *domain.TimeSpan         `json:"timeSpan"`
	UserQuery        *string                  `json:"userQuery"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns the readiness status of the API (checks backing store connections)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "A backing store is unreachable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "cache unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Query configuration endpoints

// handleGetQuery godoc
// @Summary      Get query configuration
// @Description  Returns a snapshot of the current query configuration
// @Tags         Query
// @Produce      json
// @Success      200  {object}  domain.QueryConfiguration
// @Router       /query [get]
func (s *Server) handleGetQuery(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.queryService.Configuration())
}

// handleUpdateQuery godoc
// @Summary      Update query configuration
// @Description  Applies a partial update; only the fields present in the body are changed. Out-of-range numeric values are clamped, never rejected.
// @Tags         Query
// @Accept       json
// @Produce      json
// @Param        request  body      QueryUpdateRequest  true  "Fields to update"
// @Success      200      {object}  domain.QueryConfiguration
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Router       /query [put]
func (s *Server) handleUpdateQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.DatabaseID != nil {
		s.queryService.SetDatabaseID(*req.DatabaseID)
	}
	if req.DateMode != nil {
		s.queryService.SetDateMode(*req.DateMode)
	}
	if req.Editions != nil {
		s.queryService.SetEditions(*req.Editions)
	}
	if req.FirstRecord != nil {
		s.queryService.SetFirstRecord(*req.FirstRecord)
	}
	if req.MaxResultCount != nil {
		s.queryService.SetMaxResultCount(*req.MaxResultCount)
	}
	if req.ProxyHost != nil {
		s.queryService.SetProxyHost(*req.ProxyHost)
	}
	if req.ProxyPort != nil {
		s.queryService.SetProxyPort(*req.ProxyPort)
	}
	if req.SortFields != nil {
		s.queryService.SetSortFields(*req.SortFields)
	}
	if req.SymbolicTimeSpan != nil {
		s.queryService.SetSymbolicTimeSpan(*req.SymbolicTimeSpan)
	}
	if req.TimeSpan != nil {
		s.queryService.SetTimeSpan(req.TimeSpan)
	}
	if req.UserQuery != nil {
		s.queryService.SetUserQuery(*req.UserQuery)
	}

	writeJSON(w, http.StatusOK, s.queryService.Configuration())
}

// Execution endpoints

// handleSearch godoc
// @Summary      Execute search
// @Description  Runs the full search flow with the current configuration. Failures never surface as HTTP errors; they are reported through the execution log.
// @Tags         Search
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /search [post]
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.queryService.Execute(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGetResult godoc
// @Summary      Get result document
// @Description  Returns the XML result document of the last successful execution
// @Tags         Search
// @Produce      xml
// @Success      200  {string}  string  "Result document"
// @Failure      404  {object}  ErrorResponse  "No result available"
// @Router       /result [get]
func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	out := s.queryService.ResultOutput()
	if out == "" {
		writeError(w, http.StatusNotFound, "no result available")
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out))
}

// handleGetLog godoc
// @Summary      Get execution log
// @Description  Returns the accumulated execution log as plain text
// @Tags         Search
// @Produce      plain
// @Success      200  {string}  string  "Execution log"
// @Router       /log [get]
func (s *Server) handleGetLog(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(s.queryService.Log()))
}

// History endpoint

// handleListHistory godoc
// @Summary      List recent executions
// @Description  Returns the most recent search executions, newest first
// @Tags         History
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of entries"  default(20)
// @Success      200    {array}   domain.Execution
// @Failure      500    {object}  ErrorResponse  "Failed to list executions"
// @Failure      501    {object}  ErrorResponse  "History store not configured"
// @Router       /history [get]
func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusNotImplemented, "history store not configured")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}

	executions, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list executions")
		return
	}
	if executions == nil {
		executions = []*domain.Execution{}
	}

	writeJSON(w, http.StatusOK, executions)
}

// Helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
