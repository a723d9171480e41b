package services

import (
	"fmt"

	"github.com/leedsmet/bibliosight-core/internal/core/domain"
)

// BuildSearchRequest converts a configuration snapshot into the immutable
// request payload the vendor service expects.
//
// Out-of-range numeric fields are clamped, missing lists are treated as
// "no constraint", and an unset date mode suppresses both date criteria.
// Each recovered condition is reported as a warning string for the
// caller's observable log; none of them is an error.
func BuildSearchRequest(cfg domain.QueryConfiguration) (domain.SearchRequest, []string) {
	var warnings []string

	query := domain.QueryParameters{
		DatabaseID:    cfg.DatabaseID,
		QueryLanguage: domain.QueryLanguage,
		UserQuery:     cfg.UserQuery,
	}

	switch cfg.DateMode {
	case domain.DateModeRange:
		if cfg.TimeSpan != nil {
			ts := *cfg.TimeSpan
			query.TimeSpan = &ts
		} else {
			warnings = append(warnings, "Error: Date range is not set")
		}
	case domain.DateModeRecent:
		if cfg.SymbolicTimeSpan != "" {
			query.SymbolicTimeSpan = cfg.SymbolicTimeSpan
		} else {
			warnings = append(warnings, "Error: Recent date is not set")
		}
	default:
		warnings = append(warnings, "Error: Date mode is null")
	}

	if cfg.Editions == nil {
		warnings = append(warnings, "Error: Editions list is null")
		query.Editions = []domain.Edition{}
	} else {
		query.Editions = make([]domain.Edition, len(cfg.Editions))
		copy(query.Editions, cfg.Editions)
	}

	retrieve := domain.RetrieveParameters{}

	firstRecord, clamped := domain.ClampFirstRecord(cfg.FirstRecord)
	if clamped {
		warnings = append(warnings, fmt.Sprintf("Start record cannot be lower than %d", domain.MinFirstRecord))
	}
	retrieve.FirstRecord = firstRecord

	count, clamped := domain.ClampResultCount(cfg.MaxResultCount)
	if clamped {
		if cfg.MaxResultCount > domain.MaxMaxResultCount {
			warnings = append(warnings, fmt.Sprintf("Maximum records to retrieve cannot be greater than %d", domain.MaxMaxResultCount))
		} else {
			warnings = append(warnings, fmt.Sprintf("Maximum records to retrieve cannot be lower than %d", domain.MinMaxResultCount))
		}
	}
	retrieve.Count = count

	if cfg.SortFields == nil {
		warnings = append(warnings, "Error: Sort fields list is null")
		retrieve.Fields = []domain.SortField{}
	} else {
		retrieve.Fields = make([]domain.SortField, len(cfg.SortFields))
		copy(retrieve.Fields, cfg.SortFields)
	}

	return domain.SearchRequest{Query: query, Retrieve: retrieve}, warnings
}
