package domain

// DateMode selects how the date criterion of a query is expressed
type DateMode string

const (
	// DateModeRange searches an explicit begin/end date range
	DateModeRange DateMode = "range"

	// DateModeRecent searches a symbolic recency window
	DateModeRecent DateMode = "recent"
)

// SymbolicTimeSpan is a relative recency window, the alternative to an
// explicit date range
type SymbolicTimeSpan string

const (
	SymbolicTimeSpanOneWeek  SymbolicTimeSpan = "1week"
	SymbolicTimeSpanTwoWeek  SymbolicTimeSpan = "2week"
	SymbolicTimeSpanFourWeek SymbolicTimeSpan = "4week"
)

// Valid reports whether the span is one of the vendor-defined window codes
func (s SymbolicTimeSpan) Valid() bool {
	switch s {
	case SymbolicTimeSpanOneWeek, SymbolicTimeSpanTwoWeek, SymbolicTimeSpanFourWeek:
		return true
	}
	return false
}

// TimeSpan is an explicit date range. Begin/End are carried verbatim;
// format validation belongs to the caller's input layer.
type TimeSpan struct {
	Begin string `json:"begin"`
	End   string `json:"end"`
}

// Edition identifies a sub-collection of the bibliographic database,
// paired with its parent collection code (e.g. SCI within WOS)
type Edition struct {
	Collection string `json:"collection"`
	Edition    string `json:"edition"`
}

// SortField is a sort criterion: a field name plus direction ("A" or "D")
type SortField struct {
	Name string `json:"name"`
	Sort string `json:"sort"`
}

// ProxyConfig is an optional outbound HTTP proxy for the vendor connection
type ProxyConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// Bounds for the numeric retrieve parameters. Out-of-range values are
// clamped, never rejected.
const (
	MinFirstRecord    = 1
	MinMaxResultCount = 1
	MaxMaxResultCount = 100
)

// ClampFirstRecord raises a first-record offset below the minimum.
// The second return reports whether clamping occurred.
func ClampFirstRecord(v int) (int, bool) {
	if v < MinFirstRecord {
		return MinFirstRecord, true
	}
	return v, false
}

// ClampResultCount forces a maximum result count into [1,100].
func ClampResultCount(v int) (int, bool) {
	if v < MinMaxResultCount {
		return MinMaxResultCount, true
	}
	if v > MaxMaxResultCount {
		return MaxMaxResultCount, true
	}
	return v, false
}

// QueryConfiguration is the mutable search configuration owned by the
// query model. Exactly one of TimeSpan / SymbolicTimeSpan is active per
// the current DateMode; the other is suppressed when a request is built.
type QueryConfiguration struct {
	DatabaseID       string           `json:"databaseId"`
	DateMode         DateMode         `json:"dateMode"`
	Editions         []Edition        `json:"editions"`
	FirstRecord      int              `json:"firstRecord"`
	MaxResultCount   int              `json:"maxResultCount"`
	ProxyHost        string           `json:"proxyHost"`
	ProxyPort        int              `json:"proxyPort"`
	SortFields       []SortField      `json:"sortFields"`
	SymbolicTimeSpan SymbolicTimeSpan `json:"symbolicTimeSpan"`
	TimeSpan         *TimeSpan        `json:"timeSpan"`
	UserQuery        string           `json:"userQuery"`
}

// Proxy returns the configured outbound proxy, or nil when unset
func (c *QueryConfiguration) Proxy() *ProxyConfig {
	if c.ProxyHost == "" || c.ProxyPort == 0 {
		return nil
	}
	return &ProxyConfig{Host: c.ProxyHost, Port: c.ProxyPort}
}

// Clone returns a deep copy so a request build works on a stable snapshot
func (c *QueryConfiguration) Clone() QueryConfiguration {
	out := *c
	if c.Editions != nil {
		out.Editions = make([]Edition, len(c.Editions))
		copy(out.Editions, c.Editions)
	}
	if c.SortFields != nil {
		out.SortFields = make([]SortField, len(c.SortFields))
		copy(out.SortFields, c.SortFields)
	}
	if c.TimeSpan != nil {
		ts := *c.TimeSpan
		out.TimeSpan = &ts
	}
	return out
}
