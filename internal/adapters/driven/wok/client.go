// Package wok is the HTTP adapter for the Web of Knowledge "Web Services
// Lite" SOAP endpoints: the authentication service and the search
// service. The wire encoding is the vendor's contract; this adapter only
// translates between it and the domain types.
package wok

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/leedsmet/bibliosight-core/internal/core/domain"
	"github.com/leedsmet/bibliosight-core/internal/core/ports/driven"
)

// Verify interface compliance
var (
	_ driven.Authenticator  = (*AuthClient)(nil)
	_ driven.SearchGateway  = (*SearchClient)(nil)
	_ driven.GatewayFactory = (*Factory)(nil)
)

// Config holds the vendor endpoint configuration
type Config struct {
	// AuthURL is the authentication service endpoint
	AuthURL string

	// SearchURL is the search service endpoint
	SearchURL string

	// Timeout for HTTP requests
	Timeout time.Duration
}

// DefaultConfig returns the vendor production endpoints
func DefaultConfig() Config {
	return Config{
		AuthURL:   "http://search.isiknowledge.com/esti/wokmws/ws/WOKMWSAuthenticate",
		SearchURL: "http://search.isiknowledge.com/esti/wokmws/ws/WokSearchLite",
		Timeout:   30 * time.Second,
	}
}

// Factory builds a fresh authenticator/search gateway pair per search
// invocation, optionally routed through an outbound proxy
type Factory struct {
	cfg Config
}

// NewFactory creates a gateway factory for the given endpoints
func NewFactory(cfg Config) *Factory {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Factory{cfg: cfg}
}

// New creates the gateway pair for one invocation. Both gateways share
// one underlying HTTP client so the proxy setting applies to the whole
// session.
func (f *Factory) New(proxy *domain.ProxyConfig) (driven.Authenticator, driven.SearchGateway, error) {
	httpClient := &http.Client{Timeout: f.cfg.Timeout}

	if proxy != nil {
		proxyURL, err := url.Parse(fmt.Sprintf("http://%s:%d", proxy.Host, proxy.Port))
		if err != nil {
			return nil, nil, fmt.Errorf("invalid proxy address: %w", err)
		}
		httpClient.Transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
	}

	// Both gateways share the session cookie: binding the token on the
	// search gateway also lets closeSession terminate the same session.
	session := &sessionState{}
	auth := &AuthClient{soap: soapClient{httpClient: httpClient, endpoint: f.cfg.AuthURL, session: session}}
	search := &SearchClient{soap: soapClient{httpClient: httpClient, endpoint: f.cfg.SearchURL, session: session}}
	return auth, search, nil
}

// sessionState carries the cookie shared by the gateway pair
type sessionState struct {
	cookie string
}

// soapClient posts SOAP 1.1 envelopes to one endpoint
type soapClient struct {
	httpClient *http.Client
	endpoint   string
	session    *sessionState
}

// call marshals the payload into an envelope, posts it, and decodes the
// response envelope. A SOAP fault in the response body is returned as an
// error, as is any non-2xx status without a decodable fault.
func (c *soapClient) call(ctx context.Context, action string, payload any) (*responseEnvelope, error) {
	body, err := xml.Marshal(newRequestEnvelope(payload))
	if err != nil {
		return nil, fmt.Errorf("marshal request envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(append([]byte(xml.Header), body...)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", action)
	if c.session != nil && c.session.cookie != "" {
		req.Header.Set("Cookie", c.session.cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var envelope responseEnvelope
	if err := xml.Unmarshal(data, &envelope); err != nil {
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("remote call failed: %s", resp.Status)
		}
		return nil, fmt.Errorf("decode response envelope: %w", err)
	}

	if envelope.Body.Fault != nil {
		return nil, envelope.Body.Fault
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("remote call failed: %s", resp.Status)
	}

	return &envelope, nil
}

// AuthClient is the authentication service gateway
type AuthClient struct {
	soap soapClient
}

// Authenticate requests a session token. The call carries no credentials;
// the deployed service authenticates the caller by network origin.
func (c *AuthClient) Authenticate(ctx context.Context) (string, error) {
	envelope, err := c.soap.call(ctx, "", authenticateCall{AuthNS: authNamespace})
	if err != nil {
		return "", err
	}
	if envelope.Body.Authenticate == nil {
		return "", fmt.Errorf("authenticate: missing response body")
	}
	return envelope.Body.Authenticate.Return, nil
}

// CloseSession terminates the current session, identified by the same
// SID cookie the search calls carry
func (c *AuthClient) CloseSession(ctx context.Context) error {
	_, err := c.soap.call(ctx, "", closeSessionCall{AuthNS: authNamespace})
	return err
}

// SearchClient is the search service gateway
type SearchClient struct {
	soap soapClient
}

// BindSession attaches the session token as the SID cookie on subsequent
// calls from either gateway of the pair
func (c *SearchClient) BindSession(token string) {
	c.soap.session.cookie = sessionCookie(token)
}

// Search issues one search call and maps the response records into the
// domain result set
func (c *SearchClient) Search(ctx context.Context, req *domain.SearchRequest) (*domain.SearchResultSet, error) {
	envelope, err := c.soap.call(ctx, "", buildSearchCall(req))
	if err != nil {
		return nil, err
	}
	if envelope.Body.Search == nil {
		return nil, fmt.Errorf("search: missing response body")
	}

	ret := envelope.Body.Search.Return
	results := &domain.SearchResultSet{
		RecordsSearched: ret.RecordsSearched,
		RecordsFound:    ret.RecordsFound,
		Records:         make([]domain.Record, 0, len(ret.Records)),
	}
	for _, rec := range ret.Records {
		results.Records = append(results.Records, domain.Record{
			UT:       rec.UT,
			Titles:   mapPairs(rec.Titles),
			Authors:  mapPairs(rec.Authors),
			Source:   mapPairs(rec.Source),
			Keywords: mapPairs(rec.Keywords),
		})
	}
	return results, nil
}

func buildSearchCall(req *domain.SearchRequest) searchCall {
	call := searchCall{
		SearchNS: searchNamespace,
		Query: queryParameters{
			DatabaseID:       req.Query.DatabaseID,
			SymbolicTimeSpan: string(req.Query.SymbolicTimeSpan),
			UserQuery:        req.Query.UserQuery,
			QueryLanguage:    req.Query.QueryLanguage,
		},
		Retrieve: retrieveParameters{
			FirstRecord: req.Retrieve.FirstRecord,
			Count:       req.Retrieve.Count,
		},
	}
	if req.Query.TimeSpan != nil {
		call.Query.TimeSpan = &timeSpan{Begin: req.Query.TimeSpan.Begin, End: req.Query.TimeSpan.End}
	}
	for _, e := range req.Query.Editions {
		call.Query.Editions = append(call.Query.Editions, edition{Collection: e.Collection, Edition: e.Edition})
	}
	for _, f := range req.Retrieve.Fields {
		call.Retrieve.Fields = append(call.Retrieve.Fields, queryField{Name: f.Name, Sort: f.Sort})
	}
	return call
}

func mapPairs(pairs []labelValuesPair) []domain.LabelValuesPair {
	out := make([]domain.LabelValuesPair, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, domain.LabelValuesPair{Label: p.Label, Values: p.Values})
	}
	return out
}

func sessionCookie(token string) string {
	return "SID=" + strings.Trim(token, `"`)
}
