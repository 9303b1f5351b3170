// Package upstream is the HTTP client for the backend the console does
// not control. Reference lookups go through three endpoint shapes that
// coexist during the backend migration; each tier is tried in order and
// a failing tier is reported to the caller so it can fall through.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	// MaxLookupRecords caps every tier query. Entities with more rows
	// than this silently fail to resolve ids outside the first batch.
	MaxLookupRecords = 1000

	defaultRequestTimeout = 10 * time.Second
)

// Record is one backend row, opaque except for the columns callers ask about.
type Record map[string]any

// ID returns the record identifier as a string, or "" when absent.
func (r Record) ID() string {
	return ScalarString(r["id"])
}

// String returns the named attribute as a trimmed string, or "" when the
// attribute is absent, null, or not a scalar.
func (r Record) String(field string) string {
	return strings.TrimSpace(ScalarString(r[field]))
}

// ScalarString renders a scalar row value the way the backend compares
// identifiers: JSON numbers without a trailing fraction, nil as "".
func ScalarString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strings.TrimSuffix(fmt.Sprintf("%v", val), ".0")
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int, int32, int64, uint, uint32, uint64:
		return fmt.Sprintf("%d", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Tier identifies one upstream query shape.
type Tier int

// Tiers in fallback order.
const (
	TierLookup Tier = iota
	TierTableData
	TierEntityRows
)

// String names the tier for logs.
func (t Tier) String() string {
	switch t {
	case TierLookup:
		return "lookup"
	case TierTableData:
		return "table-data"
	case TierEntityRows:
		return "entity-rows"
	default:
		return "unknown"
	}
}

// path returns the request path and query for the tier.
func (t Tier) path(entity string) string {
	switch t {
	case TierLookup:
		return fmt.Sprintf("/api/admin/business/tables/%s/lookup?limit=%d", url.PathEscape(entity), MaxLookupRecords)
	case TierTableData:
		return fmt.Sprintf("/api/admin/business/tables/%s/data?pageSize=%d", url.PathEscape(entity), MaxLookupRecords)
	default:
		return fmt.Sprintf("/api/admin/entities/%s/rows?pageSize=%d", url.PathEscape(entity), MaxLookupRecords)
	}
}

// AllTiers lists the tiers in the order they are attempted.
var AllTiers = []Tier{TierLookup, TierTableData, TierEntityRows}

// Client issues lookup and table queries against the backend.
type Client struct {
	baseURL string
	client  *http.Client

	// group coalesces concurrent fetches of the same (entity, tier)
	// so a page render with repeated reference columns costs one call.
	group singleflight.Group
}

// New constructs a Client for the given base URL. A non-positive timeout
// falls back to the default request timeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// SetHTTPClient replaces the underlying HTTP client. Tests use this to
// point the client at an httptest server transport.
func (c *Client) SetHTTPClient(hc *http.Client) {
	if c == nil || hc == nil {
		return
	}
	c.client = hc
}

// Fetch returns up to MaxLookupRecords records for the entity through a
// single tier shape. A non-2xx status, unreachable host, or body that
// does not decode to a record collection is an error; the caller decides
// whether to fall through to the next tier.
func (c *Client) Fetch(ctx context.Context, tier Tier, entity string) ([]Record, error) {
	if c == nil {
		return nil, fmt.Errorf("upstream: nil client")
	}
	entity = strings.TrimSpace(entity)
	if entity == "" {
		return nil, fmt.Errorf("upstream: empty entity")
	}

	key := entity + "|" + tier.String()
	result, err, _ := c.group.Do(key, func() (any, error) {
		return c.get(ctx, tier.path(entity))
	})
	if err != nil {
		return nil, err
	}
	records, ok := result.([]Record)
	if !ok {
		return nil, fmt.Errorf("upstream: unexpected fetch result type")
	}
	return records, nil
}

// FetchTableData returns one page of rows for the console table view,
// passing pagination and search parameters through unchanged.
func (c *Client) FetchTableData(ctx context.Context, table string, query url.Values) ([]Record, error) {
	if c == nil {
		return nil, fmt.Errorf("upstream: nil client")
	}
	table = strings.TrimSpace(table)
	if table == "" {
		return nil, fmt.Errorf("upstream: empty table")
	}
	path := fmt.Sprintf("/api/admin/business/tables/%s/data", url.PathEscape(table))
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	return c.get(ctx, path)
}

func (c *Client) get(ctx context.Context, path string) ([]Record, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req, errReq := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if errReq != nil {
		return nil, fmt.Errorf("upstream: build request: %w", errReq)
	}
	req.Header.Set("Accept", "application/json")

	resp, errDo := c.client.Do(req)
	if errDo != nil {
		return nil, fmt.Errorf("upstream: request failed: %w", errDo)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("upstream: unexpected status %d for %s", resp.StatusCode, path)
	}

	body, errRead := io.ReadAll(resp.Body)
	if errRead != nil {
		return nil, fmt.Errorf("upstream: read response: %w", errRead)
	}
	return decodeRecords(body)
}

// envelope is the common response wrapper across all three tiers.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// itemsWrapper is the paged variant some tiers return under "data".
type itemsWrapper struct {
	Items []Record `json:"items"`
}

// decodeRecords normalizes the tier response envelopes: a bare array,
// {success, data: [...]}, or {success, data: {items: [...]}}.
func decodeRecords(body []byte) ([]Record, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil, fmt.Errorf("upstream: empty response body")
	}

	if strings.HasPrefix(trimmed, "[") {
		var records []Record
		if err := json.Unmarshal(body, &records); err != nil {
			return nil, fmt.Errorf("upstream: decode record array: %w", err)
		}
		return records, nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("upstream: decode envelope: %w", err)
	}
	if env.Success != nil && !*env.Success {
		return nil, fmt.Errorf("upstream: backend reported failure")
	}
	if len(env.Data) == 0 {
		return nil, fmt.Errorf("upstream: envelope missing data")
	}

	inner := strings.TrimSpace(string(env.Data))
	if strings.HasPrefix(inner, "[") {
		var records []Record
		if err := json.Unmarshal(env.Data, &records); err != nil {
			return nil, fmt.Errorf("upstream: decode data array: %w", err)
		}
		return records, nil
	}

	var wrapper itemsWrapper
	if err := json.Unmarshal(env.Data, &wrapper); err != nil {
		return nil, fmt.Errorf("upstream: decode data items: %w", err)
	}
	if wrapper.Items == nil {
		return nil, fmt.Errorf("upstream: data carries no record collection")
	}
	return wrapper.Items, nil
}
