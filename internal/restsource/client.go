// Package restsource implements datasource.RemoteSource over a
// PostgREST-style HTTP API, the shape the hosted backend exposes: one
// resource path per table, filters as query parameters, and RPC endpoints
// for aggregate queries. Transient failures are retried with exponential
// backoff; everything else is mapped onto the failure taxonomy.
package restsource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/LazyDev-01/Dayliz-App-sub011/datasource"
	"github.com/LazyDev-01/Dayliz-App-sub011/logging"
	"github.com/LazyDev-01/Dayliz-App-sub011/offlinerepo"
)

// Interface assertions for the base client and the aggregate variant.
var (
	_ datasource.RemoteSource[any]     = (*Client[any])(nil)
	_ datasource.RemoteSource[any]     = (*AggregateClient[any])(nil)
	_ datasource.AggregateFetcher[any] = (*AggregateClient[any])(nil)
)

// Config holds the connection settings shared by every resource client.
type Config struct {
	// BaseURL is the API root, e.g. https://project.supabase.co.
	BaseURL string

	// APIKey is sent in the apikey header on every request.
	APIKey string

	// AuthToken, when set, is sent as a bearer token. Write and delete
	// endpoints reject requests without one.
	AuthToken string

	// HTTPClient defaults to a client with a 10s timeout.
	HTTPClient *http.Client

	// MaxRetries bounds transient-failure retries per request. Zero
	// disables retrying.
	MaxRetries uint64

	// RetryBase is the exponential backoff base. Defaults to 100ms.
	RetryBase time.Duration

	// Logger may be nil.
	Logger logging.Logger
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return &ConfigError{Field: "BaseURL", Message: "must not be empty"}
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return &ConfigError{Field: "BaseURL", Message: "must be a valid URL"}
	}
	if c.RetryBase < 0 {
		return &ConfigError{Field: "RetryBase", Message: "must be non-negative"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// Resource describes how one entity type maps onto the API.
type Resource struct {
	// Table is the resource path segment under /rest/v1/.
	Table string

	// ScopeColumn is the column the scope filters on, typically user_id.
	// Empty means the resource is unscoped (categories, products).
	ScopeColumn string

	// AggregateRPC names the RPC that serves the collection in one joined
	// round trip. Only used by AggregateClient.
	AggregateRPC string
}

// Client is the standard-path RemoteSource for one resource.
type Client[T any] struct {
	cfg  Config
	res  Resource
	http *http.Client
	log  logging.Logger
}

// New builds a Client for a resource.
func New[T any](cfg Config, res Resource) (*Client[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if res.Table == "" {
		return nil, &ConfigError{Field: "Resource.Table", Message: "must not be empty"}
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}
	if cfg.RetryBase == 0 {
		cfg.RetryBase = 100 * time.Millisecond
	}

	return &Client[T]{cfg: cfg, res: res, http: httpClient, log: log}, nil
}

// AggregateClient adds the fast-path aggregate capability on top of Client.
// Keeping it a distinct type means the repository's capability check is a
// static interface assertion, not an inspection of configuration.
type AggregateClient[T any] struct {
	*Client[T]
}

// NewAggregate builds a client whose resource declares an aggregate RPC.
func NewAggregate[T any](cfg Config, res Resource) (*AggregateClient[T], error) {
	if res.AggregateRPC == "" {
		return nil, &ConfigError{Field: "Resource.AggregateRPC", Message: "must not be empty"}
	}
	base, err := New[T](cfg, res)
	if err != nil {
		return nil, err
	}
	return &AggregateClient[T]{Client: base}, nil
}

// GetAllAggregate implements datasource.AggregateFetcher via the RPC
// endpoint.
func (c *AggregateClient[T]) GetAllAggregate(ctx context.Context, scope string) ([]T, error) {
	body, err := json.Marshal(map[string]string{"user_id": ScopeValue(scope)})
	if err != nil {
		return nil, datasource.NewRemoteFailure("encoding rpc arguments", err)
	}

	data, err := c.do(ctx, http.MethodPost, c.cfg.BaseURL+"/rest/v1/rpc/"+c.res.AggregateRPC, nil, body)
	if err != nil {
		return nil, err
	}
	return decodeList[T](data)
}

// GetAll implements datasource.RemoteSource.
func (c *Client[T]) GetAll(ctx context.Context, scope string) ([]T, error) {
	data, err := c.do(ctx, http.MethodGet, c.tableURL(c.scopeQuery(scope)), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[T](data)
}

// GetByID implements datasource.RemoteSource.
func (c *Client[T]) GetByID(ctx context.Context, scope, id string) (T, error) {
	var zero T

	query := c.scopeQuery(scope)
	query.Set("id", "eq."+id)
	data, err := c.do(ctx, http.MethodGet, c.tableURL(query), nil, nil)
	if err != nil {
		return zero, err
	}

	records, err := decodeList[T](data)
	if err != nil {
		return zero, err
	}
	if len(records) == 0 {
		return zero, &datasource.Failure{
			Kind:    datasource.KindRemote,
			Message: fmt.Sprintf("record %s not found in %s", id, c.res.Table),
			Err:     datasource.ErrNotFound,
		}
	}
	return records[0], nil
}

// Write implements datasource.RemoteSource as a PostgREST upsert, returning
// the server's representation of the record.
func (c *Client[T]) Write(ctx context.Context, scope string, record T) (T, error) {
	var zero T

	body, err := json.Marshal(record)
	if err != nil {
		return zero, datasource.NewRemoteFailure("encoding record", err)
	}

	headers := map[string]string{
		"Prefer": "return=representation,resolution=merge-duplicates",
	}
	data, err := c.do(ctx, http.MethodPost, c.tableURL(nil), headers, body)
	if err != nil {
		return zero, err
	}

	records, err := decodeList[T](data)
	if err != nil {
		return zero, err
	}
	if len(records) == 0 {
		return zero, datasource.NewRemoteFailure("write returned no representation", nil)
	}
	return records[0], nil
}

// Delete implements datasource.RemoteSource.
func (c *Client[T]) Delete(ctx context.Context, scope, id string) error {
	query := c.scopeQuery(scope)
	query.Set("id", "eq."+id)
	_, err := c.do(ctx, http.MethodDelete, c.tableURL(query), nil, nil)
	return err
}

func (c *Client[T]) tableURL(query url.Values) string {
	u := c.cfg.BaseURL + "/rest/v1/" + c.res.Table
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client[T]) scopeQuery(scope string) url.Values {
	query := url.Values{}
	if c.res.ScopeColumn != "" {
		query.Set(c.res.ScopeColumn, "eq."+ScopeValue(scope))
	}
	return query
}

// do runs one HTTP request with retries on transient failures and maps the
// response onto the failure taxonomy.
func (c *Client[T]) do(ctx context.Context, method, rawURL string, headers map[string]string, body []byte) ([]byte, error) {
	backoff := retry.WithMaxRetries(c.cfg.MaxRetries, retry.NewExponential(c.cfg.RetryBase))

	var data []byte
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
		if err != nil {
			return datasource.NewRemoteFailure("building request", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.cfg.APIKey != "" {
			req.Header.Set("apikey", c.cfg.APIKey)
		}
		if c.cfg.AuthToken != "" {
			req.Header.Set("Authorization", "Bearer "+c.cfg.AuthToken)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			// Transport errors are worth retrying; the backend may be
			// briefly unreachable even though the probe said connected.
			return retry.RetryableError(datasource.NewRemoteFailure("request failed", err))
		}
		defer resp.Body.Close()

		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(datasource.NewRemoteFailure("reading response", err))
		}

		if ferr := failureForStatus(resp.StatusCode, c.res.Table, data); ferr != nil {
			if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
				return retry.RetryableError(ferr)
			}
			return ferr
		}
		return nil
	})
	if err != nil {
		c.log.Debug(ctx, "remote request failed",
			"method", method, "table", c.res.Table, "error", err.Error())
		return nil, err
	}
	return data, nil
}

func failureForStatus(status int, table string, body []byte) error {
	switch {
	case status < 400:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return datasource.NewAuthFailure(fmt.Sprintf("%s: session missing or expired", table), status)
	default:
		msg := strings.TrimSpace(string(body))
		if len(msg) > 200 {
			msg = msg[:200]
		}
		return &datasource.Failure{
			Kind:       datasource.KindRemote,
			Message:    fmt.Sprintf("%s: server rejected request: %s", table, msg),
			StatusCode: status,
		}
	}
}

// ScopeValue extracts the filterable part of a scope token: the segment
// after the last separator, e.g. the user id out of "cart::u-123".
func ScopeValue(scope string) string {
	if i := strings.LastIndex(scope, offlinerepo.ScopeSeparator); i >= 0 {
		return scope[i+len(offlinerepo.ScopeSeparator):]
	}
	return scope
}

func decodeList[T any](data []byte) ([]T, error) {
	var records []T
	if len(bytes.TrimSpace(data)) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		// Single-object responses come back from RPCs that return one row.
		var single T
		if serr := json.Unmarshal(data, &single); serr == nil {
			return []T{single}, nil
		}
		return nil, datasource.NewRemoteFailure("malformed response", err)
	}
	return records, nil
}
