// ABOUTME: Authenticated HTTP client for the BambooHR REST API.
// ABOUTME: Single egress point shared by all tool handlers for one tenant domain.

package bamboo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// baseURLPattern templates the tenant's company domain into the BambooHR
// gateway address.
const baseURLPattern = "https://api.bamboohr.com/api/gateway.php/%s/v1"

// DefaultTimeout bounds each HTTP exchange. Timeouts surface as network
// errors, matching the taxonomy in errors.go.
const DefaultTimeout = 30 * time.Second

// Config holds construction parameters for the client.
type Config struct {
	// CompanyDomain is the per-tenant subdomain, e.g. "acme" for
	// acme.bamboohr.com. Required.
	CompanyDomain string

	// APIKey is the BambooHR API token. Sent as the HTTP Basic username
	// with the fixed password "x" per the platform's convention. Required.
	APIKey string

	// Timeout overrides DefaultTimeout when positive.
	Timeout time.Duration

	// BaseURL overrides the derived upstream address, used by tests.
	BaseURL string

	// HTTPClient overrides the transport, used by tests. When set, Timeout
	// is ignored in favor of the supplied client's own.
	HTTPClient *http.Client

	Logger *slog.Logger
}

// Client is the single authenticated access point to the BambooHR API for one
// tenant. Its configuration is immutable after construction; the underlying
// connection pool is safe for concurrent use.
type Client struct {
	baseURL       string
	companyDomain string
	authHeader    string
	httpc         *http.Client
	logger        *slog.Logger
}

// New creates a client for the given tenant. Fails fast when either the
// company domain or the API key is missing.
func New(cfg Config) (*Client, error) {
	if cfg.CompanyDomain == "" {
		return nil, errors.New("company domain is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("API key is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	httpc := cfg.HTTPClient
	if httpc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpc = &http.Client{Timeout: timeout}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf(baseURLPattern, cfg.CompanyDomain)
	}

	return &Client{
		baseURL:       baseURL,
		companyDomain: cfg.CompanyDomain,
		authHeader:    basicAuth(cfg.APIKey, "x"),
		httpc:         httpc,
		logger:        logger.With("component", "bamboo"),
	}, nil
}

// CompanyDomain returns the tenant this client is bound to.
func (c *Client) CompanyDomain() string { return c.companyDomain }

// BaseURL returns the derived upstream base address.
func (c *Client) BaseURL() string { return c.baseURL }

// Get issues an authenticated read and decodes the JSON response. Empty query
// values are never serialized; a nil query and an empty query produce
// wire-identical requests.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (any, error) {
	body, err := c.do(ctx, http.MethodGet, path, query, nil, "", "application/json")
	if err != nil {
		return nil, err
	}
	return decodeBody(body)
}

// Post issues an authenticated JSON write. The optional query carries per-call
// overrides such as report format switches.
func (c *Client) Post(ctx context.Context, path string, data any, query url.Values) (any, error) {
	payload, err := marshalBody(data)
	if err != nil {
		return nil, err
	}
	body, err := c.do(ctx, http.MethodPost, path, query, payload, "application/json", "application/json")
	if err != nil {
		return nil, err
	}
	return decodeBody(body)
}

// Put issues an authenticated JSON replacement write.
func (c *Client) Put(ctx context.Context, path string, data any, query url.Values) (any, error) {
	payload, err := marshalBody(data)
	if err != nil {
		return nil, err
	}
	body, err := c.do(ctx, http.MethodPut, path, query, payload, "application/json", "application/json")
	if err != nil {
		return nil, err
	}
	return decodeBody(body)
}

// Delete issues an authenticated delete.
func (c *Client) Delete(ctx context.Context, path string, query url.Values) (any, error) {
	body, err := c.do(ctx, http.MethodDelete, path, query, nil, "", "application/json")
	if err != nil {
		return nil, err
	}
	return decodeBody(body)
}

// GetXML issues a read requesting XML. The upstream may ignore the accept
// header; whatever body was received is returned as opaque text.
func (c *Client) GetXML(ctx context.Context, path string, query url.Values) (string, error) {
	body, err := c.do(ctx, http.MethodGet, path, query, nil, "", "application/xml")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// UploadFile posts a multipart body with exactly two parts: the file itself
// and a "share" field carrying the boolean as a literal string. The multipart
// boundary comes from mime/multipart.
func (c *Client) UploadFile(ctx context.Context, path string, file []byte, fileName string, share bool) (any, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return nil, setupError(err)
	}
	if _, err := part.Write(file); err != nil {
		return nil, setupError(err)
	}
	if err := mw.WriteField("share", strconv.FormatBool(share)); err != nil {
		return nil, setupError(err)
	}
	if err := mw.Close(); err != nil {
		return nil, setupError(err)
	}

	body, err := c.do(ctx, http.MethodPost, path, nil, buf.Bytes(), mw.FormDataContentType(), "application/json")
	if err != nil {
		return nil, err
	}
	return decodeBody(body)
}

// DownloadFile issues a binary read and returns the raw bytes without any
// decoding attempt.
func (c *Client) DownloadFile(ctx context.Context, path string, query url.Values) ([]byte, error) {
	body, err := c.do(ctx, http.MethodGet, path, query, nil, "", "*/*")
	if err != nil {
		return nil, err
	}
	return body, nil
}

// do performs one authenticated exchange and classifies every failure. It
// returns the response body on 2xx, or an *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload []byte, contentType, accept string) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, setupError(err)
	}

	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", accept)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "method", method, "path", path, "error", err)
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := classifyStatus(resp.StatusCode, body)
		c.logger.Warn("upstream error",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"category", apiErr.Category,
		)
		return nil, apiErr
	}

	c.logger.Debug("request complete", "method", method, "path", path, "status", resp.StatusCode)
	return body, nil
}

// decodeBody interprets a successful response. JSON bodies decode into a
// generic value; anything else (CSV or PDF report output) is returned as a
// string. An empty body decodes to nil.
func decodeBody(body []byte) (any, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return string(body), nil
	}
	return v, nil
}

// marshalBody serializes a JSON request body. A nil body stays nil so the
// request carries no payload.
func marshalBody(data any) ([]byte, error) {
	if data == nil {
		return nil, nil
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, setupError(fmt.Errorf("marshaling request body: %w", err))
	}
	return payload, nil
}

// basicAuth builds the Authorization header value for token-only auth.
func basicAuth(username, password string) string {
	req := http.Request{Header: http.Header{}}
	req.SetBasicAuth(username, password)
	return req.Header.Get("Authorization")
}

// IsCategory reports whether err is an APIError of the given category.
func IsCategory(err error, cat Category) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Category == cat
}
