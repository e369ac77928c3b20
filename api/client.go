package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the production v3 REST root.
const DefaultBaseURL = "https://www.kookapp.cn/api/v3/"

// Client communicates with the KOOK REST API. It works independently of the
// WebSocket session; no live connection is needed.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the REST root, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger overrides the client's logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a REST client for one bot token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the uniform response wrapper of every v3 endpoint.
type envelope struct {
	Code    int64           `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Call invokes an endpoint by name ("message/create", "guild/list", ...)
// and returns the raw data section. The HTTP method comes from the route
// table; unknown names go out as POST.
func (c *Client) Call(ctx context.Context, name string, params map[string]any) (json.RawMessage, error) {
	method := Method(name)
	endpoint := c.baseURL + name

	var req *http.Request
	var err error
	switch method {
	case http.MethodGet:
		req, err = c.getRequest(ctx, endpoint, params)
	default:
		req, err = c.postRequest(ctx, endpoint, params)
	}
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// CallInto invokes an endpoint and unmarshals the data section into dest.
func (c *Client) CallInto(ctx context.Context, name string, params map[string]any, dest any) error {
	data, err := c.Call(ctx, name, params)
	if err != nil {
		return err
	}
	if dest == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode %s result: %w", name, err)
	}
	return nil
}

// CallTyped invokes an endpoint and returns the result shape from the route
// table, or the raw data section for endpoints without one.
func (c *Client) CallTyped(ctx context.Context, name string, params map[string]any) (any, error) {
	dest := NewResult(name)
	if dest == nil {
		return c.Call(ctx, name, params)
	}
	if err := c.CallInto(ctx, name, params, dest); err != nil {
		return nil, err
	}
	return dest, nil
}

// UploadAsset uploads a file via asset/create and returns its remote URL.
func (c *Client) UploadAsset(ctx context.Context, filename string, data []byte) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"asset/create", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	raw, err := c.do(req)
	if err != nil {
		return "", err
	}
	var u URL
	if err := json.Unmarshal(raw, &u); err != nil {
		return "", fmt.Errorf("decode asset/create result: %w", err)
	}
	return u.URL, nil
}

// Gateway fetches the WebSocket gateway URL. compress asks the server to
// zlib-deflate every frame.
func (c *Client) Gateway(ctx context.Context, compress bool) (string, error) {
	params := map[string]any{"compress": 0}
	if compress {
		params["compress"] = 1
	}
	var u URL
	if err := c.CallInto(ctx, "gateway/index", params, &u); err != nil {
		return "", err
	}
	if u.URL == "" {
		return "", fmt.Errorf("gateway/index returned no url")
	}
	return u.URL, nil
}

// --------------------------------------------------------------------------
// Request building
// --------------------------------------------------------------------------

func (c *Client) getRequest(ctx context.Context, endpoint string, params map[string]any) (*http.Request, error) {
	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, queryValue(v))
		}
		endpoint += "?" + q.Encode()
	}
	return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
}

func (c *Client) postRequest(ctx context.Context, endpoint string, params map[string]any) (*http.Request, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func queryValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// --------------------------------------------------------------------------
// Response handling
// --------------------------------------------------------------------------

// do sends an authed request, maps HTTP-level failures to typed errors and
// unwraps the platform envelope.
func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	req.Header.Set("Authorization", "Bot "+c.token)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: req.URL.String(), Err: err}
	}

	c.log.Debug("api call",
		"method", req.Method,
		"url", req.URL.Path,
		"status", resp.StatusCode,
		"elapsed", time.Since(start))

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &UnauthorizedError{Status: resp.StatusCode, Message: string(body)}
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusMethodNotAllowed:
		return nil, fmt.Errorf("%s: %w", req.URL.Path, ErrAPINotAvailable)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &RateLimitError{RetryAfter: retryAfter(resp)}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &ActionFailed{Code: int64(resp.StatusCode), Message: string(body)}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%s: %w", req.URL.Path, ErrEmptyResponse)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode response envelope: %w", err)
	}
	if env.Code != 0 {
		return nil, &ActionFailed{Code: env.Code, Message: env.Message}
	}
	return env.Data, nil
}

func retryAfter(resp *http.Response) time.Duration {
	if s := resp.Header.Get("X-Rate-Limit-Reset"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return time.Duration(n) * time.Second
		}
	}
	return 0
}
