// Package request implements the low-level HTTP transport for the portal
// sharing API. Every endpoint takes `f=json` and an optional `token`
// parameter, answers with a JSON body, and reports API-level failures as a
// JSON error envelope inside an HTTP 200 response.
package request

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/esri/hub.go/internal/codec"
	"github.com/esri/hub.go/internal/rand"
	"github.com/esri/hub.go/pkg/constants"
	"github.com/esri/hub.go/pkg/logger"
)

type Client struct {
	baseURL     string
	token       string
	unmarshaler codec.Unmarshaler
	logger      logger.Logger

	httpClient *http.Client
}

type NewClientParams struct {
	BaseURL     string
	Token       string
	Unmarshaler codec.Unmarshaler
	Logger      logger.Logger
	HTTPClient  *http.Client
}

func NewClient(p NewClientParams) *Client {
	c := &Client{
		baseURL:     strings.TrimSuffix(p.BaseURL, "/"),
		token:       p.Token,
		unmarshaler: p.Unmarshaler,
		logger:      p.Logger,
		httpClient:  p.HTTPClient,
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout: 30 * time.Second, // Set a default timeout to avoid hanging requests
		}
	}

	return c
}

func (c *Client) SetTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

func (c *Client) SetHTTPClient(client *http.Client) *Client {
	c.httpClient = client
	return c
}

// WithToken returns a copy of the client authenticated with a different
// token. The underlying http.Client is shared.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a GET against the given endpoint path and decodes the JSON
// response into res.
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values, res any) error {
	if err := c.check(); err != nil {
		return err
	}

	if query == nil {
		query = url.Values{}
	}
	c.sign(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+query.Encode(), http.NoBody)
	if err != nil {
		return err
	}

	return c.do(req, res)
}

// PostForm performs a form-encoded POST against the given endpoint path
// and decodes the JSON response into res. This is the portal's write
// convention; JSON request bodies are not used.
func (c *Client) PostForm(ctx context.Context, endpoint string, form url.Values, res any) error {
	if err := c.check(); err != nil {
		return err
	}

	if form == nil {
		form = url.Values{}
	}
	c.sign(form)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req, res)
}

func (c *Client) check() error {
	if c.baseURL == "" {
		return constants.ErrNoBaseURL
	}
	if c.unmarshaler == nil {
		return constants.ErrNoUnmarshaler
	}
	return nil
}

// sign attaches the response format and, when present, the session token.
func (c *Client) sign(values url.Values) {
	values.Set("f", constants.FormatJSON)
	if c.token != "" {
		values.Set("token", c.token)
	}
}

func (c *Client) do(req *http.Request, res any) error {
	requestID := rand.NewRequestID(constants.RequestIDLength)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	if c.logger != nil {
		c.logger.Debug("portal request", "method", req.Method, "path", req.URL.Path, "id", requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	// The portal reports API failures as an error envelope inside a 200.
	var envelope struct {
		Error *APIError `json:"error"`
	}
	if err := c.unmarshaler.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		if c.logger != nil {
			c.logger.Debug("portal error", "code", envelope.Error.Code, "id", requestID)
		}
		return envelope.Error
	}

	if res == nil {
		return nil
	}

	return c.unmarshaler.Unmarshal(body, res)
}
