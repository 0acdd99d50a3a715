package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SynchronoMedia/english-skills-101/internal/transfer"
)

const (
	defaultBaseURL = "https://i.instagram.com"
	apiPath        = "/api/v1/"

	appID           = "567067343352427"
	capabilities    = "3brTv10="
	signaturePrefix = "SIGNATURE"
	sigKeyVersion   = "4"
)

// Client talks to the Instagram private (mobile) API. It is not safe for
// concurrent use; the job runs it sequentially.
type Client struct {
	httpClient *http.Client
	baseURL    string

	username string
	password string

	device        Device
	userAgent     string
	authorization string
	userID        int64
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL points the client at a different API host.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func New(username, password string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    defaultBaseURL,
		username:   username,
		password:   password,
		device:     NewDevice(),
	}
	c.userAgent = c.device.UserAgent()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Username() string { return c.username }

func (c *Client) UserID() int64 { return c.userID }

// LoggedIn reports whether the client holds an authorization token. The
// token may still be expired; Relogin verifies it against the API.
func (c *Client) LoggedIn() bool { return c.authorization != "" }

func (c *Client) apiURL(path string) string {
	return c.baseURL + apiPath + path
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en-US")
	req.Header.Set("X-IG-App-ID", appID)
	req.Header.Set("X-IG-Capabilities", capabilities)
	req.Header.Set("X-IG-Device-ID", c.device.GUID)
	req.Header.Set("X-IG-Android-ID", c.device.AndroidID)
	if c.authorization != "" {
		req.Header.Set("Authorization", c.authorization)
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.apiURL(path)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	c.setHeaders(req)
	return c.do(req, out)
}

func (c *Client) postForm(ctx context.Context, path string, data url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL(path), strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	c.setHeaders(req)
	return c.do(req, out)
}

// postSigned wraps params in the signed_body form the mobile API expects.
func (c *Client) postSigned(ctx context.Context, path string, params map[string]any, out any) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("error marshalling signed body: %w", err)
	}
	data := url.Values{}
	data.Set("signed_body", signaturePrefix+"."+string(raw))
	data.Set("ig_sig_key_version", sigKeyVersion)
	return c.postForm(ctx, path, data, out)
}

// do executes the request, captures rotated authorization tokens and
// decodes the JSON body into out when the status is OK.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("instagram: %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if auth := resp.Header.Get("ig-set-authorization"); auth != "" {
		c.authorization = auth
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return apiError(req.URL.Path, resp.StatusCode, body)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("error parsing response from %s: %w", req.URL.Path, err)
		}
	}
	return nil
}

// apiError maps a failed response onto the typed errors callers check.
func apiError(endpoint string, status int, body []byte) error {
	var envelope transfer.InstagramResponse
	_ = json.Unmarshal(body, &envelope)

	e := &APIError{
		Endpoint:   endpoint,
		StatusCode: status,
		ErrorType:  envelope.ErrorType,
		Message:    envelope.Message,
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	if envelope.ErrorType == "login_required" || status == http.StatusUnauthorized {
		return &AuthError{Reason: "login required", Err: e}
	}
	return e
}
