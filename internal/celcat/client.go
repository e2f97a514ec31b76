// Package celcat is a client for the Celcat calendar web application.
//
// Celcat has no public API. The client drives the same endpoints as the web UI: it
// scrapes the anti-forgery token from the login page, logs in with an LDAP account
// and then posts forms to the JSON endpoints under /Home.
package celcat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/publicsuffix"
)

const (
	// DefaultBaseURL is the calendar of CY Cergy Paris Université
	DefaultBaseURL = "https://services-web.u-cergy.fr/calendar"

	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "cyrel-sync"

	loginPagePath = "/LdapLogin"
	logonPath     = "/LdapLogin/Logon"
	tokenField    = "__RequestVerificationToken"
)

// Option configures a Client
type Option func(*Client)

// WithTimeout bounds every HTTP request made by the client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.SetTimeout(d)
		}
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.http.SetHeader("User-Agent", ua)
	}
}

// WithLogger sets the logger used for session events
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// Client is a logged-in Celcat session. It is safe for concurrent use.
type Client struct {
	http   *resty.Client
	logger *slog.Logger

	mu         sync.Mutex
	token      string
	username   string
	password   string
	loggedIn   bool
	generation uint64
}

// New creates a session against baseURL and fetches the login token.
// The returned client must still Login before fetching calendars.
func New(ctx context.Context, baseURL string, opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	c := &Client{
		http: resty.New().
			SetBaseURL(strings.TrimSuffix(baseURL, "/")).
			SetCookieJar(jar).
			SetTimeout(defaultTimeout).
			SetHeader("User-Agent", defaultUserAgent),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	token, err := c.fetchToken(ctx)
	if err != nil {
		return nil, err
	}
	c.token = token

	return c, nil
}

// Login opens the session with an LDAP account. The credentials are kept to log
// back in when Celcat drops the session.
func (c *Client) Login(ctx context.Context, username, password string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.username = username
	c.password = password
	return c.logonLocked(ctx)
}

// logonLocked posts the login form. c.mu must be held.
func (c *Client) logonLocked(ctx context.Context) error {
	c.logger.Info("Logging in to Celcat", "username", c.username)

	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"Name":     c.username,
			"Password": c.password,
			tokenField: c.token,
		}).
		Post(logonPath)
	if err != nil {
		return fmt.Errorf("celcat: login: %w", err)
	}
	if err := classifyResponse(http.MethodPost, logonPath, resp); err != nil {
		return err
	}
	if isLoginPage(resp) {
		return &HTTPError{
			Method:     http.MethodPost,
			Endpoint:   logonPath,
			StatusCode: http.StatusUnauthorized,
			Body:       "credentials rejected",
		}
	}

	c.loggedIn = true
	c.generation++
	return nil
}

// relogin restores the session unless another caller already did since gen was observed
func (c *Client) relogin(ctx context.Context, gen uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation != gen {
		return nil
	}
	if c.username == "" {
		return ErrNotLoggedIn
	}

	c.logger.Warn("Celcat session expired, logging in again")
	token, err := c.fetchToken(ctx)
	if err != nil {
		return err
	}
	c.token = token
	return c.logonLocked(ctx)
}

func (c *Client) session() (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation, c.loggedIn
}

// fetchToken scrapes the anti-forgery token of the login form
func (c *Client) fetchToken(ctx context.Context) (string, error) {
	c.logger.Debug("Fetching Celcat verification token")

	resp, err := c.http.R().SetContext(ctx).Get(loginPagePath)
	if err != nil {
		return "", fmt.Errorf("celcat: fetch login page: %w", err)
	}
	if err := classifyResponse(http.MethodGet, loginPagePath, resp); err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return "", &DecodeError{Endpoint: loginPagePath, Err: err}
	}
	token, ok := doc.Find(`input[name="` + tokenField + `"]`).First().Attr("value")
	if !ok || token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// do runs one authenticated request and decodes the JSON answer into out
func (c *Client) do(ctx context.Context, method, endpoint string, build func(*resty.Request), out any) error {
	gen, loggedIn := c.session()
	if !loggedIn {
		return ErrNotLoggedIn
	}

	req := c.http.R().SetContext(ctx)
	build(req)
	resp, err := req.Execute(method, endpoint)
	if err != nil {
		return fmt.Errorf("celcat: %s %s: %w", method, endpoint, err)
	}
	if err := classifyResponse(method, endpoint, resp); err != nil {
		return err
	}
	if isLoginPage(resp) {
		if err := c.relogin(ctx, gen); err != nil {
			return fmt.Errorf("celcat: failed to restore session: %w", err)
		}
		return ErrSessionExpired
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &DecodeError{Endpoint: endpoint, Err: err}
	}
	return nil
}

// classifyResponse turns a non-2xx answer into an *HTTPError
func classifyResponse(method, endpoint string, resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= 200 && code < 300 {
		return nil
	}
	body := resp.String()
	if len(body) > 256 {
		body = body[:256]
	}
	return &HTTPError{Method: method, Endpoint: endpoint, StatusCode: code, Body: body}
}

// isLoginPage reports whether Celcat redirected the request to its login form
func isLoginPage(resp *resty.Response) bool {
	if resp.RawResponse == nil || resp.RawResponse.Request == nil {
		return false
	}
	return strings.HasSuffix(strings.TrimSuffix(resp.RawResponse.Request.URL.Path, "/"), loginPagePath)
}
