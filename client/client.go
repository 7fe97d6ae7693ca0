package client

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/contextablemark/home-agui-agent/retry"
)

const (
	// DefaultTimeout bounds a whole run, connection plus stream.
	DefaultTimeout = 120 * time.Second

	// DefaultConnectTimeout bounds TCP connection establishment.
	DefaultConnectTimeout = 30 * time.Second

	// DefaultProbeTimeout bounds the connectivity probe.
	DefaultProbeTimeout = 10 * time.Second

	// defaultToolConcurrency caps how many tool invocations run at once.
	defaultToolConcurrency = 4
)

// Client communicates with one remote AG-UI agent endpoint.
// It is safe for concurrent use; each Run owns its own per-run state.
type Client struct {
	endpoint        string
	bearerToken     string
	timeout         time.Duration
	httpClient      *http.Client
	log             logrus.FieldLogger
	retryConfig     retry.Config
	events          chan<- Event
	toolConcurrency int
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the whole-run timeout (default 120s).
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithBearerToken sets the token sent as an Authorization: Bearer header on
// run and probe requests.
func WithBearerToken(token string) ClientOption {
	return func(c *Client) {
		c.bearerToken = token
	}
}

// WithHTTPClient sets a custom HTTP client. The client must not set its own
// Timeout; runs are bounded per-request via context.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger (default logrus standard logger).
func WithLogger(log logrus.FieldLogger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// WithRetryConfig sets the retry policy for opening the event stream.
func WithRetryConfig(cfg retry.Config) ClientOption {
	return func(c *Client) {
		c.retryConfig = cfg
	}
}

// WithEvents sets an optional channel for observability events.
// Events are sent non-blocking; if the channel is full, events are dropped.
func WithEvents(ch chan<- Event) ClientOption {
	return func(c *Client) {
		c.events = ch
	}
}

// WithToolConcurrency bounds how many tool invocations may run at once
// (default 4).
func WithToolConcurrency(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.toolConcurrency = n
		}
	}
}

// New creates a client for the given agent endpoint. The endpoint must be an
// absolute http or https URL; a trailing slash is stripped.
func New(endpoint string, opts ...ClientOption) (*Client, error) {
	endpoint = strings.TrimRight(endpoint, "/")

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q: must be an absolute http(s) URL", endpoint)
	}

	c := &Client{
		endpoint:        endpoint,
		timeout:         DefaultTimeout,
		log:             logrus.StandardLogger(),
		retryConfig:     retry.DefaultConfig(),
		toolConcurrency: defaultToolConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: DefaultConnectTimeout,
				}).DialContext,
			},
		}
	}

	return c, nil
}

// Endpoint returns the normalized endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// setAuth adds the bearer token to a request, if configured.
func (c *Client) setAuth(req *http.Request) {
	if c.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	}
}
