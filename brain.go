// Package brain is the Go client for the Castle Verde nutrition API.
//
// The client is configured the same way the generated front-end client is:
// a local dev origin keeps requests on the dev server, an explicit API host
// overrides everything, and the production Databutton API is the fallback.
// Construct one client at startup and pass it to whatever needs it; there
// is no package-level singleton.
package brain

import (
	"net/http"
	"net/http/cookiejar"
	"os"
	"time"
)

const (
	// DefaultTimeout bounds each API request unless a custom HTTP client
	// is supplied.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the number of attempts for requests that fail
	// with a 5xx response or a network error.
	DefaultMaxRetries = 3
)

// Environment variables read by FromEnv. They correspond one to one with
// the build-time constants of the generated front-end client.
const (
	EnvOrigin        = "BRAIN_ORIGIN"
	EnvAPIHost       = "API_HOST"
	EnvAPIPath       = "API_PATH"
	EnvAPIPrefixPath = "API_PREFIX_PATH"
	EnvAuthToken     = "BRAIN_AUTH_TOKEN"
)

// config holds all configuration options for a Client.
type config struct {
	origin     string
	apiHost    string
	apiPath    string
	baseURL    string
	authToken  string
	params     RequestParams
	httpClient *http.Client
	timeout    time.Duration
	maxRetries int
}

// Option is the function signature for configuration options.
type Option func(*config)

// WithOrigin sets the application origin used for local dev detection,
// e.g. "http://localhost:3000".
func WithOrigin(origin string) Option {
	return func(c *config) {
		c.origin = origin
	}
}

// WithAPIHost sets the explicit API host override. When set and the origin
// is not a local dev host, it is used verbatim as the base URL.
func WithAPIHost(host string) Option {
	return func(c *config) {
		c.apiHost = host
	}
}

// WithAPIPath sets the path prefix appended to the origin or the production
// host, e.g. "/routes".
func WithAPIPath(path string) Option {
	return func(c *config) {
		c.apiPath = path
	}
}

// WithBaseURL bypasses resolution entirely and pins the base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

// WithAuthToken sets the bearer token sent in the Authorization header.
func WithAuthToken(token string) Option {
	return func(c *config) {
		c.authToken = token
	}
}

// WithRequestParams replaces the default request parameters.
func WithRequestParams(params RequestParams) Option {
	return func(c *config) {
		c.params = params
	}
}

// WithHTTPClient sets a custom HTTP client, taking the place of the fetch
// override in the generated client. The caller then owns timeout and
// cookie behavior.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *config) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.timeout = timeout
	}
}

// WithMaxRetries sets the number of attempts for retriable failures.
func WithMaxRetries(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxRetries = n
		}
	}
}

// New creates a Brain API client. With no options the client targets the
// production API with the default request parameters.
func New(opts ...Option) (*Client, error) {
	cfg := &config{
		params:     defaultRequestParams(),
		timeout:    DefaultTimeout,
		maxRetries: DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	baseURL := cfg.baseURL
	if baseURL == "" {
		baseURL = ResolveBaseURL(cfg.origin, cfg.apiHost, cfg.apiPath)
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.timeout}
		if cfg.params.Credentials == CredentialsInclude {
			// cookiejar.New never fails with nil options.
			jar, _ := cookiejar.New(nil)
			httpClient.Jar = jar
		}
	}

	return &Client{
		b: &baseClient{
			httpClient: httpClient,
			baseURL:    baseURL,
			params:     cfg.params,
			authToken:  cfg.authToken,
			maxRetries: cfg.maxRetries,
			timeout:    cfg.timeout,
		},
	}, nil
}

// FromEnv creates a client from environment variables, applying any extra
// options on top. Binaries load .env files before calling this.
func FromEnv(opts ...Option) (*Client, error) {
	apiPath := os.Getenv(EnvAPIPath)
	if apiPath == "" {
		// Deployed bundles carry the proxy prefix path instead.
		apiPath = os.Getenv(EnvAPIPrefixPath)
	}
	envOpts := []Option{
		WithOrigin(os.Getenv(EnvOrigin)),
		WithAPIHost(os.Getenv(EnvAPIHost)),
		WithAPIPath(apiPath),
	}
	if token := os.Getenv(EnvAuthToken); token != "" {
		envOpts = append(envOpts, WithAuthToken(token))
	}
	return New(append(envOpts, opts...)...)
}
