package proccache

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/proclet/go-proccache/apierror"
	"github.com/proclet/go-proccache/process"
)

const (
	processesPath = "processes"
	pidsPath      = "pids"
)

const (
	defaultRetryMax     = 3
	defaultRetryWaitMin = time.Second
	defaultRetryWaitMax = 10 * time.Second
)

// HTTPResolver is a Resolver that looks processes up from a registry HTTP
// API. Names resolve with GET {base}/processes/{name}, which answers with
// a process.Info document or 404 when the name is not registered. Handles
// it returns check liveness with GET {base}/pids/{pid}.
type HTTPResolver struct {
	procURL *url.URL
	pidURL  *url.URL
	client  *http.Client
	header  http.Header
}

type httpConfig struct {
	client       *http.Client
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
}

// HTTPOption is a function that sets a value in an httpConfig.
type HTTPOption func(*httpConfig) error

// getHTTPOpts creates an httpConfig and applies HTTPOptions to it.
func getHTTPOpts(opts []HTTPOption) (httpConfig, error) {
	cfg := httpConfig{
		retryMax:     defaultRetryMax,
		retryWaitMin: defaultRetryWaitMin,
		retryWaitMax: defaultRetryWaitMax,
	}
	for i, opt := range opts {
		if err := opt(&cfg); err != nil {
			return httpConfig{}, fmt.Errorf("option %d failed: %s", i, err)
		}
	}
	return cfg, nil
}

// WithClient supplies the HTTP client used for registry requests.
func WithClient(c *http.Client) HTTPOption {
	return func(cfg *httpConfig) error {
		if c != nil {
			cfg.client = c
		}
		return nil
	}
}

// WithRetry configures retries of failed registry requests. Setting
// retryMax to 0 disables retries.
//
// Default is 3 retries with waits between 1 and 10 seconds.
func WithRetry(retryMax int, waitMin, waitMax time.Duration) HTTPOption {
	return func(cfg *httpConfig) error {
		cfg.retryMax = retryMax
		cfg.retryWaitMin = waitMin
		cfg.retryWaitMax = waitMax
		return nil
	}
}

// NewHTTPResolver creates an HTTPResolver that queries the registry HTTP
// API at srcURL.
func NewHTTPResolver(srcURL string, options ...HTTPOption) (*HTTPResolver, error) {
	opts, err := getHTTPOpts(options)
	if err != nil {
		return nil, err
	}

	u, err := url.Parse(srcURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("url must have http or https scheme: %s", srcURL)
	}
	u.Path = ""

	client := opts.client
	if client == nil {
		client = http.DefaultClient
	}
	if opts.retryMax != 0 {
		// Instantiate retryable HTTP client.
		rclient := &retryablehttp.Client{
			HTTPClient:   client,
			RetryWaitMin: opts.retryWaitMin,
			RetryWaitMax: opts.retryWaitMax,
			RetryMax:     opts.retryMax,
			CheckRetry:   retryablehttp.DefaultRetryPolicy,
			Backoff:      retryablehttp.DefaultBackoff,
		}
		client = rclient.StandardClient()
	}

	return &HTTPResolver{
		procURL: u.JoinPath(processesPath),
		pidURL:  u.JoinPath(pidsPath),
		client:  client,
	}, nil
}

// AddHeader adds a header to all requests the resolver and its handles
// make, such as an authorization header.
func (r *HTTPResolver) AddHeader(key, value string) {
	if r.header == nil {
		r.header = make(map[string][]string)
	}
	r.header.Add(key, value)
}

func (r *HTTPResolver) WhereIs(ctx context.Context, name string) (process.Handle, error) {
	u := r.procURL.JoinPath(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	for key, vals := range r.header {
		for _, val := range vals {
			req.Header.Add(key, val)
		}
	}
	req.Header.Add("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusNotFound {
			// Name not currently registered.
			return nil, nil
		}
		return nil, apierror.FromResponse(resp.StatusCode, body)
	}

	var info process.Info
	err = json.Unmarshal(body, &info)
	if err != nil {
		return nil, err
	}
	if info.PID == "" {
		return nil, fmt.Errorf("registry response for %q has no pid", name)
	}

	return &remoteHandle{
		info:   info,
		url:    r.pidURL,
		client: r.client,
		header: r.header,
	}, nil
}

func (r *HTTPResolver) String() string {
	return r.procURL.String()
}

// remoteHandle is a process handle whose liveness is checked against the
// registry that resolved it.
type remoteHandle struct {
	info   process.Info
	url    *url.URL
	client *http.Client
	header http.Header
}

func (h *remoteHandle) PID() process.PID {
	return h.info.PID
}

// Alive reports whether the registry still knows the process. A transport
// failure reports not alive, which sends the owning slot back through a
// fresh lookup where the failure surfaces as an error.
func (h *remoteHandle) Alive(ctx context.Context) bool {
	u := h.url.JoinPath(h.info.PID.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return false
	}
	for key, vals := range h.header {
		for _, val := range vals {
			req.Header.Add(key, val)
		}
	}

	resp, err := h.client.Do(req)
	if err != nil {
		log.Errorw("Cannot check process liveness", "err", err, "pid", h.info.PID)
		return false
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

func (h *remoteHandle) String() string {
	return h.info.PID.String()
}
