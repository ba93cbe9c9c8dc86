package util

import (
	"net/http"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
)

// DefaultUserAgent identifies the client as a desktop Chrome.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

type HTTPClientOptions struct {
	// Timeout of zero leaves the net/http default in place.
	Timeout          time.Duration
	UserAgent        string
	CloudflareBypass bool
	Transport        http.RoundTripper
	DebugLogger      interface {
		Debugf(string, ...any)
	}
}

func NewHTTPClient(opts HTTPClientOptions) *http.Client {
	var baseTransport http.RoundTripper
	if opts.Transport != nil {
		baseTransport = opts.Transport
	} else {
		baseTransport = &http.Transport{
			Proxy:             http.ProxyFromEnvironment,
			ForceAttemptHTTP2: true,
		}
	}

	if opts.CloudflareBypass {
		baseTransport = cloudflarebp.AddCloudFlareByPass(baseTransport)
	}

	client := &http.Client{
		Timeout: opts.Timeout,
		Transport: roundTripper{
			base: baseTransport,
			ua:   PickUserAgent(opts.UserAgent),
			log:  opts.DebugLogger,
		},
	}

	if opts.DebugLogger != nil {
		opts.DebugLogger.Debugf("HTTP client initialized (ua=%q, cloudflare=%t)\n",
			PickUserAgent(opts.UserAgent), opts.CloudflareBypass)
	}

	return client
}

type roundTripper struct {
	base http.RoundTripper
	ua   string
	log  interface{ Debugf(string, ...any) }
}

func (rt roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if rt.ua != "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", rt.ua)
	}

	if rt.log != nil {
		rt.log.Debugf("HTTP %s %s\n", req.Method, req.URL.String())
	}

	return rt.base.RoundTrip(req)
}

func PickUserAgent(override string) string {
	if override != "" {
		return override
	}

	return DefaultUserAgent
}
