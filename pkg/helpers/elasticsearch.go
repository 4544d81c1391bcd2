package helpers

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// ESOptions configures the client used by the region indexer.
type ESOptions struct {
	Addrs    []string
	Username string
	Password string

	// ResponseTimeout bounds the wait for response headers; zero means 5s.
	ResponseTimeout time.Duration
	// MaxRetries applies to transport errors and 502/503/504. Zero disables retries.
	MaxRetries int
}

// NewESClient builds an Elasticsearch client from opts, with basic auth when a
// username is set.
func NewESClient(opts ESOptions) (*elasticsearch.Client, error) {
	timeout := opts.ResponseTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	cfg := elasticsearch.Config{
		Addresses:    opts.Addrs,
		Username:     opts.Username,
		Password:     opts.Password,
		MaxRetries:   opts.MaxRetries,
		DisableRetry: opts.MaxRetries <= 0,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: timeout,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}
