// Copyright The Kiln Authors
// SPDX-License-Identifier: Apache-2.0

// Package httpx provides the retrying HTTP transport used by the artifact
// retriever, with filesystem fallback for file: and bare-path repository
// sources.
package httpx

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/kiln-build/kiln/internal/logging"
	"github.com/kiln-build/kiln/kerr"
)

var log = logging.MustGet("httpx")

// Default timeouts and retry policy, per spec.md §5.
const (
	DefaultConnectTimeout = 30 * time.Second
	DefaultReadTimeout    = 60 * time.Second
	DefaultMaxRetries     = 3
	DefaultRetryWaitMin   = 500 * time.Millisecond
	DefaultRetryWaitMax   = 8 * time.Second
)

// Client fetches bytes from an http(s) URL, a file: URL, or a bare
// filesystem path, retrying transient HTTP failures with exponential
// backoff. It owns its own timeouts; callers cancel in-flight requests
// through the context passed to Get.
type Client struct {
	http *retryablehttp.Client
}

// Options overrides Client's timeout and retry policy; a zero value of any
// field falls back to the package default.
type Options struct {
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	MaxRetries     int
}

// New builds a Client with kiln's default timeout and retry policy.
func New() *Client {
	return NewWithOptions(Options{})
}

// NewWithOptions builds a Client honoring opts, e.g. the [resolver] table
// loaded by kiln/config.
func NewWithOptions(opts Options) *Client {
	connectTimeout := opts.ConnectTimeout
	if connectTimeout == 0 {
		connectTimeout = DefaultConnectTimeout
	}
	readTimeout := opts.ReadTimeout
	if readTimeout == 0 {
		readTimeout = DefaultReadTimeout
	}
	maxRetries := opts.MaxRetries
	if maxRetries == 0 {
		maxRetries = DefaultMaxRetries
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = maxRetries
	rc.RetryWaitMin = DefaultRetryWaitMin
	rc.RetryWaitMax = DefaultRetryWaitMax
	rc.Logger = &logging.HTTPLogWrapper{Logger: log}
	rc.HTTPClient = &http.Client{
		Timeout: connectTimeout + readTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: connectTimeout,
			}).DialContext,
			ResponseHeaderTimeout: readTimeout,
		},
	}
	return &Client{http: rc}
}

// Get fetches the bytes at url. It recognizes file: URLs and bare
// filesystem paths (no scheme) and reads them directly, bypassing the
// retrying HTTP transport entirely.
func (c *Client) Get(ctx context.Context, url string, creds *Credentials) ([]byte, error) {
	if path, ok := filePath(url); ok {
		return readFile(path)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, kerr.Wrap(kerr.Network, url, err)
	}
	if creds != nil {
		req.SetBasicAuth(creds.Username, creds.Password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, kerr.Wrap(kerr.Network, url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, kerr.New(kerr.ArtifactNotFound, url)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, kerr.New(kerr.ArtifactUnauthorized, url)
	case resp.StatusCode >= 400:
		return nil, kerr.Wrap(kerr.Network, url, fmt.Errorf("unexpected status %s", resp.Status))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, kerr.Wrap(kerr.Network, url, err)
	}
	return body, nil
}

// Credentials carries optional basic-auth credentials for a request.
type Credentials struct {
	Username string
	Password string
}

func filePath(url string) (string, bool) {
	if strings.HasPrefix(url, "file://") {
		return strings.TrimPrefix(url, "file://"), true
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return "", false
	}
	return url, true
}

func readFile(path string) ([]byte, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, kerr.New(kerr.ArtifactNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, kerr.New(kerr.ArtifactUnauthorized, path)
		}
		return nil, kerr.Wrap(kerr.Network, path, err)
	}
	return body, nil
}
