// Copyright The Kiln Authors
// SPDX-License-Identifier: Apache-2.0

package maven

import (
	"context"
	"sync"

	"github.com/kiln-build/kiln/internal/httpx"
	"github.com/kiln-build/kiln/kerr"
)

// ArtifactRetriever fetches the bytes at a URL, signaling ArtifactNotFound,
// ArtifactUnauthorized or Network kerr.Errors as appropriate. Implementations
// should cache negative lookups per metadata URL for the lifetime of a
// resolution run, per spec.md §4.3.
type ArtifactRetriever interface {
	Fetch(ctx context.Context, url string, creds *httpx.Credentials) ([]byte, error)
}

// DefaultRetriever is the process-default ArtifactRetriever: an HTTP client
// with retry/backoff and filesystem fallback, plus a per-instance negative
// cache. It is not a package-level singleton — callers construct their own
// so concurrent resolution runs never share cache state, per spec.md §5.
type DefaultRetriever struct {
	client *httpx.Client

	mu       sync.Mutex
	negative map[string]error
}

// NewDefaultRetriever builds a DefaultRetriever with kiln's default HTTP
// timeouts and retry policy.
func NewDefaultRetriever() *DefaultRetriever {
	return NewDefaultRetrieverWithClient(httpx.New())
}

// NewDefaultRetrieverWithClient builds a DefaultRetriever over an
// already-configured httpx.Client, e.g. one built from kiln/config's
// [resolver] table.
func NewDefaultRetrieverWithClient(client *httpx.Client) *DefaultRetriever {
	return &DefaultRetriever{
		client:   client,
		negative: make(map[string]error),
	}
}

// Fetch implements ArtifactRetriever.
func (r *DefaultRetriever) Fetch(ctx context.Context, url string, creds *httpx.Credentials) ([]byte, error) {
	r.mu.Lock()
	if err, ok := r.negative[url]; ok {
		r.mu.Unlock()
		return nil, err
	}
	r.mu.Unlock()

	body, err := r.client.Get(ctx, url, creds)
	if err != nil {
		var kerrErr *kerr.Error
		if isNotFoundOrUnauthorized(err, &kerrErr) {
			r.mu.Lock()
			r.negative[url] = err
			r.mu.Unlock()
		}
		return nil, err
	}
	return body, nil
}

func isNotFoundOrUnauthorized(err error, out **kerr.Error) bool {
	e, ok := err.(*kerr.Error)
	if !ok {
		return false
	}
	*out = e
	return e.Kind == kerr.ArtifactNotFound || e.Kind == kerr.ArtifactUnauthorized
}
