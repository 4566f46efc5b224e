// Package site serves the landing page for the analytics service.
package site

import (
	"context"
	"errors"
	"net/http"
)

// Error constants
var (
	ErrServe = errors.New("site serve failed")
)

// Register attaches the landing page route to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("/", NewRootHandler().HandleRoot)
}

// RootHandler handles root path requests
type RootHandler struct{}

// NewRootHandler creates a new root handler
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// HandleRoot handles GET / requests with a small index page linking the
// API endpoints. Unknown paths fall through to 404 so the catch-all
// pattern does not swallow typos.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

const indexHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Gridiron Analytics</title>
    <style>body{font-family:sans-serif;margin:2rem;max-width:40rem}code{background:#eee;padding:0 .25rem}</style>
  </head>
  <body>
    <h1>Gridiron Analytics</h1>
    <p>Read-only API over season play-by-play aggregation artifacts.</p>
    <ul>
      <li><a href="/teams">/teams</a></li>
      <li><code>/teams/{team}/tendencies</code></li>
      <li><code>/teams/{team}/summary</code></li>
      <li><a href="/league/fourth_down_aggression">/league/fourth_down_aggression</a></li>
      <li><a href="/league/neutral_early_down_pass_rate">/league/neutral_early_down_pass_rate</a></li>
      <li><a href="/stats">/stats</a></li>
      <li><a href="/healthz">/healthz</a></li>
      <li><a href="/api-docs">/api-docs</a></li>
    </ul>
  </body>
</html>`
