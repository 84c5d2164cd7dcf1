// Package httpapi serves the challenge's three HTTP endpoints.
package httpapi

import (
	"io"
	"net/http"
	"strings"

	"flagviewer/internal/audit"
	"flagviewer/internal/metrics"
	"flagviewer/internal/middleware"
	"flagviewer/internal/telemetry"
	"flagviewer/internal/viewer"
)

const indexHTML = `<!doctype html>
<title>Simple File Viewer</title>
<h2>Simple File Viewer</h2>
<form action="/view" method="get">
  file: <input name="file" />
  <input type="submit" value="View" />
</form>
<p>Examples (for testing):</p>
<ul>
  <li><code>/view?file=flag.txt</code> (should be blocked)</li>
  <li><code>/view?file=....//app/flag.txt</code> (should work)</li>
  <li><code>/robots.txt</code></li>
</ul>
`

const robotsTXT = "User-agent: *\nDisallow: /flag.txt\n"

// Options wires the handler's collaborators. Only Viewer is required.
type Options struct {
	Viewer      *viewer.Viewer
	Logger      telemetry.Logger
	Audit       *audit.Logger
	Metrics     *metrics.Metrics
	RateLimiter *middleware.RateLimiter
	WAF         *middleware.WAF
}

// NewHandler returns the routed challenge wrapped in the middleware chain.
func NewHandler(opts Options) http.Handler {
	if opts.Logger.Logger == nil {
		opts.Logger = telemetry.NewLoggerTo(io.Discard)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", index)
	mux.HandleFunc("GET /robots.txt", robots)
	mux.Handle("GET /view", &viewHandler{opts: opts})

	var wrapped http.Handler = mux
	if opts.WAF != nil {
		wrapped = opts.WAF.Middleware(wrapped)
	}
	if opts.RateLimiter != nil {
		wrapped = opts.RateLimiter.Middleware(wrapped)
	}
	wrapped = middleware.Methods(http.MethodGet, http.MethodHead)(wrapped)
	wrapped = middleware.BodyLimit(1 << 10)(wrapped)
	wrapped = opts.Metrics.Middleware("/", "/robots.txt", "/view")(wrapped)
	wrapped = middleware.AccessLog(opts.Logger)(wrapped)
	wrapped = middleware.Recovery(opts.Logger)(wrapped)
	wrapped = middleware.RequestID(wrapped)
	wrapped = middleware.SecurityHeaders(wrapped)
	return wrapped
}

func index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, indexHTML)
}

func robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, robotsTXT)
}

type viewHandler struct {
	opts Options
}

// ServeHTTP answers every decision with 200 and a short text body; clients of
// the challenge read the body, not the status.
func (h *viewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw := queryValue(r.URL.RawQuery, "file")
	res := h.opts.Viewer.View(raw)

	if res.Kind == viewer.ReadError {
		h.opts.Logger.Warn("view read failed", "path", res.Path, "err", res.Err, "request_id", middleware.GetRequestID(r.Context()))
	}
	h.opts.Metrics.ObserveDecision(res.Kind.String(), res.Source)
	if err := h.opts.Audit.Log(auditEvent(r, raw, res)); err != nil {
		h.opts.Logger.Error("audit write failed", "err", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, res.Response())
}

func auditEvent(r *http.Request, raw string, res viewer.Result) audit.Event {
	ev := audit.Event{
		Action:        "view",
		Resource:      raw,
		Result:        res.Kind.String(),
		IP:            middleware.IPFromRequest(r),
		UserAgent:     r.UserAgent(),
		CorrelationID: middleware.GetRequestID(r.Context()),
	}
	if res.Source != "" || res.Path != "" {
		ev.Metadata = map[string]string{}
		if res.Source != "" {
			ev.Metadata["source"] = res.Source
		}
		if res.Path != "" {
			ev.Metadata["path"] = res.Path
		}
	}
	return ev
}

// queryValue returns the first value for key. Unlike url.ParseQuery it keeps
// malformed percent escapes verbatim instead of dropping the pair.
func queryValue(rawQuery, key string) string {
	for _, pair := range strings.Split(rawQuery, "&") {
		k, v, _ := strings.Cut(pair, "=")
		if unescapeQuery(k) == key {
			return unescapeQuery(v)
		}
	}
	return ""
}

func unescapeQuery(s string) string {
	return viewer.Unquote(strings.ReplaceAll(s, "+", " "))
}
