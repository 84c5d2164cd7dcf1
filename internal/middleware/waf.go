package middleware

import (
	"net"
	"net/http"
	"strconv"

	coraza "github.com/corazawaf/coraza/v3"
)

// WAF wraps coraza to reject requests matching the configured rules.
type WAF struct {
	engine coraza.WAF
}

// NewWAF builds a WAF from directives. Rules must enable the engine
// ("SecRuleEngine On") to block anything.
func NewWAF(directives string) (*WAF, error) {
	w, err := coraza.NewWAF(coraza.NewWAFConfig().WithDirectives(directives))
	if err != nil {
		return nil, err
	}
	return &WAF{engine: w}, nil
}

// Middleware runs the connection, URI and header phases before the next handler.
// The challenge only takes query parameters, so request bodies are not inspected.
func (w *WAF) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		tx := w.engine.NewTransaction()
		defer func() {
			tx.ProcessLogging()
			tx.Close()
		}()
		client, port := splitHostPort(r.RemoteAddr)
		tx.ProcessConnection(client, port, "", 0)
		tx.ProcessURI(r.URL.String(), r.Method, r.Proto)
		for k, vals := range r.Header {
			for _, v := range vals {
				tx.AddRequestHeader(k, v)
			}
		}
		if r.Host != "" {
			tx.AddRequestHeader("Host", r.Host)
			tx.SetServerName(r.Host)
		}
		if it := tx.ProcessRequestHeaders(); it != nil {
			status := it.Status
			if status == 0 {
				status = http.StatusForbidden
			}
			http.Error(rw, "request blocked", status)
			return
		}
		next.ServeHTTP(rw, r)
	})
}

func splitHostPort(addr string) (string, int) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return addr, 0
	}
	port, _ := strconv.Atoi(portStr)
	return host, port
}
