package middleware

import (
	"net/http"
	"slices"
	"strings"
)

// methodSet is an allowlist plus its precomputed Allow header value.
type methodSet struct {
	allowed map[string]bool
	header  string
}

// newMethodSet uppercases and dedupes methods. GET implies HEAD, as net/http
// serves HEAD through GET handlers, and OPTIONS is always listed.
func newMethodSet(methods []string) methodSet {
	set := methodSet{allowed: map[string]bool{http.MethodOptions: true}}
	for _, m := range methods {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m == "" {
			continue
		}
		set.allowed[m] = true
		if m == http.MethodGet {
			set.allowed[http.MethodHead] = true
		}
	}
	names := make([]string, 0, len(set.allowed))
	for m := range set.allowed {
		names = append(names, m)
	}
	slices.Sort(names)
	set.header = strings.Join(names, ", ")
	return set
}

// Methods restricts the wrapped handler to the listed HTTP methods. OPTIONS is
// answered here with 204 and the Allow header; other methods get 405.
func Methods(allowed ...string) func(http.Handler) http.Handler {
	set := newMethodSet(allowed)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.Method == http.MethodOptions:
				w.Header().Set("Allow", set.header)
				w.WriteHeader(http.StatusNoContent)
			case !set.allowed[r.Method]:
				w.Header().Set("Allow", set.header)
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
