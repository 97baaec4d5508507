// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
)

// SameOrigin rejects state-changing requests that a browser sent from
// another site. The request's own host is always accepted, as is any
// origin in allowed (e.g. "https://chriscakes.com"). Requests carrying
// neither Origin nor Sec-Fetch-Site, such as server-to-server calls to
// the revalidation hook, pass through.
func SameOrigin(allowed ...string) func(http.Handler) http.Handler {
	origins := make([]string, 0, len(allowed))
	for _, o := range allowed {
		if o != "" {
			origins = append(origins, strings.TrimSuffix(o, "/"))
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if safeMethod(r.Method) || sameOrigin(r, origins) {
				next.ServeHTTP(w, r)
				return
			}

			slog.Warn("cross-origin request rejected",
				"method", r.Method,
				"path", r.URL.Path,
				"origin", r.Header.Get("Origin"),
			)
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":"Forbidden"}` + "\n"))
		})
	}
}

func safeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

func sameOrigin(r *http.Request, allowed []string) bool {
	fetchSite := r.Header.Get("Sec-Fetch-Site")
	if fetchSite == "same-origin" || fetchSite == "none" {
		return true
	}

	origin := r.Header.Get("Origin")
	if origin == "" {
		return fetchSite == ""
	}
	if u, err := url.Parse(origin); err == nil && u.Host == r.Host {
		return true
	}
	return slices.Contains(allowed, origin)
}
