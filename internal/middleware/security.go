// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

// ContentSecurityPolicy allows same-origin scripts plus the Tailwind CDN,
// remote images, and YouTube embeds for video sections.
const ContentSecurityPolicy = "default-src 'self'; " +
	"script-src 'self' https://cdn.tailwindcss.com; " +
	"style-src 'self' 'unsafe-inline'; " +
	"img-src 'self' https: data:; " +
	"frame-src https://www.youtube.com https://www.youtube-nocookie.com; " +
	"connect-src 'self'; " +
	"base-uri 'self'; form-action 'self'"

// SecureHeaders adds security-related HTTP headers to every response.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()

		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "SAMEORIGIN")
		// Legacy XSS filter off; CSP covers it.
		h.Set("X-XSS-Protection", "0")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "interest-cohort=()")
		h.Set("Content-Security-Policy", ContentSecurityPolicy)

		next.ServeHTTP(w, r)
	})
}
