// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

// contentSecurityPolicy allows the storefront's own assets plus the CDNs
// the templates load Tailwind and htmx from. Product images may come from
// any HTTPS object storage host.
const contentSecurityPolicy = "default-src 'self'; " +
	"script-src 'self' https://cdn.tailwindcss.com https://unpkg.com 'unsafe-inline'; " +
	"style-src 'self' 'unsafe-inline'; " +
	"img-src 'self' data: https:; " +
	"connect-src 'self'; " +
	"frame-ancestors 'self'; " +
	"base-uri 'self'; " +
	"form-action 'self'"

// SecureHeaders adds security-related HTTP headers to every response.
// They harden storefront pages against framing and content sniffing.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()

		// Prevent the browser from MIME-sniffing the Content-Type.
		h.Set("X-Content-Type-Options", "nosniff")

		// Prevent embedding in iframes from other origins (clickjacking).
		h.Set("X-Frame-Options", "SAMEORIGIN")

		// Disable the legacy XSS filter; the CSP below replaces it.
		h.Set("X-XSS-Protection", "0")

		// Send only the origin to other sites, never the filtered catalog URL.
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// The storefront needs no device permissions.
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

		// Restrict scripts, styles and fetches to the hosts listed above.
		h.Set("Content-Security-Policy", contentSecurityPolicy)

		next.ServeHTTP(w, r)
	})
}
