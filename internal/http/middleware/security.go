package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	apiCSP = "default-src 'none'; frame-ancestors 'none'"

	defaultHSTSMaxAge = 180 * 24 * time.Hour
)

// SecurityOptions configures SecurityHeaders.
//
// NoStorePrefixes lists path prefixes whose responses must never be cached
// by browsers or proxies, such as the user resources which echo credentials.
// DocsPrefix marks the Swagger UI, which serves HTML and scripts and so is
// exempt from the JSON-only Content-Security-Policy.
type SecurityOptions struct {
	EnableHSTS      bool          // only when traffic is HTTPS end-to-end
	HSTSMaxAge      time.Duration // defaults to 180 days
	NoStorePrefixes []string
	DocsPrefix      string
	EnablePolicy    bool // Permissions-Policy and friends
}

// SecurityHeaders attaches hardening headers to every response:
//
//   - X-Content-Type-Options, X-Frame-Options and Referrer-Policy always.
//   - A deny-all Content-Security-Policy outside DocsPrefix.
//   - Cache-Control: no-store under any NoStorePrefixes.
//   - Strict-Transport-Security for HTTPS requests when EnableHSTS is set.
//   - X-Request-ID listed in Access-Control-Expose-Headers when present.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	maxAge := int(opt.HSTSMaxAge.Seconds())
	if maxAge <= 0 {
		maxAge = int(defaultHSTSMaxAge.Seconds())
	}
	hsts := "max-age=" + strconv.Itoa(maxAge) + "; includeSubDomains; preload"

	return func(c *gin.Context) {
		h := c.Writer.Header()
		path := c.Request.URL.Path

		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")

		if opt.DocsPrefix == "" || !strings.HasPrefix(path, opt.DocsPrefix) {
			h.Set("Content-Security-Policy", apiCSP)
		}

		if opt.EnablePolicy {
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
		}

		if hasAnyPrefix(path, opt.NoStorePrefixes) {
			h.Set("Cache-Control", "no-store")
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "0")
		}

		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}

		if h.Get("X-Request-ID") != "" {
			const hdr = "Access-Control-Expose-Headers"
			switch cur := h.Get(hdr); {
			case cur == "":
				h.Set(hdr, "X-Request-ID")
			case !strings.Contains(cur, "X-Request-ID"):
				h.Set(hdr, cur+", X-Request-ID")
			}
		}

		c.Next()
	}
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// isHTTPS reports whether the request arrived over TLS, directly or through
// a proxy that set X-Forwarded-Proto: https.
func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
