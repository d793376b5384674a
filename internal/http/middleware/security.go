package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// DefaultPageCSP allows same-origin assets plus gravatar avatars, which is
// all the server-rendered pages load.
const DefaultPageCSP = "default-src 'self'; img-src 'self' https://www.gravatar.com; style-src 'self' 'unsafe-inline'; form-action 'self'; frame-ancestors 'none'"

// SecurityOptions configures SecurityHeaders.
//
// EnableHSTS emits Strict-Transport-Security on HTTPS requests only; enable
// it only when traffic is HTTPS end-to-end. HSTSMaxAge defaults to 180 days.
// NoStore adds Cache-Control: no-store (plus legacy Pragma/Expires).
// EnablePolicy adds Permissions-Policy and X-Permitted-Cross-Domain-Policies.
// ContentSecurityPolicy, when set, is sent verbatim.
type SecurityOptions struct {
	EnableHSTS            bool
	HSTSMaxAge            time.Duration
	NoStore               bool
	EnablePolicy          bool
	ContentSecurityPolicy string
}

// SecurityHeaders adds conservative hardening headers to every response:
// nosniff, frame denial and a strict referrer policy always, the rest as
// configured. When X-Request-ID is present it is exposed to browser clients.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	maxAge := int(opt.HSTSMaxAge.Seconds())
	if maxAge <= 0 {
		maxAge = int((180 * 24 * time.Hour).Seconds())
	}
	hsts := "max-age=" + strconv.Itoa(maxAge) + "; includeSubDomains; preload"

	return func(c *gin.Context) {
		h := c.Writer.Header()

		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")

		if opt.EnablePolicy {
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
		}
		if opt.ContentSecurityPolicy != "" {
			h.Set("Content-Security-Policy", opt.ContentSecurityPolicy)
		}
		if opt.NoStore {
			h.Set("Cache-Control", "no-store")
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "0")
		}
		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}

		if rid := h.Get(requestIDHeader); rid != "" {
			const hdr = "Access-Control-Expose-Headers"
			cur := h.Get(hdr)
			if cur == "" {
				h.Set(hdr, requestIDHeader)
			} else if !strings.Contains(cur, requestIDHeader) {
				h.Set(hdr, cur+", "+requestIDHeader)
			}
		}

		c.Next()
	}
}

// isHTTPS reports whether the request arrived over TLS directly or through
// a proxy that set X-Forwarded-Proto: https.
func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
