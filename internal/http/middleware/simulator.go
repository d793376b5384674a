package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// LatestRecorder persists the simulator's command sequence number.
type LatestRecorder interface {
	Record(ctx context.Context, n int64) error
}

// errNotAuthorized is the fixed body text of rejected simulator requests.
const errNotAuthorized = "You are not authorized to use this resource!"

// RecordLatest stores the integer "latest" query parameter before any other
// API processing, including the credential check, so the counter advances
// even for requests that end up rejected. Missing or non-integer values are
// ignored. A storage failure is logged and the request continues.
func RecordLatest(rec LatestRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := c.GetQuery("latest")
		if !ok {
			c.Next()
			return
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.Next()
			return
		}
		if err := rec.Record(c.Request.Context(), n); err != nil {
			LoggerFrom(c).Error().Err(err).Int64("latest", n).Msg("record latest")
		}
		c.Next()
	}
}

// RequireSimulator rejects requests whose Authorization header differs from
// expected with 403 and the JSON error envelope. Paths listed in exempt pass
// through unchecked.
func RequireSimulator(expected string, exempt ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(exempt))
	for _, p := range exempt {
		skip[p] = struct{}{}
	}
	want := []byte(expected)
	return func(c *gin.Context) {
		if _, ok := skip[c.FullPath()]; ok {
			c.Next()
			return
		}
		got := []byte(c.GetHeader("Authorization"))
		if subtle.ConstantTimeCompare(got, want) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":    http.StatusForbidden,
				"error_msg": errNotAuthorized,
			})
			return
		}
		c.Next()
	}
}
