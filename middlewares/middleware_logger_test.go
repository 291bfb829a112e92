package middlewares

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeQueryRedactsSessionToken(t *testing.T) {
	values := url.Values{}
	values.Set("t", "eyJhbGciOiJIUzI1NiJ9.secret.sig")
	values.Set("limit", "10")

	out := sanitizeQuery(values)
	assert.NotContains(t, out, "secret")
	assert.Contains(t, out, "t=REDACTED")
	assert.Contains(t, out, "limit=10")
}

func TestSanitizeQueryLeavesOtherParams(t *testing.T) {
	values := url.Values{}
	values.Set("status", "PENDING")

	assert.Equal(t, "status=PENDING", sanitizeQuery(values))
	assert.Equal(t, "", sanitizeQuery(url.Values{}))
}
