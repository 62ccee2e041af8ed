package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_PerProfileBuckets(t *testing.T) {
	rl := NewRateLimiter(1, 2)

	assert.True(t, rl.Allow(1))
	assert.True(t, rl.Allow(1))
	assert.False(t, rl.Allow(1))
	assert.True(t, rl.Allow(2), "profiles do not share a bucket")
	assert.Equal(t, 60, rl.retryAfterSeconds())

	rl.Forget(1)
	assert.Equal(t, 1, rl.size())
	assert.True(t, rl.Allow(1), "a forgotten profile starts with a full bucket")
}
