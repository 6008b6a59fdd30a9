// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

/*
TestIPLimiter_Allow drains one bucket without touching another.
*/
func TestIPLimiter_Allow(t *testing.T) {
	limiter := newIPLimiter(1, 2)
	now := time.Now()

	assert.True(t, limiter.allow("10.0.0.1", now))
	assert.True(t, limiter.allow("10.0.0.1", now))
	assert.False(t, limiter.allow("10.0.0.1", now))

	assert.True(t, limiter.allow("10.0.0.2", now))
	assert.True(t, limiter.allow("10.0.0.1", now.Add(time.Second)))
}

/*
TestIPLimiter_Sweep forgets idle clients only.
*/
func TestIPLimiter_Sweep(t *testing.T) {
	limiter := newIPLimiter(1, 1)
	now := time.Now()

	limiter.allow("idle", now)
	limiter.allow("active", now.Add(time.Minute))

	limiter.sweep(now.Add(90*time.Second), time.Minute)

	assert.NotContains(t, limiter.buckets, "idle")
	assert.Contains(t, limiter.buckets, "active")
}
