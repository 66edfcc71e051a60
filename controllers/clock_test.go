package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNowFuncDefaultsToWallClock(t *testing.T) {
	before := time.Now()
	got := nowFunc()
	after := time.Now()

	assert.False(t, got.Before(before))
	assert.False(t, got.After(after))
}

// Handlers must read time through nowFunc so tests can pin the clock.
func TestNowFuncIsSwappable(t *testing.T) {
	fixed := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	orig := nowFunc
	nowFunc = func() time.Time { return fixed }
	defer func() { nowFunc = orig }()

	assert.Equal(t, fixed, nowFunc())
	assert.Equal(t, fixed, nowFunc())
}
