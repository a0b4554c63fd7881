package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeedOrNow(t *testing.T) {
	now := time.Unix(0, 123456789)
	assert.Equal(t, int64(7), seedOrNow(7, now), "an explicit seed is kept")
	assert.Equal(t, int64(123456789), seedOrNow(0, now))
}
