package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatUnixSeconds(t *testing.T) {
	assert.Equal(t, "2024-01-01T00:00:00Z", FormatUnixSeconds(1704067200))
}

func TestFormatUnixSecondsPtr(t *testing.T) {
	assert.Equal(t, "", FormatUnixSecondsPtr(nil))

	ts := int64(1704067200)
	assert.Equal(t, "2024-01-01T00:00:00Z", FormatUnixSecondsPtr(&ts))
}
