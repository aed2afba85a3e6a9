package backoffice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "42.50", FormatAmount(4250, 2))
	assert.Equal(t, "0.05", FormatAmount(5, 2))
	assert.Equal(t, "-1.00", FormatAmount(-100, 2))
	assert.Equal(t, "1250", FormatAmount(1250, 0))
}

func TestStatusBadge(t *testing.T) {
	assert.Equal(t, "Pending", StatusBadge("pending"))
	assert.Equal(t, "", StatusBadge(""))
}

func TestMaskIdentifier(t *testing.T) {
	assert.Equal(t, "9f3a…5c71", MaskIdentifier("9f3a0000-0000-0000-0000-000000005c71"))
	assert.Equal(t, "••••", MaskIdentifier("abcd"))
}

func TestFormatTimestamp(t *testing.T) {
	value := time.Date(2024, time.March, 1, 16, 5, 0, 0, time.FixedZone("UTC+2", 2*3600))
	assert.Equal(t, "2024-03-01 14:05", FormatTimestamp(value))
}
