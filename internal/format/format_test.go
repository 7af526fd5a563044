package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {
	assert.Equal(t, "$0.00", Price(0))
	assert.Equal(t, "$12.50", Price(1250))
	assert.Equal(t, "$0.05", Price(5))
	assert.Equal(t, "-$3.00", Price(-300))
}

func TestTime(t *testing.T) {
	assert.Equal(t, "", Time(""))
	assert.Equal(t, "12:00 PM", Time("12:00"))
	assert.Equal(t, "12:15 AM", Time("00:15"))
	assert.Equal(t, "5:30 PM", Time("17:30"))
	assert.Equal(t, "11:45 AM", Time("11:45:00"))
	assert.Equal(t, "", Time("noon"))
}
