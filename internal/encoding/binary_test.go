package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit16(t *testing.T) {
	hi, lo := Split16(0xBEEF)
	assert.Equal(t, uint8(0xBE), hi)
	assert.Equal(t, uint8(0xEF), lo)
}
