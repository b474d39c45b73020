package citygrid

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryVoidIsZero(t *testing.T) {
	reg := NewRegistry()
	assert.Equal(t, uint16(0), reg.ID(string(Void)))
	assert.Equal(t, string(Void), reg.Name(0))
	assert.Equal(t, 1, reg.Len())
}

func TestRegistryRegister(t *testing.T) {
	reg := NewRegistry()

	road := reg.Register("road")
	lava := reg.Register("lava")

	assert.Equal(t, uint16(1), road)
	assert.Equal(t, uint16(2), lava)
	assert.Equal(t, road, reg.Register("road"))
	assert.Equal(t, "lava", reg.Name(lava))
	assert.Equal(t, 3, reg.Len())
}

func TestRegistryUnknown(t *testing.T) {
	reg := NewRegistry()
	assert.Equal(t, uint16(0), reg.ID("nope"))
	assert.Equal(t, string(Void), reg.Name(999))
}

func TestRegistryZeroValue(t *testing.T) {
	var reg Registry
	assert.Equal(t, string(Void), reg.Name(0))
	assert.Equal(t, uint16(1), reg.Register("road"))
	assert.Equal(t, uint16(0), reg.Register(string(Void)))
}

func TestRegistryConcurrent(t *testing.T) {
	reg := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				reg.Register(fmt.Sprintf("t%d", j))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 51, reg.Len())
	for j := 0; j < 50; j++ {
		name := fmt.Sprintf("t%d", j)
		assert.Equal(t, name, reg.Name(reg.ID(name)))
	}
}
