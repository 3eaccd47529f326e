package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMemRef_SplitsAddress(t *testing.T) {
	ref := NewMemRef(PageSize*3 + 17)
	assert.Equal(t, uint64(3), ref.VirtualPage)
	assert.Equal(t, 17, ref.Offset)
	assert.False(t, ref.Resolved())
}

func TestNewMemRef_ZeroAddress(t *testing.T) {
	ref := NewMemRef(0)
	assert.Equal(t, uint64(0), ref.VirtualPage)
	assert.Equal(t, 0, ref.Offset)
}

func TestMemRef_Resolved(t *testing.T) {
	ref := NewMemRef(0)
	ref.PhysicalFrame = 4
	assert.True(t, ref.Resolved())
}
