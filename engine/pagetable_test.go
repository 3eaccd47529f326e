package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageTable_SetFrameMarksValid(t *testing.T) {
	pt := NewPageTable(4)
	assert.False(t, pt.Valid(0))

	pt.SetFrame(0, 7)
	assert.True(t, pt.Valid(0))
	assert.Equal(t, 7, pt.Frame(0))
}

func TestPageTable_Invalidate(t *testing.T) {
	pt := NewPageTable(2)
	pt.SetFrame(1, 3)
	pt.Invalidate(1)
	assert.False(t, pt.Valid(1))
}

func TestPageTable_FindByFrame(t *testing.T) {
	pt := NewPageTable(3)
	pt.SetFrame(2, 9)
	assert.Equal(t, 2, pt.FindByFrame(9))
	assert.Equal(t, NoOwner, pt.FindByFrame(99))
}

func TestPageTable_FindByFrame_IgnoresInvalidatedEntry(t *testing.T) {
	pt := NewPageTable(2)
	pt.SetFrame(0, 5)
	pt.Invalidate(0)
	assert.Equal(t, NoOwner, pt.FindByFrame(5))
}
