package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMMU_Translate_FirstAccessIsPageFault(t *testing.T) {
	ram := NewRAM(4*PageSize, PageSize)
	mmu := NewMMU(ram)
	task := NewTask(0, 0, 0, []uint64{0})
	lookup := fakeLookup{0: task}

	ref := NewMemRef(0)
	hit := mmu.Translate(task, &ref, lookup)

	assert.False(t, hit)
	assert.True(t, ref.Resolved())
	assert.True(t, task.PageTable.Valid(0))
}

func TestMMU_Translate_RepeatAccessIsPageHit(t *testing.T) {
	ram := NewRAM(4*PageSize, PageSize)
	mmu := NewMMU(ram)
	task := NewTask(0, 0, 0, []uint64{0, 0})
	lookup := fakeLookup{0: task}

	ref1 := NewMemRef(0)
	mmu.Translate(task, &ref1, lookup)

	ref2 := NewMemRef(0)
	hit := mmu.Translate(task, &ref2, lookup)

	assert.True(t, hit)
	assert.Equal(t, ref1.PhysicalFrame, ref2.PhysicalFrame)
}
