package engine

// block is a single cache-way block, covering a contiguous word range once
// populated.
type block struct {
	populated bool
	base      int // first word offset covered
	limit     int // one past the last word offset covered
}

func (b *block) covers(offset int) bool {
	return b.populated && b.base <= offset && offset < b.limit
}

// way is one way of a cache set: a tag plus its FIFO-managed blocks.
type way struct {
	populated bool
	tag       uint64
	blocks    []block
	nextBlock int
}

func newWay(numBlocks int) *way {
	return &way{blocks: make([]block, numBlocks)}
}

// set is one cache set: a fixed number of ways, FIFO-evicted.
type set struct {
	ways    []*way
	nextWay int
}

func newSet(numWays, numBlocks int) *set {
	ways := make([]*way, numWays)
	for i := range ways {
		ways[i] = newWay(numBlocks)
	}
	return &set{ways: ways, nextWay: -1}
}

// Cache is a set-associative L1 cache: FIFO eviction by way on a tag miss,
// FIFO eviction by block (within a way) on a block miss. Set index is the
// physical page's byte tag modulo the number of sets (spec.md §4.4).
type Cache struct {
	NumSets   int
	NumWays   int
	NumBlocks int
	sets      []*set

	Hits        int64
	Misses      int64
	SetConflicts int64 // incremented on every way (tag) miss, including the cold fill of an empty way
}

// NewCache creates a cache with numSets sets, numWays ways per set, and
// numBlocks blocks per way.
func NewCache(numSets, numWays, numBlocks int) *Cache {
	sets := make([]*set, numSets)
	for i := range sets {
		sets[i] = newSet(numWays, numBlocks)
	}
	return &Cache{
		NumSets:   numSets,
		NumWays:   numWays,
		NumBlocks: numBlocks,
		sets:      sets,
	}
}

// setIndex computes the set index for a resolved reference.
func (c *Cache) setIndex(ref *MemRef) (tag uint64, idx int) {
	tag = uint64(ref.PhysicalFrame) * PageSize
	idx = int(tag % uint64(c.NumSets))
	return
}

// SetIndex exposes the set index a resolved reference maps to, used by the
// k-medoids grouper to build per-task fingerprints (spec.md §4.9).
func (c *Cache) SetIndex(ref *MemRef) int {
	_, idx := c.setIndex(ref)
	return idx
}

// Check looks up ref in the cache, recording a hit or miss. It does not
// mutate cache state; callers invoke Replace on a miss.
func (c *Cache) Check(ref *MemRef) bool {
	tag, idx := c.setIndex(ref)
	s := c.sets[idx]
	for _, w := range s.ways {
		if w.populated && w.tag == tag {
			for i := range w.blocks {
				if w.blocks[i].covers(ref.Offset) {
					c.Hits++
					return true
				}
			}
			c.Misses++
			return false
		}
	}
	c.Misses++
	return false
}

// Replace handles a miss: either a block miss within an already-resident
// way, or a full way eviction when the tag itself isn't resident.
func (c *Cache) Replace(ref *MemRef) {
	tag, idx := c.setIndex(ref)
	s := c.sets[idx]

	for _, w := range s.ways {
		if w.populated && w.tag == tag {
			base := (ref.Offset / WordsPerBlock) * WordsPerBlock
			w.blocks[w.nextBlock] = block{populated: true, base: base, limit: base + WordsPerBlock}
			w.nextBlock = (w.nextBlock + 1) % len(w.blocks)
			return
		}
	}

	// Way miss: evict the FIFO way and record a set conflict.
	s.nextWay = (s.nextWay + 1) % len(s.ways)
	c.SetConflicts++
	w := s.ways[s.nextWay]
	w.populated = true
	w.tag = tag
	w.nextBlock = 0
	alignedOffset := (ref.Offset / WordsPerBlock) * WordsPerBlock
	for i := range w.blocks {
		base := alignedOffset + i*WordsPerBlock
		w.blocks[i] = block{populated: true, base: base, limit: base + WordsPerBlock}
	}
}
