package components

// DefaultMemoryCapacity is the number of cells an ant remembers when no
// capacity is configured.
const DefaultMemoryCapacity = 16

// ShortMemory is a bounded FIFO of recently visited cells with a parallel
// set for constant-time membership tests. Both structures always hold the
// same cells.
type ShortMemory struct {
	order    []CoarsePosition
	set      map[CoarsePosition]struct{}
	capacity int
}

// NewShortMemory creates an empty memory holding at most capacity cells.
func NewShortMemory(capacity int) ShortMemory {
	if capacity < 0 {
		capacity = 0
	}
	return ShortMemory{
		order:    make([]CoarsePosition, 0, capacity),
		set:      make(map[CoarsePosition]struct{}, capacity),
		capacity: capacity,
	}
}

// Add records a visit. Adding a remembered cell is a no-op; adding beyond
// capacity evicts the oldest cell.
func (m *ShortMemory) Add(c CoarsePosition) {
	if m.capacity == 0 {
		return
	}
	if _, ok := m.set[c]; ok {
		return
	}
	if len(m.order) >= m.capacity {
		oldest := m.order[0]
		m.order = append(m.order[:0], m.order[1:]...)
		delete(m.set, oldest)
	}
	m.order = append(m.order, c)
	m.set[c] = struct{}{}
}

// Contains reports whether the cell was visited recently.
func (m *ShortMemory) Contains(c CoarsePosition) bool {
	_, ok := m.set[c]
	return ok
}

// Clear forgets every cell.
func (m *ShortMemory) Clear() {
	m.order = m.order[:0]
	clear(m.set)
}

// Len returns the number of remembered cells.
func (m *ShortMemory) Len() int {
	return len(m.order)
}

// Cells returns the remembered cells, oldest first.
func (m *ShortMemory) Cells() []CoarsePosition {
	out := make([]CoarsePosition, len(m.order))
	copy(out, m.order)
	return out
}
