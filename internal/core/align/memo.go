package align

import "sync"

// DefaultMemoSize is used when NewMemo is given a non-positive capacity.
const DefaultMemoSize = 256

type memoKey struct {
	left, right string
}

// Memo caches alignments by input pair. Align is pure, so cached results are
// always valid. Entries are evicted oldest-first once capacity is reached.
// Memo is safe for concurrent use.
type Memo struct {
	mu       sync.Mutex
	capacity int
	entries  map[memoKey]Result
	order    []memoKey
}

// NewMemo creates a memo holding at most capacity alignments.
func NewMemo(capacity int) *Memo {
	if capacity <= 0 {
		capacity = DefaultMemoSize
	}
	return &Memo{
		capacity: capacity,
		entries:  make(map[memoKey]Result, capacity),
	}
}

// Align returns the cached alignment for (left, right), computing it on a miss.
func (m *Memo) Align(left, right string) Result {
	key := memoKey{left: left, right: right}

	m.mu.Lock()
	if res, ok := m.entries[key]; ok {
		m.mu.Unlock()
		return res
	}
	m.mu.Unlock()

	res := Align(left, right)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[key]; ok {
		return res
	}
	if len(m.order) >= m.capacity {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.entries, oldest)
	}
	m.entries[key] = res
	m.order = append(m.order, key)

	return res
}

// Len returns the number of cached alignments.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
