// Package ranking keeps keyed values in leaderboard order.
package ranking

import (
	"github.com/cespare/xxhash/v2"

	"github.com/okian/rrdash/internal/domain/types"
)

// Board is a treap ordered by value DESC, then key ASC. In-order traversal
// yields the leaderboard from best to worst. A Board is not safe for
// concurrent use; aggregates build one per call.
//
// Node priorities are hashes of the key, so the same inputs always give the
// same tree shape.
type Board struct {
	root  *node
	byKey map[string]float64
}

type node struct {
	key   string
	value float64
	prio  uint64
	left  *node
	right *node
	size  int
}

// New returns an empty Board.
func New() *Board {
	return &Board{byKey: make(map[string]float64)}
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less reports whether (aVal, aKey) ranks before (bVal, bKey).
func less(aVal float64, aKey string, bVal float64, bKey string) bool {
	if aVal != bVal {
		return aVal > bVal
	}
	return aKey < bKey
}

func rotateRight(y *node) *node {
	x := y.left
	t2 := x.right
	x.right = y
	y.left = t2
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	t2 := y.left
	y.left = x
	x.right = t2
	fix(x)
	fix(y)
	return y
}

func insert(n *node, key string, value float64) *node {
	if n == nil {
		return &node{key: key, value: value, prio: xxhash.Sum64String(key), size: 1}
	}
	if less(value, key, n.value, n.key) {
		n.left = insert(n.left, key, value)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, key, value)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, key string, value float64) *node {
	if n == nil {
		return nil
	}
	if value == n.value && key == n.key {
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, key, value)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, key, value)
		}
	} else if less(value, key, n.value, n.key) {
		n.left = deleteNode(n.left, key, value)
	} else {
		n.right = deleteNode(n.right, key, value)
	}
	fix(n)
	return n
}

// collect appends up to limit entries in rank order.
func collect(n *node, limit int, out *[]types.Entry) {
	if n == nil || len(*out) >= limit {
		return
	}
	collect(n.left, limit, out)
	if len(*out) < limit {
		*out = append(*out, types.Entry{Key: n.key, Value: n.value})
	}
	if len(*out) < limit {
		collect(n.right, limit, out)
	}
}

// Set stores value for key, replacing any previous value.
func (b *Board) Set(key string, value float64) {
	if old, ok := b.byKey[key]; ok {
		if old == value {
			return
		}
		b.root = deleteNode(b.root, key, old)
	}
	b.byKey[key] = value
	b.root = insert(b.root, key, value)
}

// Add increases the value for key by delta. Unknown keys start at zero.
func (b *Board) Add(key string, delta float64) {
	b.Set(key, b.byKey[key]+delta)
}

// Get returns the stored value for key.
func (b *Board) Get(key string) (float64, bool) {
	v, ok := b.byKey[key]
	return v, ok
}

// Len returns the number of keys on the board.
func (b *Board) Len() int {
	return nsize(b.root)
}

// TopN returns the first n entries with dense ranks. n < 1 yields an empty slice.
func (b *Board) TopN(n int) []types.Entry {
	if n < 1 {
		return []types.Entry{}
	}
	out := make([]types.Entry, 0, min(n, b.Len()))
	collect(b.root, n, &out)
	assignRanksWithTies(out)
	return out
}

// All returns every entry in rank order.
func (b *Board) All() []types.Entry {
	return b.TopN(b.Len())
}

// assignRanksWithTies gives equal values the same rank; the next distinct
// value gets the following rank.
func assignRanksWithTies(entries []types.Entry) {
	rank := 0
	for i := range entries {
		if i == 0 || entries[i].Value != entries[i-1].Value {
			rank++
		}
		entries[i].Rank = rank
	}
}
