package testutil

import (
	"fmt"
	"sync"
)

// SeqIDs generates predictable record ids: "<prefix>-0001", "<prefix>-0002", ...
//
// This enables deterministic assertions and golden snapshot comparison.
//
// Thread-safety: SeqIDs is safe for concurrent use.
type SeqIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSeqIDs creates a generator. If prefix is empty, "id" is used.
func NewSeqIDs(prefix string) *SeqIDs {
	if prefix == "" {
		prefix = "id"
	}
	return &SeqIDs{prefix: prefix}
}

// Next returns the next id. Its signature matches store.IDFunc.
func (g *SeqIDs) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%04d", g.prefix, g.n)
}
