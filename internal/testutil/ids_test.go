package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeqIDs_Sequential(t *testing.T) {
	gen := NewSeqIDs("cust")

	assert.Equal(t, "cust-0001", gen.Next())
	assert.Equal(t, "cust-0002", gen.Next())
	assert.Equal(t, "cust-0003", gen.Next())
}

func TestSeqIDs_EmptyPrefixDefault(t *testing.T) {
	gen := NewSeqIDs("")
	assert.Equal(t, "id-0001", gen.Next())
}

func TestSeqIDs_ThreadSafe(t *testing.T) {
	gen := NewSeqIDs("x")

	done := make(chan []string)
	for i := 0; i < 10; i++ {
		go func() {
			var ids []string
			for j := 0; j < 100; j++ {
				ids = append(ids, gen.Next())
			}
			done <- ids
		}()
	}

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		for _, id := range <-done {
			assert.False(t, seen[id], "duplicate id %s", id)
			seen[id] = true
		}
	}
	assert.Len(t, seen, 1000)
}
