package persist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l1jgo/motion/internal/action"
	"github.com/l1jgo/motion/internal/geom"
)

type memStore struct {
	batches [][]JournalEntry
	err     error
}

func (m *memStore) WriteJournal(_ context.Context, entries []JournalEntry) error {
	if m.err != nil {
		return m.err
	}
	m.batches = append(m.batches, append([]JournalEntry(nil), entries...))
	return nil
}

func walk(n int) []action.ActionNode {
	out := make([]action.ActionNode, n)
	for i := range out {
		out[i] = action.Move(geom.C(int32(i), 0), geom.C(int32(i+1), 0), 100, false).Node()
	}
	return out
}

func TestChain_Deterministic(t *testing.T) {
	var a, b Chain
	for _, n := range walk(5) {
		assert.Equal(t, a.Next(n), b.Next(n))
	}
	assert.NotEqual(t, [DigestSize]byte{}, a.Head())

	// same nodes, different order: different head
	var c Chain
	nodes := walk(5)
	nodes[1], nodes[2] = nodes[2], nodes[1]
	for _, n := range nodes {
		c.Next(n)
	}
	assert.NotEqual(t, a.Head(), c.Head())
}

func TestJournal_AppendFlushVerify(t *testing.T) {
	j := NewJournal("run-1")
	for _, n := range walk(3) {
		j.Append(1, n)
	}
	j.Append(2, walk(1)[0])
	assert.Equal(t, 4, j.Pending())

	store := &memStore{err: errors.New("db down")}
	n, err := j.Flush(context.Background(), store)
	assert.Error(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 4, j.Pending(), "kept for retry")

	store.err = nil
	n, err = j.Flush(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Zero(t, j.Pending())
	require.Len(t, store.batches, 1)

	var hero1 []JournalEntry
	for _, e := range store.batches[0] {
		assert.Equal(t, "run-1", e.RunID)
		if e.UID == 1 {
			hero1 = append(hero1, e)
		}
	}
	require.Len(t, hero1, 3)
	assert.Equal(t, []uint64{1, 2, 3}, []uint64{hero1[0].Seq, hero1[1].Seq, hero1[2].Seq})
	assert.NoError(t, Verify(hero1))
	assert.Equal(t, hero1[2].Digest, j.Head(1))
	assert.Equal(t, [DigestSize]byte{}, j.Head(9))

	n, err = j.Flush(context.Background(), store)
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestVerify_DetectsTampering(t *testing.T) {
	j := NewJournal("r")
	var entries []JournalEntry
	for _, n := range walk(4) {
		entries = append(entries, j.Append(7, n))
	}
	require.NoError(t, Verify(entries))

	tampered := append([]JournalEntry(nil), entries...)
	tampered[2].Node.AimX = 99
	assert.ErrorContains(t, Verify(tampered), "entry 2")

	reordered := append([]JournalEntry(nil), entries...)
	reordered[1], reordered[2] = reordered[2], reordered[1]
	assert.ErrorContains(t, Verify(reordered), "not increasing")
}
