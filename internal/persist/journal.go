package persist

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/l1jgo/motion/internal/action"
	"github.com/l1jgo/motion/internal/geom"
)

// DigestSize is the length of a journal digest (BLAKE2b-256).
const DigestSize = blake2b.Size256

// JournalEntry is one reported action. Digest chains over every earlier
// entry of the same run and hero, so two runs of the same scenario match
// entry for entry or diverge at the first differing action.
type JournalEntry struct {
	RunID  string
	UID    uint32
	Seq    uint64
	Node   action.ActionNode
	Digest [DigestSize]byte
}

// Chain is a running BLAKE2b-256 digest over reported actions.
type Chain struct {
	prev [DigestSize]byte
}

// Next folds n into the chain and returns the new digest.
func (c *Chain) Next(n action.ActionNode) [DigestSize]byte {
	b := make([]byte, 0, DigestSize+34)
	b = append(b, c.prev[:]...)
	b = append(b, byte(n.Action))
	b = binary.LittleEndian.AppendUint32(b, uint32(n.Speed))
	b = append(b, byte(n.Heading))
	b = binary.LittleEndian.AppendUint32(b, uint32(n.X))
	b = binary.LittleEndian.AppendUint32(b, uint32(n.Y))
	b = binary.LittleEndian.AppendUint32(b, uint32(n.AimX))
	b = binary.LittleEndian.AppendUint32(b, uint32(n.AimY))
	b = binary.LittleEndian.AppendUint32(b, n.AimUID)
	b = binary.LittleEndian.AppendUint32(b, uint32(n.ActionParam))
	c.prev = blake2b.Sum256(b)
	return c.prev
}

// Head returns the latest digest.
func (c *Chain) Head() [DigestSize]byte { return c.prev }

// Verify recomputes the chain over entries (ordered by Seq) and reports the
// first entry whose digest does not match.
func Verify(entries []JournalEntry) error {
	var c Chain
	for i, e := range entries {
		if i > 0 && e.Seq <= entries[i-1].Seq {
			return fmt.Errorf("entry %d: seq %d not increasing", i, e.Seq)
		}
		want := c.Next(e.Node)
		if !bytes.Equal(want[:], e.Digest[:]) {
			return fmt.Errorf("entry %d (seq %d): digest mismatch", i, e.Seq)
		}
	}
	return nil
}

// JournalStore persists journal batches.
type JournalStore interface {
	WriteJournal(ctx context.Context, entries []JournalEntry) error
}

// Journal buffers reported actions between flushes.
// Game loop only.
type Journal struct {
	runID string
	chain map[uint32]*Chain
	seq   map[uint32]uint64
	buf   []JournalEntry
}

func NewJournal(runID string) *Journal {
	return &Journal{
		runID: runID,
		chain: make(map[uint32]*Chain),
		seq:   make(map[uint32]uint64),
	}
}

// Append records n for hero uid and returns the entry.
func (j *Journal) Append(uid uint32, n action.ActionNode) JournalEntry {
	c := j.chain[uid]
	if c == nil {
		c = &Chain{}
		j.chain[uid] = c
	}
	j.seq[uid]++
	e := JournalEntry{RunID: j.runID, UID: uid, Seq: j.seq[uid], Node: n, Digest: c.Next(n)}
	j.buf = append(j.buf, e)
	return e
}

// Pending is the number of buffered entries.
func (j *Journal) Pending() int { return len(j.buf) }

// Head returns the current digest for uid.
func (j *Journal) Head(uid uint32) [DigestSize]byte {
	if c := j.chain[uid]; c != nil {
		return c.Head()
	}
	return [DigestSize]byte{}
}

// Flush writes the buffer to store. On error the buffer is kept for the
// next attempt.
func (j *Journal) Flush(ctx context.Context, store JournalStore) (int, error) {
	if len(j.buf) == 0 {
		return 0, nil
	}
	if err := store.WriteJournal(ctx, j.buf); err != nil {
		return 0, err
	}
	n := len(j.buf)
	j.buf = j.buf[:0]
	return n, nil
}

// JournalRepo is the PostgreSQL journal store.
type JournalRepo struct {
	db *DB
}

func NewJournalRepo(db *DB) *JournalRepo {
	return &JournalRepo{db: db}
}

// WriteJournal inserts a batch of entries in a single transaction.
func (r *JournalRepo) WriteJournal(ctx context.Context, entries []JournalEntry) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("journal begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range entries {
		n := e.Node
		if _, err := tx.Exec(ctx,
			`INSERT INTO action_journal (run_id, uid, seq, action, speed, heading, x, y, aim_x, aim_y, aim_uid, param, digest)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			e.RunID, int64(e.UID), int64(e.Seq), int16(n.Action), n.Speed, int16(n.Heading),
			n.X, n.Y, n.AimX, n.AimY, int64(n.AimUID), n.ActionParam, e.Digest[:],
		); err != nil {
			return fmt.Errorf("journal insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// LoadRun reads back one hero's entries of a run, ordered by seq.
func (r *JournalRepo) LoadRun(ctx context.Context, runID string, uid uint32) ([]JournalEntry, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT seq, action, speed, heading, x, y, aim_x, aim_y, aim_uid, param, digest
		 FROM action_journal WHERE run_id = $1 AND uid = $2 ORDER BY seq`,
		runID, int64(uid),
	)
	if err != nil {
		return nil, fmt.Errorf("journal query: %w", err)
	}
	defer rows.Close()

	var out []JournalEntry
	for rows.Next() {
		var (
			seq, aimUID      int64
			act, heading     int16
			speed, param     int32
			x, y, aimX, aimY int32
			digest           []byte
		)
		if err := rows.Scan(&seq, &act, &speed, &heading, &x, &y, &aimX, &aimY, &aimUID, &param, &digest); err != nil {
			return nil, fmt.Errorf("journal scan: %w", err)
		}
		if len(digest) != DigestSize {
			return nil, fmt.Errorf("journal seq %d: digest is %d bytes", seq, len(digest))
		}
		e := JournalEntry{
			RunID: runID,
			UID:   uid,
			Seq:   uint64(seq),
			Node: action.ActionNode{
				Action:      action.Kind(act),
				Speed:       speed,
				Heading:     geom.Heading(heading),
				X:           x,
				Y:           y,
				AimX:        aimX,
				AimY:        aimY,
				AimUID:      uint32(aimUID),
				ActionParam: param,
			},
		}
		copy(e.Digest[:], digest)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal rows: %w", err)
	}
	return out, nil
}
