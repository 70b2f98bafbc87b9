package packet

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/l1jgo/motion/internal/action"
	"github.com/l1jgo/motion/internal/geom"
)

func TestWriterReader(t *testing.T) {
	w := NewWriter(0x7F)
	w.WriteC(3)
	w.WriteH(32768)
	w.WriteD(-5)
	w.WriteDU(0xDEADBEEF)
	w.WriteS("")
	w.WriteS("hero")

	r := NewReader(w.Bytes())
	assert.Equal(t, byte(0x7F), r.Opcode())
	assert.Equal(t, byte(3), r.ReadC())
	assert.Equal(t, uint16(32768), r.ReadH())
	assert.Equal(t, int32(-5), r.ReadD())
	assert.Equal(t, uint32(0xDEADBEEF), r.ReadDU())
	assert.Equal(t, "", r.ReadS())
	assert.Equal(t, "hero", r.ReadS())
	assert.Equal(t, 0, r.Remaining())
	assert.False(t, r.Short())

	r.ReadD()
	assert.True(t, r.Short())
}

func TestBig5Strings(t *testing.T) {
	w := NewWriter(S_OPCODE_PULLBACK)
	w.WriteS("速度異常")
	raw := w.Bytes()
	assert.Len(t, raw, 1+8+1, "four Big5 characters, two bytes each")

	r := NewReader(raw)
	assert.Equal(t, "速度異常", r.ReadS())
}

func TestAction(t *testing.T) {
	node := action.Attack(geom.C(32700, 32810), 9001, 2, 120).Node()
	node.AimX, node.AimY = 32701, 32811
	node.Heading = geom.SouthEast

	got, err := ParseAction(BuildAction(node))
	require.NoError(t, err)
	assert.Equal(t, node, got)

	_, err = ParseAction(BuildAction(node)[:10])
	assert.Error(t, err)
	_, err = ParseAction(BuildHello("x", 1, 4))
	assert.Error(t, err)
}

func TestPullBack(t *testing.T) {
	in := PullBack{UID: 7, Cell: geom.C(33000, 32500), Heading: geom.West, Reason: "位置校正"}
	raw := BuildPullBack(in)

	r := NewReader(raw)
	require.Equal(t, S_OPCODE_PULLBACK, r.Opcode())
	got, err := ReadPullBack(r)
	require.NoError(t, err)
	assert.Equal(t, in, got)

	raw[9] = 11 // heading byte
	_, err = ReadPullBack(NewReader(raw))
	assert.Error(t, err)
}

func TestObjects(t *testing.T) {
	put := PutObject{UID: 3, Cell: geom.C(10, 12), Kind: 45, Name: "妖魔"}
	got, err := ReadPutObject(NewReader(BuildPutObject(put)))
	require.NoError(t, err)
	assert.Equal(t, put, got)

	uid, c, err := ReadMoveObject(NewReader(BuildMoveObject(3, geom.C(11, 12))))
	require.NoError(t, err)
	assert.Equal(t, uint32(3), uid)
	assert.Equal(t, geom.C(11, 12), c)

	id, err := ReadObjectID(NewReader(BuildRemoveObject(S_OPCODE_DELETEITEM, 700000001)))
	require.NoError(t, err)
	assert.Equal(t, uint32(700000001), id)

	drop := DropItem{ID: 700000002, ItemID: 40308, Cell: geom.C(4, 4), Name: "金幣"}
	gotDrop, err := ReadDropItem(NewReader(BuildDropItem(drop)))
	require.NoError(t, err)
	assert.Equal(t, drop, gotDrop)

	_, err = ReadDropItem(NewReader([]byte{S_OPCODE_DROPITEM, 1, 2}))
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	var got []uint32
	reg.Register(S_OPCODE_REMOVEOBJECT, func(r *Reader) error {
		id, err := ReadObjectID(r)
		if err != nil {
			return err
		}
		got = append(got, id)
		return nil
	})
	reg.Register(S_OPCODE_MOVEOBJECT, func(r *Reader) error { panic("boom") })
	reg.Register(S_OPCODE_PUTOBJECT, func(r *Reader) error { return errors.New("nope") })

	require.NoError(t, reg.Dispatch(BuildRemoveObject(S_OPCODE_REMOVEOBJECT, 5)))
	assert.Equal(t, []uint32{5}, got)

	assert.NoError(t, reg.Dispatch([]byte{0xEE, 1}), "unknown opcodes are ignored")
	assert.Error(t, reg.Dispatch(nil))
	assert.Error(t, reg.Dispatch(BuildMoveObject(1, geom.C(1, 1))))
	assert.Error(t, reg.Dispatch(BuildPutObject(PutObject{})))
	assert.Error(t, reg.Dispatch([]byte{S_OPCODE_REMOVEOBJECT, 1}))
}
