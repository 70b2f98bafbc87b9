package net

import (
	"bytes"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/l1jgo/motion/internal/action"
	"github.com/l1jgo/motion/internal/geom"
	"github.com/l1jgo/motion/internal/net/packet"
)

func TestFrameCodec(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, []byte{1, 2, 3}))
	assert.Equal(t, []byte{5, 0, 1, 2, 3}, buf.Bytes())

	got, err := ReadFrame(&buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)

	_, err = ReadFrame(bytes.NewReader([]byte{2, 0}))
	assert.Error(t, err, "empty payload")
	_, err = ReadFrame(bytes.NewReader([]byte{9, 0, 1}))
	assert.Error(t, err, "truncated payload")
	assert.Error(t, WriteFrame(&buf, nil))
}

func TestClient_ReportsAndReceives(t *testing.T) {
	local, remote := net.Pipe()
	defer remote.Close()
	c := NewClient(local, 4, 4, time.Second, zaptest.NewLogger(t))
	c.Start()
	defer c.Close()

	require.True(t, c.Hello("英雄", 1, 4))
	node := action.Move(geom.C(10, 10), geom.C(11, 10), 100, false).Node()
	c.Report(node)

	frame, err := ReadFrame(remote)
	require.NoError(t, err)
	assert.Equal(t, packet.C_OPCODE_HELLO, frame[0])
	r := packet.NewReader(frame)
	assert.Equal(t, "英雄", r.ReadS())
	assert.Equal(t, uint32(1), r.ReadDU())

	frame, err = ReadFrame(remote)
	require.NoError(t, err)
	got, err := packet.ParseAction(frame)
	require.NoError(t, err)
	assert.Equal(t, node, got)

	pb := packet.BuildPullBack(packet.PullBack{UID: 1, Cell: geom.C(10, 10), Reason: "lag"})
	require.NoError(t, WriteFrame(remote, pb))

	var in [][]byte
	require.Eventually(t, func() bool {
		c.Drain(func(b []byte) { in = append(in, b) })
		return len(in) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, pb, in[0])
	assert.Eventually(t, func() bool { return c.Sent() == 2 }, time.Second, 5*time.Millisecond)
}

func TestClient_FullQueueDrops(t *testing.T) {
	local, remote := net.Pipe()
	defer remote.Close()
	c := NewClient(local, 1, 1, time.Second, zap.NewNop())

	node := action.ActionNode{Action: action.KindMove}
	c.Report(node)
	c.Report(node)
	assert.Equal(t, uint64(1), c.Dropped())
	assert.Len(t, c.OutQueue, 1)

	c.Close()
	assert.True(t, c.IsClosed())
	assert.False(t, c.Send([]byte{1}))
	<-c.Done()
}

func TestLogReporter(t *testing.T) {
	r := NewLogReporter(zap.NewNop())
	r.Report(action.ActionNode{Action: action.KindSpell})
	r.Report(action.ActionNode{Action: action.KindMove})
	assert.Equal(t, uint64(2), r.Count())
}
