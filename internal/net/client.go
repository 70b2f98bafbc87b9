package net

import (
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/motion/internal/action"
	"github.com/l1jgo/motion/internal/net/packet"
)

// Client is the connection to the verification server. Network I/O runs in
// two goroutines; the game loop only touches the queues.
type Client struct {
	conn net.Conn

	InQueue  chan []byte // game loop reads server packets from here
	OutQueue chan []byte // writer goroutine reads from here

	writeTimeout time.Duration
	sent         atomic.Uint64
	dropped      atomic.Uint64

	closeCh   chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool

	log *zap.Logger
}

// Dial connects to addr. The client is not started.
func Dial(ctx context.Context, addr string, inSize, outSize int, writeTimeout time.Duration, log *zap.Logger) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return NewClient(conn, inSize, outSize, writeTimeout, log), nil
}

func NewClient(conn net.Conn, inSize, outSize int, writeTimeout time.Duration, log *zap.Logger) *Client {
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}
	return &Client{
		conn:         conn,
		InQueue:      make(chan []byte, inSize),
		OutQueue:     make(chan []byte, outSize),
		writeTimeout: writeTimeout,
		closeCh:      make(chan struct{}),
		log:          log.With(zap.String("server", conn.RemoteAddr().String())),
	}
}

// Start launches the reader and writer goroutines.
func (c *Client) Start() {
	go c.readLoop()
	go c.writeLoop()
}

// Send queues a packet without blocking. A full queue drops the packet:
// the tick never waits on the network, and the server corrects us later.
func (c *Client) Send(data []byte) bool {
	if c.closed.Load() {
		return false
	}
	select {
	case c.OutQueue <- data:
		return true
	default:
		c.dropped.Add(1)
		c.log.Warn("輸出佇列已滿，丟棄封包", zap.Uint8("opcode", data[0]))
		return false
	}
}

// Hello announces the hero.
func (c *Client) Hello(name string, uid uint32, mapID int16) bool {
	return c.Send(packet.BuildHello(name, uid, mapID))
}

// Report implements hero.Reporter.
func (c *Client) Report(n action.ActionNode) {
	c.Send(packet.BuildAction(n))
}

// Sent is the number of packets written to the socket.
func (c *Client) Sent() uint64 { return c.sent.Load() }

// Dropped is the number of packets lost to a full out queue.
func (c *Client) Dropped() uint64 { return c.dropped.Load() }

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		close(c.closeCh)
		c.conn.Close()
	})
}

func (c *Client) IsClosed() bool {
	return c.closed.Load()
}

// Done is closed when the connection goes away.
func (c *Client) Done() <-chan struct{} {
	return c.closeCh
}

// readLoop pushes server frames onto InQueue for the game loop.
func (c *Client) readLoop() {
	defer c.Close()

	for {
		payload, err := ReadFrame(c.conn)
		if err != nil {
			if !c.closed.Load() {
				c.log.Debug("讀取錯誤", zap.Error(err))
			}
			return
		}
		// server packets are corrections; losing one desyncs the hero, so
		// block instead of dropping
		select {
		case c.InQueue <- payload:
		case <-c.closeCh:
			return
		}
	}
}

// writeLoop writes queued packets as frames until the client closes.
func (c *Client) writeLoop() {
	defer c.Close()

	for {
		select {
		case data := <-c.OutQueue:
			if !c.writeOnePacket(data) {
				return
			}
		case <-c.closeCh:
			return
		}
	}
}

func (c *Client) writeOnePacket(data []byte) bool {
	c.log.Debug("TX",
		zap.String("op", fmt.Sprintf("0x%02X(%d)", data[0], data[0])),
		zap.Int("len", len(data)),
	)
	c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	if err := WriteFrame(c.conn, data); err != nil {
		if !c.closed.Load() {
			c.log.Debug("寫入錯誤", zap.Error(err))
		}
		return false
	}
	c.sent.Add(1)
	return true
}

// Drain hands every queued server packet to fn without blocking.
// Game loop only.
func (c *Client) Drain(fn func([]byte)) int {
	n := 0
	for {
		select {
		case data := <-c.InQueue:
			fn(data)
			n++
		default:
			return n
		}
	}
}

// LogReporter is the reporter used without a server: every action goes to
// the log at debug level.
type LogReporter struct {
	log   *zap.Logger
	count atomic.Uint64
}

func NewLogReporter(log *zap.Logger) *LogReporter {
	return &LogReporter{log: log}
}

// Report implements hero.Reporter.
func (r *LogReporter) Report(n action.ActionNode) {
	r.count.Add(1)
	r.log.Debug("report",
		zap.Stringer("action", n.Action),
		zap.Int32("x", n.X), zap.Int32("y", n.Y),
		zap.Int32("aim_x", n.AimX), zap.Int32("aim_y", n.AimY),
		zap.Uint32("aim_uid", n.AimUID),
		zap.Int32("param", n.ActionParam))
}

func (r *LogReporter) Count() uint64 { return r.count.Load() }
