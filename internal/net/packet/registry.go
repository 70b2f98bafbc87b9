package packet

import (
	"fmt"

	"go.uber.org/zap"
)

// HandlerFunc handles one inbound server packet.
type HandlerFunc func(r *Reader) error

// Registry maps server opcodes to handlers.
type Registry struct {
	handlers map[byte]HandlerFunc
	log      *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		handlers: make(map[byte]HandlerFunc),
		log:      log,
	}
}

// Register maps an opcode to a handler, replacing any previous one.
func (reg *Registry) Register(opcode byte, fn HandlerFunc) {
	reg.handlers[opcode] = fn
}

// Dispatch calls the handler for the opcode in data[0]. Unknown opcodes are
// ignored; a short payload is an error.
func (reg *Registry) Dispatch(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty packet")
	}
	opcode := data[0]
	reg.log.Debug("收到封包", zap.Uint8("opcode", opcode), zap.Int("size", len(data)))

	fn, ok := reg.handlers[opcode]
	if !ok {
		reg.log.Debug("未知操作碼", zap.Uint8("opcode", opcode))
		return nil
	}

	r := NewReader(data)
	if err := reg.safeCall(fn, r, opcode); err != nil {
		return err
	}
	if r.Short() {
		return fmt.Errorf("opcode 0x%02X: payload too short (%d bytes)", opcode, len(data))
	}
	return nil
}

// safeCall runs a handler with panic recovery so one bad packet cannot take
// down the game loop.
func (reg *Registry) safeCall(fn HandlerFunc, r *Reader, opcode byte) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			reg.log.Error("處理器 panic 已恢復",
				zap.Uint8("opcode", opcode),
				zap.Any("panic", rec),
			)
			err = fmt.Errorf("handler panic for opcode %d: %v", opcode, rec)
		}
	}()
	return fn(r)
}
