package packet

// Client → server.
const (
	C_OPCODE_HELLO  byte = 0x01
	C_OPCODE_ACTION byte = 0x02
)

// Server → client.
const (
	S_OPCODE_PULLBACK     byte = 0x40
	S_OPCODE_PUTOBJECT    byte = 0x41
	S_OPCODE_MOVEOBJECT   byte = 0x42
	S_OPCODE_REMOVEOBJECT byte = 0x43
	S_OPCODE_DROPITEM     byte = 0x44
	S_OPCODE_DELETEITEM   byte = 0x45
)
