package packet

import (
	"fmt"

	"github.com/l1jgo/motion/internal/action"
	"github.com/l1jgo/motion/internal/geom"
)

// Map coordinates travel as uint16, headings as one byte.

// BuildHello announces the hero after connecting.
// [C op][S name][DU uid][H map]
func BuildHello(name string, uid uint32, mapID int16) []byte {
	w := NewWriter(C_OPCODE_HELLO)
	w.WriteS(name)
	w.WriteDU(uid)
	w.WriteH(uint16(mapID))
	return w.Bytes()
}

// BuildAction encodes an atomic action for server verification.
// [C op][C action][D speed][C heading][H x][H y][H aimX][H aimY][DU aimUID][D param]
func BuildAction(n action.ActionNode) []byte {
	w := NewWriter(C_OPCODE_ACTION)
	w.WriteC(byte(n.Action))
	w.WriteD(n.Speed)
	w.WriteC(byte(n.Heading))
	w.WriteH(uint16(n.X))
	w.WriteH(uint16(n.Y))
	w.WriteH(uint16(n.AimX))
	w.WriteH(uint16(n.AimY))
	w.WriteDU(n.AimUID)
	w.WriteD(n.ActionParam)
	return w.Bytes()
}

// ParseAction is the inverse of BuildAction.
func ParseAction(data []byte) (action.ActionNode, error) {
	r := NewReader(data)
	if r.Opcode() != C_OPCODE_ACTION {
		return action.ActionNode{}, fmt.Errorf("not an action packet: opcode 0x%02X", r.Opcode())
	}
	n := action.ActionNode{
		Action:      action.Kind(r.ReadC()),
		Speed:       r.ReadD(),
		Heading:     geom.Heading(r.ReadC()),
		X:           int32(r.ReadH()),
		Y:           int32(r.ReadH()),
		AimX:        int32(r.ReadH()),
		AimY:        int32(r.ReadH()),
		AimUID:      r.ReadDU(),
		ActionParam: r.ReadD(),
	}
	if r.Short() {
		return action.ActionNode{}, fmt.Errorf("action packet too short (%d bytes)", len(data))
	}
	return n, nil
}

// PullBack is the server's position correction.
type PullBack struct {
	UID     uint32
	Cell    geom.Cell
	Heading geom.Heading
	Reason  string
}

// [C op][DU uid][H x][H y][C heading][S reason]
func BuildPullBack(p PullBack) []byte {
	w := NewWriter(S_OPCODE_PULLBACK)
	w.WriteDU(p.UID)
	w.WriteH(uint16(p.Cell.X))
	w.WriteH(uint16(p.Cell.Y))
	w.WriteC(byte(p.Heading))
	w.WriteS(p.Reason)
	return w.Bytes()
}

func ReadPullBack(r *Reader) (PullBack, error) {
	p := PullBack{UID: r.ReadDU()}
	p.Cell = geom.C(int32(r.ReadH()), int32(r.ReadH()))
	p.Heading = geom.Heading(r.ReadC())
	p.Reason = r.ReadS()
	if r.Short() {
		return PullBack{}, fmt.Errorf("pullback packet too short")
	}
	if !p.Heading.Valid() {
		return PullBack{}, fmt.Errorf("pullback heading %d", p.Heading)
	}
	return p, nil
}

// PutObject announces an entity entering view.
type PutObject struct {
	UID  uint32
	Cell geom.Cell
	Kind int32
	Name string
}

// [C op][DU uid][H x][H y][D kind][S name]
func BuildPutObject(o PutObject) []byte {
	w := NewWriter(S_OPCODE_PUTOBJECT)
	w.WriteDU(o.UID)
	w.WriteH(uint16(o.Cell.X))
	w.WriteH(uint16(o.Cell.Y))
	w.WriteD(o.Kind)
	w.WriteS(o.Name)
	return w.Bytes()
}

func ReadPutObject(r *Reader) (PutObject, error) {
	o := PutObject{UID: r.ReadDU()}
	o.Cell = geom.C(int32(r.ReadH()), int32(r.ReadH()))
	o.Kind = r.ReadD()
	o.Name = r.ReadS()
	if r.Short() {
		return PutObject{}, fmt.Errorf("putobject packet too short")
	}
	return o, nil
}

// [C op][DU uid][H x][H y]
func BuildMoveObject(uid uint32, c geom.Cell) []byte {
	w := NewWriter(S_OPCODE_MOVEOBJECT)
	w.WriteDU(uid)
	w.WriteH(uint16(c.X))
	w.WriteH(uint16(c.Y))
	return w.Bytes()
}

func ReadMoveObject(r *Reader) (uint32, geom.Cell, error) {
	uid := r.ReadDU()
	c := geom.C(int32(r.ReadH()), int32(r.ReadH()))
	if r.Short() {
		return 0, geom.Cell{}, fmt.Errorf("moveobject packet too short")
	}
	return uid, c, nil
}

// BuildRemoveObject also serves S_OPCODE_DELETEITEM with the ground ID.
// [C op][DU id]
func BuildRemoveObject(opcode byte, id uint32) []byte {
	w := NewWriter(opcode)
	w.WriteDU(id)
	return w.Bytes()
}

func ReadObjectID(r *Reader) (uint32, error) {
	id := r.ReadDU()
	if r.Short() {
		return 0, fmt.Errorf("object id packet too short")
	}
	return id, nil
}

// DropItem announces a ground item.
type DropItem struct {
	ID     int32
	ItemID int32
	Cell   geom.Cell
	Name   string
}

// [C op][D id][D itemID][H x][H y][S name]
func BuildDropItem(d DropItem) []byte {
	w := NewWriter(S_OPCODE_DROPITEM)
	w.WriteD(d.ID)
	w.WriteD(d.ItemID)
	w.WriteH(uint16(d.Cell.X))
	w.WriteH(uint16(d.Cell.Y))
	w.WriteS(d.Name)
	return w.Bytes()
}

func ReadDropItem(r *Reader) (DropItem, error) {
	d := DropItem{ID: r.ReadD(), ItemID: r.ReadD()}
	d.Cell = geom.C(int32(r.ReadH()), int32(r.ReadH()))
	d.Name = r.ReadS()
	if r.Short() {
		return DropItem{}, fmt.Errorf("dropitem packet too short")
	}
	return d, nil
}
