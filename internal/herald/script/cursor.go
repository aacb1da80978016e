// Package script reads pushes out of hex-encoded output scripts.
package script

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/txscript"
)

// Cursor is a read position over a hex string. Reads return the advanced
// cursor and never modify the receiver, so a cursor can be shared freely
// between nested decoders.
type Cursor struct {
	hex    string
	offset int
}

// NewCursor starts a cursor at byte offset 0.
func NewCursor(hexStr string) Cursor {
	return NewCursorAt(hexStr, 0)
}

// NewCursorAt starts a cursor whose reported offsets begin at base.
func NewCursorAt(hexStr string, base int) Cursor {
	return Cursor{hex: strings.ToLower(hexStr), offset: base}
}

// Offset is the number of bytes consumed, counted from the cursor base.
func (c Cursor) Offset() int {
	return c.offset
}

// Remaining is the number of unread whole bytes.
func (c Cursor) Remaining() int {
	return len(c.hex) / 2
}

// Empty reports whether every byte was consumed.
func (c Cursor) Empty() bool {
	return len(c.hex) == 0
}

// Rest returns the unread hex.
func (c Cursor) Rest() string {
	return c.hex
}

// Consume returns the next n bytes as hex.
func (c Cursor) Consume(n int) (string, Cursor, error) {
	if n < 0 {
		return "", c, fmt.Errorf("script: negative read of %d bytes at offset %d", n, c.offset)
	}
	if len(c.hex) < n*2 {
		return "", c, &InsufficientDataError{Offset: c.offset, Need: n, Have: len(c.hex) / 2}
	}
	return c.hex[:n*2], Cursor{hex: c.hex[n*2:], offset: c.offset + n}, nil
}

// ConsumeByte returns the next byte.
func (c Cursor) ConsumeByte() (byte, Cursor, error) {
	h, next, err := c.Consume(1)
	if err != nil {
		return 0, c, err
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return 0, c, fmt.Errorf("%w at offset %d", ErrInvalidHex, c.offset)
	}
	return b[0], next, nil
}

// Push is a single data push read from a script.
type Push struct {
	// Data is the pushed bytes as hex. Single-byte opcodes that push a
	// constant (OP_0, OP_1NEGATE, OP_RESERVED, OP_1..OP_16) report the
	// opcode byte itself.
	Data   string
	Opcode byte
	Offset int
}

// ConsumeNextPush reads one push opcode and its payload.
func (c Cursor) ConsumeNextPush() (Push, Cursor, error) {
	op, next, err := c.ConsumeByte()
	if err != nil {
		return Push{}, c, err
	}
	push := Push{Opcode: op, Offset: c.offset}

	var size int
	switch {
	case IsConstantPush(op):
		push.Data = hex.EncodeToString([]byte{op})
		return push, next, nil
	case op >= txscript.OP_DATA_1 && op <= txscript.OP_DATA_75:
		size = int(op)
	case op == txscript.OP_PUSHDATA1, op == txscript.OP_PUSHDATA2, op == txscript.OP_PUSHDATA4:
		width := 1
		if op == txscript.OP_PUSHDATA2 {
			width = 2
		} else if op == txscript.OP_PUSHDATA4 {
			width = 4
		}
		var lenHex string
		lenHex, next, err = next.Consume(width)
		if err != nil {
			return Push{}, c, err
		}
		size, err = littleEndianSize(lenHex)
		if err != nil {
			return Push{}, c, fmt.Errorf("%w at offset %d", err, c.offset+1)
		}
	default:
		return Push{}, c, fmt.Errorf("%w: 0x%02x at offset %d", ErrNotPush, op, c.offset)
	}

	push.Data, next, err = next.Consume(size)
	if err != nil {
		return Push{}, c, err
	}
	return push, next, nil
}

// IsConstantPush reports whether op pushes a constant without a data payload.
func IsConstantPush(op byte) bool {
	switch {
	case op == txscript.OP_0, op == txscript.OP_1NEGATE, op == txscript.OP_RESERVED:
		return true
	case op >= txscript.OP_1 && op <= txscript.OP_16:
		return true
	}
	return false
}

func littleEndianSize(h string) (int, error) {
	raw, err := hex.DecodeString(h)
	if err != nil {
		return 0, ErrInvalidHex
	}
	buf := make([]byte, 8)
	copy(buf, raw)
	size := binary.LittleEndian.Uint64(buf)
	if size > uint64(^uint32(0)) {
		return 0, fmt.Errorf("script: push size %d too large", size)
	}
	return int(size), nil
}

// SwapEndianness reverses the byte order of a hex string.
func SwapEndianness(h string) (string, error) {
	if len(h)%2 != 0 {
		return "", ErrOddLength
	}
	var b strings.Builder
	b.Grow(len(h))
	for i := len(h); i > 0; i -= 2 {
		b.WriteString(h[i-2 : i])
	}
	return b.String(), nil
}

// StackArray returns the data of every push in a script body. Empty
// OP_PUSHDATA1 pushes carry no data and are skipped.
func StackArray(h string) ([]string, error) {
	if len(h)%2 != 0 {
		return nil, ErrOddLength
	}
	var (
		stack []string
		push  Push
		err   error
	)
	c := NewCursor(h)
	for !c.Empty() {
		push, c, err = c.ConsumeNextPush()
		if err != nil {
			return nil, err
		}
		if push.Data == "" {
			continue
		}
		stack = append(stack, push.Data)
	}
	return stack, nil
}

// ContainsOnlyPrintableASCII reports whether every byte of h lies in 0x20..0x7e.
func ContainsOnlyPrintableASCII(h string) bool {
	if len(h)%2 != 0 {
		return false
	}
	raw, err := hex.DecodeString(h)
	if err != nil {
		return false
	}
	for _, b := range raw {
		if b < 0x20 || b > 0x7e {
			return false
		}
	}
	return true
}
