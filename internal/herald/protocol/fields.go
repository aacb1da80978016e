package protocol

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/script"
)

// dataPush reads a push that must carry data with the shortest possible
// encoding. Empty fields are OP_PUSHDATA1 0x00.
func dataPush(c script.Cursor, field string) (script.Push, script.Cursor, error) {
	push, next, err := c.ConsumeNextPush()
	if err != nil {
		return script.Push{}, c, err
	}
	if script.IsConstantPush(push.Opcode) {
		return script.Push{}, c, malformedAt(push.Offset, "%s: opcode 0x%02x is not a data push", field, push.Opcode)
	}
	if !minimalPush(push) {
		return script.Push{}, c, malformedAt(push.Offset, "%s: non-minimal push", field)
	}
	return push, next, nil
}

// sizedPush reads a data push whose length must be one of sizes (in bytes).
func sizedPush(c script.Cursor, field string, sizes ...int) (script.Push, script.Cursor, error) {
	push, next, err := dataPush(c, field)
	if err != nil {
		return push, c, err
	}
	n := len(push.Data) / 2
	for _, size := range sizes {
		if n == size {
			return push, next, nil
		}
	}
	return script.Push{}, c, malformedAt(push.Offset, "%s: invalid length %d", field, n)
}

func minimalPush(p script.Push) bool {
	n := len(p.Data) / 2
	switch {
	case n == 0:
		return p.Opcode == txscript.OP_PUSHDATA1
	case n <= txscript.OP_DATA_75:
		return int(p.Opcode) == n
	case n <= 0xff:
		return p.Opcode == txscript.OP_PUSHDATA1
	case n <= 0xffff:
		return p.Opcode == txscript.OP_PUSHDATA2
	default:
		return p.Opcode == txscript.OP_PUSHDATA4
	}
}

// pushHex encodes data as the shortest push.
func pushHex(data []byte) string {
	n := len(data)
	var header []byte
	switch {
	case n == 0:
		header = []byte{txscript.OP_PUSHDATA1, 0}
	case n <= txscript.OP_DATA_75:
		header = []byte{byte(n)}
	case n <= 0xff:
		header = []byte{txscript.OP_PUSHDATA1, byte(n)}
	case n <= 0xffff:
		header = []byte{txscript.OP_PUSHDATA2, 0, 0}
		binary.LittleEndian.PutUint16(header[1:], uint16(n))
	default:
		header = []byte{txscript.OP_PUSHDATA4, 0, 0, 0, 0}
		binary.LittleEndian.PutUint32(header[1:], uint32(n))
	}
	return hex.EncodeToString(header) + hex.EncodeToString(data)
}

// rawBytes decodes hex already validated by Decode.
func rawBytes(h string) []byte {
	b, _ := hex.DecodeString(h)
	return b
}

func text(h string) string {
	return string(rawBytes(h))
}

func uint64BE(h string) uint64 {
	return binary.BigEndian.Uint64(rawBytes(h))
}

// uint48LE decodes the 6-byte little-endian quantities of ALP.
func uint48LE(h string) uint64 {
	buf := make([]byte, 8)
	copy(buf, rawBytes(h))
	return binary.LittleEndian.Uint64(buf)
}

// restStack returns the data of the pushes left in c. Empty pushes are skipped.
func restStack(c script.Cursor) ([]string, error) {
	var stack []string
	for !c.Empty() {
		push, next, err := c.ConsumeNextPush()
		if err != nil {
			return nil, err
		}
		c = next
		if push.Data != "" {
			stack = append(stack, push.Data)
		}
	}
	return stack, nil
}

func hexString(b []byte) string {
	return hex.EncodeToString(b)
}
