package protocol

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/model"
)

// EncodeSLP serializes an SLP Genesis, Mint, Send or Burn into an OP_RETURN
// output script using the shortest pushes.
func EncodeSLP(a Action) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%02x", txscript.OP_RETURN)
	b.WriteString(pushHex(rawBytes(slpLokad)))

	writeHeader := func(tokenType model.TokenType, txType string) error {
		if tokenType.Protocol != model.SLP {
			return fmt.Errorf("%w: %s token type", ErrUnsupportedAction, tokenType.Protocol)
		}
		b.WriteString(pushHex([]byte{tokenType.Number}))
		b.WriteString(pushHex([]byte(txType)))
		return nil
	}
	writeAtoms := func(atoms ...uint64) {
		for _, qty := range atoms {
			buf := make([]byte, atomsSize)
			binary.BigEndian.PutUint64(buf, qty)
			b.WriteString(pushHex(buf))
		}
	}
	writeBaton := func(idx uint8) {
		if idx == 0 {
			b.WriteString(pushHex(nil))
			return
		}
		b.WriteString(pushHex([]byte{idx}))
	}

	switch v := a.(type) {
	case Genesis:
		if err := writeHeader(v.TokenType, "GENESIS"); err != nil {
			return "", err
		}
		if len(v.Atoms) != 1 {
			return "", fmt.Errorf("%w: SLP GENESIS needs exactly one quantity", ErrUnsupportedAction)
		}
		b.WriteString(pushHex([]byte(v.Ticker)))
		b.WriteString(pushHex([]byte(v.Name)))
		b.WriteString(pushHex([]byte(v.URL)))
		b.WriteString(pushHex(rawBytes(v.Hash)))
		b.WriteString(pushHex([]byte{v.Decimals}))
		if v.TokenType.Number == model.SLPMintVault {
			b.WriteString(pushHex(rawBytes(v.MintVaultScripthash)))
		} else {
			writeBaton(v.MintBatonOutIdx)
		}
		writeAtoms(v.Atoms...)
	case Mint:
		if err := writeHeader(v.TokenType, "MINT"); err != nil {
			return "", err
		}
		b.WriteString(pushHex(rawBytes(v.TokenID)))
		if v.TokenType.Number == model.SLPMintVault {
			writeAtoms(v.Atoms...)
			break
		}
		if len(v.Atoms) != 1 {
			return "", fmt.Errorf("%w: SLP MINT needs exactly one quantity", ErrUnsupportedAction)
		}
		writeBaton(v.MintBatonOutIdx)
		writeAtoms(v.Atoms...)
	case Send:
		if err := writeHeader(v.TokenType, "SEND"); err != nil {
			return "", err
		}
		b.WriteString(pushHex(rawBytes(v.TokenID)))
		writeAtoms(v.Atoms...)
	case Burn:
		if err := writeHeader(v.TokenType, "BURN"); err != nil {
			return "", err
		}
		b.WriteString(pushHex(rawBytes(v.TokenID)))
		writeAtoms(v.Atoms)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedAction, a.Kind())
	}
	return b.String(), nil
}
