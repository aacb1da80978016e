// Package address converts eCash output scripts to and from cashaddr strings.
package address

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	btcchaincfg "github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/gcash/bchd/chaincfg"
	"github.com/gcash/bchutil"
)

// Prefix is the human readable part of eCash mainnet addresses.
const Prefix = "ecash"

// Type is the cashaddr version type.
type Type uint8

const (
	TypeP2PKH Type = 0
	TypeP2SH  Type = 1
)

const hashSize = 20

// params returns network parameters carrying only a cashaddr prefix.
func params(prefix string) *chaincfg.Params {
	return &chaincfg.Params{CashAddressPrefix: prefix}
}

// Encode returns the cashaddr of a 20-byte hash.
func Encode(prefix string, t Type, hash []byte) (string, error) {
	var (
		addr bchutil.Address
		err  error
	)
	switch t {
	case TypeP2PKH:
		addr, err = bchutil.NewAddressPubKeyHash(hash, params(prefix))
	case TypeP2SH:
		addr, err = bchutil.NewAddressScriptHashFromHash(hash, params(prefix))
	default:
		return "", fmt.Errorf("%w: unknown type %d", ErrInvalidAddress, t)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	encoded := addr.EncodeAddress()
	if !strings.Contains(encoded, ":") {
		encoded = prefix + ":" + encoded
	}
	return encoded, nil
}

// Decode parses a cashaddr. A missing prefix is read as defaultPrefix.
func Decode(addr, defaultPrefix string) (string, Type, []byte, error) {
	if strings.ToLower(addr) != addr && strings.ToUpper(addr) != addr {
		return "", 0, nil, fmt.Errorf("%w: mixed case", ErrInvalidAddress)
	}
	addr = strings.ToLower(addr)
	if !strings.Contains(addr, ":") {
		addr = defaultPrefix + ":" + addr
	}

	hash, prefix, t, err := bchutil.CheckDecodeCashAddress(addr)
	if err != nil {
		return "", 0, nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if len(hash) != hashSize {
		return "", 0, nil, fmt.Errorf("%w: unsupported hash size", ErrInvalidAddress)
	}
	switch t {
	case bchutil.AddrTypePayToPubKeyHash:
		return prefix, TypeP2PKH, hash, nil
	case bchutil.AddrTypePayToScriptHash:
		return prefix, TypeP2SH, hash, nil
	default:
		return "", 0, nil, fmt.Errorf("%w: unknown type %d", ErrInvalidAddress, t)
	}
}

// FromScript returns the cashaddr paying to an output script. Pay-to-pubkey
// outputs are shown as the P2PKH address of their key.
func FromScript(scriptHex string) (string, error) {
	raw, err := hex.DecodeString(scriptHex)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnsupportedScript, err)
	}
	class, addrs, _, err := txscript.ExtractPkScriptAddrs(raw, &btcchaincfg.MainNetParams)
	if err != nil || len(addrs) == 0 {
		return "", ErrUnsupportedScript
	}
	switch class {
	case txscript.PubKeyHashTy:
		return Encode(Prefix, TypeP2PKH, addrs[0].ScriptAddress())
	case txscript.ScriptHashTy:
		return Encode(Prefix, TypeP2SH, addrs[0].ScriptAddress())
	case txscript.PubKeyTy:
		return Encode(Prefix, TypeP2PKH, btcutil.Hash160(addrs[0].ScriptAddress()))
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedScript, class)
	}
}

// ToScript returns the output script hex paying to addr.
func ToScript(addr string) (string, error) {
	_, t, hash, err := Decode(addr, Prefix)
	if err != nil {
		return "", err
	}
	var script []byte
	if t == TypeP2SH {
		script, err = txscript.NewScriptBuilder().
			AddOp(txscript.OP_HASH160).AddData(hash).AddOp(txscript.OP_EQUAL).
			Script()
	} else {
		script, err = txscript.NewScriptBuilder().
			AddOp(txscript.OP_DUP).AddOp(txscript.OP_HASH160).AddData(hash).
			AddOp(txscript.OP_EQUALVERIFY).AddOp(txscript.OP_CHECKSIG).
			Script()
	}
	if err != nil {
		return "", fmt.Errorf("build script: %w", err)
	}
	return hex.EncodeToString(script), nil
}

// Short renders the last four characters of an address, e.g. "...q7xz".
func Short(addr string) string {
	if len(addr) < 4 {
		return "..." + addr
	}
	return "..." + addr[len(addr)-4:]
}
