package protocol

import (
	"bytes"
	"errors"
	"io"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/model"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/script"
)

const (
	alpMaxSize   = 127
	alpAtomsSize = 6
)

// decodeALPSection decodes an ALP section; c starts right after the "SLP2" lokad.
func decodeALPSection(c script.Cursor) (Action, error) {
	typeByte, c, err := c.ConsumeByte()
	if err != nil {
		return nil, err
	}
	tokenType := model.NewTokenType(model.ALP, typeByte)
	if !tokenType.Known() {
		return TokenUnknown{TokenType: tokenType, TxType: "UNKNOWN"}, nil
	}

	txTypeOffset := c.Offset()
	txType, c, err := varBytes(c)
	if err != nil {
		return nil, err
	}

	var action Action
	switch string(txType) {
	case "GENESIS":
		action, c, err = alpGenesis(tokenType, c)
	case "MINT":
		action, c, err = alpMint(tokenType, c)
	case "SEND":
		action, c, err = alpSend(tokenType, c)
	case "BURN":
		action, c, err = alpBurn(tokenType, c)
	default:
		return nil, malformedAt(txTypeOffset, "unknown ALP txType %q", string(txType))
	}
	if err != nil {
		return nil, err
	}
	if !c.Empty() {
		return nil, malformedAt(c.Offset(), "superfluous ALP bytes")
	}
	return action, nil
}

func alpGenesis(tokenType model.TokenType, c script.Cursor) (Action, script.Cursor, error) {
	g := Genesis{TokenType: tokenType}
	fields := []*string{&g.Ticker, &g.Name, &g.URL, &g.Data, &g.AuthPubkey}
	for i, field := range fields {
		raw, next, err := varBytes(c)
		if err != nil {
			return nil, c, err
		}
		c = next
		if i < 3 {
			*field = string(raw)
		} else {
			*field = hexString(raw)
		}
	}

	decimalsOffset := c.Offset()
	decimals, c, err := c.ConsumeByte()
	if err != nil {
		return nil, c, err
	}
	if decimals > slpMaxDecimals {
		return nil, c, malformedAt(decimalsOffset, "decimals %d above %d", decimals, slpMaxDecimals)
	}
	g.Decimals = decimals

	g.Atoms, g.NumBatons, c, err = alpMintData(c)
	if err != nil {
		return nil, c, err
	}
	return g, c, nil
}

func alpMint(tokenType model.TokenType, c script.Cursor) (Action, script.Cursor, error) {
	tokenID, c, err := alpTokenID(c)
	if err != nil {
		return nil, c, err
	}
	m := Mint{TokenType: tokenType, TokenID: tokenID}
	m.Atoms, m.NumBatons, c, err = alpMintData(c)
	if err != nil {
		return nil, c, err
	}
	return m, c, nil
}

func alpSend(tokenType model.TokenType, c script.Cursor) (Action, script.Cursor, error) {
	tokenID, c, err := alpTokenID(c)
	if err != nil {
		return nil, c, err
	}
	atoms, c, err := alpAtomsArray(c)
	if err != nil {
		return nil, c, err
	}
	return Send{TokenType: tokenType, TokenID: tokenID, Atoms: atoms}, c, nil
}

func alpBurn(tokenType model.TokenType, c script.Cursor) (Action, script.Cursor, error) {
	tokenID, c, err := alpTokenID(c)
	if err != nil {
		return nil, c, err
	}
	qty, c, err := c.Consume(alpAtomsSize)
	if err != nil {
		return nil, c, err
	}
	return Burn{TokenType: tokenType, TokenID: tokenID, Atoms: uint48LE(qty)}, c, nil
}

func alpMintData(c script.Cursor) ([]uint64, uint8, script.Cursor, error) {
	atoms, c, err := alpAtomsArray(c)
	if err != nil {
		return nil, 0, c, err
	}
	batonsOffset := c.Offset()
	numBatons, c, err := c.ConsumeByte()
	if err != nil {
		return nil, 0, c, err
	}
	if numBatons > alpMaxSize {
		return nil, 0, c, malformedAt(batonsOffset, "numBatons %d above %d", numBatons, alpMaxSize)
	}
	return atoms, numBatons, c, nil
}

func alpAtomsArray(c script.Cursor) ([]uint64, script.Cursor, error) {
	countOffset := c.Offset()
	count, c, err := c.ConsumeByte()
	if err != nil {
		return nil, c, err
	}
	if count > alpMaxSize {
		return nil, c, malformedAt(countOffset, "atoms array size %d above %d", count, alpMaxSize)
	}
	atoms := make([]uint64, 0, count)
	for i := 0; i < int(count); i++ {
		var qty string
		qty, c, err = c.Consume(alpAtomsSize)
		if err != nil {
			return nil, c, err
		}
		atoms = append(atoms, uint48LE(qty))
	}
	return atoms, c, nil
}

// alpTokenID reads a little-endian token id and returns it in display order.
func alpTokenID(c script.Cursor) (string, script.Cursor, error) {
	raw, next, err := c.Consume(tokenIDSize)
	if err != nil {
		return "", c, err
	}
	id, err := script.SwapEndianness(raw)
	if err != nil {
		return "", c, err
	}
	return id, next, nil
}

// varBytes reads a CompactSize-prefixed byte string. Non-canonical sizes are
// malformed.
func varBytes(c script.Cursor) ([]byte, script.Cursor, error) {
	start := c.Offset()
	r := bytes.NewReader(rawBytes(c.Rest()))
	size, err := wire.ReadVarInt(r, 0)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return nil, c, &script.InsufficientDataError{Offset: start, Need: c.Remaining() + 1, Have: c.Remaining()}
	case err != nil:
		return nil, c, malformedAt(start, "size: %v", err)
	}
	if _, c, err = c.Consume(c.Remaining() - r.Len()); err != nil {
		return nil, c, err
	}
	if size > uint64(c.Remaining()) {
		return nil, c, &script.InsufficientDataError{Offset: c.Offset(), Need: clampSize(size), Have: c.Remaining()}
	}
	h, c, err := c.Consume(int(size))
	if err != nil {
		return nil, c, malformedAt(start, "%v", err)
	}
	return rawBytes(h), c, nil
}

func clampSize(size uint64) int {
	const maxInt = int(^uint(0) >> 1)
	if size > uint64(maxInt) {
		return maxInt
	}
	return int(size)
}

// decodeAgoraSection reads the offer variant of an Agora section.
func decodeAgoraSection(c script.Cursor) (Action, error) {
	variant, _, err := varBytes(c)
	if err != nil {
		return nil, err
	}
	kind := string(variant)
	switch kind {
	case "ONESHOT", "PARTIAL":
	default:
		return nil, malformedAt(c.Offset(), "unknown Agora variant %q", kind)
	}
	return AppMessage{App: ProtocolAgora, Action: kind, Message: "Agora " + kind + " offer"}, nil
}
