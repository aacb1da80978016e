package protocol

import (
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/model"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/script"
)

const (
	slpMaxOutputs  = 19
	slpMaxDecimals = 9
	tokenIDSize    = 32
	atomsSize      = 8
)

func decodeSLP(_ script.Push, c script.Cursor) (Action, error) {
	typePush, c, err := sizedPush(c, "tokenType", 1)
	if err != nil {
		return nil, err
	}
	tokenType := model.NewTokenType(model.SLP, rawBytes(typePush.Data)[0])
	if !tokenType.Known() {
		return TokenUnknown{TokenType: tokenType, TxType: "UNKNOWN"}, nil
	}

	txPush, c, err := dataPush(c, "txType")
	if err != nil {
		return nil, err
	}

	var action Action
	switch txType := text(txPush.Data); txType {
	case "GENESIS":
		action, c, err = slpGenesis(tokenType, c)
	case "MINT":
		if tokenType.Number == model.SLPNFT1Child {
			return nil, malformedAt(txPush.Offset, "NFT1 child cannot have MINT transactions")
		}
		action, c, err = slpMint(tokenType, c)
	case "SEND":
		action, c, err = slpSend(tokenType, c)
	case "BURN":
		action, c, err = slpBurn(tokenType, c)
	case "COMMIT":
		action, c, err = slpCommit(tokenType, c)
	default:
		return nil, malformedAt(txPush.Offset, "unknown txType %q", txType)
	}
	if err != nil {
		return nil, err
	}
	if !c.Empty() {
		return nil, malformedAt(c.Offset(), "superfluous SLP bytes")
	}
	return action, nil
}

func slpGenesis(tokenType model.TokenType, c script.Cursor) (Action, script.Cursor, error) {
	g := Genesis{TokenType: tokenType}

	ticker, c, err := dataPush(c, "tokenTicker")
	if err != nil {
		return nil, c, err
	}
	name, c, err := dataPush(c, "tokenName")
	if err != nil {
		return nil, c, err
	}
	url, c, err := dataPush(c, "url")
	if err != nil {
		return nil, c, err
	}
	hash, c, err := sizedPush(c, "hash", 0, 32)
	if err != nil {
		return nil, c, err
	}
	decimals, c, err := sizedPush(c, "decimals", 1)
	if err != nil {
		return nil, c, err
	}
	g.Ticker, g.Name, g.URL, g.Hash = text(ticker.Data), text(name.Data), text(url.Data), hash.Data
	g.Decimals = rawBytes(decimals.Data)[0]
	if g.Decimals > slpMaxDecimals {
		return nil, c, malformedAt(decimals.Offset, "decimals %d above %d", g.Decimals, slpMaxDecimals)
	}

	if tokenType.Number == model.SLPMintVault {
		scripthash, next, err := sizedPush(c, "mintVaultScripthash", 20)
		if err != nil {
			return nil, c, err
		}
		g.MintVaultScripthash, c = scripthash.Data, next
	} else {
		baton, next, err := sizedPush(c, "mintBatonOutIdx", 0, 1)
		if err != nil {
			return nil, c, err
		}
		if baton.Data != "" {
			if g.MintBatonOutIdx, err = batonIndex(baton); err != nil {
				return nil, c, err
			}
			if tokenType.Number == model.SLPNFT1Child {
				return nil, c, malformedAt(baton.Offset, "NFT1 child GENESIS cannot have a mint baton")
			}
		}
		c = next
	}

	qty, c, err := sizedPush(c, "initialAtoms", atomsSize)
	if err != nil {
		return nil, c, err
	}
	g.Atoms = []uint64{uint64BE(qty.Data)}

	if tokenType.Number == model.SLPNFT1Child {
		if g.Decimals != 0 {
			return nil, c, malformedAt(decimals.Offset, "NFT1 child GENESIS must have 0 decimals")
		}
		if g.Atoms[0] != 1 {
			return nil, c, malformedAt(qty.Offset, "NFT1 child GENESIS must have a quantity of 1")
		}
	}
	return g, c, nil
}

func batonIndex(p script.Push) (uint8, error) {
	idx := rawBytes(p.Data)[0]
	if idx < 2 {
		return 0, malformedAt(p.Offset, "mintBatonOutIdx %d below 2", idx)
	}
	return idx, nil
}

func slpMint(tokenType model.TokenType, c script.Cursor) (Action, script.Cursor, error) {
	tokenID, c, err := sizedPush(c, "tokenId", tokenIDSize)
	if err != nil {
		return nil, c, err
	}
	m := Mint{TokenType: tokenType, TokenID: tokenID.Data}

	if tokenType.Number == model.SLPMintVault {
		m.Atoms, c, err = slpAtomsList(c)
		if err != nil {
			return nil, c, err
		}
		return m, c, nil
	}

	baton, c, err := sizedPush(c, "mintBatonOutIdx", 0, 1)
	if err != nil {
		return nil, c, err
	}
	if baton.Data != "" {
		if m.MintBatonOutIdx, err = batonIndex(baton); err != nil {
			return nil, c, err
		}
	}
	qty, c, err := sizedPush(c, "additionalAtoms", atomsSize)
	if err != nil {
		return nil, c, err
	}
	m.Atoms = []uint64{uint64BE(qty.Data)}
	return m, c, nil
}

func slpSend(tokenType model.TokenType, c script.Cursor) (Action, script.Cursor, error) {
	tokenID, c, err := sizedPush(c, "tokenId", tokenIDSize)
	if err != nil {
		return nil, c, err
	}
	atoms, c, err := slpAtomsList(c)
	if err != nil {
		return nil, c, err
	}
	return Send{TokenType: tokenType, TokenID: tokenID.Data, Atoms: atoms}, c, nil
}

// slpAtomsList reads 1..19 quantities up to the end of the payload.
func slpAtomsList(c script.Cursor) ([]uint64, script.Cursor, error) {
	var atoms []uint64
	for len(atoms) == 0 || !c.Empty() {
		if len(atoms) == slpMaxOutputs {
			return nil, c, malformedAt(c.Offset(), "more than %d output quantities", slpMaxOutputs)
		}
		qty, next, err := sizedPush(c, "atoms", atomsSize)
		if err != nil {
			return nil, c, err
		}
		atoms = append(atoms, uint64BE(qty.Data))
		c = next
	}
	return atoms, c, nil
}

func slpBurn(tokenType model.TokenType, c script.Cursor) (Action, script.Cursor, error) {
	tokenID, c, err := sizedPush(c, "tokenId", tokenIDSize)
	if err != nil {
		return nil, c, err
	}
	qty, c, err := sizedPush(c, "burnAtoms", atomsSize)
	if err != nil {
		return nil, c, err
	}
	return Burn{TokenType: tokenType, TokenID: tokenID.Data, Atoms: uint64BE(qty.Data)}, c, nil
}

func slpCommit(tokenType model.TokenType, c script.Cursor) (Action, script.Cursor, error) {
	tokenID, c, err := sizedPush(c, "tokenId", tokenIDSize)
	if err != nil {
		return nil, c, err
	}
	if _, c, err = sizedPush(c, "forBitcoinBlockHash", 32); err != nil {
		return nil, c, err
	}
	if _, c, err = sizedPush(c, "blockHeight", 8); err != nil {
		return nil, c, err
	}
	if _, c, err = sizedPush(c, "tokenTxnSetHash", 32); err != nil {
		return nil, c, err
	}
	if _, c, err = dataPush(c, "txnSetDataUrl"); err != nil {
		return nil, c, err
	}
	return TokenUnknown{TokenType: tokenType, TxType: "COMMIT", TokenID: tokenID.Data}, c, nil
}
