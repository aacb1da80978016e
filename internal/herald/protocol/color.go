package protocol

import "github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/model"

// ColorOutputs assigns the quantities and batons declared by a decoded payload
// to output indexes of the transaction txid. Output 0 and indexes past
// outputCount are never colored, and an output keeps its first coloring.
func ColorOutputs(txid string, d Decoded, outputCount int) map[int]model.TokenInfo {
	colors := make(map[int]model.TokenInfo)
	assign := func(idx int, info model.TokenInfo) {
		if idx <= 0 || idx >= outputCount {
			return
		}
		if _, taken := colors[idx]; taken {
			return
		}
		colors[idx] = info
	}
	assignAtoms := func(tokenID string, tokenType model.TokenType, atoms []uint64) {
		for i, qty := range atoms {
			if qty == 0 {
				continue
			}
			assign(i+1, model.TokenInfo{TokenID: tokenID, TokenType: tokenType, Atoms: qty})
		}
	}
	assignBatons := func(tokenID string, tokenType model.TokenType, slpIdx, numBatons uint8, atoms int) {
		baton := model.TokenInfo{TokenID: tokenID, TokenType: tokenType, IsMintBaton: true}
		if slpIdx > 0 {
			assign(int(slpIdx), baton)
		}
		for i := 0; i < int(numBatons); i++ {
			assign(atoms+1+i, baton)
		}
	}

	for _, a := range d.Actions {
		switch v := a.(type) {
		case Genesis:
			assignAtoms(txid, v.TokenType, v.Atoms)
			assignBatons(txid, v.TokenType, v.MintBatonOutIdx, v.NumBatons, len(v.Atoms))
		case Mint:
			assignAtoms(v.TokenID, v.TokenType, v.Atoms)
			assignBatons(v.TokenID, v.TokenType, v.MintBatonOutIdx, v.NumBatons, len(v.Atoms))
		case Send:
			assignAtoms(v.TokenID, v.TokenType, v.Atoms)
		}
	}
	return colors
}
