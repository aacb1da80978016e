package ecash

import (
	"math/big"
	"sort"

	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/model"
)

type tokenTotal struct {
	tokenType model.TokenType
	atoms     *big.Int
	batons    int
	groupID   string
}

func isChild(t model.TokenType) bool {
	return t.Protocol == model.SLP && t.Number == model.SLPNFT1Child
}

func isGroup(t model.TokenType) bool {
	return t.Protocol == model.SLP && t.Number == model.SLPNFT1Group
}

// verifyColors keeps the coloring of txid for the tokens its inputs back and
// returns the ids of the tokens it dropped:
//   - a GENESIS is always backed, except an NFT1 child, which needs a group
//     token at input 0 and is linked to it;
//   - a MINT needs a mint baton of the token among the inputs, unless the
//     token is a mint vault;
//   - a SEND may not color more atoms than its inputs of the token carry.
//
// Children of an NFT1 group keep the group id their inputs carry.
func verifyColors(txid string, colors map[int]model.TokenInfo, minted map[string]bool, inputs []*model.TokenInfo) (map[int]model.TokenInfo, []string) {
	in := make(map[string]*tokenTotal)
	for _, tok := range inputs {
		if tok == nil {
			continue
		}
		t, ok := in[tok.TokenID]
		if !ok {
			t = &tokenTotal{tokenType: tok.TokenType, atoms: new(big.Int)}
			in[tok.TokenID] = t
		}
		if t.tokenType != tok.TokenType {
			continue
		}
		if t.groupID == "" {
			t.groupID = tok.GroupTokenID
		}
		if tok.IsMintBaton {
			t.batons++
			continue
		}
		t.atoms.Add(t.atoms, new(big.Int).SetUint64(tok.Atoms))
	}

	out := make(map[string]*tokenTotal)
	for _, info := range colors {
		t, ok := out[info.TokenID]
		if !ok {
			t = &tokenTotal{tokenType: info.TokenType, atoms: new(big.Int)}
			out[info.TokenID] = t
		}
		t.atoms.Add(t.atoms, new(big.Int).SetUint64(info.Atoms))
	}

	groups := make(map[string]string, len(out))
	var dropped []string
	for tokenID, o := range out {
		group, ok := backed(txid, tokenID, o, minted[tokenID], in, inputs)
		if !ok {
			dropped = append(dropped, tokenID)
			continue
		}
		groups[tokenID] = group
	}
	sort.Strings(dropped)

	verified := make(map[int]model.TokenInfo, len(colors))
	for idx, info := range colors {
		group, ok := groups[info.TokenID]
		if !ok {
			continue
		}
		info.GroupTokenID = group
		verified[idx] = info
	}
	return verified, dropped
}

// backed reports whether the inputs back the outputs o of tokenID, and the
// NFT1 group the token belongs to.
func backed(txid, tokenID string, o *tokenTotal, mints bool, in map[string]*tokenTotal, inputs []*model.TokenInfo) (string, bool) {
	if tokenID == txid {
		if !isChild(o.tokenType) {
			return "", true
		}
		if len(inputs) == 0 || inputs[0] == nil {
			return "", false
		}
		first := inputs[0]
		if !isGroup(first.TokenType) || first.IsMintBaton || first.Atoms == 0 {
			return "", false
		}
		return first.TokenID, true
	}

	if mints && o.tokenType.Protocol == model.SLP && o.tokenType.Number == model.SLPMintVault {
		return "", true
	}
	t, ok := in[tokenID]
	if !ok || t.tokenType != o.tokenType {
		return "", false
	}
	if mints {
		return t.groupID, t.batons > 0
	}
	return t.groupID, o.atoms.Cmp(t.atoms) <= 0
}
