package classify

import (
	"encoding/hex"
	"strings"

	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/address"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/model"
)

const (
	stakingActivationHeight = 818670
	stakingRewardPercent    = 10
	stakerPercentPadding    = 1

	// MinerFundScript is the output script of the eCash miner fund.
	MinerFundScript = "a914d37c4c809fe9840e7bfa77b86bd47163f6fb6c6087"

	// coinbase tags are delimited by "/"
	tagSeparator = "2f"
)

// KnownMiner identifies a mining pool by payout script or by a fragment of
// its coinbase scriptSig.
type KnownMiner struct {
	Name                string
	Script              string
	CoinbaseHexFragment string
	// ParseTag appends the "/.../" tag following the fragment, e.g. "ViaBTC, Mined by 260786".
	ParseTag bool
}

func annotateCoinbase(tx *model.RawTransaction, miners []KnownMiner) *CoinbaseInfo {
	info := &CoinbaseInfo{}
	for _, out := range tx.Outputs {
		info.TotalReward += out.Value
		if out.ScriptHex == MinerFundScript {
			info.MinerFund += out.Value
		}
	}
	scriptSig := ""
	if len(tx.Inputs) > 0 {
		scriptSig = strings.ToLower(tx.Inputs[0].ScriptHex)
	}
	info.Miner = minerName(scriptSig, tx.Outputs, miners)
	info.Staker = findStaker(tx.BlockHeight, tx.Outputs, info.TotalReward)
	return info
}

func findStaker(height uint64, outputs []model.RawOutput, total int64) *Staker {
	if height < stakingActivationHeight {
		return nil
	}
	minValue := total * stakingRewardPercent / 100
	maxValue := total * (stakingRewardPercent + stakerPercentPadding) / 100
	for _, out := range outputs {
		if out.Value >= minValue && out.Value <= maxValue {
			return &Staker{Script: out.ScriptHex, Address: displayAddress(out.ScriptHex), Reward: out.Value}
		}
	}
	return nil
}

func minerName(scriptSig string, outputs []model.RawOutput, miners []KnownMiner) string {
	var found *KnownMiner
	for _, out := range outputs {
		for i := range miners {
			if miners[i].Script != "" && miners[i].Script == out.ScriptHex {
				found = &miners[i]
				break
			}
		}
		if found != nil {
			break
		}
	}
	if found == nil {
		for i := range miners {
			if miners[i].CoinbaseHexFragment != "" && strings.Contains(scriptSig, miners[i].CoinbaseHexFragment) {
				found = &miners[i]
			}
		}
	}

	if found == nil {
		if len(outputs) == 0 {
			return "unknown"
		}
		addr, err := address.FromScript(outputs[0].ScriptHex)
		if err != nil {
			return "unknown"
		}
		return "unknown, " + address.Short(addr)
	}

	if !found.ParseTag || found.CoinbaseHexFragment == "" {
		return found.Name
	}
	tag := coinbaseTag(scriptSig, found.CoinbaseHexFragment)
	switch strings.ToLower(tag) {
	case "":
		return found.Name
	case "mined by iceberg":
		return tag[len("mined by "):]
	default:
		return found.Name + ", " + tag
	}
}

// coinbaseTag returns the ASCII of the "/"-delimited part right after the one
// holding fragment.
func coinbaseTag(scriptSig, fragment string) string {
	parts := strings.Split(scriptSig, tagSeparator)
	for i, part := range parts {
		if !strings.Contains(part, fragment) {
			continue
		}
		if i+1 >= len(parts) {
			return ""
		}
		raw, err := hex.DecodeString(parts[i+1])
		if err != nil {
			return ""
		}
		return string(raw)
	}
	return ""
}

// displayAddress renders a script as cashaddr, or as script(<hex>).
func displayAddress(script string) string {
	addr, err := address.FromScript(script)
	if err != nil {
		return "script(" + script + ")"
	}
	return addr
}
