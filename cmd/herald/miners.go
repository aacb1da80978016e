package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/address"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/classify"
)

// defaultMiners are pools with a stable payout script.
var defaultMiners = []classify.KnownMiner{
	{Name: "ViaBTC", Script: "76a914f1c075a01882ae0972f95d3a4177c86c852b7d9188ac", CoinbaseHexFragment: hex.EncodeToString([]byte("ViaBTC")), ParseTag: true},
	{Name: "Mining-Dutch", Script: "76a914a24e2b67689c3753983d3b408bc7690d31b1b74d88ac", CoinbaseHexFragment: hex.EncodeToString([]byte("Mining-Dutch"))},
	{Name: "Molepool", Script: "76a914b89b7be97f768291ed94c0409e8dfdbbdeb32ed088ac"},
	{Name: "zpool", Script: "76a91497b4ae75a3bfab8bf10ef17e133efe34a4a13df788ac"},
	{Name: "zergpool.com", Script: "76a914b70bd84221a2c3f23b9aff76f453edb8d1c6ae0788ac"},
	{Name: "solopool.org", Script: "76a914f4728f398bb962656803346fb4ac45d776041a2e88ac"},
	{Name: "Zulu Pool", Script: "76a9141b1bbcb888b4440a573427f526cb221f657318cf88ac"},
	{Name: "CoinMinerz.com", Script: "76a914637e48a57a3f3d6184f3aaf68b9e2a77400f372c88ac"},
}

// parseKnownMiners reads "script:name" pairs. Configured pools take
// precedence over the defaults.
func parseKnownMiners(pairs []string) ([]classify.KnownMiner, error) {
	miners := make([]classify.KnownMiner, 0, len(pairs)+len(defaultMiners))
	for _, p := range pairs {
		script, name, ok := strings.Cut(p, ":")
		script = strings.ToLower(strings.TrimSpace(script))
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("known miner %q: want script:name", p)
		}
		if _, err := hex.DecodeString(script); err != nil || script == "" {
			return nil, fmt.Errorf("known miner %q: script is not hex", p)
		}
		miners = append(miners, classify.KnownMiner{Name: name, Script: script})
	}
	return append(miners, defaultMiners...), nil
}

// trackedScripts converts cashaddrs to the output scripts they pay to.
func trackedScripts(addrs []string) ([]string, error) {
	scripts := make([]string, 0, len(addrs))
	for _, a := range addrs {
		script, err := address.ToScript(strings.TrimSpace(a))
		if err != nil {
			return nil, fmt.Errorf("tracked address %q: %w", a, err)
		}
		scripts = append(scripts, script)
	}
	return scripts, nil
}
