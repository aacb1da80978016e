package clickhouse

import (
	"strings"

	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/model"
)

func (s *RepositorySuite) TestPrevOutputs() {
	var (
		complete = strings.Repeat("a", 64)
		partial  = strings.Repeat("b", 64)
		orphan   = strings.Repeat("c", 64)
		other    = strings.Repeat("d", 64)
		unknown  = strings.Repeat("e", 64)
	)
	s.seedTransactions([]storedTx{
		{coin: DefaultCoin, network: DefaultNetwork, txid: complete, height: 10, outputCount: 2},
		{coin: DefaultCoin, network: DefaultNetwork, txid: partial, height: 10, outputCount: 3},
		{coin: DefaultCoin, network: "testnet", txid: other, height: 10, outputCount: 1},
	})
	s.seedTransactionOutputs([]storedOutput{
		{coin: DefaultCoin, network: DefaultNetwork, txid: complete, index: 1, value: 546, script: "76a914"},
		{coin: DefaultCoin, network: DefaultNetwork, txid: complete, index: 0, value: 0, script: "6a04534c5000"},
		{coin: DefaultCoin, network: DefaultNetwork, txid: partial, index: 0, value: 1000, script: "76a914"},
		{coin: DefaultCoin, network: DefaultNetwork, txid: partial, index: 1, value: 2000, script: "76a914"},
		{coin: DefaultCoin, network: DefaultNetwork, txid: orphan, index: 0, value: 3000, script: "a914"},
		{coin: DefaultCoin, network: "testnet", txid: other, index: 0, value: 4000, script: "76a914"},
	})

	s.metrics.EXPECT().Observe("prev_outputs", gomock.Nil(), gomock.Any()).Times(1)
	s.metrics.EXPECT().ObserveRows("prev_outputs", 5).Times(1)

	got, err := s.repo.PrevOutputs(s.testCtx, []string{complete, partial, orphan, other, unknown})
	s.Require().NoError(err)
	s.Equal(map[string][]model.RawOutput{
		complete: {
			{Value: 0, ScriptHex: "6a04534c5000"},
			{Value: 546, ScriptHex: "76a914"},
		},
	}, got)
}

func (s *RepositorySuite) TestPrevOutputs_NothingStored() {
	s.metrics.EXPECT().Observe("prev_outputs", gomock.Nil(), gomock.Any()).Times(1)
	s.metrics.EXPECT().ObserveRows("prev_outputs", 0).Times(1)

	got, err := s.repo.PrevOutputs(s.testCtx, []string{strings.Repeat("f", 64)})
	s.Require().NoError(err)
	s.Empty(got)
}
