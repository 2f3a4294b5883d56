package executor

import (
	rpsty "github.com/33cn/rps/system/dapp/rps/types"
	"github.com/33cn/rps/types"
)

// ExecLocal_NewGame 给两个玩家建立游戏索引，其他动作不改变索引
func (r *Rps) ExecLocal_NewGame(payload *rpsty.RpsNewGame, tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	var set types.LocalDBSet
	for _, l := range receipt.Logs {
		if l.Ty != rpsty.TyLogRpsNewGame {
			continue
		}
		var rec rpsty.ReceiptRps
		if err := types.Decode(l.Log, &rec); err != nil {
			return nil, err
		}
		gi := types.Encode(&rpsty.GameIndex{GameId: rec.GameId, Index: rec.Index})
		for _, addr := range rec.Players {
			set.KV = append(set.KV,
				&types.KeyValue{Key: calcPlayerGameKey(addr, rec.Index), Value: gi},
				&types.KeyValue{Key: calcPlayerKey(addr), Value: []byte(addr)},
			)
		}
	}
	return &set, nil
}
