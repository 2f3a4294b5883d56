package executor

import (
	tokenty "github.com/33cn/rps/system/dapp/token/types"
	"github.com/33cn/rps/types"
)

func (t *Token) ExecLocal_Create(payload *tokenty.TokenCreate, tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	var set types.LocalDBSet
	for _, l := range receipt.Logs {
		if l.Ty != types.TyLogTokenCreate {
			continue
		}
		var info tokenty.TokenInfo
		if err := types.Decode(l.Log, &info); err != nil {
			return nil, err
		}
		set.KV = append(set.KV, &types.KeyValue{Key: tokenty.CalcTokenListKey(info.Symbol), Value: []byte(info.Symbol)})
	}
	return &set, nil
}
