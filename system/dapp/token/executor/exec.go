package executor

import (
	"github.com/33cn/rps/account"
	"github.com/33cn/rps/common/address"
	tokenty "github.com/33cn/rps/system/dapp/token/types"
	"github.com/33cn/rps/types"
)

func (t *Token) Exec_Create(payload *tokenty.TokenCreate, tx *types.Transaction, index int) (*types.Receipt, error) {
	if err := account.CheckSymbol(payload.Symbol); err != nil {
		return nil, err
	}
	if len(payload.Name) == 0 || len(payload.Name) > types.TokenNameLenLimit {
		return nil, types.ErrTokenName
	}
	if !types.CheckAmount(payload.Total) {
		return nil, types.ErrTokenTotalOverflow
	}
	db := t.GetStateDB()
	if _, err := tokenty.LoadTokenInfo(db, payload.Symbol); err == nil {
		return nil, types.ErrTokenExist
	}
	info := &tokenty.TokenInfo{
		Symbol:     payload.Symbol,
		Name:       payload.Name,
		Total:      payload.Total,
		Owner:      tx.From,
		CreateTime: t.GetBlockTime(),
	}
	kv := &types.KeyValue{Key: tokenty.CalcTokenInfoKey(info.Symbol), Value: types.Encode(info)}
	db.Set(kv.Key, kv.Value)

	acc, err := account.NewTokenAccount(payload.Symbol, db)
	if err != nil {
		return nil, err
	}
	receipt, err := acc.Mint(tx.From, payload.Total)
	if err != nil {
		return nil, err
	}
	tokenlog.Info("Create", "symbol", info.Symbol, "owner", info.Owner, "total", info.Total)
	created := &types.Receipt{
		Ty:   types.ExecOk,
		KV:   []*types.KeyValue{kv},
		Logs: []*types.ReceiptLog{{Ty: types.TyLogTokenCreate, Log: types.Encode(info)}},
	}
	return types.MergeReceipt(created, receipt), nil
}

func (t *Token) Exec_Transfer(payload *tokenty.TokenTransfer, tx *types.Transaction, index int) (*types.Receipt, error) {
	to, err := address.Normalize(payload.To)
	if err != nil {
		return nil, err
	}
	acc, err := t.getAccount(payload.Symbol)
	if err != nil {
		return nil, err
	}
	return acc.Transfer(tx.From, to, payload.Amount)
}

func (t *Token) Exec_Approve(payload *tokenty.TokenApprove, tx *types.Transaction, index int) (*types.Receipt, error) {
	spender, err := address.Normalize(payload.Spender)
	if err != nil {
		return nil, err
	}
	acc, err := t.getAccount(payload.Symbol)
	if err != nil {
		return nil, err
	}
	return acc.Approve(tx.From, spender, payload.Amount)
}

func (t *Token) Exec_TransferFrom(payload *tokenty.TokenTransferFrom, tx *types.Transaction, index int) (*types.Receipt, error) {
	owner, err := address.Normalize(payload.From)
	if err != nil {
		return nil, err
	}
	to, err := address.Normalize(payload.To)
	if err != nil {
		return nil, err
	}
	acc, err := t.getAccount(payload.Symbol)
	if err != nil {
		return nil, err
	}
	return acc.TransferFrom(tx.From, owner, to, payload.Amount)
}
