// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package account 实现 ERC20 风格的代币账本

1. load from db
2. save to db
3. KVSet
4. Transfer / TransferFrom / Approve
5. Mint
6. Account balance query
*/
package account

import (
	"strings"

	dbm "github.com/33cn/rps/common/db"
	"github.com/33cn/rps/types"
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

var alog = log.New("module", "account")

// DB for account
type DB struct {
	db                 dbm.KV
	symbol             string
	accountKeyPerfix   []byte
	allowanceKeyPerfix []byte
}

// NewTokenAccount 某个代币的账本
func NewTokenAccount(symbol string, db dbm.KV) (*DB, error) {
	if err := CheckSymbol(symbol); err != nil {
		return nil, err
	}
	prefix := SymbolPrefix(symbol)
	acc := &DB{
		symbol:             symbol,
		accountKeyPerfix:   []byte(prefix),
		allowanceKeyPerfix: []byte(prefix + "allow-"),
	}
	acc.SetDB(db)
	return acc, nil
}

// CheckSymbol 代币符号只能是大写字母和数字，不能含有 "-"
func CheckSymbol(symbol string) error {
	if len(symbol) == 0 || len(symbol) > types.TokenSymbolLenLimit {
		return types.ErrTokenSymbol
	}
	if strings.ContainsRune(symbol, '-') {
		return types.ErrTokenSymbol
	}
	for _, c := range symbol {
		if !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') {
			return types.ErrTokenSymbol
		}
	}
	return nil
}

// SymbolPrefix 账户 key 的前缀
func SymbolPrefix(symbol string) string {
	return "mavl-token-" + symbol + "-"
}

// SetDB set db
func (acc *DB) SetDB(db dbm.KV) *DB {
	acc.db = db
	return acc
}

// Symbol 代币符号
func (acc *DB) Symbol() string {
	return acc.symbol
}

// AccountKey 账户的 key
func (acc *DB) AccountKey(addr string) []byte {
	key := make([]byte, 0, len(acc.accountKeyPerfix)+len(addr))
	key = append(key, acc.accountKeyPerfix...)
	return append(key, addr...)
}

// AllowanceKey owner 给 spender 的授权
func (acc *DB) AllowanceKey(owner, spender string) []byte {
	key := make([]byte, 0, len(acc.allowanceKeyPerfix)+len(owner)+len(spender)+1)
	key = append(key, acc.allowanceKeyPerfix...)
	key = append(key, owner...)
	key = append(key, '-')
	return append(key, spender...)
}

// LoadAccount 不存在的账户余额为 0
func (acc *DB) LoadAccount(addr string) *types.Account {
	value, err := acc.db.Get(acc.AccountKey(addr))
	if err != nil {
		return &types.Account{Addr: addr}
	}
	var acc1 types.Account
	err = types.Decode(value, &acc1)
	if err != nil {
		panic(err) //数据库已经损坏
	}
	return &acc1
}

// BalanceOf 余额
func (acc *DB) BalanceOf(addr string) int64 {
	return acc.LoadAccount(addr).GetBalance()
}

// SaveAccount 写入 db
func (acc *DB) SaveAccount(acc1 *types.Account) {
	set := acc.GetKVSet(acc1)
	for i := 0; i < len(set); i++ {
		err := acc.db.Set(set[i].GetKey(), set[i].Value)
		if err != nil {
			alog.Error("SaveAccount", "addr", acc1.Addr, "err", err)
		}
	}
}

// GetKVSet 账户对应的 kv
func (acc *DB) GetKVSet(acc1 *types.Account) (kvset []*types.KeyValue) {
	value := types.Encode(acc1)
	kvset = append(kvset, &types.KeyValue{
		Key:   acc.AccountKey(acc1.Addr),
		Value: value,
	})
	return kvset
}

// CheckTransfer 只检查不转账
func (acc *DB) CheckTransfer(from, to string, amount int64) error {
	if !types.CheckAmount(amount) {
		return types.ErrAmount
	}
	if from == to {
		return types.ErrSendSameToRecv
	}
	accFrom := acc.LoadAccount(from)
	if accFrom.GetBalance()-amount < 0 {
		return errors.Wrapf(types.ErrInsufficientFunds, "balance %d less than %d", accFrom.GetBalance(), amount)
	}
	return nil
}

// Transfer from 转给 to
func (acc *DB) Transfer(from, to string, amount int64) (*types.Receipt, error) {
	if err := acc.CheckTransfer(from, to, amount); err != nil {
		return nil, err
	}
	accFrom := acc.LoadAccount(from)
	accTo := acc.LoadAccount(to)
	copyfrom := *accFrom
	copyto := *accTo

	accFrom.Balance = accFrom.GetBalance() - amount
	accTo.Balance = accTo.GetBalance() + amount

	receiptBalanceFrom := &types.ReceiptAccountTransfer{
		Prev:    &copyfrom,
		Current: accFrom,
	}
	receiptBalanceTo := &types.ReceiptAccountTransfer{
		Prev:    &copyto,
		Current: accTo,
	}

	acc.SaveAccount(accFrom)
	acc.SaveAccount(accTo)
	return acc.transferReceipt(accFrom, accTo, receiptBalanceFrom, receiptBalanceTo), nil
}

func (acc *DB) transferReceipt(accFrom, accTo *types.Account, receiptFrom, receiptTo types.Message) *types.Receipt {
	ty := int32(types.TyLogTransfer)
	log1 := &types.ReceiptLog{
		Ty:  ty,
		Log: types.Encode(receiptFrom),
	}
	log2 := &types.ReceiptLog{
		Ty:  ty,
		Log: types.Encode(receiptTo),
	}
	kv := acc.GetKVSet(accFrom)
	kv = append(kv, acc.GetKVSet(accTo)...)
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   kv,
		Logs: []*types.ReceiptLog{log1, log2},
	}
}

// Mint 增发给 to
func (acc *DB) Mint(to string, amount int64) (*types.Receipt, error) {
	if !types.CheckAmount(amount) {
		return nil, types.ErrAmount
	}
	acc1 := acc.LoadAccount(to)
	if acc1.Balance+amount > types.MaxTokenBalance {
		return nil, types.ErrTokenTotalOverflow
	}
	copyacc := *acc1
	acc1.Balance += amount
	receiptBalance := &types.ReceiptAccountTransfer{
		Prev:    &copyacc,
		Current: acc1,
	}
	acc.SaveAccount(acc1)
	log1 := &types.ReceiptLog{
		Ty:  types.TyLogMint,
		Log: types.Encode(receiptBalance),
	}
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   acc.GetKVSet(acc1),
		Logs: []*types.ReceiptLog{log1},
	}, nil
}

// LoadAllowance 没有授权时额度为 0
func (acc *DB) LoadAllowance(owner, spender string) *types.Allowance {
	value, err := acc.db.Get(acc.AllowanceKey(owner, spender))
	if err != nil {
		return &types.Allowance{Owner: owner, Spender: spender}
	}
	var allow types.Allowance
	err = types.Decode(value, &allow)
	if err != nil {
		panic(err)
	}
	return &allow
}

// Allowance 额度
func (acc *DB) Allowance(owner, spender string) int64 {
	return acc.LoadAllowance(owner, spender).GetAmount()
}

func (acc *DB) saveAllowance(allow *types.Allowance) *types.KeyValue {
	kv := &types.KeyValue{Key: acc.AllowanceKey(allow.Owner, allow.Spender), Value: types.Encode(allow)}
	if err := acc.db.Set(kv.Key, kv.Value); err != nil {
		alog.Error("saveAllowance", "owner", allow.Owner, "spender", allow.Spender, "err", err)
	}
	return kv
}

func (acc *DB) allowanceReceipt(prev, cur *types.Allowance) *types.Receipt {
	kv := acc.saveAllowance(cur)
	log1 := &types.ReceiptLog{
		Ty:  types.TyLogApprove,
		Log: types.Encode(&types.ReceiptAllowance{Prev: prev, Current: cur}),
	}
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   []*types.KeyValue{kv},
		Logs: []*types.ReceiptLog{log1},
	}
}

// Approve 设置额度，覆盖原来的值，0 表示取消授权
func (acc *DB) Approve(owner, spender string, amount int64) (*types.Receipt, error) {
	if amount < 0 || amount >= types.MaxCoin {
		return nil, types.ErrAmount
	}
	if owner == spender {
		return nil, types.ErrSendSameToRecv
	}
	allow := acc.LoadAllowance(owner, spender)
	prev := *allow
	allow.Amount = amount
	return acc.allowanceReceipt(&prev, allow), nil
}

// TransferFrom spender 使用 owner 的授权额度，把 owner 的币转给 to
func (acc *DB) TransferFrom(spender, owner, to string, amount int64) (*types.Receipt, error) {
	if !types.CheckAmount(amount) {
		return nil, types.ErrAmount
	}
	allow := acc.LoadAllowance(owner, spender)
	if allow.GetAmount() < amount {
		return nil, errors.Wrapf(types.ErrInsufficientFunds, "allowance %d less than %d", allow.GetAmount(), amount)
	}
	// 余额不够的时候不能修改额度
	if err := acc.CheckTransfer(owner, to, amount); err != nil {
		return nil, err
	}
	prev := *allow
	allow.Amount -= amount
	receipt := acc.allowanceReceipt(&prev, allow)
	receipt2, err := acc.Transfer(owner, to, amount)
	if err != nil {
		alog.Error("TransferFrom", "owner", owner, "to", to, "amount", amount, "err", err)
		return nil, err
	}
	return types.MergeReceipt(receipt, receipt2), nil
}
