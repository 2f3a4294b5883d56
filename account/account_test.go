// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package account

import (
	"testing"

	"github.com/33cn/rps/common/db"
	"github.com/33cn/rps/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	addr1 = "0x1000000000000000000000000000000000000001"
	addr2 = "0x2000000000000000000000000000000000000002"
	addr3 = "0x3000000000000000000000000000000000000003"
)

func GenerAccDb(t *testing.T) *DB {
	//构造账户数据库
	stroedb, _ := db.NewGoMemDB("gomemdb", "test", 128)
	acc, err := NewTokenAccount("EXT", stroedb)
	require.NoError(t, err)
	return acc
}

func (acc *DB) GenerAccData() {
	// 加入账户
	account := &types.Account{
		Balance: 1000 * 1e8,
		Addr:    addr1,
	}
	acc.SaveAccount(account)

	account.Balance = 900 * 1e8
	account.Addr = addr2
	acc.SaveAccount(account)
}

func TestCheckSymbol(t *testing.T) {
	assert.NoError(t, CheckSymbol("EXT"))
	assert.NoError(t, CheckSymbol("BTY2"))
	assert.Equal(t, types.ErrTokenSymbol, CheckSymbol(""))
	assert.Equal(t, types.ErrTokenSymbol, CheckSymbol("E-T"))
	assert.Equal(t, types.ErrTokenSymbol, CheckSymbol("ext"))
	assert.Equal(t, types.ErrTokenSymbol, CheckSymbol("ABCDEFGHIJKLMNOPQ"))
	_, err := NewTokenAccount("a-b", nil)
	assert.Equal(t, types.ErrTokenSymbol, err)
}

func TestLoadAccount(t *testing.T) {
	acc := GenerAccDb(t)
	acc.GenerAccData()
	assert.Equal(t, int64(1000*1e8), acc.BalanceOf(addr1))
	assert.Equal(t, int64(900*1e8), acc.BalanceOf(addr2))
	assert.Equal(t, int64(0), acc.BalanceOf(addr3))
	assert.Equal(t, addr3, acc.LoadAccount(addr3).Addr)
	assert.Equal(t, "EXT", acc.Symbol())
	assert.Equal(t, "mavl-token-EXT-"+addr1, string(acc.AccountKey(addr1)))
}

func TestTransfer(t *testing.T) {
	acc := GenerAccDb(t)
	acc.GenerAccData()

	receipt, err := acc.Transfer(addr1, addr3, 10*1e8)
	require.NoError(t, err)
	assert.Equal(t, int32(types.ExecOk), receipt.Ty)
	assert.Len(t, receipt.KV, 2)
	require.Len(t, receipt.Logs, 2)
	var r types.ReceiptAccountTransfer
	require.NoError(t, types.Decode(receipt.Logs[0].Log, &r))
	assert.Equal(t, int64(1000*1e8), r.Prev.Balance)
	assert.Equal(t, int64(990*1e8), r.Current.Balance)

	assert.Equal(t, int64(990*1e8), acc.BalanceOf(addr1))
	assert.Equal(t, int64(10*1e8), acc.BalanceOf(addr3))

	_, err = acc.Transfer(addr3, addr2, 11*1e8)
	assert.Equal(t, types.ErrInsufficientFunds, errors.Cause(err))
	_, err = acc.Transfer(addr1, addr1, 1)
	assert.Equal(t, types.ErrSendSameToRecv, err)
	_, err = acc.Transfer(addr1, addr2, 0)
	assert.Equal(t, types.ErrAmount, err)
}

func TestMint(t *testing.T) {
	acc := GenerAccDb(t)
	receipt, err := acc.Mint(addr1, 5*1e8)
	require.NoError(t, err)
	assert.Equal(t, int32(types.TyLogMint), receipt.Logs[0].Ty)
	assert.Equal(t, int64(5*1e8), acc.BalanceOf(addr1))

	_, err = acc.Mint(addr1, -1)
	assert.Equal(t, types.ErrAmount, err)
}

func TestApproveAndTransferFrom(t *testing.T) {
	acc := GenerAccDb(t)
	acc.GenerAccData()

	// 没有授权
	_, err := acc.TransferFrom(addr3, addr1, addr3, 1e8)
	assert.Equal(t, types.ErrInsufficientFunds, errors.Cause(err))

	receipt, err := acc.Approve(addr1, addr3, 2*1e8)
	require.NoError(t, err)
	assert.Equal(t, int32(types.TyLogApprove), receipt.Logs[0].Ty)
	assert.Equal(t, int64(2*1e8), acc.Allowance(addr1, addr3))

	receipt, err = acc.TransferFrom(addr3, addr1, addr3, 1e8)
	require.NoError(t, err)
	assert.Len(t, receipt.Logs, 3)
	assert.Equal(t, int64(1e8), acc.Allowance(addr1, addr3))
	assert.Equal(t, int64(1e8), acc.BalanceOf(addr3))
	assert.Equal(t, int64(999*1e8), acc.BalanceOf(addr1))

	// 额度不够
	_, err = acc.TransferFrom(addr3, addr1, addr3, 2*1e8)
	assert.Equal(t, types.ErrInsufficientFunds, errors.Cause(err))
	assert.Equal(t, int64(1e8), acc.Allowance(addr1, addr3))

	// 余额不够时额度不变
	_, err = acc.Approve(addr3, addr2, 100*1e8)
	require.NoError(t, err)
	_, err = acc.TransferFrom(addr2, addr3, addr2, 50*1e8)
	assert.Equal(t, types.ErrInsufficientFunds, errors.Cause(err))
	assert.Equal(t, int64(100*1e8), acc.Allowance(addr3, addr2))

	// 取消授权
	_, err = acc.Approve(addr1, addr3, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), acc.Allowance(addr1, addr3))

	_, err = acc.Approve(addr1, addr1, 1)
	assert.Equal(t, types.ErrSendSameToRecv, err)
	_, err = acc.Approve(addr1, addr2, -1)
	assert.Equal(t, types.ErrAmount, err)
}
