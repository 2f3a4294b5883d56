// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

/*
token 执行器，ERC20 风格的代币

主要提供的操作：
Create       -> 创建代币，发行量全部给创建者
Transfer     -> 转账
Approve      -> 授权
TransferFrom -> 使用授权额度转账
*/

import (
	"github.com/33cn/rps/account"
	drivers "github.com/33cn/rps/system/dapp"
	tokenty "github.com/33cn/rps/system/dapp/token/types"
	"github.com/33cn/rps/types"
	log "github.com/inconshreveable/log15"
)

var tokenlog = log.New("module", "execs.token")

var driverName = tokenty.TokenX

func init() {
	drivers.Register(driverName, newToken)
}

// GetName 执行器名字
func GetName() string {
	return driverName
}

// Token 执行器
type Token struct {
	drivers.DriverBase
}

func newToken(cfg *types.Config) drivers.Driver {
	t := &Token{}
	t.SetChild(t)
	return t
}

// GetDriverName 驱动名字
func (t *Token) GetDriverName() string {
	return driverName
}

// getAccount 已经创建的代币的账本
func (t *Token) getAccount(symbol string) (*account.DB, error) {
	if _, err := tokenty.LoadTokenInfo(t.GetStateDB(), symbol); err != nil {
		return nil, err
	}
	return account.NewTokenAccount(symbol, t.GetStateDB())
}
