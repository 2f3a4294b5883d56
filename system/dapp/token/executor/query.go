// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/rps/account"
	"github.com/33cn/rps/common/address"
	dbm "github.com/33cn/rps/common/db"
	tokenty "github.com/33cn/rps/system/dapp/token/types"
	"github.com/33cn/rps/types"
)

func (t *Token) Query_BalanceOf(in *tokenty.ReqBalance) (types.Message, error) {
	acc, err := account.NewTokenAccount(in.Symbol, t.GetStateDB())
	if err != nil {
		return nil, err
	}
	addr, err := address.Normalize(in.Addr)
	if err != nil {
		return nil, err
	}
	return acc.LoadAccount(addr), nil
}

func (t *Token) Query_Allowance(in *tokenty.ReqAllowance) (types.Message, error) {
	acc, err := account.NewTokenAccount(in.Symbol, t.GetStateDB())
	if err != nil {
		return nil, err
	}
	owner, err := address.Normalize(in.Owner)
	if err != nil {
		return nil, err
	}
	spender, err := address.Normalize(in.Spender)
	if err != nil {
		return nil, err
	}
	return acc.LoadAllowance(owner, spender), nil
}

func (t *Token) Query_GetTokenInfo(in *tokenty.ReqTokenInfo) (types.Message, error) {
	return tokenty.LoadTokenInfo(t.GetStateDB(), in.Symbol)
}

func (t *Token) Query_ListTokens(in *tokenty.ReqTokens) (types.Message, error) {
	count := in.Count
	if count <= 0 || count > types.MaxListCount {
		count = types.MaxListCount
	}
	symbols, err := t.GetLocalDB().List([]byte(tokenty.TokenListPrefix), nil, count, dbm.ListASC)
	if err != nil && err != types.ErrNotFound {
		return nil, err
	}
	reply := &tokenty.ReplyTokens{}
	for _, symbol := range symbols {
		info, err := tokenty.LoadTokenInfo(t.GetStateDB(), string(symbol))
		if err != nil {
			tokenlog.Error("ListTokens", "symbol", string(symbol), "err", err)
			continue
		}
		reply.Tokens = append(reply.Tokens, info)
	}
	return reply, nil
}
