// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/rps/common"
	"github.com/33cn/rps/common/address"
	rpsty "github.com/33cn/rps/system/dapp/rps/types"
	"github.com/33cn/rps/types"
)

func (r *Rps) reader() *gameReader {
	return &gameReader{db: r.GetStateDB(), cache: r.gameCache()}
}

// Query_GetActiveGameWith 没有正在进行的游戏时返回空字符串
func (r *Rps) Query_GetActiveGameWith(in *rpsty.ReqActiveGame) (types.Message, error) {
	player, err := address.Normalize(in.Player)
	if err != nil {
		return nil, err
	}
	opponent, err := address.Normalize(in.Opponent)
	if err != nil {
		return nil, err
	}
	return &types.ReplyString{Data: getActiveGame(r.GetStateDB(), player, opponent)}, nil
}

// Query_GetPlayerGames 翻页，direction 0 从新到旧，1 从旧到新
func (r *Rps) Query_GetPlayerGames(in *rpsty.ReqPlayerGames) (types.Message, error) {
	player, err := address.Normalize(in.Player)
	if err != nil {
		return nil, err
	}
	count := in.Count
	if count <= 0 || count > types.MaxListCount {
		count = types.MaxListCount
	}
	if in.Direction != types.ListDESC && in.Direction != types.ListASC {
		return nil, types.ErrInvalidParam
	}
	prefix := calcPlayerGamePrefix(player)
	var key []byte
	if in.PrimaryKey != "" {
		key = append(append(key, prefix...), in.PrimaryKey...)
	}
	values, err := r.GetLocalDB().List(prefix, key, count, in.Direction)
	if err != nil && err != types.ErrNotFound {
		return nil, err
	}
	reply := &rpsty.ReplyPlayerGames{GameIds: []string{}}
	var last int64
	for _, value := range values {
		var gi rpsty.GameIndex
		if err := types.Decode(value, &gi); err != nil {
			return nil, err
		}
		reply.GameIds = append(reply.GameIds, gi.GameId)
		last = gi.Index
	}
	if int32(len(values)) == count {
		reply.PrimaryKey = indexStr(last)
	}
	return reply, nil
}

func (r *Rps) Query_GetGame(in *rpsty.ReqGame) (types.Message, error) {
	id, err := address.Normalize(in.GameId)
	if err != nil {
		return nil, err
	}
	return getGame(r.GetStateDB(), id)
}

func (r *Rps) Query_GetScoreBoard(in *rpsty.ReqScoreBoard) (types.Message, error) {
	return scoreBoard(r.reader(), r.GetLocalDB())
}

func (r *Rps) Query_GetPlayerScore(in *rpsty.ReqPlayer) (types.Message, error) {
	player, err := address.Normalize(in.Player)
	if err != nil {
		return nil, err
	}
	return scoreOf(r.reader(), r.GetLocalDB(), player)
}

func (r *Rps) Query_GetPlayerAdversaries(in *rpsty.ReqPlayer) (types.Message, error) {
	player, err := address.Normalize(in.Player)
	if err != nil {
		return nil, err
	}
	return adversaries(r.reader(), r.GetLocalDB(), player)
}

// Query_GetEncodedMove 只计算，不读数据库
func (r *Rps) Query_GetEncodedMove(in *rpsty.ReqEncodedMove) (types.Message, error) {
	if !in.Move.IsValid() {
		return nil, types.ErrInvalidMove
	}
	return &types.ReplyString{Data: common.ToHex(rpsty.EncodeMove(in.Passphrase, in.Move))}, nil
}
