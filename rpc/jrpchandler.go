// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"github.com/33cn/rps/common"
	"github.com/33cn/rps/executor"
	rpsty "github.com/33cn/rps/system/dapp/rps/types"
	tokenty "github.com/33cn/rps/system/dapp/token/types"
	"github.com/33cn/rps/types"
	"github.com/pkg/errors"
)

// Rps 猜拳相关的接口
type Rps struct {
	exec *executor.Executor
}

// Token 代币相关的接口
type Token struct {
	exec *executor.Executor
}

// Node 节点状态
type Node struct {
	exec *executor.Executor
}

func sendTx(exec *executor.Executor, execer, from string, payload types.ActionPayload) (*TxResult, error) {
	res, err := exec.ExecTx(&types.Transaction{Execer: execer, From: from, Payload: payload})
	if err != nil {
		return nil, err
	}
	return fmtTxResult(res), nil
}

// NewGame 返回的结果里带有 gameId
func (r *Rps) NewGame(in NewGameParam, result *interface{}) error {
	stake, err := types.ParseAmount(in.Stake)
	if err != nil {
		return err
	}
	reply, err := sendTx(r.exec, rpsty.RpsX, in.From, &rpsty.RpsNewGame{Opponent: in.Opponent, Token: in.Token, Stake: stake})
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

func (r *Rps) Commit(in CommitParam, result *interface{}) error {
	commitment, err := common.FromHex(in.Commitment)
	if err != nil {
		return errors.Wrap(types.ErrInvalidParam, err.Error())
	}
	reply, err := sendTx(r.exec, rpsty.RpsX, in.From, &rpsty.RpsCommit{GameId: in.GameID, Commitment: commitment})
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

func (r *Rps) Reveal(in RevealParam, result *interface{}) error {
	move, err := rpsty.ParseMove(in.Move)
	if err != nil {
		return err
	}
	reply, err := sendTx(r.exec, rpsty.RpsX, in.From, &rpsty.RpsReveal{GameId: in.GameID, Passphrase: in.Passphrase, Move: move})
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

func (r *Rps) ClaimReward(in GameActionParam, result *interface{}) error {
	reply, err := sendTx(r.exec, rpsty.RpsX, in.From, &rpsty.RpsClaim{GameId: in.GameID})
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

func (r *Rps) Withdraw(in GameActionParam, result *interface{}) error {
	reply, err := sendTx(r.exec, rpsty.RpsX, in.From, &rpsty.RpsWithdraw{GameId: in.GameID})
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

func (r *Rps) PenalizeInactive(in GameActionParam, result *interface{}) error {
	reply, err := sendTx(r.exec, rpsty.RpsX, in.From, &rpsty.RpsPenalize{GameId: in.GameID})
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// GetActiveGameWith 没有时返回空字符串
func (r *Rps) GetActiveGameWith(in rpsty.ReqActiveGame, result *interface{}) error {
	reply, err := r.exec.Query(rpsty.RpsX, "GetActiveGameWith", &in)
	if err != nil {
		return err
	}
	*result = reply.(*types.ReplyString).Data
	return nil
}

func (r *Rps) GetPlayerGames(in rpsty.ReqPlayerGames, result *interface{}) error {
	reply, err := r.exec.Query(rpsty.RpsX, "GetPlayerGames", &in)
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

func (r *Rps) GetGame(in rpsty.ReqGame, result *interface{}) error {
	reply, err := r.exec.Query(rpsty.RpsX, "GetGame", &in)
	if err != nil {
		return err
	}
	*result = fmtGame(reply.(*rpsty.Game))
	return nil
}

func (r *Rps) GetScoreBoard(in rpsty.ReqScoreBoard, result *interface{}) error {
	reply, err := r.exec.Query(rpsty.RpsX, "GetScoreBoard", &in)
	if err != nil {
		return err
	}
	board := make([]*ScoreResult, 0)
	for _, e := range reply.(*rpsty.ReplyScoreBoard).Entries {
		board = append(board, fmtScore(e))
	}
	*result = board
	return nil
}

func (r *Rps) GetPlayerScore(in rpsty.ReqPlayer, result *interface{}) error {
	reply, err := r.exec.Query(rpsty.RpsX, "GetPlayerScore", &in)
	if err != nil {
		return err
	}
	*result = fmtScore(reply.(*rpsty.ScoreEntry))
	return nil
}

func (r *Rps) GetPlayerAdversaries(in rpsty.ReqPlayer, result *interface{}) error {
	reply, err := r.exec.Query(rpsty.RpsX, "GetPlayerAdversaries", &in)
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// GetEncodedMove 返回 hex 格式的 commitment
func (r *Rps) GetEncodedMove(in EncodedMoveParam, result *interface{}) error {
	move, err := rpsty.ParseMove(in.Move)
	if err != nil {
		return err
	}
	reply, err := r.exec.Query(rpsty.RpsX, "GetEncodedMove", &rpsty.ReqEncodedMove{Passphrase: in.Passphrase, Move: move})
	if err != nil {
		return err
	}
	*result = reply.(*types.ReplyString).Data
	return nil
}

func (t *Token) Create(in TokenCreateParam, result *interface{}) error {
	total, err := types.ParseAmount(in.Total)
	if err != nil {
		return err
	}
	reply, err := sendTx(t.exec, tokenty.TokenX, in.From, &tokenty.TokenCreate{Symbol: in.Symbol, Name: in.Name, Total: total})
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

func (t *Token) Transfer(in TokenTransferParam, result *interface{}) error {
	amount, err := types.ParseAmount(in.Amount)
	if err != nil {
		return err
	}
	reply, err := sendTx(t.exec, tokenty.TokenX, in.From, &tokenty.TokenTransfer{Symbol: in.Symbol, To: in.To, Amount: amount})
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

func (t *Token) Approve(in TokenApproveParam, result *interface{}) error {
	amount, err := types.ParseAmount(in.Amount)
	if err != nil {
		return err
	}
	reply, err := sendTx(t.exec, tokenty.TokenX, in.From, &tokenty.TokenApprove{Symbol: in.Symbol, Spender: in.Spender, Amount: amount})
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

func (t *Token) TransferFrom(in TokenTransferFromParam, result *interface{}) error {
	amount, err := types.ParseAmount(in.Amount)
	if err != nil {
		return err
	}
	payload := &tokenty.TokenTransferFrom{Symbol: in.Symbol, From: in.Owner, To: in.To, Amount: amount}
	reply, err := sendTx(t.exec, tokenty.TokenX, in.From, payload)
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

func (t *Token) BalanceOf(in tokenty.ReqBalance, result *interface{}) error {
	reply, err := t.exec.Query(tokenty.TokenX, "BalanceOf", &in)
	if err != nil {
		return err
	}
	acc := reply.(*types.Account)
	*result = &AccountResult{Symbol: in.Symbol, Addr: acc.Addr, Balance: types.FormatAmount(acc.Balance)}
	return nil
}

func (t *Token) Allowance(in tokenty.ReqAllowance, result *interface{}) error {
	reply, err := t.exec.Query(tokenty.TokenX, "Allowance", &in)
	if err != nil {
		return err
	}
	*result = types.FormatAmount(reply.(*types.Allowance).Amount)
	return nil
}

func (t *Token) GetTokenInfo(in tokenty.ReqTokenInfo, result *interface{}) error {
	reply, err := t.exec.Query(tokenty.TokenX, "GetTokenInfo", &in)
	if err != nil {
		return err
	}
	*result = fmtToken(reply.(*tokenty.TokenInfo))
	return nil
}

func (t *Token) ListTokens(in tokenty.ReqTokens, result *interface{}) error {
	reply, err := t.exec.Query(tokenty.TokenX, "ListTokens", &in)
	if err != nil {
		return err
	}
	tokens := make([]*TokenResult, 0)
	for _, info := range reply.(*tokenty.ReplyTokens).Tokens {
		tokens = append(tokens, fmtToken(info))
	}
	*result = tokens
	return nil
}

func fmtToken(info *tokenty.TokenInfo) *TokenResult {
	return &TokenResult{
		Symbol:     info.Symbol,
		Name:       info.Name,
		Total:      types.FormatAmount(info.Total),
		Owner:      info.Owner,
		CreateTime: info.CreateTime,
	}
}

// GetMetrics 执行器的统计数据
func (n *Node) GetMetrics(in types.ReqNil, result *interface{}) error {
	*result = n.exec.GetMetrics().Snapshot()
	return nil
}

// GetBlockTime 最后一笔交易的高度和时间
func (n *Node) GetBlockTime(in types.ReqNil, result *interface{}) error {
	*result = map[string]int64{
		"height":    n.exec.GetHeight(),
		"blockTime": n.exec.GetBlockTime(),
	}
	return nil
}
