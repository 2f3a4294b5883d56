// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"bytes"

	"github.com/33cn/rps/account"
	"github.com/33cn/rps/common/address"
	dbm "github.com/33cn/rps/common/db"
	drivers "github.com/33cn/rps/system/dapp"
	rpsty "github.com/33cn/rps/system/dapp/rps/types"
	tokenty "github.com/33cn/rps/system/dapp/token/types"
	"github.com/33cn/rps/types"
	"github.com/pkg/errors"
)

// action 一笔交易的执行环境
type action struct {
	db        dbm.KV
	fromaddr  string
	blocktime int64
	height    int64
	execaddr  string
	window    int64
}

func newAction(r *Rps, tx *types.Transaction) *action {
	return &action{
		db:        r.GetStateDB(),
		fromaddr:  tx.From,
		blocktime: r.GetBlockTime(),
		height:    r.GetHeight(),
		execaddr:  drivers.ExecAddress(r.GetName()),
		window:    r.penalizeWindow,
	}
}

func getGame(db dbm.KV, gameID string) (*rpsty.Game, error) {
	value, err := db.Get(calcGameKey(gameID))
	if err != nil {
		return nil, errors.Wrapf(types.ErrNotFound, "game %s", gameID)
	}
	var game rpsty.Game
	if err := types.Decode(value, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// getActiveGame 没有时返回空字符串
func getActiveGame(db dbm.KV, a, b string) string {
	value, err := db.Get(calcActiveKey(a, b))
	if err != nil {
		return ""
	}
	var id types.ReplyString
	types.MustDecode(value, &id)
	return id.Data
}

func (a *action) loadGame(gameID string) (*rpsty.Game, error) {
	id, err := address.Normalize(gameID)
	if err != nil {
		return nil, err
	}
	return getGame(a.db, id)
}

func (a *action) saveGame(game *rpsty.Game) []*types.KeyValue {
	kv := &types.KeyValue{Key: calcGameKey(game.GameId), Value: types.Encode(game)}
	a.db.Set(kv.Key, kv.Value)
	return []*types.KeyValue{kv}
}

// clearActive 游戏结局确定之后，这两个人可以开始新的游戏
func (a *action) clearActive(game *rpsty.Game) []*types.KeyValue {
	key := calcActiveKey(game.Players[0].Addr, game.Players[1].Addr)
	a.db.Set(key, nil)
	return []*types.KeyValue{{Key: key}}
}

func (a *action) tokenAccount(symbol string) (*account.DB, error) {
	if _, err := tokenty.LoadTokenInfo(a.db, symbol); err != nil {
		return nil, errors.Wrapf(err, "token %s", symbol)
	}
	return account.NewTokenAccount(symbol, a.db)
}

func (a *action) receipt(ty int32, game *rpsty.Game, prev int32, amount int64, kvs []*types.KeyValue) *types.Receipt {
	r := &rpsty.ReceiptRps{
		GameId:     game.GameId,
		Index:      game.Index,
		Players:    []string{game.Players[0].Addr, game.Players[1].Addr},
		Actor:      a.fromaddr,
		PrevStatus: prev,
		Status:     game.Status,
		Outcome:    game.Outcome,
		Winner:     game.Winner,
		Loser:      game.Loser,
		Amount:     amount,
	}
	kvs = append(kvs, a.saveGame(game)...)
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   kvs,
		Logs: []*types.ReceiptLog{{Ty: ty, Log: types.Encode(r)}},
	}
}

// payout 从托管地址转出，金额为 0 时只记录
func (a *action) payout(game *rpsty.Game, to string, amount int64) (*types.Receipt, error) {
	if amount == 0 {
		return nil, nil
	}
	acc, err := a.tokenAccount(game.Token)
	if err != nil {
		return nil, err
	}
	return acc.Transfer(game.GameId, to, amount)
}

// NewGame 创建游戏，发起者和对手之间只能有一局正在进行的游戏
func (a *action) NewGame(p *rpsty.RpsNewGame) (*types.Receipt, error) {
	opponent, err := address.Normalize(p.Opponent)
	if err != nil {
		return nil, err
	}
	if opponent == a.fromaddr {
		return nil, errors.Wrap(types.ErrInvalidAddress, "can not play with self")
	}
	if p.Stake <= 0 || !types.CheckAmount(p.Stake) {
		return nil, types.ErrAmount
	}
	if _, err := tokenty.LoadTokenInfo(a.db, p.Token); err != nil {
		return nil, errors.Wrapf(err, "token %s", p.Token)
	}
	if active := getActiveGame(a.db, a.fromaddr, opponent); active != "" {
		return nil, errors.Wrapf(types.ErrGameAlreadyActive, "game %s", active)
	}

	var nonce types.Int64
	if value, err := a.db.Get(nonceKey); err == nil {
		types.MustDecode(value, &nonce)
	}
	game := &rpsty.Game{
		GameId: address.CreateAddress(a.execaddr, nonce.Data),
		Index:  nonce.Data,
		Token:  p.Token,
		Stake:  p.Stake,
		Players: []*rpsty.PlayerSlot{
			{Addr: a.fromaddr},
			{Addr: opponent},
		},
		Status:         rpsty.StatusAwaitingCommits,
		Outcome:        rpsty.OutcomePending,
		CreateTime:     a.blocktime,
		PenalizeWindow: a.window,
	}
	nonce.Data++
	kvs := []*types.KeyValue{
		{Key: nonceKey, Value: types.Encode(&nonce)},
		{Key: calcActiveKey(a.fromaddr, opponent), Value: types.Encode(&types.ReplyString{Data: game.GameId})},
	}
	for _, kv := range kvs {
		a.db.Set(kv.Key, kv.Value)
	}
	rlog.Debug("NewGame", "gameId", game.GameId, "index", game.Index, "player1", a.fromaddr, "player2", opponent)
	return a.receipt(rpsty.TyLogRpsNewGame, game, rpsty.StatusNone, 0, kvs), nil
}

// Commit 提交 digest 并且把押金转入托管地址
func (a *action) Commit(p *rpsty.RpsCommit) (*types.Receipt, error) {
	game, err := a.loadGame(p.GameId)
	if err != nil {
		return nil, err
	}
	slot := game.Slot(a.fromaddr)
	if slot == nil {
		return nil, types.ErrUnauthorized
	}
	if game.Status != rpsty.StatusAwaitingCommits {
		return nil, errors.Wrapf(types.ErrInvalidStateForAction, "status %s", rpsty.StatusName(game.Status))
	}
	if slot.HasCommitted() {
		return nil, types.ErrAlreadyActed
	}
	if len(p.Commitment) != rpsty.DigestLen {
		return nil, errors.Wrapf(types.ErrInvalidParam, "commitment length %d", len(p.Commitment))
	}
	acc, err := a.tokenAccount(game.Token)
	if err != nil {
		return nil, err
	}
	// 托管地址就是 spender
	transfer, err := acc.TransferFrom(game.GameId, a.fromaddr, game.GameId, game.Stake)
	if err != nil {
		return nil, err
	}
	prev := game.Status
	slot.Commitment = p.Commitment
	slot.Paid = true
	slot.ActionTime = a.blocktime
	if game.Opponent(a.fromaddr).HasCommitted() {
		game.Status = rpsty.StatusAwaitingReveals
	}
	receipt := a.receipt(rpsty.TyLogRpsCommit, game, prev, game.Stake, nil)
	return types.MergeReceipt(receipt, transfer), nil
}

// Reveal 揭示，digest 必须和提交的一致
func (a *action) Reveal(p *rpsty.RpsReveal) (*types.Receipt, error) {
	game, err := a.loadGame(p.GameId)
	if err != nil {
		return nil, err
	}
	slot := game.Slot(a.fromaddr)
	if slot == nil {
		return nil, types.ErrUnauthorized
	}
	if game.Status != rpsty.StatusAwaitingReveals {
		return nil, errors.Wrapf(types.ErrInvalidStateForAction, "status %s", rpsty.StatusName(game.Status))
	}
	if slot.HasRevealed() {
		return nil, types.ErrAlreadyActed
	}
	if !p.Move.IsValid() {
		return nil, types.ErrInvalidMove
	}
	if !bytes.Equal(rpsty.EncodeMove(p.Passphrase, p.Move), slot.Commitment) {
		return nil, types.ErrCommitmentMismatch
	}
	prev := game.Status
	slot.Move = int32(p.Move)
	slot.ActionTime = a.blocktime
	slot.RevealTime = a.blocktime
	var kvs []*types.KeyValue
	if game.Opponent(a.fromaddr).HasRevealed() {
		kvs = a.resolve(game)
	}
	return a.receipt(rpsty.TyLogRpsReveal, game, prev, 0, kvs), nil
}

// resolve 两个人都揭示之后确定结局，金额在这里固定下来
func (a *action) resolve(game *rpsty.Game) []*types.KeyValue {
	p1, p2 := game.Players[0], game.Players[1]
	game.Status = rpsty.StatusResolved
	game.ResolveTime = a.blocktime
	switch rpsty.Judge(rpsty.Move(p1.Move), rpsty.Move(p2.Move)) {
	case 0:
		game.Outcome = rpsty.OutcomeTie
		p1.Payout = game.Stake
		p2.Payout = game.Stake
	case 1:
		game.Outcome = rpsty.OutcomeWin
		game.Winner, game.Loser = p1.Addr, p2.Addr
		p1.Payout = 2 * game.Stake
	default:
		game.Outcome = rpsty.OutcomeWin
		game.Winner, game.Loser = p2.Addr, p1.Addr
		p2.Payout = 2 * game.Stake
	}
	rlog.Debug("resolve", "gameId", game.GameId, "outcome", rpsty.OutcomeName(game.Outcome), "winner", game.Winner)
	return a.clearActive(game)
}

// ClaimReward 每个人领取一次，领取顺序不影响金额
func (a *action) ClaimReward(p *rpsty.RpsClaim) (*types.Receipt, error) {
	game, err := a.loadGame(p.GameId)
	if err != nil {
		return nil, err
	}
	slot := game.Slot(a.fromaddr)
	if slot == nil {
		return nil, types.ErrUnauthorized
	}
	if slot.Claimed {
		return nil, types.ErrAlreadyActed
	}
	if game.Status != rpsty.StatusResolved {
		return nil, errors.Wrapf(types.ErrInvalidStateForAction, "status %s", rpsty.StatusName(game.Status))
	}
	transfer, err := a.payout(game, a.fromaddr, slot.Payout)
	if err != nil {
		return nil, err
	}
	prev := game.Status
	slot.Claimed = true
	slot.ActionTime = a.blocktime
	if game.Opponent(a.fromaddr).Claimed {
		game.Status = rpsty.StatusTerminated
	}
	receipt := a.receipt(rpsty.TyLogRpsClaim, game, prev, slot.Payout, nil)
	return types.MergeReceipt(receipt, transfer), nil
}

// Withdraw 两个人都提交之前任何一方都可以终止游戏，退还自己的押金。
// 游戏终止之后，已经付款的另一方也可以用 Withdraw 取回押金。
func (a *action) Withdraw(p *rpsty.RpsWithdraw) (*types.Receipt, error) {
	game, err := a.loadGame(p.GameId)
	if err != nil {
		return nil, err
	}
	slot := game.Slot(a.fromaddr)
	if slot == nil {
		return nil, types.ErrUnauthorized
	}
	prev := game.Status
	var kvs []*types.KeyValue
	switch {
	case game.Status == rpsty.StatusAwaitingCommits:
		game.Status = rpsty.StatusTerminated
		game.Outcome = rpsty.OutcomeAborted
		game.ResolveTime = a.blocktime
		kvs = a.clearActive(game)
	case game.Status == rpsty.StatusTerminated && game.Outcome == rpsty.OutcomeAborted:
		if slot.Refunded {
			return nil, types.ErrAlreadyActed
		}
		if !slot.Paid {
			return nil, errors.Wrap(types.ErrInvalidStateForAction, "nothing to refund")
		}
	default:
		return nil, errors.Wrapf(types.ErrInvalidStateForAction, "status %s", rpsty.StatusName(game.Status))
	}

	var refund int64
	var transfer *types.Receipt
	if slot.Paid && !slot.Refunded {
		refund = game.Stake
		transfer, err = a.payout(game, a.fromaddr, refund)
		if err != nil {
			return nil, err
		}
		slot.Refunded = true
	}
	slot.ActionTime = a.blocktime
	rlog.Debug("Withdraw", "gameId", game.GameId, "player", a.fromaddr, "refund", refund)
	receipt := a.receipt(rpsty.TyLogRpsWithdraw, game, prev, refund, kvs)
	return types.MergeReceipt(receipt, transfer), nil
}

// PenalizeInactive 揭示之后等待超过 PenalizeWindow，对手还没有揭示，揭示者拿走全部押金
func (a *action) PenalizeInactive(p *rpsty.RpsPenalize) (*types.Receipt, error) {
	game, err := a.loadGame(p.GameId)
	if err != nil {
		return nil, err
	}
	slot := game.Slot(a.fromaddr)
	if slot == nil {
		return nil, types.ErrUnauthorized
	}
	if game.Status != rpsty.StatusAwaitingReveals {
		return nil, errors.Wrapf(types.ErrInvalidStateForAction, "status %s", rpsty.StatusName(game.Status))
	}
	opponent := game.Opponent(a.fromaddr)
	if !slot.HasRevealed() || opponent.HasRevealed() {
		return nil, errors.Wrap(types.ErrUnauthorized, "only the revealed player can penalize")
	}
	if a.blocktime < slot.RevealTime+game.PenalizeWindow {
		return nil, errors.Wrapf(types.ErrTimeoutNotReached, "wait until %d", slot.RevealTime+game.PenalizeWindow)
	}
	pot := 2 * game.Stake
	transfer, err := a.payout(game, a.fromaddr, pot)
	if err != nil {
		return nil, err
	}
	prev := game.Status
	slot.Payout = pot
	slot.ActionTime = a.blocktime
	game.Status = rpsty.StatusTerminated
	game.Outcome = rpsty.OutcomeForfeit
	game.Winner, game.Loser = a.fromaddr, opponent.Addr
	game.ResolveTime = a.blocktime
	kvs := a.clearActive(game)
	rlog.Info("PenalizeInactive", "gameId", game.GameId, "winner", game.Winner, "loser", game.Loser)
	receipt := a.receipt(rpsty.TyLogRpsPenalize, game, prev, pot, kvs)
	return types.MergeReceipt(receipt, transfer), nil
}
