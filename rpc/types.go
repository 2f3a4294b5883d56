package rpc

import (
	"github.com/33cn/rps/common"
	rpsty "github.com/33cn/rps/system/dapp/rps/types"
	"github.com/33cn/rps/types"
)

// 金额在 rpc 上都是十进制字符串，例如 "0.1"

// NewGameParam Rps.NewGame
type NewGameParam struct {
	From     string `json:"from"`
	Opponent string `json:"opponent"`
	Token    string `json:"token"`
	Stake    string `json:"stake"`
}

// CommitParam Rps.Commit，commitment 是 hex
type CommitParam struct {
	From       string `json:"from"`
	GameID     string `json:"gameId"`
	Commitment string `json:"commitment"`
}

// RevealParam Rps.Reveal，move 可以是名字或者数字
type RevealParam struct {
	From       string `json:"from"`
	GameID     string `json:"gameId"`
	Passphrase string `json:"passphrase"`
	Move       string `json:"move"`
}

// GameActionParam ClaimReward Withdraw PenalizeInactive
type GameActionParam struct {
	From   string `json:"from"`
	GameID string `json:"gameId"`
}

// EncodedMoveParam Rps.GetEncodedMove
type EncodedMoveParam struct {
	Passphrase string `json:"passphrase"`
	Move       string `json:"move"`
}

// TokenCreateParam Token.Create
type TokenCreateParam struct {
	From   string `json:"from"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Total  string `json:"total"`
}

// TokenTransferParam Token.Transfer
type TokenTransferParam struct {
	From   string `json:"from"`
	Symbol string `json:"symbol"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// TokenApproveParam Token.Approve
type TokenApproveParam struct {
	From    string `json:"from"`
	Symbol  string `json:"symbol"`
	Spender string `json:"spender"`
	Amount  string `json:"amount"`
}

// TokenTransferFromParam Token.TransferFrom，From 是 spender
type TokenTransferFromParam struct {
	From   string `json:"from"`
	Symbol string `json:"symbol"`
	Owner  string `json:"owner"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// ReceiptLog hex 格式的日志
type ReceiptLog struct {
	Ty  int32  `json:"ty"`
	Log string `json:"log"`
}

// TxResult 交易执行结果
type TxResult struct {
	Execer    string        `json:"execer"`
	Action    string        `json:"action"`
	From      string        `json:"from"`
	Height    int64         `json:"height"`
	BlockTime int64         `json:"blockTime"`
	Logs      []*ReceiptLog `json:"logs,omitempty"`
	GameID    string        `json:"gameId,omitempty"`
	Err       string        `json:"err,omitempty"`
}

// PlayerResult 一个玩家的状态
type PlayerResult struct {
	Addr       string `json:"addr"`
	Commitment string `json:"commitment,omitempty"`
	Move       string `json:"move"`
	Paid       bool   `json:"paid"`
	Refunded   bool   `json:"refunded"`
	Claimed    bool   `json:"claimed"`
	Payout     string `json:"payout"`
	ActionTime int64  `json:"actionTime"`
	RevealTime int64  `json:"revealTime"`
}

// GameResult 游戏状态
type GameResult struct {
	GameID         string          `json:"gameId"`
	Index          int64           `json:"index"`
	Token          string          `json:"token"`
	Stake          string          `json:"stake"`
	Players        []*PlayerResult `json:"players"`
	Status         string          `json:"status"`
	Outcome        string          `json:"outcome"`
	Winner         string          `json:"winner,omitempty"`
	Loser          string          `json:"loser,omitempty"`
	CreateTime     int64           `json:"createTime"`
	ResolveTime    int64           `json:"resolveTime,omitempty"`
	PenalizeWindow int64           `json:"penalizeWindow"`
}

// ScoreResult 积分榜的一行
type ScoreResult struct {
	Player      string `json:"player"`
	GamesPlayed int64  `json:"gamesPlayed"`
	Wins        int64  `json:"wins"`
	Losses      int64  `json:"losses"`
	Ties        int64  `json:"ties"`
	Earned      string `json:"earned"`
	Lost        string `json:"lost"`
}

// AccountResult 余额
type AccountResult struct {
	Symbol  string `json:"symbol"`
	Addr    string `json:"addr"`
	Balance string `json:"balance"`
}

// TokenResult 代币信息
type TokenResult struct {
	Symbol     string `json:"symbol"`
	Name       string `json:"name"`
	Total      string `json:"total"`
	Owner      string `json:"owner"`
	CreateTime int64  `json:"createTime"`
}

func fmtTxResult(r *types.TxResult) *TxResult {
	res := &TxResult{
		Execer:    r.Execer,
		Action:    r.Action,
		From:      r.From,
		Height:    r.Height,
		BlockTime: r.BlockTime,
		Err:       r.Err,
	}
	for _, l := range r.Receipt.GetLogs() {
		res.Logs = append(res.Logs, &ReceiptLog{Ty: l.Ty, Log: common.ToHex(l.Log)})
		if l.Ty == rpsty.TyLogRpsNewGame {
			var rec rpsty.ReceiptRps
			if err := types.Decode(l.Log, &rec); err == nil {
				res.GameID = rec.GameId
			}
		}
	}
	return res
}

func fmtGame(g *rpsty.Game) *GameResult {
	res := &GameResult{
		GameID:         g.GameId,
		Index:          g.Index,
		Token:          g.Token,
		Stake:          types.FormatAmount(g.Stake),
		Status:         rpsty.StatusName(g.Status),
		Outcome:        rpsty.OutcomeName(g.Outcome),
		Winner:         g.Winner,
		Loser:          g.Loser,
		CreateTime:     g.CreateTime,
		ResolveTime:    g.ResolveTime,
		PenalizeWindow: g.PenalizeWindow,
	}
	for _, p := range g.Players {
		res.Players = append(res.Players, &PlayerResult{
			Addr:       p.Addr,
			Commitment: common.ToHex(p.Commitment),
			Move:       rpsty.Move(p.Move).String(),
			Paid:       p.Paid,
			Refunded:   p.Refunded,
			Claimed:    p.Claimed,
			Payout:     types.FormatAmount(p.Payout),
			ActionTime: p.ActionTime,
			RevealTime: p.RevealTime,
		})
	}
	return res
}

func fmtScore(e *rpsty.ScoreEntry) *ScoreResult {
	return &ScoreResult{
		Player:      e.Player,
		GamesPlayed: e.GamesPlayed,
		Wins:        e.Wins,
		Losses:      e.Losses,
		Ties:        e.Ties,
		Earned:      types.FormatAmount(e.Earned),
		Lost:        types.FormatAmount(e.Lost),
	}
}
