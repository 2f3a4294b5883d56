// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types 猜拳执行器的交易、状态和查询类型
package types

// RpsNewGame 向对手发起一局游戏，发起者是交易的 From
type RpsNewGame struct {
	Opponent string `json:"opponent"`
	Token    string `json:"token"`
	Stake    int64  `json:"stake"`
}

func (*RpsNewGame) ActionName() string { return "NewGame" }

// RpsCommit 提交出拳的 digest，同时把押金转入托管地址
type RpsCommit struct {
	GameId     string `json:"gameId"`
	Commitment []byte `json:"commitment"`
}

func (*RpsCommit) ActionName() string { return "Commit" }

// RpsReveal 揭示
type RpsReveal struct {
	GameId     string `json:"gameId"`
	Passphrase string `json:"passphrase"`
	Move       Move   `json:"move"`
}

func (*RpsReveal) ActionName() string { return "Reveal" }

// RpsClaim 领取奖励
type RpsClaim struct {
	GameId string `json:"gameId"`
}

func (*RpsClaim) ActionName() string { return "ClaimReward" }

// RpsWithdraw 两个人都提交之前撤回
type RpsWithdraw struct {
	GameId string `json:"gameId"`
}

func (*RpsWithdraw) ActionName() string { return "Withdraw" }

// RpsPenalize 对手超时不揭示
type RpsPenalize struct {
	GameId string `json:"gameId"`
}

func (*RpsPenalize) ActionName() string { return "PenalizeInactive" }

// ReqActiveGame player 和 opponent 之间正在进行的游戏
type ReqActiveGame struct {
	Player   string `json:"player"`
	Opponent string `json:"opponent"`
}

// ReqPlayerGames 翻页查询玩家的游戏
type ReqPlayerGames struct {
	Player     string `json:"player"`
	Count      int32  `json:"count"`
	Direction  int32  `json:"direction"`
	PrimaryKey string `json:"primaryKey"`
}

// ReqGame 查询一局游戏
type ReqGame struct {
	GameId string `json:"gameId"`
}

// ReqPlayer 查询一个玩家
type ReqPlayer struct {
	Player string `json:"player"`
}

// ReqScoreBoard 积分榜
type ReqScoreBoard struct{}

// ReqEncodedMove 计算 commitment
type ReqEncodedMove struct {
	Passphrase string `json:"passphrase"`
	Move       Move   `json:"move"`
}
