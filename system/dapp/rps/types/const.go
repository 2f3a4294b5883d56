// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// RpsX 执行器名字
const RpsX = "rps"

// 游戏状态
const (
	StatusNone            = int32(0)
	StatusAwaitingCommits = int32(1)
	StatusAwaitingReveals = int32(2)
	StatusResolved        = int32(3)
	StatusTerminated      = int32(4)
)

// 结局
const (
	OutcomePending = int32(0)
	OutcomeWin     = int32(1)
	OutcomeTie     = int32(2)
	// 两个人都提交之前有人撤回
	OutcomeAborted = int32(3)
	// 对手不揭示被惩罚
	OutcomeForfeit = int32(4)
)

// log
const (
	TyLogRpsNewGame  = 701
	TyLogRpsCommit   = 702
	TyLogRpsReveal   = 703
	TyLogRpsClaim    = 704
	TyLogRpsWithdraw = 705
	TyLogRpsPenalize = 706
)

// DigestLen commitment 的长度
const DigestLen = 32

var statusName = map[int32]string{
	StatusNone:            "None",
	StatusAwaitingCommits: "AwaitingCommits",
	StatusAwaitingReveals: "AwaitingReveals",
	StatusResolved:        "Resolved",
	StatusTerminated:      "Terminated",
}

var outcomeName = map[int32]string{
	OutcomePending: "Pending",
	OutcomeWin:     "Win",
	OutcomeTie:     "Tie",
	OutcomeAborted: "Aborted",
	OutcomeForfeit: "Forfeit",
}

// StatusName 状态的名字
func StatusName(status int32) string {
	if name, ok := statusName[status]; ok {
		return name
	}
	return "Unknown"
}

// OutcomeName 结局的名字
func OutcomeName(outcome int32) string {
	if name, ok := outcomeName[outcome]; ok {
		return name
	}
	return "Unknown"
}
