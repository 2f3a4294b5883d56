// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

/*
rps 执行器，两个人用代币押注的猜拳游戏

NewGame          -> 创建一局游戏，gameId 同时是押金的托管地址
Commit           -> 提交出拳的 digest，押金通过 TransferFrom 转入托管地址
Reveal           -> 揭示，两个人都揭示之后确定结局
ClaimReward      -> 领取结算的金额
Withdraw         -> 两个人都提交之前撤回，退还押金
PenalizeInactive -> 对手超时不揭示，揭示者拿走全部押金
*/

import (
	drivers "github.com/33cn/rps/system/dapp"
	rpsty "github.com/33cn/rps/system/dapp/rps/types"
	"github.com/33cn/rps/types"
	lru "github.com/hashicorp/golang-lru"
	log "github.com/inconshreveable/log15"
)

var rlog = log.New("module", "execs.rps")

var driverName = rpsty.RpsX

func init() {
	drivers.Register(driverName, newRps)
}

// GetName 执行器名字
func GetName() string {
	return driverName
}

// Rps 执行器
type Rps struct {
	drivers.DriverBase
	penalizeWindow int64
	cacheSize      int
}

func newRps(cfg *types.Config) drivers.Driver {
	if cfg == nil {
		cfg = types.DefaultConfig()
	}
	r := &Rps{
		penalizeWindow: cfg.Exec.Rps.PenalizeWindow,
		cacheSize:      cfg.Exec.Rps.GameCacheSize,
	}
	r.SetChild(r)
	return r
}

// GetDriverName 驱动名字
func (r *Rps) GetDriverName() string {
	return driverName
}

// 已经结束的游戏不会再改变，可以缓存
func (r *Rps) gameCache() *lru.Cache {
	api := r.GetAPI()
	if api == nil {
		return nil
	}
	return api.GetCache(driverName+"-game", r.cacheSize)
}
