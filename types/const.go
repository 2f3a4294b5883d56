// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// coin conversation
const (
	Coin            int64 = 1e8
	MaxCoin         int64 = 1e17
	TokenPrecision  int64 = 1e8
	AmountDecimals        = 8
	MaxTokenBalance int64 = 900 * 1e8 * TokenPrecision

	TokenSymbolLenLimit = 16
	TokenNameLenLimit   = 128
)

// ExecOk 执行成功的收据类型
const ExecOk = 2

// 日志类型，token 100 段，rps 700 段
const (
	TyLogTransfer    = 101
	TyLogApprove     = 102
	TyLogMint        = 103
	TyLogTokenCreate = 104
)

// list 方向
const (
	ListDESC = int32(0)
	ListASC  = int32(1)
)

// MaxListCount 单次 list 的最大数目
const MaxListCount = 1000

// 默认配置
const (
	DefaultPenalizeWindow int64 = 24 * 3600
	DefaultGameCacheSize        = 1024
	DefaultJrpcBindAddr         = "localhost:8801"
)
