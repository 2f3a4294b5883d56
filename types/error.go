// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "errors"

// 游戏相关
var (
	ErrUnauthorized          = errors.New("ErrUnauthorized")
	ErrInvalidStateForAction = errors.New("ErrInvalidStateForAction")
	ErrAlreadyActed          = errors.New("ErrAlreadyActed")
	ErrCommitmentMismatch    = errors.New("ErrCommitmentMismatch")
	ErrTimeoutNotReached     = errors.New("ErrTimeoutNotReached")
	ErrInsufficientFunds     = errors.New("ErrInsufficientFunds")
	ErrGameAlreadyActive     = errors.New("ErrGameAlreadyActive")
	ErrNotFound              = errors.New("ErrNotFound")
	ErrInvalidMove           = errors.New("ErrInvalidMove")
)

// 账户和参数
var (
	ErrAmount             = errors.New("ErrAmount")
	ErrInvalidAddress     = errors.New("ErrInvalidAddress")
	ErrInvalidParam       = errors.New("ErrInvalidParam")
	ErrSendSameToRecv     = errors.New("ErrSendSameToRecv")
	ErrTokenExist         = errors.New("ErrTokenExist")
	ErrTokenSymbol        = errors.New("ErrTokenSymbol")
	ErrTokenName          = errors.New("ErrTokenName")
	ErrTokenTotalOverflow = errors.New("ErrTokenTotalOverflow")
)

// 执行器
var (
	ErrActionNotSupport = errors.New("ErrActionNotSupport")
	ErrMethodReturnType = errors.New("ErrMethodReturnType")
	ErrExecNotFound     = errors.New("ErrExecNotFound")
	ErrExecNameNotAllow = errors.New("ErrExecNameNotAllow")
	ErrQueryNotSupport  = errors.New("ErrQueryNotSupport")
	ErrDBFlush          = errors.New("ErrDBFlush")
)
