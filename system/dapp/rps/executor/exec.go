// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	rpsty "github.com/33cn/rps/system/dapp/rps/types"
	"github.com/33cn/rps/types"
)

func (r *Rps) Exec_NewGame(payload *rpsty.RpsNewGame, tx *types.Transaction, index int) (*types.Receipt, error) {
	return newAction(r, tx).NewGame(payload)
}

func (r *Rps) Exec_Commit(payload *rpsty.RpsCommit, tx *types.Transaction, index int) (*types.Receipt, error) {
	return newAction(r, tx).Commit(payload)
}

func (r *Rps) Exec_Reveal(payload *rpsty.RpsReveal, tx *types.Transaction, index int) (*types.Receipt, error) {
	return newAction(r, tx).Reveal(payload)
}

func (r *Rps) Exec_ClaimReward(payload *rpsty.RpsClaim, tx *types.Transaction, index int) (*types.Receipt, error) {
	return newAction(r, tx).ClaimReward(payload)
}

func (r *Rps) Exec_Withdraw(payload *rpsty.RpsWithdraw, tx *types.Transaction, index int) (*types.Receipt, error) {
	return newAction(r, tx).Withdraw(payload)
}

func (r *Rps) Exec_PenalizeInactive(payload *rpsty.RpsPenalize, tx *types.Transaction, index int) (*types.Receipt, error) {
	return newAction(r, tx).PenalizeInactive(payload)
}
