// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands 猜拳命令行
package commands

import (
	"fmt"
	"os"

	"github.com/33cn/rps/common"
	"github.com/33cn/rps/rpc"
	"github.com/33cn/rps/rpc/jsonclient"
	rpsty "github.com/33cn/rps/system/dapp/rps/types"
	"github.com/spf13/cobra"
)

// RpsCmd rps command
func RpsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rps",
		Short: "Rock paper scissors games",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		NewGameCmd(),
		CommitCmd(),
		RevealCmd(),
		ClaimCmd(),
		WithdrawCmd(),
		PenalizeCmd(),
		ActiveGameCmd(),
		PlayerGamesCmd(),
		GameCmd(),
		ScoreBoardCmd(),
		AdversariesCmd(),
		EncodeMoveCmd(),
	)
	return cmd
}

// NewGameCmd 向对手发起游戏
func NewGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a game against an opponent",
		Run:   newGame,
	}
	cmd.Flags().StringP("from", "f", "", "initiator address")
	cmd.MarkFlagRequired("from")
	cmd.Flags().StringP("opponent", "o", "", "opponent address")
	cmd.MarkFlagRequired("opponent")
	cmd.Flags().StringP("token", "t", "", "token symbol")
	cmd.MarkFlagRequired("token")
	cmd.Flags().StringP("stake", "s", "", "stake of each player, e.g. 0.1")
	cmd.MarkFlagRequired("stake")
	return cmd
}

func newGame(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	from, _ := cmd.Flags().GetString("from")
	opponent, _ := cmd.Flags().GetString("opponent")
	token, _ := cmd.Flags().GetString("token")
	stake, _ := cmd.Flags().GetString("stake")
	params := &rpc.NewGameParam{From: from, Opponent: opponent, Token: token, Stake: stake}
	var res rpc.TxResult
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Rps.NewGame", params, &res)
	ctx.Run()
}

func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("from", "f", "", "player address")
	cmd.MarkFlagRequired("from")
	cmd.Flags().StringP("game", "g", "", "game id")
	cmd.MarkFlagRequired("game")
}

// CommitCmd digest 在本地计算，口令不会发送给节点
func CommitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Commit a move, the digest is computed locally",
		Run:   commit,
	}
	addGameFlags(cmd)
	cmd.Flags().StringP("passphrase", "p", "", "secret passphrase, needed again to reveal")
	cmd.MarkFlagRequired("passphrase")
	cmd.Flags().StringP("move", "m", "", "rock, paper or scissors")
	cmd.MarkFlagRequired("move")
	cmd.Flags().Bool("approve", true, "approve the stake to the game before commit")
	return cmd
}

func commit(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	from, _ := cmd.Flags().GetString("from")
	gameID, _ := cmd.Flags().GetString("game")
	passphrase, _ := cmd.Flags().GetString("passphrase")
	moveStr, _ := cmd.Flags().GetString("move")
	doApprove, _ := cmd.Flags().GetBool("approve")

	move, err := rpsty.ParseMove(moveStr)
	if err != nil || !move.IsValid() {
		fmt.Fprintln(os.Stderr, "invalid move", moveStr)
		return
	}
	if doApprove {
		var game rpc.GameResult
		ctx := jsonclient.NewRPCCtx(rpcLaddr, "Rps.GetGame", &rpsty.ReqGame{GameId: gameID}, &game)
		if _, err := ctx.RunResult(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		var res rpc.TxResult
		params := &rpc.TokenApproveParam{From: from, Symbol: game.Token, Spender: game.GameID, Amount: game.Stake}
		ctx = jsonclient.NewRPCCtx(rpcLaddr, "Token.Approve", params, &res)
		if _, err := ctx.RunResult(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
	}
	params := &rpc.CommitParam{
		From:       from,
		GameID:     gameID,
		Commitment: common.ToHex(rpsty.EncodeMove(passphrase, move)),
	}
	var res rpc.TxResult
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Rps.Commit", params, &res)
	ctx.Run()
}

// RevealCmd 揭示
func RevealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reveal",
		Short: "Reveal the committed move",
		Run:   reveal,
	}
	addGameFlags(cmd)
	cmd.Flags().StringP("passphrase", "p", "", "passphrase used in commit")
	cmd.MarkFlagRequired("passphrase")
	cmd.Flags().StringP("move", "m", "", "rock, paper or scissors")
	cmd.MarkFlagRequired("move")
	return cmd
}

func reveal(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	from, _ := cmd.Flags().GetString("from")
	gameID, _ := cmd.Flags().GetString("game")
	passphrase, _ := cmd.Flags().GetString("passphrase")
	move, _ := cmd.Flags().GetString("move")
	params := &rpc.RevealParam{From: from, GameID: gameID, Passphrase: passphrase, Move: move}
	var res rpc.TxResult
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Rps.Reveal", params, &res)
	ctx.Run()
}

func gameActionCmd(use, short, method string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Run: func(cmd *cobra.Command, args []string) {
			rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
			from, _ := cmd.Flags().GetString("from")
			gameID, _ := cmd.Flags().GetString("game")
			var res rpc.TxResult
			ctx := jsonclient.NewRPCCtx(rpcLaddr, method, &rpc.GameActionParam{From: from, GameID: gameID}, &res)
			ctx.Run()
		},
	}
	addGameFlags(cmd)
	return cmd
}

// ClaimCmd 领取
func ClaimCmd() *cobra.Command {
	return gameActionCmd("claim", "Claim the settled amount", "Rps.ClaimReward")
}

// WithdrawCmd 两个人都提交之前撤回
func WithdrawCmd() *cobra.Command {
	return gameActionCmd("withdraw", "Withdraw before both players committed", "Rps.Withdraw")
}

// PenalizeCmd 对手超时不揭示
func PenalizeCmd() *cobra.Command {
	return gameActionCmd("penalize", "Take the pot when the opponent does not reveal in time", "Rps.PenalizeInactive")
}

// ActiveGameCmd 两个人之间进行中的游戏
func ActiveGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "active",
		Short: "Get the active game between two players",
		Run:   activeGame,
	}
	cmd.Flags().StringP("player", "p", "", "player address")
	cmd.MarkFlagRequired("player")
	cmd.Flags().StringP("opponent", "o", "", "opponent address")
	cmd.MarkFlagRequired("opponent")
	return cmd
}

func activeGame(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	player, _ := cmd.Flags().GetString("player")
	opponent, _ := cmd.Flags().GetString("opponent")
	var res string
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Rps.GetActiveGameWith", &rpsty.ReqActiveGame{Player: player, Opponent: opponent}, &res)
	ctx.Run()
}

// PlayerGamesCmd 翻页列出玩家的游戏
func PlayerGamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "List games of a player",
		Run:   playerGames,
	}
	cmd.Flags().StringP("player", "p", "", "player address")
	cmd.MarkFlagRequired("player")
	cmd.Flags().Int32P("count", "c", 20, "page size")
	cmd.Flags().Int32P("direction", "d", 0, "0: newest first, 1: oldest first")
	cmd.Flags().StringP("key", "k", "", "primary key returned by the previous page")
	return cmd
}

func playerGames(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	player, _ := cmd.Flags().GetString("player")
	count, _ := cmd.Flags().GetInt32("count")
	direction, _ := cmd.Flags().GetInt32("direction")
	key, _ := cmd.Flags().GetString("key")
	req := &rpsty.ReqPlayerGames{Player: player, Count: count, Direction: direction, PrimaryKey: key}
	var res rpsty.ReplyPlayerGames
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Rps.GetPlayerGames", req, &res)
	ctx.Run()
}

// GameCmd 游戏详情
func GameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Get game detail",
		Run:   game,
	}
	cmd.Flags().StringP("game", "g", "", "game id")
	cmd.MarkFlagRequired("game")
	return cmd
}

func game(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	gameID, _ := cmd.Flags().GetString("game")
	var res rpc.GameResult
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Rps.GetGame", &rpsty.ReqGame{GameId: gameID}, &res)
	ctx.Run()
}

// ScoreBoardCmd 积分榜，指定 player 时只显示一个人
func ScoreBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Show the score board",
		Run:   scoreBoard,
	}
	cmd.Flags().StringP("player", "p", "", "only this player")
	return cmd
}

func scoreBoard(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	player, _ := cmd.Flags().GetString("player")
	if player != "" {
		var res rpc.ScoreResult
		ctx := jsonclient.NewRPCCtx(rpcLaddr, "Rps.GetPlayerScore", &rpsty.ReqPlayer{Player: player}, &res)
		ctx.Run()
		return
	}
	var res []*rpc.ScoreResult
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Rps.GetScoreBoard", &rpsty.ReqScoreBoard{}, &res)
	ctx.Run()
}

// AdversariesCmd 赢过和输给的对手
func AdversariesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adversaries",
		Short: "List defeated adversaries and winners against a player",
		Run:   adversaries,
	}
	cmd.Flags().StringP("player", "p", "", "player address")
	cmd.MarkFlagRequired("player")
	return cmd
}

func adversaries(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	player, _ := cmd.Flags().GetString("player")
	var res rpsty.ReplyAdversaries
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Rps.GetPlayerAdversaries", &rpsty.ReqPlayer{Player: player}, &res)
	ctx.Run()
}

// EncodeMoveCmd 本地计算 commitment，不需要节点
func EncodeMoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Compute the commitment of a move locally",
		Run:   encodeMove,
	}
	cmd.Flags().StringP("passphrase", "p", "", "secret passphrase")
	cmd.MarkFlagRequired("passphrase")
	cmd.Flags().StringP("move", "m", "", "rock, paper or scissors")
	cmd.MarkFlagRequired("move")
	return cmd
}

func encodeMove(cmd *cobra.Command, args []string) {
	passphrase, _ := cmd.Flags().GetString("passphrase")
	moveStr, _ := cmd.Flags().GetString("move")
	move, err := rpsty.ParseMove(moveStr)
	if err != nil || !move.IsValid() {
		fmt.Fprintln(os.Stderr, "invalid move", moveStr)
		return
	}
	fmt.Println(common.ToHex(rpsty.EncodeMove(passphrase, move)))
}
