// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands token 命令行
package commands

import (
	"github.com/33cn/rps/rpc"
	"github.com/33cn/rps/rpc/jsonclient"
	tokenty "github.com/33cn/rps/system/dapp/token/types"
	"github.com/spf13/cobra"
)

// TokenCmd token command
func TokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Token management",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		CreateTokenCmd(),
		TransferCmd(),
		ApproveCmd(),
		TransferFromCmd(),
		BalanceCmd(),
		AllowanceCmd(),
		TokenInfoCmd(),
		ListTokensCmd(),
	)
	return cmd
}

// CreateTokenCmd 创建代币，全部发行给创建者
func CreateTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a token, total supply goes to the creator",
		Run:   createToken,
	}
	cmd.Flags().StringP("from", "f", "", "creator address")
	cmd.MarkFlagRequired("from")
	cmd.Flags().StringP("symbol", "s", "", "token symbol, upper case")
	cmd.MarkFlagRequired("symbol")
	cmd.Flags().StringP("name", "n", "", "token name")
	cmd.MarkFlagRequired("name")
	cmd.Flags().StringP("total", "t", "", "total supply, e.g. 1000")
	cmd.MarkFlagRequired("total")
	return cmd
}

func createToken(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	from, _ := cmd.Flags().GetString("from")
	symbol, _ := cmd.Flags().GetString("symbol")
	name, _ := cmd.Flags().GetString("name")
	total, _ := cmd.Flags().GetString("total")
	params := &rpc.TokenCreateParam{From: from, Symbol: symbol, Name: name, Total: total}
	var res rpc.TxResult
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Token.Create", params, &res)
	ctx.Run()
}

// TransferCmd transfer
func TransferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer token",
		Run:   transfer,
	}
	addSymbolAmountFlags(cmd)
	cmd.Flags().StringP("to", "t", "", "receiver address")
	cmd.MarkFlagRequired("to")
	return cmd
}

func addSymbolAmountFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("from", "f", "", "sender address")
	cmd.MarkFlagRequired("from")
	cmd.Flags().StringP("symbol", "s", "", "token symbol")
	cmd.MarkFlagRequired("symbol")
	cmd.Flags().StringP("amount", "a", "", "amount, e.g. 0.1")
	cmd.MarkFlagRequired("amount")
}

func transfer(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	from, _ := cmd.Flags().GetString("from")
	symbol, _ := cmd.Flags().GetString("symbol")
	amount, _ := cmd.Flags().GetString("amount")
	to, _ := cmd.Flags().GetString("to")
	params := &rpc.TokenTransferParam{From: from, Symbol: symbol, To: to, Amount: amount}
	var res rpc.TxResult
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Token.Transfer", params, &res)
	ctx.Run()
}

// ApproveCmd 授权，下注之前授权给 gameId
func ApproveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approve",
		Short: "Approve a spender, e.g. a game id before commit",
		Run:   approve,
	}
	addSymbolAmountFlags(cmd)
	cmd.Flags().StringP("spender", "p", "", "spender address")
	cmd.MarkFlagRequired("spender")
	return cmd
}

func approve(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	from, _ := cmd.Flags().GetString("from")
	symbol, _ := cmd.Flags().GetString("symbol")
	amount, _ := cmd.Flags().GetString("amount")
	spender, _ := cmd.Flags().GetString("spender")
	params := &rpc.TokenApproveParam{From: from, Symbol: symbol, Spender: spender, Amount: amount}
	var res rpc.TxResult
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Token.Approve", params, &res)
	ctx.Run()
}

// TransferFromCmd spender 转移 owner 的代币
func TransferFromCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer_from",
		Short: "Transfer token on behalf of the owner",
		Run:   transferFrom,
	}
	addSymbolAmountFlags(cmd)
	cmd.Flags().StringP("owner", "o", "", "owner address")
	cmd.MarkFlagRequired("owner")
	cmd.Flags().StringP("to", "t", "", "receiver address")
	cmd.MarkFlagRequired("to")
	return cmd
}

func transferFrom(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	from, _ := cmd.Flags().GetString("from")
	symbol, _ := cmd.Flags().GetString("symbol")
	amount, _ := cmd.Flags().GetString("amount")
	owner, _ := cmd.Flags().GetString("owner")
	to, _ := cmd.Flags().GetString("to")
	params := &rpc.TokenTransferFromParam{From: from, Symbol: symbol, Owner: owner, To: to, Amount: amount}
	var res rpc.TxResult
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Token.TransferFrom", params, &res)
	ctx.Run()
}

// BalanceCmd 查询余额
func BalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Get balance of an address",
		Run:   balance,
	}
	cmd.Flags().StringP("symbol", "s", "", "token symbol")
	cmd.MarkFlagRequired("symbol")
	cmd.Flags().StringP("addr", "a", "", "account address")
	cmd.MarkFlagRequired("addr")
	return cmd
}

func balance(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	symbol, _ := cmd.Flags().GetString("symbol")
	addr, _ := cmd.Flags().GetString("addr")
	var res rpc.AccountResult
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Token.BalanceOf", &tokenty.ReqBalance{Symbol: symbol, Addr: addr}, &res)
	ctx.Run()
}

// AllowanceCmd 查询授权额度
func AllowanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allowance",
		Short: "Get allowance of owner to spender",
		Run:   allowance,
	}
	cmd.Flags().StringP("symbol", "s", "", "token symbol")
	cmd.MarkFlagRequired("symbol")
	cmd.Flags().StringP("owner", "o", "", "owner address")
	cmd.MarkFlagRequired("owner")
	cmd.Flags().StringP("spender", "p", "", "spender address")
	cmd.MarkFlagRequired("spender")
	return cmd
}

func allowance(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	symbol, _ := cmd.Flags().GetString("symbol")
	owner, _ := cmd.Flags().GetString("owner")
	spender, _ := cmd.Flags().GetString("spender")
	var res string
	req := &tokenty.ReqAllowance{Symbol: symbol, Owner: owner, Spender: spender}
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Token.Allowance", req, &res)
	ctx.Run()
}

// TokenInfoCmd 代币信息
func TokenInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Get token info",
		Run:   tokenInfo,
	}
	cmd.Flags().StringP("symbol", "s", "", "token symbol")
	cmd.MarkFlagRequired("symbol")
	return cmd
}

func tokenInfo(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	symbol, _ := cmd.Flags().GetString("symbol")
	var res rpc.TokenResult
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Token.GetTokenInfo", &tokenty.ReqTokenInfo{Symbol: symbol}, &res)
	ctx.Run()
}

// ListTokensCmd 列出代币
func ListTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tokens",
		Run:   listTokens,
	}
	cmd.Flags().Int32P("count", "c", 0, "max number of tokens")
	return cmd
}

func listTokens(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	count, _ := cmd.Flags().GetInt32("count")
	var res []*rpc.TokenResult
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Token.ListTokens", &tokenty.ReqTokens{Count: count}, &res)
	ctx.Run()
}
