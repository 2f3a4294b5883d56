// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands 节点相关命令
package commands

import (
	"github.com/33cn/rps/metrics"
	"github.com/33cn/rps/rpc/jsonclient"
	"github.com/33cn/rps/types"
	"github.com/spf13/cobra"
)

// NodeCmd node command
func NodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Node status",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		MetricsCmd(),
		BlockTimeCmd(),
	)
	return cmd
}

// MetricsCmd 执行器统计
func MetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Get executor metrics",
		Run: func(cmd *cobra.Command, args []string) {
			rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
			var res []*metrics.Stat
			ctx := jsonclient.NewRPCCtx(rpcLaddr, "Node.GetMetrics", &types.ReqNil{}, &res)
			ctx.Run()
		},
	}
}

// BlockTimeCmd 最后一笔交易的高度和时间
func BlockTimeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "blocktime",
		Short: "Get height and block time of the last transaction",
		Run: func(cmd *cobra.Command, args []string) {
			rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
			var res map[string]int64
			ctx := jsonclient.NewRPCCtx(rpcLaddr, "Node.GetBlockTime", &types.ReqNil{}, &res)
			ctx.Run()
		},
	}
}
