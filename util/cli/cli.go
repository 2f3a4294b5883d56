// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"os"

	"github.com/33cn/rps/common/log"
	"github.com/33cn/rps/system/dapp/commands"
	rpscmd "github.com/33cn/rps/system/dapp/rps/commands"
	tokencmd "github.com/33cn/rps/system/dapp/token/commands"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rps-cli",
	Short: "rps client tools",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print client version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(Version)
	},
}

func init() {
	rootCmd.AddCommand(
		rpscmd.RpsCmd(),
		tokencmd.TokenCmd(),
		commands.NodeCmd(),
		versionCmd,
	)
}

// Run 命令行入口，RPCAddr 是默认的节点地址
func Run(RPCAddr string) {
	log.SetLogLevel("error")
	if addr := os.Getenv("RPS_RPC_ADDR"); addr != "" {
		RPCAddr = addr
	}
	rootCmd.PersistentFlags().String("rpc_laddr", RPCAddr, "http url")
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
