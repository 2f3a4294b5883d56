// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli RunRps 加载配置、数据库、执行器和 rpc，组合成节点程序
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	dbm "github.com/33cn/rps/common/db"
	clog "github.com/33cn/rps/common/log"
	"github.com/33cn/rps/executor"
	"github.com/33cn/rps/rpc"
	_ "github.com/33cn/rps/system" // register executors
	"github.com/33cn/rps/types"
	log "github.com/inconshreveable/log15"
	"github.com/joho/godotenv"
)

// Version 节点版本
const Version = "1.0.0"

var (
	configPath  = flag.String("f", "", "configfile")
	datadir     = flag.String("datadir", "", "data dir of rps, overrides store.dbPath")
	versionFlag = flag.Bool("v", false, "version")
	envFile     = flag.String("env", ".env", "env file, RPS_CONFIG and RPS_RPC_ADDR override the config")
)

var rlog = log.New("module", "rpsd")

// RunRps 启动节点，收到 SIGINT SIGTERM 后退出
func RunRps(name string) {
	flag.Parse()
	if *versionFlag {
		fmt.Println(Version)
		return
	}
	cfg, err := loadConfig(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	clog.SetFileLog(cfg.Log)
	defer clog.Close()

	rlog.Info("loading store", "driver", cfg.Store.Driver, "path", cfg.Store.DbPath)
	db, err := dbm.NewDB(cfg.Store.Name, cfg.Store.Driver, cfg.Store.DbPath, int(cfg.Store.DbCache))
	if err != nil {
		rlog.Crit("open db", "err", err)
		os.Exit(1)
	}

	rlog.Info("loading execs module")
	exec := executor.New(cfg, db)

	rlog.Info("loading rpc module")
	server, err := rpc.NewJSONRPCServer(exec, cfg.RPC)
	if err != nil {
		rlog.Crit("create rpc", "err", err)
		os.Exit(1)
	}
	if _, err := server.Listen(); err != nil {
		rlog.Crit("rpc listen", "addr", cfg.RPC.JrpcBindAddr, "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	exec.GetMetrics().StartMetrics(ctx, cfg.Metrics)
	go watching(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	rlog.Info("shutting down", "signal", s.String())

	cancel()
	rlog.Info("begin close rpc module")
	server.Close()
	rlog.Info("begin close execs module")
	exec.Close()
	rlog.Info("begin close store module")
	db.Close()
}

// loadConfig 命令行 -f 优先，其次是环境变量 RPS_CONFIG，最后是 name.toml，
// 文件不存在时使用默认配置
func loadConfig(name string) (*types.Config, error) {
	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	path := *configPath
	if path == "" {
		path = os.Getenv("RPS_CONFIG")
	}
	if path == "" {
		if name == "" {
			name = "rps"
		}
		path = name + ".toml"
	}
	var cfg *types.Config
	if _, err := os.Stat(path); err == nil {
		cfg, err = types.InitCfg(path)
		if err != nil {
			return nil, err
		}
	} else {
		rlog.Warn("config not found, use default", "path", path)
		cfg = types.DefaultConfig()
	}
	if *datadir != "" {
		cfg.Store.DbPath = *datadir
	}
	if addr := os.Getenv("RPS_RPC_ADDR"); addr != "" {
		cfg.RPC.JrpcBindAddr = addr
	}
	return cfg, nil
}

func watching(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			rlog.Info("info:", "NumGoroutine:", runtime.NumGoroutine())
			rlog.Info("info:", "HeapAlloc:", m.HeapAlloc/(1024*1024))
		}
	}
}
