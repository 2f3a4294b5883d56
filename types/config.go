// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	tml "github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config 节点配置
type Config struct {
	Title   string   `toml:"title"`
	Log     *Log     `toml:"log"`
	Store   *Store   `toml:"store"`
	RPC     *RPC     `toml:"rpc"`
	Exec    *Exec    `toml:"exec"`
	Metrics *Metrics `toml:"metrics"`
}

// Log 日志配置
type Log struct {
	Loglevel        string `toml:"loglevel"`
	LogConsoleLevel string `toml:"logConsoleLevel"`
	LogFile         string `toml:"logFile"`
	MaxFileSize     uint32 `toml:"maxFileSize"`
	MaxBackups      uint32 `toml:"maxBackups"`
	MaxAge          uint32 `toml:"maxAge"`
	LocalTime       bool   `toml:"localTime"`
	Compress        bool   `toml:"compress"`
	CallerFile      bool   `toml:"callerFile"`
	CallerFunction  bool   `toml:"callerFunction"`
}

// Store 数据库配置
type Store struct {
	Name    string `toml:"name"`
	Driver  string `toml:"driver"`
	DbPath  string `toml:"dbPath"`
	DbCache int32  `toml:"dbCache"`
}

// RPC jsonrpc 配置
type RPC struct {
	JrpcBindAddr    string   `toml:"jrpcBindAddr"`
	Whitelist       []string `toml:"whitelist"`
	EnableWebsocket bool     `toml:"enableWebsocket"`
}

// Exec 执行器配置
type Exec struct {
	Rps *RpsConfig `toml:"rps"`
}

// RpsConfig 猜拳执行器的参数
type RpsConfig struct {
	// 揭示之后等待对手揭示的时间，单位秒
	PenalizeWindow int64 `toml:"penalizeWindow"`
	GameCacheSize  int   `toml:"gameCacheSize"`
}

// Metrics 统计配置
type Metrics struct {
	EnableMetrics bool  `toml:"enableMetrics"`
	Interval      int64 `toml:"interval"`
}

// InitCfg 从文件读取配置
func InitCfg(path string) (*Config, error) {
	var cfg Config
	if _, err := tml.DecodeFile(path, &cfg); err != nil {
		return nil, errors.Wrapf(err, "decode config %s", path)
	}
	cfg.fillDefault()
	return &cfg, nil
}

// InitCfgString 从字符串读取配置，测试时使用
func InitCfgString(cfgstring string) (*Config, error) {
	var cfg Config
	if _, err := tml.Decode(cfgstring, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	cfg.fillDefault()
	return &cfg, nil
}

// DefaultConfig 内存数据库，默认参数
func DefaultConfig() *Config {
	cfg := &Config{Title: "local"}
	cfg.fillDefault()
	return cfg
}

func (cfg *Config) fillDefault() {
	if cfg.Title == "" {
		cfg.Title = "local"
	}
	if cfg.Log == nil {
		cfg.Log = &Log{}
	}
	if cfg.Store == nil {
		cfg.Store = &Store{}
	}
	if cfg.Store.Name == "" {
		cfg.Store.Name = "rps"
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "memdb"
	}
	if cfg.Store.DbPath == "" {
		cfg.Store.DbPath = "datadir"
	}
	if cfg.RPC == nil {
		cfg.RPC = &RPC{}
	}
	if cfg.RPC.JrpcBindAddr == "" {
		cfg.RPC.JrpcBindAddr = DefaultJrpcBindAddr
	}
	if cfg.Exec == nil {
		cfg.Exec = &Exec{}
	}
	if cfg.Exec.Rps == nil {
		cfg.Exec.Rps = &RpsConfig{}
	}
	if cfg.Exec.Rps.PenalizeWindow <= 0 {
		cfg.Exec.Rps.PenalizeWindow = DefaultPenalizeWindow
	}
	if cfg.Exec.Rps.GameCacheSize <= 0 {
		cfg.Exec.Rps.GameCacheSize = DefaultGameCacheSize
	}
	if cfg.Metrics == nil {
		cfg.Metrics = &Metrics{}
	}
	if cfg.Metrics.Interval <= 0 {
		cfg.Metrics.Interval = 60
	}
}
