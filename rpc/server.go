// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rpc jsonrpc 接口和 websocket 推送
package rpc

import (
	"net"
	"net/http"
	"net/rpc"
	"sync"

	"github.com/33cn/rps/executor"
	"github.com/33cn/rps/types"
	"github.com/gorilla/websocket"
	log15 "github.com/inconshreveable/log15"
)

var log = log15.New("module", "rpc")

// JSONRPCServer  a json rpcserver object
type JSONRPCServer struct {
	exec      *executor.Executor
	cfg       *types.RPC
	s         *rpc.Server
	mu        sync.Mutex
	l         net.Listener
	whitelist map[string]bool
	upgrader  websocket.Upgrader
}

// NewJSONRPCServer 注册 Rps Token Node 三组接口
func NewJSONRPCServer(exec *executor.Executor, cfg *types.RPC) (*JSONRPCServer, error) {
	if cfg == nil {
		cfg = types.DefaultConfig().RPC
	}
	j := &JSONRPCServer{
		exec:      exec,
		cfg:       cfg,
		s:         rpc.NewServer(),
		whitelist: initIPWhitelist(cfg),
	}
	j.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		// 来源由 ip 白名单控制
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	services := map[string]interface{}{
		"Rps":   &Rps{exec: exec},
		"Token": &Token{exec: exec},
		"Node":  &Node{exec: exec},
	}
	for name, service := range services {
		if err := j.s.RegisterName(name, service); err != nil {
			return nil, err
		}
	}
	return j, nil
}

// Close json rpcserver close
func (j *JSONRPCServer) Close() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.l != nil {
		err := j.l.Close()
		if err != nil {
			log.Error("JSONRPCServer close", "err", err)
		}
		j.l = nil
	}
}

// initIPWhitelist 没有配置时只允许本机，"*" 允许所有
func initIPWhitelist(cfg *types.RPC) map[string]bool {
	whitelist := make(map[string]bool)
	if len(cfg.Whitelist) == 0 {
		whitelist["127.0.0.1"] = true
		return whitelist
	}
	if len(cfg.Whitelist) == 1 && cfg.Whitelist[0] == "*" {
		whitelist["0.0.0.0"] = true
		return whitelist
	}
	for _, addr := range cfg.Whitelist {
		whitelist[addr] = true
	}
	return whitelist
}

func (j *JSONRPCServer) checkIPWhitelist(addr string) bool {
	//回环网络直接允许
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	if ip.IsLoopback() {
		return true
	}
	if ipv4 := ip.To4(); ipv4 != nil {
		addr = ipv4.String()
	}
	if j.whitelist["0.0.0.0"] {
		return true
	}
	return j.whitelist[addr]
}
