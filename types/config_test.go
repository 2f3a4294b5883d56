// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCfg = `
Title="test"

[log]
loglevel = "debug"
logConsoleLevel = "info"
logFile = "logs/rps.log"
maxFileSize = 300
maxBackups = 100

[store]
driver = "goleveldb"
dbPath = "datadir/store"

[rpc]
jrpcBindAddr = "localhost:9801"
whitelist = ["127.0.0.1"]
enableWebsocket = true

[exec.rps]
penalizeWindow = 60
`

func TestInitCfgString(t *testing.T) {
	cfg, err := InitCfgString(testCfg)
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.Title)
	assert.Equal(t, "debug", cfg.Log.Loglevel)
	assert.Equal(t, uint32(300), cfg.Log.MaxFileSize)
	assert.Equal(t, "goleveldb", cfg.Store.Driver)
	assert.Equal(t, "rps", cfg.Store.Name)
	assert.Equal(t, "localhost:9801", cfg.RPC.JrpcBindAddr)
	assert.Equal(t, []string{"127.0.0.1"}, cfg.RPC.Whitelist)
	assert.True(t, cfg.RPC.EnableWebsocket)
	assert.Equal(t, int64(60), cfg.Exec.Rps.PenalizeWindow)
	assert.Equal(t, DefaultGameCacheSize, cfg.Exec.Rps.GameCacheSize)
	assert.False(t, cfg.Metrics.EnableMetrics)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "memdb", cfg.Store.Driver)
	assert.Equal(t, DefaultPenalizeWindow, cfg.Exec.Rps.PenalizeWindow)
	assert.Equal(t, DefaultJrpcBindAddr, cfg.RPC.JrpcBindAddr)
}

func TestInitCfgBadFile(t *testing.T) {
	_, err := InitCfg("testdata/notexist.toml")
	assert.Error(t, err)

	_, err = InitCfgString("Title = ")
	assert.Error(t, err)
}

func TestShippedConfig(t *testing.T) {
	cfg, err := InitCfg("../rps.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultPenalizeWindow, cfg.Exec.Rps.PenalizeWindow)
	assert.Equal(t, DefaultJrpcBindAddr, cfg.RPC.JrpcBindAddr)
}
