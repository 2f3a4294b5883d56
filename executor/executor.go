// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package executor 执行交易
//
// 交易串行执行，每一笔交易要么全部写入，要么全部回滚。
// 查询只读取已经落盘的数据，不需要获取执行锁。
package executor

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/33cn/rps/common/address"
	dbm "github.com/33cn/rps/common/db"
	"github.com/33cn/rps/metrics"
	"github.com/33cn/rps/system/dapp"
	"github.com/33cn/rps/types"
	lru "github.com/hashicorp/golang-lru"
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

var elog = log.New("module", "execs")

var (
	heightKey    = []byte("LODB-exec-height")
	blockTimeKey = []byte("LODB-exec-blocktime")
)

// Executor 交易执行器
type Executor struct {
	mu      sync.Mutex
	cfg     *types.Config
	backend dbm.DB
	statedb *StateDB
	localdb *LocalDB
	// 最近一笔交易的高度和时间，查询时原子读取
	height    int64
	blocktime int64
	clock     func() int64
	metrics   *metrics.Metrics

	cacheMu sync.Mutex
	caches  map[string]*lru.Cache

	subMu sync.RWMutex
	subs  map[string]chan *types.TxResult
}

// New 每个数据库一个执行器
func New(cfg *types.Config, backend dbm.DB) *Executor {
	if cfg == nil {
		cfg = types.DefaultConfig()
	}
	exec := &Executor{
		cfg:     cfg,
		backend: backend,
		statedb: NewStateDB(backend),
		localdb: NewLocalDB(backend),
		clock:   types.NowUnix,
		metrics: metrics.New(),
		caches:  make(map[string]*lru.Cache),
		subs:    make(map[string]chan *types.TxResult),
	}
	exec.height = loadInt64(backend, heightKey)
	exec.blocktime = loadInt64(backend, blockTimeKey)
	elog.Info("New executor", "height", exec.height, "blocktime", exec.blocktime, "drivers", dapp.ListDrivers())
	return exec
}

func loadInt64(backend dbm.DB, key []byte) int64 {
	value, err := backend.Get(key)
	if err != nil {
		return 0
	}
	var data types.Int64
	types.MustDecode(value, &data)
	return data.Data
}

// SetClock 设置时钟，测试时使用
func (exec *Executor) SetClock(clock func() int64) {
	exec.mu.Lock()
	exec.clock = clock
	exec.mu.Unlock()
}

// GetHeight 已经执行的交易数
func (exec *Executor) GetHeight() int64 {
	return atomic.LoadInt64(&exec.height)
}

// GetBlockTime 最近一笔交易的时间
func (exec *Executor) GetBlockTime() int64 {
	return atomic.LoadInt64(&exec.blocktime)
}

// GetMetrics 统计数据
func (exec *Executor) GetMetrics() *metrics.Metrics {
	return exec.metrics
}

// GetConfig 配置
func (exec *Executor) GetConfig() *types.Config {
	return exec.cfg
}

// GetCache 实现 dapp.API
func (exec *Executor) GetCache(name string, size int) *lru.Cache {
	exec.cacheMu.Lock()
	defer exec.cacheMu.Unlock()
	if c, ok := exec.caches[name]; ok {
		return c
	}
	c, err := lru.New(size)
	if err != nil {
		panic(err)
	}
	exec.caches[name] = c
	return c
}

func (exec *Executor) loadDriver(name string, statedb dbm.KV, localdb dbm.KVDB) (dapp.Driver, error) {
	driver, err := dapp.LoadDriver(name, exec.cfg)
	if err != nil {
		return nil, err
	}
	driver.SetStateDB(statedb)
	driver.SetLocalDB(localdb)
	driver.SetAPI(exec)
	return driver, nil
}

// ExecTx 执行一笔交易
func (exec *Executor) ExecTx(tx *types.Transaction) (*types.TxResult, error) {
	if tx == nil {
		return nil, types.ErrInvalidParam
	}
	start := time.Now()
	exec.mu.Lock()
	result, err := exec.execTxOne(tx)
	exec.mu.Unlock()

	exec.metrics.MarkAction(tx.Execer, tx.ActionName(), err == nil, time.Since(start))
	if err != nil {
		elog.Debug("ExecTx", "execer", tx.Execer, "action", tx.ActionName(), "from", tx.From, "err", err)
		result.Err = err.Error()
	} else {
		exec.metrics.Gauge("exec.height", result.Height)
	}
	exec.notify(result)
	return result, err
}

func (exec *Executor) execTxOne(tx *types.Transaction) (*types.TxResult, error) {
	height := exec.height + 1
	blocktime := exec.clock()
	if blocktime < exec.blocktime {
		blocktime = exec.blocktime
	}
	result := &types.TxResult{
		Execer:    tx.Execer,
		Action:    tx.ActionName(),
		From:      tx.From,
		Height:    height,
		BlockTime: blocktime,
	}
	driver, err := exec.loadDriver(tx.Execer, exec.statedb, exec.localdb)
	if err != nil {
		return result, err
	}
	driver.SetEnv(height, blocktime)
	// 同一个地址只有一种写法
	from, err := address.Normalize(tx.From)
	if err != nil {
		return result, err
	}
	tx.From = from
	result.From = from
	if err := driver.CheckTx(tx, 0); err != nil {
		return result, err
	}

	// 任何一步出错，都丢弃这笔交易的所有修改
	defer func() {
		exec.statedb.reset()
		exec.localdb.reset()
	}()

	exec.statedb.Begin()
	receipt, err := driver.Exec(tx, 0)
	if err != nil {
		exec.statedb.Rollback()
		return result, err
	}
	if receipt == nil {
		receipt = &types.Receipt{Ty: types.ExecOk}
	}
	for _, kv := range receipt.KV {
		if err := exec.statedb.Set(kv.Key, kv.Value); err != nil {
			return result, err
		}
	}
	if err := exec.statedb.Commit(); err != nil {
		return result, err
	}

	receiptData := &types.ReceiptData{Ty: receipt.Ty, Logs: receipt.Logs}
	exec.localdb.Begin()
	set, err := driver.ExecLocal(tx, receiptData, 0)
	if err != nil {
		exec.localdb.Rollback()
		return result, err
	}
	for _, kv := range set.GetKV() {
		if err := exec.localdb.Set(kv.Key, kv.Value); err != nil {
			return result, err
		}
	}
	exec.localdb.Set(heightKey, types.Encode(&types.Int64{Data: height}))
	exec.localdb.Set(blockTimeKey, types.Encode(&types.Int64{Data: blocktime}))
	if err := exec.localdb.Commit(); err != nil {
		return result, err
	}

	batch := exec.backend.NewBatch(true)
	exec.statedb.flush(batch)
	exec.localdb.flush(batch)
	if err := batch.Write(); err != nil {
		elog.Error("execTxOne flush", "height", height, "err", err)
		return result, errors.Wrap(types.ErrDBFlush, err.Error())
	}
	atomic.StoreInt64(&exec.height, height)
	atomic.StoreInt64(&exec.blocktime, blocktime)
	result.Receipt = receiptData
	return result, nil
}

// Query 查询已经落盘的数据
func (exec *Executor) Query(execer, funcName string, param interface{}) (types.Message, error) {
	driver, err := exec.loadDriver(execer, NewStateDB(exec.backend), NewLocalDB(exec.backend))
	if err != nil {
		return nil, err
	}
	driver.SetEnv(exec.GetHeight(), exec.GetBlockTime())
	exec.metrics.MarkQuery(execer, funcName)
	return driver.Query(funcName, param)
}

// Subscribe 订阅交易执行结果，消费太慢的时候丢弃
func (exec *Executor) Subscribe(id string, size int) <-chan *types.TxResult {
	ch := make(chan *types.TxResult, size)
	exec.subMu.Lock()
	if old, ok := exec.subs[id]; ok {
		close(old)
	}
	exec.subs[id] = ch
	exec.subMu.Unlock()
	return ch
}

// Unsubscribe 取消订阅
func (exec *Executor) Unsubscribe(id string) {
	exec.subMu.Lock()
	defer exec.subMu.Unlock()
	if ch, ok := exec.subs[id]; ok {
		close(ch)
		delete(exec.subs, id)
	}
}

func (exec *Executor) notify(result *types.TxResult) {
	exec.subMu.RLock()
	defer exec.subMu.RUnlock()
	for id, ch := range exec.subs {
		select {
		case ch <- result:
		default:
			elog.Warn("notify drop", "subscriber", id, "height", result.Height)
		}
	}
}

// Close 关闭所有订阅
func (exec *Executor) Close() {
	exec.subMu.Lock()
	defer exec.subMu.Unlock()
	for id, ch := range exec.subs {
		close(ch)
		delete(exec.subs, id)
	}
}
