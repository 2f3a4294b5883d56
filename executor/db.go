// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"sort"

	"github.com/33cn/rps/common/db"
	"github.com/33cn/rps/types"
)

// StateDB 状态数据库
//
// 一笔交易的写入先放在 txcache，Commit 之后进入 cache，
// flush 的时候 cache 一次性写入后端。nil 表示删除。
type StateDB struct {
	cache   map[string][]byte
	txcache map[string][]byte
	keys    []string
	intx    bool
	backend db.DB
}

// NewStateDB new state db
func NewStateDB(backend db.DB) *StateDB {
	return &StateDB{
		cache:   make(map[string][]byte),
		backend: backend,
	}
}

// Begin 开启内存事务处理
func (s *StateDB) Begin() {
	s.intx = true
	s.keys = nil
	s.txcache = nil
}

// Rollback reset tx
func (s *StateDB) Rollback() {
	s.resetTx()
}

// Commit 事务的修改进入 cache，还没有落盘
func (s *StateDB) Commit() error {
	for k, v := range s.txcache {
		s.cache[k] = v
	}
	s.resetTx()
	return nil
}

func (s *StateDB) resetTx() {
	s.intx = false
	s.txcache = nil
	s.keys = nil
}

// Get get value from state db
func (s *StateDB) Get(key []byte) ([]byte, error) {
	skey := string(key)
	if s.intx && s.txcache != nil {
		if value, ok := s.txcache[skey]; ok {
			return checkDeleted(value)
		}
	}
	if value, ok := s.cache[skey]; ok {
		return checkDeleted(value)
	}
	value, err := s.backend.Get(key)
	if err != nil {
		if err == db.ErrNotFoundInDb {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func checkDeleted(value []byte) ([]byte, error) {
	if value == nil {
		return nil, types.ErrNotFound
	}
	return value, nil
}

// Set set key value to state db
func (s *StateDB) Set(key []byte, value []byte) error {
	skey := string(key)
	if s.intx {
		if s.txcache == nil {
			s.txcache = make(map[string][]byte)
		}
		s.keys = append(s.keys, skey)
		s.txcache[skey] = value
	} else {
		s.cache[skey] = value
	}
	return nil
}

// GetSetKeys 当前事务修改过的 key
func (s *StateDB) GetSetKeys() (keys []string) {
	return s.keys
}

// KVs 已经提交还没有落盘的数据，按 key 排序
func (s *StateDB) KVs() []*types.KeyValue {
	return sortedKVs(s.cache)
}

func (s *StateDB) flush(batch db.Batch) {
	for k, v := range s.cache {
		if v == nil {
			batch.Delete([]byte(k))
		} else {
			batch.Set([]byte(k), v)
		}
	}
}

func (s *StateDB) reset() {
	s.resetTx()
	s.cache = make(map[string][]byte)
}

// Flush 单独落盘
func (s *StateDB) Flush() error {
	batch := s.backend.NewBatch(true)
	s.flush(batch)
	if err := batch.Write(); err != nil {
		return err
	}
	s.reset()
	return nil
}

func sortedKVs(data map[string][]byte) []*types.KeyValue {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	kvs := make([]*types.KeyValue, len(keys))
	for i, k := range keys {
		kvs[i] = &types.KeyValue{Key: []byte(k), Value: data[k]}
	}
	return kvs
}
