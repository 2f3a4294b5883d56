// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db 键值数据库的接口以及 memdb, goleveldb, gobadgerdb 三种实现
package db

import (
	"errors"
	"fmt"
)

// ErrNotFoundInDb key 不存在
var ErrNotFoundInDb = errors.New("ErrNotFoundInDb")

// KV 最基本的读写
type KV interface {
	Get(key []byte) ([]byte, error)
	Set(key []byte, value []byte) error
}

// TxKV 支持事务的 KV，执行器在一笔交易的开始和结束调用
type TxKV interface {
	KV
	Begin()
	Rollback()
	Commit() error
}

// Lister 按前缀列出数据
type Lister interface {
	List(prefix, key []byte, count, direction int32) ([][]byte, error)
	PrefixCount(prefix []byte) int64
}

// Walker 按顺序回调，fn 返回 true 时停止
type Walker interface {
	Walk(prefix []byte, direction int32, fn func(key, value []byte) bool)
}

// KVDB 本地数据库，可以 list
type KVDB interface {
	TxKV
	Lister
	Walker
}

// IteratorDB 迭代器
type IteratorDB interface {
	Iterator(prefix []byte, reverse bool) Iterator
}

// DB 后端数据库
type DB interface {
	KV
	IteratorDB
	SetSync([]byte, []byte) error
	Delete([]byte) error
	DeleteSync([]byte) error
	Close()
	NewBatch(sync bool) Batch
	Stats() map[string]string
}

// Batch 批量写入，Write 的时候原子落盘
type Batch interface {
	Set(key, value []byte)
	Delete(key []byte)
	Write() error
	ValueSize() int
	Reset()
}

// Iterator 前缀迭代器
type Iterator interface {
	Prefix() []byte
	Valid() bool
	Rewind() bool
	Next() bool
	Seek(key []byte) bool
	Key() []byte
	Value() []byte
	ValueCopy() []byte
	Error() error
	Close()
}

//-----------------------------------------------------------------------------

// 后端名字
const (
	LevelDBBackendStr    = "leveldb" // legacy, defaults to goleveldb.
	GoLevelDBBackendStr  = "goleveldb"
	MemDBBackendStr      = "memdb"
	GoBadgerDBBackendStr = "gobadgerdb"
)

type dbCreator func(name string, dir string, cache int) (DB, error)

var backends = map[string]dbCreator{}

func registerDBCreator(backend string, creator dbCreator, force bool) {
	_, ok := backends[backend]
	if !force && ok {
		return
	}
	backends[backend] = creator
}

// NewDB 按名字创建后端数据库
func NewDB(name string, backend string, dir string, cache int) (DB, error) {
	dbCreator, ok := backends[backend]
	if !ok {
		return nil, fmt.Errorf("unknown db backend %s", backend)
	}
	db, err := dbCreator(name, dir, cache)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// CopyBytes 复制
func CopyBytes(b []byte) (copiedBytes []byte) {
	if b == nil {
		return nil
	}
	copiedBytes = make([]byte, len(b))
	copy(copiedBytes, b)
	return copiedBytes
}

func cloneByte(v []byte) []byte {
	value := make([]byte, len(v))
	copy(value, v)
	return value
}
