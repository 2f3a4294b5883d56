// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"bytes"
	"strconv"

	"github.com/dgraph-io/badger"
	log "github.com/inconshreveable/log15"
)

var blog = log.New("module", "db.gobadgerdb")

func init() {
	dbCreator := func(name string, dir string, cache int) (DB, error) {
		return NewGoBadgerDB(name, dir, cache)
	}
	registerDBCreator(GoBadgerDBBackendStr, dbCreator, false)
}

// GoBadgerDB db
type GoBadgerDB struct {
	db *badger.DB
}

// NewGoBadgerDB new
func NewGoBadgerDB(name string, dir string, cache int) (*GoBadgerDB, error) {
	opts := badger.DefaultOptions(dir + "/" + name + ".db")
	db, err := badger.Open(opts)
	if err != nil {
		blog.Error("NewGoBadgerDB", "error", err)
		return nil, err
	}
	return &GoBadgerDB{db: db}, nil
}

// Get get
func (db *GoBadgerDB) Get(key []byte) ([]byte, error) {
	var val []byte
	err := db.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, ErrNotFoundInDb
		}
		blog.Error("Get", "error", err)
		return nil, err
	}
	if val == nil {
		val = []byte{}
	}
	return val, nil
}

// Set set
func (db *GoBadgerDB) Set(key []byte, value []byte) error {
	err := db.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
	if err != nil {
		blog.Error("Set", "error", err)
	}
	return err
}

// SetSync badger 的每次提交都会写 value log
func (db *GoBadgerDB) SetSync(key []byte, value []byte) error {
	return db.Set(key, value)
}

// Delete delete
func (db *GoBadgerDB) Delete(key []byte) error {
	err := db.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
	if err != nil {
		blog.Error("Delete", "error", err)
	}
	return err
}

// DeleteSync delete
func (db *GoBadgerDB) DeleteSync(key []byte) error {
	return db.Delete(key)
}

// DB 底层数据库
func (db *GoBadgerDB) DB() *badger.DB {
	return db.db
}

// Close 关闭
func (db *GoBadgerDB) Close() {
	if err := db.db.Close(); err != nil {
		blog.Error("Close", "error", err)
	}
}

// Stats lsm 和 value log 的大小
func (db *GoBadgerDB) Stats() map[string]string {
	lsm, vlog := db.db.Size()
	return map[string]string{
		"badger.lsm":  strconv.FormatInt(lsm, 10),
		"badger.vlog": strconv.FormatInt(vlog, 10),
	}
}

// Iterator 前缀迭代器，迭代器关闭时释放只读事务
func (db *GoBadgerDB) Iterator(prefix []byte, reverse bool) Iterator {
	txn := db.db.NewTransaction(false)
	opts := badger.DefaultIteratorOptions
	opts.Reverse = reverse
	it := txn.NewIterator(opts)
	dbit := &goBadgerDBIt{txn: txn, it: it, reverse: reverse, prefix: prefix}
	dbit.Rewind()
	return dbit
}

type goBadgerDBIt struct {
	txn     *badger.Txn
	it      *badger.Iterator
	reverse bool
	prefix  []byte
	err     error
}

func (dbit *goBadgerDBIt) Prefix() []byte {
	return dbit.prefix
}

func (dbit *goBadgerDBIt) Rewind() bool {
	if dbit.reverse {
		if len(dbit.prefix) == 0 {
			dbit.it.Rewind()
		} else {
			dbit.it.Seek(prefixEnd(dbit.prefix))
		}
	} else {
		dbit.it.Seek(dbit.prefix)
	}
	return dbit.Valid()
}

func (dbit *goBadgerDBIt) Valid() bool {
	return dbit.it.ValidForPrefix(dbit.prefix)
}

func (dbit *goBadgerDBIt) Next() bool {
	dbit.it.Next()
	return dbit.Valid()
}

// Seek badger 的反向迭代器本身就定位到 <= key 的位置
func (dbit *goBadgerDBIt) Seek(key []byte) bool {
	dbit.it.Seek(key)
	return dbit.Valid()
}

func (dbit *goBadgerDBIt) Key() []byte {
	return dbit.it.Item().KeyCopy(nil)
}

func (dbit *goBadgerDBIt) Value() []byte {
	value, err := dbit.it.Item().ValueCopy(nil)
	if err != nil {
		dbit.err = err
	}
	return value
}

func (dbit *goBadgerDBIt) ValueCopy() []byte {
	return dbit.Value()
}

func (dbit *goBadgerDBIt) Error() error {
	return dbit.err
}

func (dbit *goBadgerDBIt) Close() {
	dbit.it.Close()
	dbit.txn.Discard()
}

// 反向迭代的起点，所有以 prefix 开头的 key 都比它小
func prefixEnd(prefix []byte) []byte {
	return append(cloneByte(prefix), bytes.Repeat([]byte{0xff}, 8)...)
}

//--------------------------------------------------------------------------------

type goBadgerDBBatch struct {
	db     *GoBadgerDB
	writes []kv
	size   int
}

// NewBatch 所有写入在 Write 的时候放在一个事务里提交
func (db *GoBadgerDB) NewBatch(sync bool) Batch {
	return &goBadgerDBBatch{db: db}
}

func (mBatch *goBadgerDBBatch) Set(key, value []byte) {
	if value == nil {
		value = []byte{}
	}
	mBatch.writes = append(mBatch.writes, kv{CopyBytes(key), CopyBytes(value)})
	mBatch.size += len(value)
}

func (mBatch *goBadgerDBBatch) Delete(key []byte) {
	mBatch.writes = append(mBatch.writes, kv{CopyBytes(key), nil})
	mBatch.size++
}

func (mBatch *goBadgerDBBatch) Write() error {
	err := mBatch.db.db.Update(func(txn *badger.Txn) error {
		for _, kv := range mBatch.writes {
			var err error
			if kv.v == nil {
				err = txn.Delete(kv.k)
			} else {
				err = txn.Set(kv.k, kv.v)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		blog.Error("Write", "error", err)
	}
	return err
}

func (mBatch *goBadgerDBBatch) ValueSize() int {
	return mBatch.size
}

func (mBatch *goBadgerDBBatch) Reset() {
	mBatch.writes = mBatch.writes[:0]
	mBatch.size = 0
}
