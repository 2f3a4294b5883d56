// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	log "github.com/inconshreveable/log15"
)

var mlog = log.New("module", "db.memdb")

// memdb 应该无需区分同步与异步操作

func init() {
	dbCreator := func(name string, dir string, cache int) (DB, error) {
		return NewGoMemDB(name, dir, cache)
	}
	registerDBCreator(MemDBBackendStr, dbCreator, false)
}

// GoMemDB 内存数据库
type GoMemDB struct {
	db   map[string][]byte
	lock sync.RWMutex
}

// NewGoMemDB memdb 不需要创建文件
func NewGoMemDB(name string, dir string, cache int) (*GoMemDB, error) {
	return &GoMemDB{
		db: make(map[string][]byte),
	}, nil
}

// Get get
func (db *GoMemDB) Get(key []byte) ([]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if entry, ok := db.db[string(key)]; ok {
		return CopyBytes(entry), nil
	}
	return nil, ErrNotFoundInDb
}

// Set set，nil 的 value 按空值保存
func (db *GoMemDB) Set(key []byte, value []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()
	db.set(key, value)
	return nil
}

func (db *GoMemDB) set(key []byte, value []byte) {
	if value == nil {
		value = []byte{}
	}
	db.db[string(key)] = CopyBytes(value)
}

// SetSync 与 Set 相同
func (db *GoMemDB) SetSync(key []byte, value []byte) error {
	return db.Set(key, value)
}

// Delete delete
func (db *GoMemDB) Delete(key []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	delete(db.db, string(key))
	return nil
}

// DeleteSync 与 Delete 相同
func (db *GoMemDB) DeleteSync(key []byte) error {
	return db.Delete(key)
}

// Close 内存数据库不需要关闭
func (db *GoMemDB) Close() {
}

// Stats 统计
func (db *GoMemDB) Stats() map[string]string {
	db.lock.RLock()
	defer db.lock.RUnlock()
	var size int
	for k, v := range db.db {
		size += len(k) + len(v)
	}
	return map[string]string{
		"memdb.keys": strconv.Itoa(len(db.db)),
		"memdb.size": strconv.Itoa(size),
	}
}

// Iterator 创建时对前缀下的数据做一次快照
func (db *GoMemDB) Iterator(prefix []byte, reverse bool) Iterator {
	db.lock.RLock()
	defer db.lock.RUnlock()

	var keys []string
	for k := range db.db {
		if strings.HasPrefix(k, string(prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	values := make([][]byte, len(keys))
	for i, k := range keys {
		values[i] = db.db[k]
	}
	it := &goMemDBIt{keys: keys, values: values, reverse: reverse, prefix: prefix}
	it.Rewind()
	return it
}

type goMemDBIt struct {
	index   int      // 记录当前索引
	keys    []string // 记录所有keys值
	values  [][]byte
	reverse bool
	prefix  []byte
}

func (dbit *goMemDBIt) Prefix() []byte {
	return dbit.prefix
}

// Seek 正向定位到第一个 >= key 的位置，反向定位到最后一个 <= key 的位置
func (dbit *goMemDBIt) Seek(key []byte) bool {
	skey := string(key)
	if dbit.reverse {
		i := sort.Search(len(dbit.keys), func(i int) bool { return dbit.keys[i] > skey })
		dbit.index = i - 1
	} else {
		dbit.index = sort.SearchStrings(dbit.keys, skey)
	}
	return dbit.Valid()
}

func (dbit *goMemDBIt) Close() {
	dbit.keys = nil
	dbit.values = nil
}

func (dbit *goMemDBIt) Next() bool {
	if dbit.reverse {
		dbit.index--
	} else {
		dbit.index++
	}
	return dbit.Valid()
}

func (dbit *goMemDBIt) Rewind() bool {
	if dbit.reverse {
		dbit.index = len(dbit.keys) - 1
	} else {
		dbit.index = 0
	}
	return dbit.Valid()
}

func (dbit *goMemDBIt) Key() []byte {
	return []byte(dbit.keys[dbit.index])
}

func (dbit *goMemDBIt) Value() []byte {
	return dbit.values[dbit.index]
}

func (dbit *goMemDBIt) ValueCopy() []byte {
	return cloneByte(dbit.values[dbit.index])
}

func (dbit *goMemDBIt) Valid() bool {
	return dbit.index >= 0 && dbit.index < len(dbit.keys)
}

func (dbit *goMemDBIt) Error() error {
	return nil
}

type kv struct{ k, v []byte }
type memBatch struct {
	db     *GoMemDB
	writes []kv
	size   int
}

// NewBatch new batch
func (db *GoMemDB) NewBatch(sync bool) Batch {
	return &memBatch{db: db}
}

func (b *memBatch) Set(key, value []byte) {
	if value == nil {
		value = []byte{}
	}
	b.writes = append(b.writes, kv{CopyBytes(key), CopyBytes(value)})
	b.size += len(value)
}

func (b *memBatch) Delete(key []byte) {
	b.writes = append(b.writes, kv{CopyBytes(key), nil})
	b.size++
}

func (b *memBatch) Write() error {
	b.db.lock.Lock()
	defer b.db.lock.Unlock()

	for _, kv := range b.writes {
		if kv.v == nil {
			delete(b.db.db, string(kv.k))
		} else {
			b.db.set(kv.k, kv.v)
		}
	}
	mlog.Debug("batch write", "count", len(b.writes), "size", b.size)
	return nil
}

func (b *memBatch) ValueSize() int {
	return b.size
}

func (b *memBatch) Reset() {
	b.writes = b.writes[:0]
	b.size = 0
}
