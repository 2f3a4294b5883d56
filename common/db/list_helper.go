// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"bytes"

	log "github.com/inconshreveable/log15"
)

var listlog = log.New("module", "db.ListHelper")

// list 方向
const (
	ListDESC = int32(0)
	ListASC  = int32(1)
)

// ListHelper 在 IteratorDB 上做分页和遍历
type ListHelper struct {
	db IteratorDB
}

// NewListHelper new
func NewListHelper(db IteratorDB) *ListHelper {
	return &ListHelper{db: db}
}

// scan 从 start 开始按方向遍历 prefix 下的数据，start 为空时从头(尾)开始，
// start 本身不包含在结果里。fn 返回 true 时停止
func (l *ListHelper) scan(prefix, start []byte, direction int32, fn func(key, value []byte) bool) error {
	it := l.db.Iterator(prefix, direction == ListDESC)
	defer it.Close()

	if len(start) == 0 {
		it.Rewind()
	} else {
		if !it.Seek(start) {
			return it.Error()
		}
		if bytes.Equal(it.Key(), start) {
			it.Next()
		}
	}
	for ; it.Valid(); it.Next() {
		value := it.ValueCopy()
		if err := it.Error(); err != nil {
			return err
		}
		if fn(cloneByte(it.Key()), value) {
			break
		}
	}
	return nil
}

// List 最多返回 count 个 value，出错或者没有数据时返回 nil
func (l *ListHelper) List(prefix, key []byte, count, direction int32) (values [][]byte) {
	err := l.scan(prefix, key, direction, func(_, value []byte) bool {
		values = append(values, value)
		return int32(len(values)) == count
	})
	if err != nil {
		listlog.Error("List", "prefix", string(prefix), "error", err)
		return nil
	}
	return values
}

// PrefixCount 前缀数量
func (l *ListHelper) PrefixCount(prefix []byte) (count int64) {
	err := l.scan(prefix, nil, ListASC, func(_, _ []byte) bool {
		count++
		return false
	})
	if err != nil {
		listlog.Error("PrefixCount", "prefix", string(prefix), "error", err)
		return 0
	}
	return count
}

// Walk 按顺序回调，fn 返回 true 时停止
func (l *ListHelper) Walk(prefix []byte, direction int32, fn func(key, value []byte) bool) {
	if err := l.scan(prefix, nil, direction, fn); err != nil {
		listlog.Error("Walk", "prefix", string(prefix), "error", err)
	}
}
