package executor

import (
	"github.com/33cn/rps/common/db"
	"github.com/33cn/rps/types"
)

//LocalDB 本地数据库，不属于状态的索引数据
//get set 经过 cache，list 只能看到已经落盘的数据
type LocalDB struct {
	*StateDB
	list *db.ListHelper
}

//NewLocalDB 创建一个新的LocalDB
func NewLocalDB(backend db.DB) *LocalDB {
	return &LocalDB{
		StateDB: NewStateDB(backend),
		list:    db.NewListHelper(backend),
	}
}

// List 从数据库中查询数据列表
func (l *LocalDB) List(prefix, key []byte, count, direction int32) ([][]byte, error) {
	if count <= 0 || count > types.MaxListCount {
		return nil, types.ErrInvalidParam
	}
	values := l.list.List(prefix, key, count, direction)
	if values == nil {
		return nil, types.ErrNotFound
	}
	return values, nil
}

// PrefixCount 从数据库中查询指定前缀的key的数量
func (l *LocalDB) PrefixCount(prefix []byte) (count int64) {
	return l.list.PrefixCount(prefix)
}

// Walk 按顺序遍历已经落盘的数据，fn 返回 true 时停止
func (l *LocalDB) Walk(prefix []byte, direction int32, fn func(key, value []byte) bool) {
	l.list.Walk(prefix, direction, fn)
}
