// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dapp 执行器的基础框架
//
// 每个执行器嵌入 DriverBase，通过反射把交易分发到子类的
// Exec_<Action>、ExecLocal_<Action> 以及 Query_<FuncName> 方法。
package dapp

import (
	"encoding/json"
	"reflect"

	"github.com/33cn/rps/common/address"
	dbm "github.com/33cn/rps/common/db"
	"github.com/33cn/rps/types"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

// API 执行器提供给驱动的公共服务
type API interface {
	// GetCache 同名的 cache 只创建一次，驱动实例之间共享
	GetCache(name string, size int) *lru.Cache
}

// Driver 执行器驱动接口
type Driver interface {
	SetStateDB(dbm.KV)
	GetStateDB() dbm.KV
	SetLocalDB(dbm.KVDB)
	GetLocalDB() dbm.KVDB
	GetDriverName() string
	GetName() string
	SetName(string)
	SetEnv(height, blocktime int64)
	GetHeight() int64
	GetBlockTime() int64
	CheckTx(tx *types.Transaction, index int) error
	Exec(tx *types.Transaction, index int) (*types.Receipt, error)
	ExecLocal(tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error)
	Query(funcName string, param interface{}) (types.Message, error)
	GetFuncMap() map[string]reflect.Method
	SetAPI(API)
	GetAPI() API
}

// DriverBase 执行器的公共部分
type DriverBase struct {
	statedb    dbm.KV
	localdb    dbm.KVDB
	height     int64
	blocktime  int64
	name       string
	child      Driver
	childValue reflect.Value
	funcmap    map[string]reflect.Method
	api        API
}

// SetChild 子类初始化时必须调用
func (d *DriverBase) SetChild(e Driver) {
	d.child = e
	d.childValue = reflect.ValueOf(e)
	d.funcmap = ListMethod(e)
}

// GetFuncMap 子类的方法
func (d *DriverBase) GetFuncMap() map[string]reflect.Method {
	return d.funcmap
}

func (d *DriverBase) SetAPI(api API) {
	d.api = api
}

func (d *DriverBase) GetAPI() API {
	return d.api
}

// SetEnv 设置区块高度和时间
func (d *DriverBase) SetEnv(height, blocktime int64) {
	d.height = height
	d.blocktime = blocktime
}

// GetHeight 当前执行的高度
func (d *DriverBase) GetHeight() int64 {
	return d.height
}

// GetBlockTime 当前执行的时间
func (d *DriverBase) GetBlockTime() int64 {
	return d.blocktime
}

func (d *DriverBase) SetStateDB(db dbm.KV) {
	d.statedb = db
}

func (d *DriverBase) GetStateDB() dbm.KV {
	return d.statedb
}

func (d *DriverBase) SetLocalDB(db dbm.KVDB) {
	d.localdb = db
}

func (d *DriverBase) GetLocalDB() dbm.KVDB {
	return d.localdb
}

// GetName 执行器名字，没有设置时使用驱动名字
func (d *DriverBase) GetName() string {
	if d.name == "" {
		return d.child.GetDriverName()
	}
	return d.name
}

func (d *DriverBase) SetName(name string) {
	d.name = name
}

// GetExecAddr 执行器地址
func (d *DriverBase) GetExecAddr() string {
	return ExecAddress(d.GetName())
}

// CheckTx 默认只检查发起地址
func (d *DriverBase) CheckTx(tx *types.Transaction, index int) error {
	if tx.Payload == nil {
		return types.ErrActionNotSupport
	}
	if tx.Execer != d.GetName() {
		return types.ErrExecNameNotAllow
	}
	return CheckAddress(tx.From)
}

// CheckAddress 普通地址或者执行器地址
func CheckAddress(addr string) error {
	if IsDriverAddress(addr) {
		return nil
	}
	return address.CheckAddress(addr)
}

func (d *DriverBase) method(funcname string, param interface{}) (reflect.Method, reflect.Value, error) {
	m, ok := d.funcmap[funcname]
	if !ok {
		return m, reflect.Value{}, types.ErrActionNotSupport
	}
	value := reflect.ValueOf(param)
	if m.Type.NumIn() < 2 || !value.IsValid() || !value.Type().AssignableTo(m.Type.In(1)) {
		return m, reflect.Value{}, errors.Wrapf(types.ErrActionNotSupport, "%s param %T", funcname, param)
	}
	if !returnsError(m) {
		return m, reflect.Value{}, types.ErrMethodReturnType
	}
	return m, value, nil
}

// Exec 调用子类的 Exec_ 方法
func (d *DriverBase) Exec(tx *types.Transaction, index int) (receipt *types.Receipt, err error) {
	defer func() {
		if r := recover(); r != nil {
			elog.Error("call exec error", "tx.exec", tx.Execer, "info", r)
			err = types.ErrActionNotSupport
			receipt = nil
		}
	}()
	funcname := "Exec_" + tx.ActionName()
	m, value, err := d.method(funcname, tx.Payload)
	if err != nil {
		return nil, err
	}
	valueret := m.Func.Call([]reflect.Value{d.childValue, value, reflect.ValueOf(tx), reflect.ValueOf(index)})
	if !IsOK(valueret, 2) {
		return nil, types.ErrMethodReturnType
	}
	//参数1
	if r1 := valueret[0].Interface(); r1 != nil {
		r, ok := r1.(*types.Receipt)
		if !ok {
			return nil, types.ErrMethodReturnType
		}
		receipt = r
	}
	//参数2
	if r2 := valueret[1].Interface(); r2 != nil {
		r, ok := r2.(error)
		if !ok {
			return nil, types.ErrMethodReturnType
		}
		return nil, r
	}
	return receipt, nil
}

// ExecLocal 调用子类的 ExecLocal_ 方法，没有实现时返回空集合
func (d *DriverBase) ExecLocal(tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	var set types.LocalDBSet
	lset, err := d.callLocal("ExecLocal_", tx, receipt, index)
	if err == types.ErrActionNotSupport {
		return &set, nil
	}
	if err != nil {
		elog.Error("call ExecLocal", "tx.Execer", tx.Execer, "err", err)
		return nil, err
	}
	//merge
	if lset != nil && lset.KV != nil {
		set.KV = append(set.KV, lset.KV...)
	}
	return &set, nil
}

func (d *DriverBase) callLocal(prefix string, tx *types.Transaction, receipt *types.ReceiptData, index int) (set *types.LocalDBSet, err error) {
	defer func() {
		if r := recover(); r != nil {
			elog.Error("call localexec error", "prefix", prefix, "tx.exec", tx.Execer, "info", r)
			err = types.ErrActionNotSupport
			set = nil
		}
	}()
	funcname := prefix + tx.ActionName()
	m, value, err := d.method(funcname, tx.Payload)
	if err != nil {
		return nil, types.ErrActionNotSupport
	}
	valueret := m.Func.Call([]reflect.Value{d.childValue, value, reflect.ValueOf(tx), reflect.ValueOf(receipt), reflect.ValueOf(index)})
	if !IsOK(valueret, 2) {
		return nil, types.ErrMethodReturnType
	}
	if r1 := valueret[0].Interface(); r1 != nil {
		r, ok := r1.(*types.LocalDBSet)
		if !ok {
			return nil, types.ErrMethodReturnType
		}
		set = r
	}
	if r2 := valueret[1].Interface(); r2 != nil {
		r, ok := r2.(error)
		if !ok {
			return nil, types.ErrMethodReturnType
		}
		return nil, r
	}
	return set, nil
}

// Query 调用子类的 Query_ 方法
//
// param 可以是方法需要的类型，也可以是 json 编码的数据
func (d *DriverBase) Query(funcName string, param interface{}) (msg types.Message, err error) {
	defer func() {
		if r := recover(); r != nil {
			elog.Error("query error", "func", funcName, "info", r)
			err = types.ErrQueryNotSupport
			msg = nil
		}
	}()
	funcname := "Query_" + funcName
	m, ok := d.funcmap[funcname]
	if !ok || m.Type.NumIn() != 2 {
		return nil, errors.Wrap(types.ErrQueryNotSupport, funcName)
	}
	param, err = decodeQueryParam(m.Type.In(1), param)
	if err != nil {
		return nil, err
	}
	_, value, err := d.method(funcname, param)
	if err != nil {
		return nil, errors.Wrap(types.ErrInvalidParam, err.Error())
	}
	valueret := m.Func.Call([]reflect.Value{d.childValue, value})
	if !IsOK(valueret, 2) {
		return nil, types.ErrMethodReturnType
	}
	if r2 := valueret[1].Interface(); r2 != nil {
		r, ok := r2.(error)
		if !ok {
			return nil, types.ErrMethodReturnType
		}
		return nil, r
	}
	if r1 := valueret[0].Interface(); r1 != nil {
		r, ok := r1.(types.Message)
		if !ok {
			return nil, types.ErrMethodReturnType
		}
		return r, nil
	}
	return nil, types.ErrNotFound
}

func decodeQueryParam(ty reflect.Type, param interface{}) (interface{}, error) {
	var data []byte
	switch p := param.(type) {
	case json.RawMessage:
		data = p
	case []byte:
		data = p
	case string:
		data = []byte(p)
	default:
		return param, nil
	}
	if ty.Kind() != reflect.Ptr {
		return nil, types.ErrInvalidParam
	}
	v := reflect.New(ty.Elem())
	if len(data) > 0 {
		if err := json.Unmarshal(data, v.Interface()); err != nil {
			return nil, errors.Wrap(types.ErrInvalidParam, err.Error())
		}
	}
	return v.Interface(), nil
}

// GetActionName 交易的动作名字
func (d *DriverBase) GetActionName(tx *types.Transaction) string {
	return tx.ActionName()
}
