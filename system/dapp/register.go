// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dapp

import (
	"sort"
	"sync"

	"github.com/33cn/rps/common/address"
	"github.com/33cn/rps/types"
	log "github.com/inconshreveable/log15"
)

var elog = log.New("module", "execs")

// DriverCreate defines a drivercreate function
type DriverCreate func(cfg *types.Config) Driver

var (
	mu                 sync.RWMutex
	registedExecDriver = make(map[string]DriverCreate)
	execAddressNameMap = make(map[string]string)
)

// Register register driver by name, 在各个执行器的 init 中调用
func Register(name string, create DriverCreate) {
	if create == nil {
		panic("Execute: Register driver is nil")
	}
	mu.Lock()
	defer mu.Unlock()
	if _, dup := registedExecDriver[name]; dup {
		panic("Execute: Register called twice for driver " + name)
	}
	registedExecDriver[name] = create
	execAddressNameMap[ExecAddress(name)] = name
}

// LoadDriver 每次调用都创建一个新的驱动实例
func LoadDriver(name string, cfg *types.Config) (Driver, error) {
	mu.RLock()
	c, ok := registedExecDriver[name]
	mu.RUnlock()
	if !ok {
		elog.Debug("LoadDriver", "driver", name)
		return nil, types.ErrExecNotFound
	}
	return c(cfg), nil
}

// ListDrivers 已经注册的执行器
func ListDrivers() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registedExecDriver))
	for name := range registedExecDriver {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExecAddress 执行器的地址
func ExecAddress(name string) string {
	return address.ExecAddress(name)
}

// IsDriverAddress 地址是否是某个执行器
func IsDriverAddress(addr string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := execAddressNameMap[addr]
	return ok
}
