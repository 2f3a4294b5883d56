// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package address

import (
	"strings"

	"github.com/33cn/rps/common"
	"github.com/33cn/rps/types"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	lru "github.com/hashicorp/golang-lru"
)

var addrSeed = []byte("address seed bytes for public key")
var addressCache *lru.Cache

//MaxExecNameLength 执行器名最大长度
const MaxExecNameLength = 100

func init() {
	addressCache, _ = lru.New(10240)
}

//ExecAddress 执行器的地址，由名字计算，做一次cache
func ExecAddress(name string) string {
	if value, ok := addressCache.Get(name); ok {
		return value.(string)
	}
	if len(name) > MaxExecNameLength {
		panic("name too long")
	}
	var bname [200]byte
	buf := append(bname[:0], addrSeed...)
	buf = append(buf, []byte(name)...)
	hash := common.Keccak256(buf)
	addrstr := ethcommon.BytesToAddress(hash[12:]).Hex()
	addressCache.Add(name, addrstr)
	return addrstr
}

//CreateAddress 执行器第 nonce 次创建的子地址，和以太坊合约地址算法一致
func CreateAddress(creator string, nonce int64) string {
	return crypto.CreateAddress(ethcommon.HexToAddress(creator), uint64(nonce)).Hex()
}

//CheckAddress 检查地址格式
func CheckAddress(addr string) error {
	if !ethcommon.IsHexAddress(addr) {
		return types.ErrInvalidAddress
	}
	return nil
}

//Normalize 检查并转换成 checksum 格式，同一个地址只有一种表示
func Normalize(addr string) (string, error) {
	if err := CheckAddress(addr); err != nil {
		return "", err
	}
	return ethcommon.HexToAddress(addr).Hex(), nil
}

//PairKey 无序的两个地址组成的 key，小的在前
func PairKey(a, b string) string {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la > lb {
		la, lb = lb, la
	}
	return la + "-" + lb
}
