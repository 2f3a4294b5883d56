// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"

	proto "github.com/golang/protobuf/proto"
)

// Message 所有状态数据都是 protobuf 消息
type Message proto.Message

// Encode 编码，失败说明代码有问题，直接 panic
func Encode(data proto.Message) []byte {
	b, err := proto.Marshal(data)
	if err != nil {
		panic(err)
	}
	return b
}

// Decode 解码
func Decode(data []byte, msg proto.Message) error {
	return proto.Unmarshal(data, msg)
}

// MustDecode 解码失败时 panic，只用于数据库中已经存在的数据
func MustDecode(data []byte, v interface{}) {
	if data == nil {
		return
	}
	if msg, ok := v.(proto.Message); ok {
		if err := Decode(data, msg); err != nil {
			panic(err)
		}
		return
	}
	if err := json.Unmarshal(data, v); err != nil {
		panic(err)
	}
}

// ActionPayload 交易负载，名字决定调用的 Exec_ 和 ExecLocal_ 方法
type ActionPayload interface {
	ActionName() string
}

// Transaction 执行器的输入：执行器名字，发起地址以及负载
type Transaction struct {
	Execer  string        `json:"execer"`
	From    string        `json:"from"`
	Payload ActionPayload `json:"payload"`
}

// ActionName 交易的动作名字
func (tx *Transaction) ActionName() string {
	if tx.Payload == nil {
		return "unknown"
	}
	return tx.Payload.ActionName()
}

// TxResult 一笔交易执行完成后的通知
type TxResult struct {
	Execer    string       `json:"execer"`
	Action    string       `json:"action"`
	From      string       `json:"from"`
	Height    int64        `json:"height"`
	BlockTime int64        `json:"blockTime"`
	Receipt   *ReceiptData `json:"receipt,omitempty"`
	Err       string       `json:"err,omitempty"`
}

// IsOk 交易是否执行成功
func (r *TxResult) IsOk() bool {
	return r.Err == ""
}

// MergeReceipt 合并两个收据，receipt1 为空时直接返回 receipt2
func MergeReceipt(receipt1, receipt2 *Receipt) *Receipt {
	if receipt2 == nil {
		return receipt1
	}
	if receipt1 == nil {
		return receipt2
	}
	receipt1.KV = append(receipt1.KV, receipt2.KV...)
	receipt1.Logs = append(receipt1.Logs, receipt2.Logs...)
	return receipt1
}
