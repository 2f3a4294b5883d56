// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeReceipt(t *testing.T) {
	prev := &Account{Addr: "0x1", Balance: Coin}
	cur := &Account{Addr: "0x1", Balance: Coin / 2}
	data := Encode(&ReceiptAccountTransfer{Prev: prev, Current: cur})

	var r ReceiptAccountTransfer
	require.NoError(t, Decode(data, &r))
	assert.Equal(t, Coin, r.GetPrev().GetBalance())
	assert.Equal(t, Coin/2, r.GetCurrent().GetBalance())
	assert.Equal(t, "0x1", r.GetCurrent().GetAddr())
}

func TestLocalDBSetGetKV(t *testing.T) {
	var set *LocalDBSet
	assert.Nil(t, set.GetKV())
	set = &LocalDBSet{KV: []*KeyValue{{Key: []byte("k"), Value: []byte("v")}}}
	require.Len(t, set.GetKV(), 1)
	assert.Equal(t, []byte("k"), set.GetKV()[0].Key)
}

func TestDecodeBadData(t *testing.T) {
	var acc Account
	assert.Error(t, Decode([]byte{0xff, 0xff, 0xff}, &acc))
	assert.Panics(t, func() { MustDecode([]byte{0xff, 0xff, 0xff}, &acc) })
}

type namedPayload struct{}

func (namedPayload) ActionName() string { return "Named" }

func TestTransactionActionName(t *testing.T) {
	tx := &Transaction{Execer: "rps"}
	assert.Equal(t, "unknown", tx.ActionName())
	tx.Payload = namedPayload{}
	assert.Equal(t, "Named", tx.ActionName())
}
