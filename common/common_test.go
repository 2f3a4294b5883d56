// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeccak256(t *testing.T) {
	assert.Equal(t, "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", ToHex(Keccak256(nil)))
	// 多段输入和拼接后的结果一致
	assert.Equal(t, Keccak256([]byte("password1\x01")), Keccak256([]byte("password1"), []byte{1}))
	assert.Len(t, Keccak256([]byte("a")), 32)
}

func TestHex(t *testing.T) {
	assert.Equal(t, "", ToHex(nil))
	assert.Equal(t, "0x0102", ToHex([]byte{1, 2}))

	b, err := FromHex("0x0102")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, b)

	b, err = FromHex("102")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, b)

	_, err = FromHex("0xzz")
	assert.Error(t, err)

	assert.True(t, HasHexPrefix("0X12"))
	assert.False(t, HasHexPrefix("12"))
}

func TestCopyBytes(t *testing.T) {
	assert.Nil(t, CopyBytes(nil))
	src := []byte{1, 2, 3}
	dst := CopyBytes(src)
	dst[0] = 9
	assert.Equal(t, byte(1), src[0])
}

func TestSha256(t *testing.T) {
	assert.Equal(t, "0xe3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", ToHex(Sha256(nil)))
}
