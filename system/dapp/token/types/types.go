// Package types token 执行器的交易和查询类型
package types

import (
	dbm "github.com/33cn/rps/common/db"
	"github.com/33cn/rps/types"
	proto "github.com/golang/protobuf/proto"
)

// TokenX 执行器名字
const TokenX = "token"

// 本地索引前缀
const (
	TokenInfoPrefix = "mavl-token-info-"
	TokenListPrefix = "LODB-token-list:"
)

// CalcTokenInfoKey 代币信息的 key
func CalcTokenInfoKey(symbol string) []byte {
	return []byte(TokenInfoPrefix + symbol)
}

// CalcTokenListKey 代币列表的 key
func CalcTokenListKey(symbol string) []byte {
	return []byte(TokenListPrefix + symbol)
}

// LoadTokenInfo 代币不存在时返回 ErrNotFound
func LoadTokenInfo(db dbm.KV, symbol string) (*TokenInfo, error) {
	value, err := db.Get(CalcTokenInfoKey(symbol))
	if err != nil {
		return nil, types.ErrNotFound
	}
	var info TokenInfo
	if err := types.Decode(value, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// TokenCreate 创建代币，全部发行量给创建者
type TokenCreate struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Total  int64  `json:"total"`
}

func (*TokenCreate) ActionName() string { return "Create" }

// TokenTransfer 转账
type TokenTransfer struct {
	Symbol string `json:"symbol"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

func (*TokenTransfer) ActionName() string { return "Transfer" }

// TokenApprove 授权 spender 使用额度
type TokenApprove struct {
	Symbol  string `json:"symbol"`
	Spender string `json:"spender"`
	Amount  int64  `json:"amount"`
}

func (*TokenApprove) ActionName() string { return "Approve" }

// TokenTransferFrom 交易发起者使用 From 的授权额度转给 To
type TokenTransferFrom struct {
	Symbol string `json:"symbol"`
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

func (*TokenTransferFrom) ActionName() string { return "TransferFrom" }

// ReqBalance 查询余额
type ReqBalance struct {
	Symbol string `json:"symbol"`
	Addr   string `json:"addr"`
}

// ReqAllowance 查询授权额度
type ReqAllowance struct {
	Symbol  string `json:"symbol"`
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
}

// ReqTokenInfo 查询代币信息
type ReqTokenInfo struct {
	Symbol string `json:"symbol"`
}

// ReqTokens 列出代币
type ReqTokens struct {
	Count int32 `json:"count"`
}

// TokenInfo 代币信息
type TokenInfo struct {
	Symbol     string `protobuf:"bytes,1,opt,name=symbol,proto3" json:"symbol,omitempty"`
	Name       string `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
	Total      int64  `protobuf:"varint,3,opt,name=total,proto3" json:"total,omitempty"`
	Owner      string `protobuf:"bytes,4,opt,name=owner,proto3" json:"owner,omitempty"`
	CreateTime int64  `protobuf:"varint,5,opt,name=createTime,proto3" json:"createTime,omitempty"`
}

func (m *TokenInfo) Reset()         { *m = TokenInfo{} }
func (m *TokenInfo) String() string { return proto.CompactTextString(m) }
func (*TokenInfo) ProtoMessage()    {}

func (m *TokenInfo) GetSymbol() string {
	if m != nil {
		return m.Symbol
	}
	return ""
}

// ReplyTokens 代币列表
type ReplyTokens struct {
	Tokens []*TokenInfo `protobuf:"bytes,1,rep,name=tokens,proto3" json:"tokens,omitempty"`
}

func (m *ReplyTokens) Reset()         { *m = ReplyTokens{} }
func (m *ReplyTokens) String() string { return proto.CompactTextString(m) }
func (*ReplyTokens) ProtoMessage()    {}
