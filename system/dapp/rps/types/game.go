package types

import (
	proto "github.com/golang/protobuf/proto"
)

// PlayerSlot 一个玩家在一局游戏中的数据
type PlayerSlot struct {
	Addr       string `protobuf:"bytes,1,opt,name=addr,proto3" json:"addr,omitempty"`
	Commitment []byte `protobuf:"bytes,2,opt,name=commitment,proto3" json:"commitment,omitempty"`
	Move       int32  `protobuf:"varint,3,opt,name=move,proto3" json:"move,omitempty"`
	Paid       bool   `protobuf:"varint,4,opt,name=paid,proto3" json:"paid,omitempty"`
	Refunded   bool   `protobuf:"varint,5,opt,name=refunded,proto3" json:"refunded,omitempty"`
	Claimed    bool   `protobuf:"varint,6,opt,name=claimed,proto3" json:"claimed,omitempty"`
	Payout     int64  `protobuf:"varint,7,opt,name=payout,proto3" json:"payout,omitempty"`
	ActionTime int64  `protobuf:"varint,8,opt,name=actionTime,proto3" json:"actionTime,omitempty"`
	RevealTime int64  `protobuf:"varint,9,opt,name=revealTime,proto3" json:"revealTime,omitempty"`
}

func (m *PlayerSlot) Reset()         { *m = PlayerSlot{} }
func (m *PlayerSlot) String() string { return proto.CompactTextString(m) }
func (*PlayerSlot) ProtoMessage()    {}

// HasCommitted 已经提交
func (m *PlayerSlot) HasCommitted() bool {
	return m != nil && len(m.Commitment) > 0
}

// HasRevealed 已经揭示
func (m *PlayerSlot) HasRevealed() bool {
	return m != nil && Move(m.Move) != MoveNone
}

// Game 一局游戏，gameId 同时是托管地址
type Game struct {
	GameId         string        `protobuf:"bytes,1,opt,name=gameId,proto3" json:"gameId,omitempty"`
	Index          int64         `protobuf:"varint,2,opt,name=index,proto3" json:"index,omitempty"`
	Token          string        `protobuf:"bytes,3,opt,name=token,proto3" json:"token,omitempty"`
	Stake          int64         `protobuf:"varint,4,opt,name=stake,proto3" json:"stake,omitempty"`
	Players        []*PlayerSlot `protobuf:"bytes,5,rep,name=players,proto3" json:"players,omitempty"`
	Status         int32         `protobuf:"varint,6,opt,name=status,proto3" json:"status,omitempty"`
	Outcome        int32         `protobuf:"varint,7,opt,name=outcome,proto3" json:"outcome,omitempty"`
	Winner         string        `protobuf:"bytes,8,opt,name=winner,proto3" json:"winner,omitempty"`
	Loser          string        `protobuf:"bytes,9,opt,name=loser,proto3" json:"loser,omitempty"`
	CreateTime     int64         `protobuf:"varint,10,opt,name=createTime,proto3" json:"createTime,omitempty"`
	ResolveTime    int64         `protobuf:"varint,11,opt,name=resolveTime,proto3" json:"resolveTime,omitempty"`
	PenalizeWindow int64         `protobuf:"varint,12,opt,name=penalizeWindow,proto3" json:"penalizeWindow,omitempty"`
}

func (m *Game) Reset()         { *m = Game{} }
func (m *Game) String() string { return proto.CompactTextString(m) }
func (*Game) ProtoMessage()    {}

// GetWinner 平局或者没有结束时为空
func (m *Game) GetWinner() string {
	if m != nil {
		return m.Winner
	}
	return ""
}

// GetLoser 平局或者没有结束时为空
func (m *Game) GetLoser() string {
	if m != nil {
		return m.Loser
	}
	return ""
}

func (m *Game) GetStake() int64 {
	if m != nil {
		return m.Stake
	}
	return 0
}

func (m *Game) GetStatus() int32 {
	if m != nil {
		return m.Status
	}
	return StatusNone
}

// Slot 玩家的数据，不是玩家时返回 nil
func (m *Game) Slot(addr string) *PlayerSlot {
	for _, p := range m.Players {
		if p.Addr == addr {
			return p
		}
	}
	return nil
}

// Opponent 对手的数据
func (m *Game) Opponent(addr string) *PlayerSlot {
	for _, p := range m.Players {
		if p.Addr != addr {
			return p
		}
	}
	return nil
}

// IsFinished 结局已经确定，之后不会再改变
func (m *Game) IsFinished() bool {
	return m.Status == StatusResolved || m.Status == StatusTerminated
}

// IsCountable 计入积分榜：已经结束并且不是中途撤回
func (m *Game) IsCountable() bool {
	if !m.IsFinished() {
		return false
	}
	return m.Outcome == OutcomeWin || m.Outcome == OutcomeTie || m.Outcome == OutcomeForfeit
}

// GameIndex 玩家游戏列表中的一项
type GameIndex struct {
	GameId string `protobuf:"bytes,1,opt,name=gameId,proto3" json:"gameId,omitempty"`
	Index  int64  `protobuf:"varint,2,opt,name=index,proto3" json:"index,omitempty"`
}

func (m *GameIndex) Reset()         { *m = GameIndex{} }
func (m *GameIndex) String() string { return proto.CompactTextString(m) }
func (*GameIndex) ProtoMessage()    {}

// ReceiptRps 游戏动作的日志
type ReceiptRps struct {
	GameId     string   `protobuf:"bytes,1,opt,name=gameId,proto3" json:"gameId,omitempty"`
	Index      int64    `protobuf:"varint,2,opt,name=index,proto3" json:"index,omitempty"`
	Players    []string `protobuf:"bytes,3,rep,name=players,proto3" json:"players,omitempty"`
	Actor      string   `protobuf:"bytes,4,opt,name=actor,proto3" json:"actor,omitempty"`
	PrevStatus int32    `protobuf:"varint,5,opt,name=prevStatus,proto3" json:"prevStatus,omitempty"`
	Status     int32    `protobuf:"varint,6,opt,name=status,proto3" json:"status,omitempty"`
	Outcome    int32    `protobuf:"varint,7,opt,name=outcome,proto3" json:"outcome,omitempty"`
	Winner     string   `protobuf:"bytes,8,opt,name=winner,proto3" json:"winner,omitempty"`
	Loser      string   `protobuf:"bytes,9,opt,name=loser,proto3" json:"loser,omitempty"`
	Amount     int64    `protobuf:"varint,10,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *ReceiptRps) Reset()         { *m = ReceiptRps{} }
func (m *ReceiptRps) String() string { return proto.CompactTextString(m) }
func (*ReceiptRps) ProtoMessage()    {}

// ScoreEntry 积分榜的一行
type ScoreEntry struct {
	Player      string `protobuf:"bytes,1,opt,name=player,proto3" json:"player"`
	GamesPlayed int64  `protobuf:"varint,2,opt,name=gamesPlayed,proto3" json:"gamesPlayed"`
	Wins        int64  `protobuf:"varint,3,opt,name=wins,proto3" json:"wins"`
	Losses      int64  `protobuf:"varint,4,opt,name=losses,proto3" json:"losses"`
	Ties        int64  `protobuf:"varint,5,opt,name=ties,proto3" json:"ties"`
	Earned      int64  `protobuf:"varint,6,opt,name=earned,proto3" json:"earned"`
	Lost        int64  `protobuf:"varint,7,opt,name=lost,proto3" json:"lost"`
}

func (m *ScoreEntry) Reset()         { *m = ScoreEntry{} }
func (m *ScoreEntry) String() string { return proto.CompactTextString(m) }
func (*ScoreEntry) ProtoMessage()    {}

// ReplyScoreBoard 积分榜，按玩家地址排序
type ReplyScoreBoard struct {
	Entries []*ScoreEntry `protobuf:"bytes,1,rep,name=entries,proto3" json:"entries"`
}

func (m *ReplyScoreBoard) Reset()         { *m = ReplyScoreBoard{} }
func (m *ReplyScoreBoard) String() string { return proto.CompactTextString(m) }
func (*ReplyScoreBoard) ProtoMessage()    {}

// ReplyPlayerGames 一页游戏，PrimaryKey 非空时可以继续翻页
type ReplyPlayerGames struct {
	GameIds    []string `protobuf:"bytes,1,rep,name=gameIds,proto3" json:"gameIds"`
	PrimaryKey string   `protobuf:"bytes,2,opt,name=primaryKey,proto3" json:"primaryKey,omitempty"`
}

func (m *ReplyPlayerGames) Reset()         { *m = ReplyPlayerGames{} }
func (m *ReplyPlayerGames) String() string { return proto.CompactTextString(m) }
func (*ReplyPlayerGames) ProtoMessage()    {}

// ReplyAdversaries 赢过和输给的对手
type ReplyAdversaries struct {
	Winnings []string `protobuf:"bytes,1,rep,name=winnings,proto3" json:"winnings"`
	Defeats  []string `protobuf:"bytes,2,rep,name=defeats,proto3" json:"defeats"`
}

func (m *ReplyAdversaries) Reset()         { *m = ReplyAdversaries{} }
func (m *ReplyAdversaries) String() string { return proto.CompactTextString(m) }
func (*ReplyAdversaries) ProtoMessage()    {}
