package types

import (
	"strconv"
	"strings"

	"github.com/33cn/rps/common"
	"github.com/33cn/rps/types"
)

// Move 出拳
type Move int32

// 0 表示还没有揭示
const (
	MoveNone     Move = 0
	MoveRock     Move = 1
	MovePaper    Move = 2
	MoveScissors Move = 3
)

var moveNames = []string{"none", "rock", "paper", "scissors"}

func (m Move) String() string {
	if m < MoveNone || m > MoveScissors {
		return "Move(" + strconv.Itoa(int(m)) + ")"
	}
	return moveNames[m]
}

// IsValid 只有石头剪刀布三种
func (m Move) IsValid() bool {
	return m >= MoveRock && m <= MoveScissors
}

// ParseMove 名字不区分大小写，也可以是数字
func ParseMove(s string) (Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range moveNames {
		if s == name {
			return Move(i), nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < int(MoveNone) || n > int(MoveScissors) {
		return MoveNone, types.ErrInvalidMove
	}
	return Move(n), nil
}

// EncodeMove keccak256(passphrase || uint8(move))
//
// 和 solidity 的 keccak256(abi.encodePacked(string, uint8)) 一致
func EncodeMove(passphrase string, move Move) []byte {
	return common.Keccak256([]byte(passphrase), []byte{uint8(move)})
}

// Judge a 赢返回 1，b 赢返回 -1，平局返回 0
func Judge(a, b Move) int {
	switch {
	case a == b:
		return 0
	case (int(a)-int(b)+3)%3 == 1:
		return 1
	default:
		return -1
	}
}
