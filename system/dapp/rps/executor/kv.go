package executor

import (
	"fmt"

	"github.com/33cn/rps/common/address"
)

/*
状态数据:
mavl-rps-game-<gameId>          -> Game
mavl-rps-active-<addr1>-<addr2> -> gameId，两个地址小写并排序
mavl-rps-nonce                  -> 已经创建的游戏数

本地索引:
LODB-rps-player:<addr>:<index>  -> GameIndex
LODB-rps-players:<addr>         -> addr
*/

var (
	gameKeyPrefix    = "mavl-rps-game-"
	activeKeyPrefix  = "mavl-rps-active-"
	nonceKey         = []byte("mavl-rps-nonce")
	playerGamePrefix = "LODB-rps-player:"
	playersPrefix    = "LODB-rps-players:"
)

func calcGameKey(gameID string) []byte {
	return []byte(gameKeyPrefix + gameID)
}

func calcActiveKey(a, b string) []byte {
	return []byte(activeKeyPrefix + address.PairKey(a, b))
}

func calcPlayerGamePrefix(addr string) []byte {
	return []byte(playerGamePrefix + addr + ":")
}

func calcPlayerGameKey(addr string, index int64) []byte {
	return []byte(fmt.Sprintf("%s%s:%s", playerGamePrefix, addr, indexStr(index)))
}

func calcPlayerKey(addr string) []byte {
	return []byte(playersPrefix + addr)
}

func indexStr(index int64) string {
	return fmt.Sprintf("%018d", index)
}
