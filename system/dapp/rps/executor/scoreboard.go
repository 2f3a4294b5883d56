package executor

import (
	"sort"

	dbm "github.com/33cn/rps/common/db"
	rpsty "github.com/33cn/rps/system/dapp/rps/types"
	"github.com/33cn/rps/types"
	lru "github.com/hashicorp/golang-lru"
)

// gameReader 聚合查询时读取游戏，结局已经确定的游戏放进 cache
type gameReader struct {
	db    dbm.KV
	cache *lru.Cache
}

func (g *gameReader) get(gameID string) (*rpsty.Game, error) {
	if g.cache != nil {
		if v, ok := g.cache.Get(gameID); ok {
			return v.(*rpsty.Game), nil
		}
	}
	game, err := getGame(g.db, gameID)
	if err != nil {
		return nil, err
	}
	// winner loser stake 在结局确定之后不再改变
	if g.cache != nil && game.IsCountable() {
		g.cache.Add(gameID, game)
	}
	return game, nil
}

// walkPlayerGames 按创建顺序遍历玩家的游戏，fn 返回 true 时停止
func walkPlayerGames(localdb dbm.KVDB, player string, fn func(gi *rpsty.GameIndex) bool) error {
	var err error
	localdb.Walk(calcPlayerGamePrefix(player), dbm.ListASC, func(key, value []byte) bool {
		var gi rpsty.GameIndex
		if err = types.Decode(value, &gi); err != nil {
			return true
		}
		return fn(&gi)
	})
	return err
}

// walkPlayers 所有玩过游戏的地址，按地址排序
func walkPlayers(localdb dbm.KVDB, fn func(addr string) bool) {
	localdb.Walk([]byte(playersPrefix), dbm.ListASC, func(key, value []byte) bool {
		return fn(string(value))
	})
}

// scoreOf 没有结局的游戏和撤回的游戏不计入
func scoreOf(reader *gameReader, localdb dbm.KVDB, player string) (*rpsty.ScoreEntry, error) {
	entry := &rpsty.ScoreEntry{Player: player}
	var rerr error
	err := walkPlayerGames(localdb, player, func(gi *rpsty.GameIndex) bool {
		game, err := reader.get(gi.GameId)
		if err != nil {
			rerr = err
			return true
		}
		if !game.IsCountable() {
			return false
		}
		entry.GamesPlayed++
		switch player {
		case game.Winner:
			entry.Wins++
			entry.Earned += game.Stake
		case game.Loser:
			entry.Losses++
			entry.Lost += game.Stake
		default:
			entry.Ties++
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	if rerr != nil {
		return nil, rerr
	}
	return entry, nil
}

func scoreBoard(reader *gameReader, localdb dbm.KVDB) (*rpsty.ReplyScoreBoard, error) {
	reply := &rpsty.ReplyScoreBoard{}
	var err error
	walkPlayers(localdb, func(addr string) bool {
		var entry *rpsty.ScoreEntry
		entry, err = scoreOf(reader, localdb, addr)
		if err != nil {
			return true
		}
		reply.Entries = append(reply.Entries, entry)
		return false
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(reply.Entries, func(i, j int) bool {
		return reply.Entries[i].Player < reply.Entries[j].Player
	})
	return reply, nil
}

// adversaries 赢过的对手和输给的对手，去重，按第一次出现的顺序
func adversaries(reader *gameReader, localdb dbm.KVDB, player string) (*rpsty.ReplyAdversaries, error) {
	reply := &rpsty.ReplyAdversaries{Winnings: []string{}, Defeats: []string{}}
	seenW := make(map[string]bool)
	seenD := make(map[string]bool)
	var rerr error
	err := walkPlayerGames(localdb, player, func(gi *rpsty.GameIndex) bool {
		game, err := reader.get(gi.GameId)
		if err != nil {
			rerr = err
			return true
		}
		if game.Winner == player && !seenW[game.Loser] {
			seenW[game.Loser] = true
			reply.Winnings = append(reply.Winnings, game.Loser)
		}
		if game.Loser == player && !seenD[game.Winner] {
			seenD[game.Winner] = true
			reply.Defeats = append(reply.Defeats, game.Winner)
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	if rerr != nil {
		return nil, rerr
	}
	return reply, nil
}
