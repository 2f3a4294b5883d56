package executor

import (
	"testing"

	dbm "github.com/33cn/rps/common/db"
	"github.com/33cn/rps/executor"
	rpsty "github.com/33cn/rps/system/dapp/rps/types"
	_ "github.com/33cn/rps/system/dapp/token/executor"
	tokenty "github.com/33cn/rps/system/dapp/token/types"
	"github.com/33cn/rps/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	owner    = "0x0000000000000000000000000000000000000100"
	player1  = "0x1000000000000000000000000000000000000001"
	player2  = "0x2000000000000000000000000000000000000002"
	outsider = "0x3000000000000000000000000000000000000003"

	symbol = "EXT"
	stake  = types.Coin / 10

	pass1 = "password1"
	pass2 = "password2"
)

const window = 100

type suite struct {
	t    *testing.T
	exec *executor.Executor
	now  int64
}

func newSuite(t *testing.T) *suite {
	db, err := dbm.NewDB("rps", "memdb", "", 0)
	require.NoError(t, err)
	cfg := types.DefaultConfig()
	cfg.Exec.Rps.PenalizeWindow = window
	s := &suite{t: t, exec: executor.New(cfg, db), now: 1000}
	s.exec.SetClock(func() int64 { return s.now })

	require.NoError(t, s.token(owner, &tokenty.TokenCreate{Symbol: symbol, Name: "example", Total: 100 * types.Coin}))
	for _, addr := range []string{player1, player2, outsider} {
		require.NoError(t, s.token(owner, &tokenty.TokenTransfer{Symbol: symbol, To: addr, Amount: types.Coin}))
	}
	return s
}

func (s *suite) token(from string, payload types.ActionPayload) error {
	_, err := s.exec.ExecTx(&types.Transaction{Execer: tokenty.TokenX, From: from, Payload: payload})
	return err
}

func (s *suite) rps(from string, payload types.ActionPayload) error {
	_, err := s.exec.ExecTx(&types.Transaction{Execer: rpsty.RpsX, From: from, Payload: payload})
	return err
}

func (s *suite) query(funcName string, param interface{}) types.Message {
	msg, err := s.exec.Query(rpsty.RpsX, funcName, param)
	require.NoError(s.t, err, funcName)
	return msg
}

func (s *suite) balance(addr string) int64 {
	msg, err := s.exec.Query(tokenty.TokenX, "BalanceOf", &tokenty.ReqBalance{Symbol: symbol, Addr: addr})
	require.NoError(s.t, err)
	return msg.(*types.Account).Balance
}

func (s *suite) active(a, b string) string {
	return s.query("GetActiveGameWith", &rpsty.ReqActiveGame{Player: a, Opponent: b}).(*types.ReplyString).Data
}

func (s *suite) game(id string) *rpsty.Game {
	return s.query("GetGame", &rpsty.ReqGame{GameId: id}).(*rpsty.Game)
}

func (s *suite) newGame(a, b string) string {
	require.NoError(s.t, s.rps(a, &rpsty.RpsNewGame{Opponent: b, Token: symbol, Stake: stake}))
	id := s.active(a, b)
	require.NotEmpty(s.t, id)
	return id
}

func (s *suite) commit(from, id, pass string, move rpsty.Move) error {
	if err := s.token(from, &tokenty.TokenApprove{Symbol: symbol, Spender: id, Amount: stake}); err != nil {
		return err
	}
	return s.rps(from, &rpsty.RpsCommit{GameId: id, Commitment: rpsty.EncodeMove(pass, move)})
}

func (s *suite) reveal(from, id, pass string, move rpsty.Move) error {
	return s.rps(from, &rpsty.RpsReveal{GameId: id, Passphrase: pass, Move: move})
}

func (s *suite) claim(from, id string) error {
	return s.rps(from, &rpsty.RpsClaim{GameId: id})
}

// playGame 完整的一局，两个人都领取
func (s *suite) playGame(a string, ma rpsty.Move, b string, mb rpsty.Move) string {
	id := s.newGame(a, b)
	require.NoError(s.t, s.commit(a, id, pass1, ma))
	require.NoError(s.t, s.commit(b, id, pass2, mb))
	require.NoError(s.t, s.reveal(a, id, pass1, ma))
	require.NoError(s.t, s.reveal(b, id, pass2, mb))
	require.NoError(s.t, s.claim(a, id))
	require.NoError(s.t, s.claim(b, id))
	return id
}

func TestOutcomes(t *testing.T) {
	moves := []rpsty.Move{rpsty.MoveRock, rpsty.MovePaper, rpsty.MoveScissors}
	for _, m1 := range moves {
		for _, m2 := range moves {
			s := newSuite(t)
			id := s.playGame(player1, m1, player2, m2)
			g := s.game(id)
			assert.Equal(t, rpsty.StatusTerminated, g.Status)
			assert.Equal(t, int64(0), s.balance(id), "escrow must be empty")
			switch rpsty.Judge(m1, m2) {
			case 1:
				assert.Equal(t, rpsty.OutcomeWin, g.Outcome)
				assert.Equal(t, player1, g.Winner)
				assert.Equal(t, player2, g.Loser)
				assert.Equal(t, types.Coin+stake, s.balance(player1))
				assert.Equal(t, types.Coin-stake, s.balance(player2))
			case -1:
				assert.Equal(t, player2, g.Winner)
				assert.Equal(t, player1, g.Loser)
				assert.Equal(t, types.Coin-stake, s.balance(player1))
				assert.Equal(t, types.Coin+stake, s.balance(player2))
			default:
				assert.Equal(t, rpsty.OutcomeTie, g.Outcome)
				assert.Equal(t, "", g.Winner)
				assert.Equal(t, "", g.Loser)
				assert.Equal(t, types.Coin, s.balance(player1))
				assert.Equal(t, types.Coin, s.balance(player2))
			}
		}
	}
}

func TestPlayerWins(t *testing.T) {
	s := newSuite(t)
	s.playGame(player1, rpsty.MovePaper, player2, rpsty.MoveRock)
	assert.Equal(t, "1.1", types.FormatAmount(s.balance(player1)))
	assert.Equal(t, "0.9", types.FormatAmount(s.balance(player2)))

	s = newSuite(t)
	s.playGame(player1, rpsty.MovePaper, player2, rpsty.MoveScissors)
	assert.Equal(t, "0.9", types.FormatAmount(s.balance(player1)))
	assert.Equal(t, "1.1", types.FormatAmount(s.balance(player2)))
}

func TestNewGame(t *testing.T) {
	s := newSuite(t)
	assert.Equal(t, "", s.active(player1, player2))

	err := s.rps(player1, &rpsty.RpsNewGame{Opponent: player1, Token: symbol, Stake: stake})
	assert.Equal(t, types.ErrInvalidAddress, errors.Cause(err))
	err = s.rps(player1, &rpsty.RpsNewGame{Opponent: "0x12", Token: symbol, Stake: stake})
	assert.Equal(t, types.ErrInvalidAddress, errors.Cause(err))
	err = s.rps(player1, &rpsty.RpsNewGame{Opponent: player2, Token: symbol})
	assert.Equal(t, types.ErrAmount, errors.Cause(err))
	err = s.rps(player1, &rpsty.RpsNewGame{Opponent: player2, Token: "NONE", Stake: stake})
	assert.Equal(t, types.ErrNotFound, errors.Cause(err))

	id := s.newGame(player1, player2)
	assert.Equal(t, id, s.active(player2, player1))
	g := s.game(id)
	assert.Equal(t, rpsty.StatusAwaitingCommits, g.Status)
	assert.Equal(t, rpsty.OutcomePending, g.Outcome)
	assert.Equal(t, stake, g.Stake)
	assert.Equal(t, symbol, g.Token)
	assert.Equal(t, int64(window), g.PenalizeWindow)
	assert.Equal(t, player1, g.Players[0].Addr)
	assert.Equal(t, player2, g.Players[1].Addr)
	assert.Equal(t, s.now, g.CreateTime)

	// 同一对玩家只能有一局进行中的游戏，不区分发起方
	err = s.rps(player2, &rpsty.RpsNewGame{Opponent: player1, Token: symbol, Stake: stake})
	assert.Equal(t, types.ErrGameAlreadyActive, errors.Cause(err))

	other := s.newGame(player1, outsider)
	assert.NotEqual(t, id, other)
	assert.Equal(t, int64(1), s.game(other).Index)

	_, err = s.exec.Query(rpsty.RpsX, "GetGame", &rpsty.ReqGame{GameId: owner})
	assert.Equal(t, types.ErrNotFound, errors.Cause(err))
}

func TestCommit(t *testing.T) {
	s := newSuite(t)
	id := s.newGame(player1, player2)

	assert.Equal(t, types.ErrUnauthorized, s.commit(outsider, id, pass1, rpsty.MoveRock))
	err := s.rps(player1, &rpsty.RpsCommit{GameId: id, Commitment: []byte{1, 2, 3}})
	assert.Equal(t, types.ErrInvalidParam, errors.Cause(err))

	// 没有授权
	err = s.rps(player1, &rpsty.RpsCommit{GameId: id, Commitment: rpsty.EncodeMove(pass1, rpsty.MoveRock)})
	assert.Equal(t, types.ErrInsufficientFunds, errors.Cause(err))
	assert.False(t, s.game(id).Players[0].HasCommitted())

	require.NoError(t, s.commit(player1, id, pass1, rpsty.MoveRock))
	assert.Equal(t, stake, s.balance(id))
	assert.Equal(t, types.Coin-stake, s.balance(player1))
	g := s.game(id)
	assert.Equal(t, rpsty.StatusAwaitingCommits, g.Status)
	assert.True(t, g.Players[0].Paid)

	assert.Equal(t, types.ErrAlreadyActed, s.commit(player1, id, pass1, rpsty.MovePaper))
	err = s.reveal(player1, id, pass1, rpsty.MoveRock)
	assert.Equal(t, types.ErrInvalidStateForAction, errors.Cause(err))

	require.NoError(t, s.commit(player2, id, pass2, rpsty.MovePaper))
	assert.Equal(t, 2*stake, s.balance(id))
	assert.Equal(t, rpsty.StatusAwaitingReveals, s.game(id).Status)

	err = s.commit(player2, id, pass2, rpsty.MovePaper)
	assert.Equal(t, types.ErrInvalidStateForAction, errors.Cause(err))
}

func TestReveal(t *testing.T) {
	s := newSuite(t)
	id := s.newGame(player1, player2)
	require.NoError(t, s.commit(player1, id, pass1, rpsty.MoveRock))
	require.NoError(t, s.commit(player2, id, pass2, rpsty.MoveScissors))

	assert.Equal(t, types.ErrUnauthorized, s.reveal(outsider, id, pass1, rpsty.MoveRock))
	assert.Equal(t, types.ErrCommitmentMismatch, s.reveal(player1, id, pass2, rpsty.MoveRock))
	assert.Equal(t, types.ErrCommitmentMismatch, s.reveal(player1, id, pass1, rpsty.MovePaper))
	assert.Equal(t, types.ErrInvalidMove, s.reveal(player1, id, pass1, rpsty.MoveNone))
	assert.Equal(t, types.ErrInvalidMove, s.reveal(player1, id, pass1, rpsty.Move(5)))

	s.now += 10
	require.NoError(t, s.reveal(player1, id, pass1, rpsty.MoveRock))
	g := s.game(id)
	assert.Equal(t, int32(rpsty.MoveRock), g.Players[0].Move)
	assert.Equal(t, s.now, g.Players[0].RevealTime)
	assert.Equal(t, rpsty.StatusAwaitingReveals, g.Status)
	assert.Equal(t, types.ErrAlreadyActed, s.reveal(player1, id, pass1, rpsty.MoveRock))

	require.NoError(t, s.reveal(player2, id, pass2, rpsty.MoveScissors))
	g = s.game(id)
	assert.Equal(t, rpsty.StatusResolved, g.Status)
	assert.Equal(t, player1, g.Winner)
	assert.Equal(t, 2*stake, g.Players[0].Payout)
	assert.Equal(t, int64(0), g.Players[1].Payout)
	assert.Equal(t, "", s.active(player1, player2))
	// 资金在领取之前留在托管地址
	assert.Equal(t, 2*stake, s.balance(id))
}

func TestClaimReward(t *testing.T) {
	s := newSuite(t)
	id := s.newGame(player1, player2)
	err := s.claim(player1, id)
	assert.Equal(t, types.ErrInvalidStateForAction, errors.Cause(err))

	require.NoError(t, s.commit(player1, id, pass1, rpsty.MoveRock))
	require.NoError(t, s.commit(player2, id, pass2, rpsty.MovePaper))
	require.NoError(t, s.reveal(player1, id, pass1, rpsty.MoveRock))
	err = s.claim(player1, id)
	assert.Equal(t, types.ErrInvalidStateForAction, errors.Cause(err))
	require.NoError(t, s.reveal(player2, id, pass2, rpsty.MovePaper))

	total := s.balance(player1) + s.balance(player2) + s.balance(id)
	assert.Equal(t, types.ErrUnauthorized, s.claim(outsider, id))

	// 输的一方领取 0，顺序不影响结果
	require.NoError(t, s.claim(player1, id))
	assert.Equal(t, types.Coin-stake, s.balance(player1))
	assert.Equal(t, types.ErrAlreadyActed, s.claim(player1, id))
	assert.Equal(t, rpsty.StatusResolved, s.game(id).Status)

	require.NoError(t, s.claim(player2, id))
	assert.Equal(t, types.Coin+stake, s.balance(player2))
	assert.Equal(t, types.ErrAlreadyActed, s.claim(player2, id))
	assert.Equal(t, rpsty.StatusTerminated, s.game(id).Status)
	assert.Equal(t, int64(0), s.balance(id))
	assert.Equal(t, total, s.balance(player1)+s.balance(player2)+s.balance(id))
}

func TestTieClaim(t *testing.T) {
	s := newSuite(t)
	id := s.newGame(player1, player2)
	require.NoError(t, s.commit(player1, id, pass1, rpsty.MovePaper))
	require.NoError(t, s.commit(player2, id, pass2, rpsty.MovePaper))
	require.NoError(t, s.reveal(player2, id, pass2, rpsty.MovePaper))
	require.NoError(t, s.reveal(player1, id, pass1, rpsty.MovePaper))
	require.NoError(t, s.claim(player2, id))
	assert.Equal(t, stake, s.balance(id))
	require.NoError(t, s.claim(player1, id))
	assert.Equal(t, "1", types.FormatAmount(s.balance(player1)))
	assert.Equal(t, types.Coin, s.balance(player2))
}

func TestWithdraw(t *testing.T) {
	t.Run("committed player withdraws", func(t *testing.T) {
		s := newSuite(t)
		id := s.newGame(player1, player2)
		require.NoError(t, s.commit(player1, id, pass1, rpsty.MoveRock))
		assert.Equal(t, types.ErrUnauthorized, s.rps(outsider, &rpsty.RpsWithdraw{GameId: id}))

		require.NoError(t, s.rps(player1, &rpsty.RpsWithdraw{GameId: id}))
		assert.Equal(t, types.Coin, s.balance(player1))
		assert.Equal(t, int64(0), s.balance(id))
		g := s.game(id)
		assert.Equal(t, rpsty.StatusTerminated, g.Status)
		assert.Equal(t, rpsty.OutcomeAborted, g.Outcome)
		assert.True(t, g.Players[0].Refunded)
		assert.Equal(t, "", s.active(player1, player2))

		assert.Equal(t, types.ErrAlreadyActed, s.rps(player1, &rpsty.RpsWithdraw{GameId: id}))
		err := s.rps(player2, &rpsty.RpsWithdraw{GameId: id})
		assert.Equal(t, types.ErrInvalidStateForAction, errors.Cause(err))
		err = s.commit(player2, id, pass2, rpsty.MoveRock)
		assert.Equal(t, types.ErrInvalidStateForAction, errors.Cause(err))

		// 撤回之后可以开始新的游戏
		assert.NotEqual(t, id, s.newGame(player2, player1))
	})

	t.Run("opponent aborts then payer refunds", func(t *testing.T) {
		s := newSuite(t)
		id := s.newGame(player1, player2)
		require.NoError(t, s.commit(player1, id, pass1, rpsty.MoveRock))
		require.NoError(t, s.rps(player2, &rpsty.RpsWithdraw{GameId: id}))
		assert.Equal(t, types.Coin, s.balance(player2))
		assert.Equal(t, stake, s.balance(id))

		require.NoError(t, s.rps(player1, &rpsty.RpsWithdraw{GameId: id}))
		assert.Equal(t, types.Coin, s.balance(player1))
		assert.Equal(t, int64(0), s.balance(id))
	})

	t.Run("nobody committed", func(t *testing.T) {
		s := newSuite(t)
		id := s.newGame(player1, player2)
		require.NoError(t, s.rps(player2, &rpsty.RpsWithdraw{GameId: id}))
		assert.Equal(t, rpsty.OutcomeAborted, s.game(id).Outcome)
		assert.Equal(t, types.Coin, s.balance(player1))
	})

	t.Run("both committed", func(t *testing.T) {
		s := newSuite(t)
		id := s.newGame(player1, player2)
		require.NoError(t, s.commit(player1, id, pass1, rpsty.MoveRock))
		require.NoError(t, s.commit(player2, id, pass2, rpsty.MoveRock))
		err := s.rps(player1, &rpsty.RpsWithdraw{GameId: id})
		assert.Equal(t, types.ErrInvalidStateForAction, errors.Cause(err))
		assert.Equal(t, 2*stake, s.balance(id))
	})
}

func TestPenalizeInactive(t *testing.T) {
	s := newSuite(t)
	id := s.newGame(player1, player2)
	penalize := func(from string) error {
		return s.rps(from, &rpsty.RpsPenalize{GameId: id})
	}
	err := penalize(player1)
	assert.Equal(t, types.ErrInvalidStateForAction, errors.Cause(err))

	require.NoError(t, s.commit(player1, id, pass1, rpsty.MoveRock))
	require.NoError(t, s.commit(player2, id, pass2, rpsty.MovePaper))
	s.now = 2000
	require.NoError(t, s.reveal(player1, id, pass1, rpsty.MoveRock))

	assert.Equal(t, types.ErrUnauthorized, penalize(outsider))
	err = penalize(player2)
	assert.Equal(t, types.ErrUnauthorized, errors.Cause(err))

	s.now = 2000 + window - 1
	err = penalize(player1)
	assert.Equal(t, types.ErrTimeoutNotReached, errors.Cause(err))

	s.now = 2000 + window
	require.NoError(t, penalize(player1))
	assert.Equal(t, types.Coin+stake, s.balance(player1))
	assert.Equal(t, types.Coin-stake, s.balance(player2))
	assert.Equal(t, int64(0), s.balance(id))

	g := s.game(id)
	assert.Equal(t, rpsty.StatusTerminated, g.Status)
	assert.Equal(t, rpsty.OutcomeForfeit, g.Outcome)
	assert.Equal(t, player1, g.Winner)
	assert.Equal(t, player2, g.Loser)
	assert.Equal(t, "", s.active(player1, player2))

	err = penalize(player1)
	assert.Equal(t, types.ErrInvalidStateForAction, errors.Cause(err))
	err = s.reveal(player2, id, pass2, rpsty.MovePaper)
	assert.Equal(t, types.ErrInvalidStateForAction, errors.Cause(err))
	err = s.claim(player1, id)
	assert.Equal(t, types.ErrInvalidStateForAction, errors.Cause(err))
	assert.Equal(t, 2*stake, s.game(id).Players[0].Payout)
	assert.Equal(t, types.Coin+stake, s.balance(player1))
	err = s.claim(player2, id)
	assert.Equal(t, types.ErrInvalidStateForAction, errors.Cause(err))

	score := s.query("GetPlayerScore", &rpsty.ReqPlayer{Player: player1}).(*rpsty.ScoreEntry)
	assert.Equal(t, int64(1), score.Wins)
	assert.Equal(t, stake, score.Earned)
}

func TestAdversaries(t *testing.T) {
	s := newSuite(t)
	s.playGame(player1, rpsty.MovePaper, player2, rpsty.MoveRock)
	s.playGame(player2, rpsty.MoveScissors, player1, rpsty.MovePaper)
	s.playGame(outsider, rpsty.MoveScissors, player2, rpsty.MovePaper)
	s.playGame(outsider, rpsty.MovePaper, owner, rpsty.MovePaper)

	reply := s.query("GetPlayerAdversaries", &rpsty.ReqPlayer{Player: player1}).(*rpsty.ReplyAdversaries)
	assert.Equal(t, []string{player2}, reply.Winnings)
	assert.Equal(t, []string{player2}, reply.Defeats)

	reply = s.query("GetPlayerAdversaries", &rpsty.ReqPlayer{Player: player2}).(*rpsty.ReplyAdversaries)
	assert.Equal(t, []string{player1}, reply.Winnings)
	assert.Equal(t, []string{player1, outsider}, reply.Defeats)

	reply = s.query("GetPlayerAdversaries", &rpsty.ReqPlayer{Player: owner}).(*rpsty.ReplyAdversaries)
	assert.Empty(t, reply.Winnings)
	assert.Empty(t, reply.Defeats)
}

func TestScoreBoard(t *testing.T) {
	s := newSuite(t)
	start := map[string]int64{}
	for _, addr := range []string{owner, player1, player2, outsider} {
		start[addr] = s.balance(addr)
	}
	s.playGame(player1, rpsty.MovePaper, player2, rpsty.MoveRock)
	s.playGame(player2, rpsty.MoveScissors, player1, rpsty.MovePaper)
	s.playGame(outsider, rpsty.MoveScissors, player2, rpsty.MovePaper)
	s.playGame(outsider, rpsty.MovePaper, owner, rpsty.MovePaper)

	// 撤回的游戏和进行中的游戏不计入
	aborted := s.newGame(player1, outsider)
	require.NoError(t, s.rps(outsider, &rpsty.RpsWithdraw{GameId: aborted}))
	pending := s.newGame(player1, player2)
	require.NoError(t, s.commit(player1, pending, pass1, rpsty.MoveRock))
	start[player1] -= stake

	board := s.query("GetScoreBoard", &rpsty.ReqScoreBoard{}).(*rpsty.ReplyScoreBoard)
	require.Len(t, board.Entries, 4)
	want := map[string][4]int64{
		// played, wins, losses, ties
		owner:    {1, 0, 0, 1},
		player1:  {2, 1, 1, 0},
		player2:  {3, 1, 2, 0},
		outsider: {2, 1, 0, 1},
	}
	for i, e := range board.Entries {
		if i > 0 {
			assert.True(t, board.Entries[i-1].Player < e.Player)
		}
		w := want[e.Player]
		assert.Equal(t, w[0], e.GamesPlayed, e.Player)
		assert.Equal(t, w[1], e.Wins, e.Player)
		assert.Equal(t, w[2], e.Losses, e.Player)
		assert.Equal(t, w[3], e.Ties, e.Player)
		assert.Equal(t, e.GamesPlayed, e.Wins+e.Losses+e.Ties)
		assert.Equal(t, s.balance(e.Player)-start[e.Player], e.Earned-e.Lost, e.Player)
	}

	// 第二次查询走 cache，结果一样
	again := s.query("GetScoreBoard", &rpsty.ReqScoreBoard{}).(*rpsty.ReplyScoreBoard)
	assert.Equal(t, board.Entries, again.Entries)
}

func TestGetPlayerGames(t *testing.T) {
	s := newSuite(t)
	var ids []string
	for i := 0; i < 5; i++ {
		id := s.newGame(player1, player2)
		require.NoError(t, s.rps(player1, &rpsty.RpsWithdraw{GameId: id}))
		ids = append(ids, id)
	}

	page := func(req *rpsty.ReqPlayerGames) *rpsty.ReplyPlayerGames {
		return s.query("GetPlayerGames", req).(*rpsty.ReplyPlayerGames)
	}
	all := page(&rpsty.ReqPlayerGames{Player: player2, Direction: types.ListASC})
	assert.Equal(t, ids, all.GameIds)
	assert.Empty(t, all.PrimaryKey)

	r := page(&rpsty.ReqPlayerGames{Player: player1, Count: 2})
	assert.Equal(t, []string{ids[4], ids[3]}, r.GameIds)
	require.NotEmpty(t, r.PrimaryKey)
	r = page(&rpsty.ReqPlayerGames{Player: player1, Count: 2, PrimaryKey: r.PrimaryKey})
	assert.Equal(t, []string{ids[2], ids[1]}, r.GameIds)
	r = page(&rpsty.ReqPlayerGames{Player: player1, Count: 2, PrimaryKey: r.PrimaryKey})
	assert.Equal(t, []string{ids[0]}, r.GameIds)
	assert.Empty(t, r.PrimaryKey)

	r = page(&rpsty.ReqPlayerGames{Player: player1, Count: 3, Direction: types.ListASC})
	assert.Equal(t, ids[:3], r.GameIds)
	r = page(&rpsty.ReqPlayerGames{Player: player1, Count: 3, Direction: types.ListASC, PrimaryKey: r.PrimaryKey})
	assert.Equal(t, ids[3:], r.GameIds)

	r = page(&rpsty.ReqPlayerGames{Player: outsider})
	assert.Empty(t, r.GameIds)

	_, err := s.exec.Query(rpsty.RpsX, "GetPlayerGames", &rpsty.ReqPlayerGames{Player: player1, Direction: 7})
	assert.Equal(t, types.ErrInvalidParam, errors.Cause(err))
}

func TestGetEncodedMove(t *testing.T) {
	s := newSuite(t)
	reply := s.query("GetEncodedMove", &rpsty.ReqEncodedMove{Passphrase: pass1, Move: rpsty.MovePaper}).(*types.ReplyString)
	assert.Equal(t, "0x4c22608496c59734e06f161e84ca57fe72c38f585d992dadf4a20078754a820f", reply.Data)

	reply = s.query("GetEncodedMove", `{"passphrase":"password2","move":1}`).(*types.ReplyString)
	assert.Equal(t, "0x366f35b9ea62362f8aea7855df8012fd54fb928259a59e48f10edc4a0d4d4f43", reply.Data)

	_, err := s.exec.Query(rpsty.RpsX, "GetEncodedMove", &rpsty.ReqEncodedMove{Passphrase: pass1})
	assert.Equal(t, types.ErrInvalidMove, err)
}

func TestFailedTxLeavesNoTrace(t *testing.T) {
	s := newSuite(t)
	id := s.newGame(player1, player2)
	// 授权足够但余额不足
	require.NoError(t, s.token(player1, &tokenty.TokenTransfer{Symbol: symbol, To: owner, Amount: types.Coin}))
	err := s.commit(player1, id, pass1, rpsty.MoveRock)
	assert.Equal(t, types.ErrInsufficientFunds, errors.Cause(err))

	g := s.game(id)
	assert.False(t, g.Players[0].Paid)
	assert.Nil(t, g.Players[0].Commitment)
	msg, err := s.exec.Query(tokenty.TokenX, "Allowance", &tokenty.ReqAllowance{Symbol: symbol, Owner: player1, Spender: id})
	require.NoError(t, err)
	assert.Equal(t, stake, msg.(*types.Allowance).Amount)
}
