package types

import (
	"encoding/hex"
	"testing"

	"github.com/33cn/rps/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJudge(t *testing.T) {
	moves := []Move{MoveRock, MovePaper, MoveScissors}
	wins := map[[2]Move]bool{
		{MoveRock, MoveScissors}:  true,
		{MoveScissors, MovePaper}: true,
		{MovePaper, MoveRock}:     true,
	}
	for _, a := range moves {
		for _, b := range moves {
			r := Judge(a, b)
			switch {
			case a == b:
				assert.Equal(t, 0, r, "%s vs %s", a, b)
			case wins[[2]Move{a, b}]:
				assert.Equal(t, 1, r, "%s vs %s", a, b)
				assert.Equal(t, -1, Judge(b, a), "%s vs %s", b, a)
			default:
				assert.Equal(t, -1, r, "%s vs %s", a, b)
			}
		}
	}
}

func TestEncodeMove(t *testing.T) {
	// solidityKeccak256(['string','uint8'], ['password1', 2])
	d := EncodeMove("password1", MovePaper)
	assert.Equal(t, "4c22608496c59734e06f161e84ca57fe72c38f585d992dadf4a20078754a820f", hex.EncodeToString(d))
	assert.Len(t, d, DigestLen)
	assert.Equal(t, d, EncodeMove("password1", MovePaper))
	assert.NotEqual(t, d, EncodeMove("password1", MoveRock))
	assert.NotEqual(t, d, EncodeMove("password2", MovePaper))
	assert.Equal(t, "366f35b9ea62362f8aea7855df8012fd54fb928259a59e48f10edc4a0d4d4f43", hex.EncodeToString(EncodeMove("password2", MoveRock)))
}

func TestParseMove(t *testing.T) {
	cases := map[string]Move{
		"rock": MoveRock, "Paper": MovePaper, " SCISSORS ": MoveScissors,
		"1": MoveRock, "3": MoveScissors, "none": MoveNone, "0": MoveNone,
	}
	for s, want := range cases {
		m, err := ParseMove(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, m, s)
	}
	for _, s := range []string{"", "lizard", "4", "-1"} {
		_, err := ParseMove(s)
		assert.Equal(t, types.ErrInvalidMove, err, s)
	}
	assert.True(t, MovePaper.IsValid())
	assert.False(t, MoveNone.IsValid())
	assert.False(t, Move(4).IsValid())
	assert.Equal(t, "Move(7)", Move(7).String())
	assert.Equal(t, "rock", MoveRock.String())
}

func TestGameAccessors(t *testing.T) {
	g := &Game{
		Stake:   10,
		Players: []*PlayerSlot{{Addr: "a"}, {Addr: "b", Commitment: []byte{1}}},
		Status:  StatusAwaitingCommits,
	}
	assert.Equal(t, int64(10), g.GetStake())
	assert.Equal(t, "a", g.Slot("a").Addr)
	assert.Nil(t, g.Slot("c"))
	assert.Equal(t, "b", g.Opponent("a").Addr)
	assert.False(t, g.Slot("a").HasCommitted())
	assert.True(t, g.Slot("b").HasCommitted())
	assert.False(t, g.IsFinished())
	assert.Equal(t, "", g.GetWinner())

	g.Status = StatusTerminated
	g.Outcome = OutcomeAborted
	assert.True(t, g.IsFinished())
	assert.False(t, g.IsCountable())
	g.Outcome = OutcomeForfeit
	assert.True(t, g.IsCountable())

	var nilGame *Game
	assert.Equal(t, "", nilGame.GetLoser())
	assert.Equal(t, StatusNone, nilGame.GetStatus())
	assert.Equal(t, "Resolved", StatusName(StatusResolved))
	assert.Equal(t, "Unknown", OutcomeName(9))

	raw := types.Encode(g)
	var g2 Game
	require.NoError(t, types.Decode(raw, &g2))
	assert.Equal(t, g.Players[1].Commitment, g2.Players[1].Commitment)
	assert.Equal(t, OutcomeForfeit, g2.Outcome)
}
