package rules

import (
	"testing"

	"poke-splendor/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTake3ExactCount(t *testing.T) {
	s := newTestState(t, 2)
	s.TokenPool = entities.Tokens{2, 1, 0, 5, 3, 5}
	p := s.Players[0]

	err := Take3(s, []entities.Ball{entities.BallPoke, entities.BallHeal, entities.BallQuick})
	require.NoError(t, err)
	assert.Equal(t, entities.Tokens{1, 0, 0, 4, 3, 5}, s.TokenPool)
	assert.Equal(t, 3, p.Tokens.Total())
	assert.Equal(t, entities.PrimaryTake3, s.PerTurn.PrimaryAction)
}

func TestTake3Rejections(t *testing.T) {
	s := newTestState(t, 2)
	s.TokenPool = entities.Tokens{2, 1, 0, 5, 3, 5}

	cases := map[string][]entities.Ball{
		"太少":  {entities.BallPoke, entities.BallHeal},
		"重复":  {entities.BallPoke, entities.BallPoke, entities.BallHeal},
		"大师球": {entities.BallPoke, entities.BallHeal, entities.BallMaster},
		"无库存": {entities.BallPoke, entities.BallHeal, entities.BallGreat},
		"空选择": nil,
	}
	for name, colors := range cases {
		t.Run(name, func(t *testing.T) {
			err := Take3(s, colors)
			assert.ErrorIs(t, err, ErrInvalidSelection)
			assert.Equal(t, entities.PrimaryNone, s.PerTurn.PrimaryAction)
		})
	}
}

func TestTake3TakesEveryRemainingColor(t *testing.T) {
	s := newTestState(t, 2)
	s.TokenPool = entities.Tokens{0, 0, 0, 1, 1, 5}

	assert.ErrorIs(t, Take3(s, []entities.Ball{entities.BallQuick}), ErrInvalidSelection)
	require.NoError(t, Take3(s, []entities.Ball{entities.BallQuick, entities.BallUltra}))
	assert.Equal(t, 2, s.Players[0].Tokens.Total())
}

func TestTake2RequiresFour(t *testing.T) {
	s := newTestState(t, 2)
	s.TokenPool[entities.BallPoke] = 3

	assert.ErrorIs(t, Take2(s, entities.BallPoke), ErrInvalidSelection)
	assert.ErrorIs(t, Take2(s, entities.BallMaster), ErrInvalidSelection)
	require.NoError(t, Take2(s, entities.BallHeal))
	assert.Equal(t, 2, s.Players[0].Tokens[entities.BallHeal])
	assert.Equal(t, entities.PrimaryTake2, s.PerTurn.PrimaryAction)
}

func TestSinglePrimaryActionPerTurn(t *testing.T) {
	s := newTestState(t, 2)
	putMarket(s, 1, 0, testCard("m1", 1, 0))
	require.NoError(t, Take2(s, entities.BallPoke))

	assert.ErrorIs(t, Take3(s, []entities.Ball{entities.BallHeal, entities.BallGreat, entities.BallQuick}), ErrPrimaryLocked)
	assert.ErrorIs(t, Take2(s, entities.BallHeal), ErrPrimaryLocked)
	assert.ErrorIs(t, Reserve(s, "m1"), ErrPrimaryLocked)
	assert.ErrorIs(t, Buy(s, "m1"), ErrPrimaryLocked)
	assert.ErrorIs(t, SkipPrimary(s), ErrPrimaryLocked)
	assert.Equal(t, entities.PrimaryTake2, s.PerTurn.PrimaryAction)
}

func TestReserveFullWithoutMasterIsRejected(t *testing.T) {
	s := newTestState(t, 2)
	p := s.Players[0]
	p.Reserved = []entities.Card{testCard("r1", 1, 0), testCard("r2", 1, 0), testCard("r3", 1, 0)}
	putMarket(s, 1, 0, testCard("m1", 1, 0))
	s.TokenPool[entities.BallMaster] = 0
	before := s.Clone()

	assert.ErrorIs(t, Reserve(s, "m1"), ErrReserveFull)
	assert.Equal(t, before, s)
	assert.Equal(t, entities.PrimaryNone, s.PerTurn.PrimaryAction)
}

func TestReserveFullTakesMasterOnly(t *testing.T) {
	s := newTestState(t, 2)
	p := s.Players[0]
	p.Reserved = []entities.Card{testCard("r1", 1, 0), testCard("r2", 1, 0), testCard("r3", 1, 0)}

	require.NoError(t, Reserve(s, ""))
	assert.Len(t, p.Reserved, 3)
	assert.Equal(t, 1, p.Tokens[entities.BallMaster])
	assert.Equal(t, 4, s.TokenPool[entities.BallMaster])
	assert.Equal(t, entities.PrimaryReserve, s.PerTurn.PrimaryAction)
}

func TestReserveRefillsSlotAndGrantsMaster(t *testing.T) {
	s := newTestState(t, 2)
	putMarket(s, 2, 1, testCard("m2", 2, 1))
	s.Decks[2] = []entities.Card{testCard("next", 2, 2), testCard("later", 2, 0)}

	require.NoError(t, Reserve(s, "m2"))
	p := s.Players[0]
	require.Len(t, p.Reserved, 1)
	assert.Equal(t, "m2", p.Reserved[0].ID)
	assert.Equal(t, "next", s.Market[2][1].ID)
	assert.Len(t, s.Decks[2], 1)
	assert.Equal(t, 1, p.Tokens[entities.BallMaster])
}

func TestReserveRejectsRareAndMissing(t *testing.T) {
	s := newTestState(t, 2)
	putMarket(s, entities.LevelRare, 0, testCard("rare", entities.LevelRare, 3))

	assert.ErrorIs(t, Reserve(s, "rare"), ErrNotReservable)
	assert.ErrorIs(t, Reserve(s, "nope"), ErrCardNotFound)
	assert.ErrorIs(t, Reserve(s, ""), ErrCardNotFound)
	assert.Equal(t, entities.PrimaryNone, s.PerTurn.PrimaryAction)
}

func TestBuyPrefersReservedCard(t *testing.T) {
	s := newTestState(t, 2)
	p := s.Players[0]
	reserved := testCard("dup", 1, 1, cost(entities.BallPoke, 1))
	p.Reserved = []entities.Card{reserved}
	putMarket(s, 1, 0, testCard("dup", 1, 1, cost(entities.BallPoke, 1)))
	giveTokens(s, p, entities.Tokens{1, 0, 0, 0, 0, 0})

	require.NoError(t, Buy(s, "dup"))
	assert.Empty(t, p.Reserved)
	assert.Len(t, p.Hand, 1)
	assert.NotNil(t, s.Market[1][0])
	assert.Equal(t, entities.PrimaryBuy, s.PerTurn.PrimaryAction)
}

func TestBuyCannotAfford(t *testing.T) {
	s := newTestState(t, 2)
	putMarket(s, 1, 0, testCard("m", 1, 1, cost(entities.BallPoke, 2)))
	before := s.Clone()

	assert.ErrorIs(t, Buy(s, "m"), ErrCannotAfford)
	assert.Equal(t, before, s)
}

func TestTokenLimitCreatesReturnObligation(t *testing.T) {
	s := newTestState(t, 2)
	p := s.Players[0]
	giveTokens(s, p, entities.Tokens{3, 3, 2, 1, 0, 0})

	require.NoError(t, Take3(s, []entities.Ball{entities.BallPoke, entities.BallHeal, entities.BallUltra}))
	require.NotNil(t, s.PendingReturn)
	assert.Equal(t, 2, s.PendingReturn.Required)
	assert.ErrorIs(t, EndTurn(s), ErrReturnPending)
	assert.ErrorIs(t, Evolve(s, "x"), ErrReturnPending)

	assert.ErrorIs(t, ReturnTokens(s, entities.Tokens{1, 0, 0, 0, 0, 0}), ErrInvalidSelection)
	require.NoError(t, ReturnTokens(s, entities.Tokens{2, 0, 0, 0, 0, 0}))
	assert.Nil(t, s.PendingReturn)
	assert.Equal(t, entities.MaxTokens, p.Tokens.Total())
	assert.NoError(t, ValidateState(s))
	require.NoError(t, EndTurn(s))
}

func TestReturnOneCountsDown(t *testing.T) {
	s := newTestState(t, 2)
	p := s.Players[0]
	giveTokens(s, p, entities.Tokens{4, 4, 3, 1, 0, 0})
	require.True(t, ClampTokenLimit(s, p))

	assert.ErrorIs(t, ReturnOne(s, entities.BallUltra), ErrInvalidSelection)
	require.NoError(t, ReturnOne(s, entities.BallPoke))
	require.NotNil(t, s.PendingReturn)
	require.NoError(t, ReturnOne(s, entities.BallHeal))
	assert.Nil(t, s.PendingReturn)
	assert.Equal(t, 10, p.Tokens.Total())
}

func TestEvolveStacksBaseUnderEvolvedCard(t *testing.T) {
	s := newTestState(t, 2)
	p := s.Players[0]
	base := testCard("c1-1", 1, 1)
	base.Name = "妙蛙种子"
	base.Evolution = &entities.Evolution{Name: "妙蛙草", Cost: cost(entities.BallGreat, 2)}
	p.Hand = []entities.Card{base}
	giveTokens(s, p, entities.Tokens{0, 0, 2, 0, 0, 0})

	evolved := testCard("c2-1", 2, 2)
	evolved.Name = "妙蛙草"
	putMarket(s, 2, 0, evolved)
	s.Decks[2] = []entities.Card{testCard("c2-9", 2, 0)}

	require.NoError(t, Evolve(s, "c2-1"))
	assert.Equal(t, "c2-1", p.Hand[0].ID)
	require.Len(t, p.StackOf("c2-1"), 1)
	assert.Equal(t, "c1-1", p.StackOf("c2-1")[0].ID)
	assert.Equal(t, 0, p.Tokens.Total())
	assert.Equal(t, "c2-9", s.Market[2][0].ID)
	assert.Equal(t, 3, TotalTrophies(p))
	assert.True(t, s.PerTurn.Evolved)
	assert.Equal(t, entities.PrimaryNone, s.PerTurn.PrimaryAction)

	assert.ErrorIs(t, Evolve(s, "c2-9"), ErrEvolveLocked)
}

func TestEvolveWithoutBase(t *testing.T) {
	s := newTestState(t, 2)
	putMarket(s, 2, 0, testCard("c2-1", 2, 2))

	assert.ErrorIs(t, Evolve(s, "c2-1"), ErrNoEvolutionBase)
	assert.ErrorIs(t, Evolve(s, "missing"), ErrCardNotFound)
}

func TestEndTurnRequiresPrimary(t *testing.T) {
	s := newTestState(t, 2)
	assert.ErrorIs(t, EndTurn(s), ErrNoPrimaryAction)

	require.NoError(t, SkipPrimary(s))
	require.NoError(t, EndTurn(s))
	assert.Equal(t, 1, s.CurrentPlayerIndex)
	assert.Equal(t, 1, s.Turn)

	require.NoError(t, SkipPrimary(s))
	require.NoError(t, EndTurn(s))
	assert.Equal(t, 0, s.CurrentPlayerIndex)
	assert.Equal(t, 2, s.Turn)
	assert.Equal(t, entities.PerTurn{}, s.PerTurn)
}
