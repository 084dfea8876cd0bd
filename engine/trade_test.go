package engine

import (
	"testing"

	"monopoly/game"

	"github.com/stretchr/testify/require"
)

func TestTradeLifecycle(t *testing.T) {
	e, gs := newTestEngine(t, 2, 1)
	gs.Properties[6].Owner = 0
	gs.Properties[11].Owner = 1
	gs.Phase = game.PostMove

	offer := &game.TradeOffer{
		Proposer:          0,
		Responder:         1,
		CashOffered:       100,
		PropertiesOffered: []int{6},
		PropertiesAsking:  []int{11},
	}

	t.Run("proposal suspends on the responder", func(t *testing.T) {
		require.NoError(t, e.Step(game.Action{Kind: game.ProposeTrade, Player: 0, Trade: offer}))
		require.Equal(t, game.TradeResponse, gs.Phase)
		require.Equal(t, 1, gs.Acting())
	})

	t.Run("acceptance swaps the bundles", func(t *testing.T) {
		require.NoError(t, e.Step(game.Action{Kind: game.AcceptTrade, Player: 1}))
		require.Equal(t, game.PostMove, gs.Phase)
		require.Equal(t, 1, gs.Properties[6].Owner)
		require.Equal(t, 0, gs.Properties[11].Owner)
		require.Equal(t, 1400, gs.Players[0].Cash)
		require.Equal(t, 1600, gs.Players[1].Cash)
		// Player-to-player flows never touch the bank ledger.
		require.Equal(t, 0, gs.Ledger.BankPaid)
		require.Equal(t, 0, gs.Ledger.BankCollected)
	})
}

func TestTradeRejection(t *testing.T) {
	e, gs := newTestEngine(t, 2, 1)
	gs.Properties[6].Owner = 0
	gs.Phase = game.PostMove
	before := gs.Hash()

	offer := &game.TradeOffer{Proposer: 0, Responder: 1, PropertiesOffered: []int{6}, CashAsking: 50}
	require.NoError(t, e.Step(game.Action{Kind: game.ProposeTrade, Player: 0, Trade: offer}))
	require.NoError(t, e.Step(game.Action{Kind: game.RejectTrade, Player: 1}))

	require.Equal(t, game.PostMove, gs.Phase)
	require.Nil(t, gs.Trade)
	require.Equal(t, before, gs.Hash())
}

func TestTradeJailCards(t *testing.T) {
	e, gs := newTestEngine(t, 2, 1)
	card := drawJailFree(t, gs.Chance)
	gs.Players[0].JailCards = []game.Card{card}
	gs.Phase = game.PostMove

	offer := &game.TradeOffer{Proposer: 0, Responder: 1, JailCardsOffered: 1, CashAsking: 30}
	require.NoError(t, e.Step(game.Action{Kind: game.ProposeTrade, Player: 0, Trade: offer}))
	require.NoError(t, e.Step(game.Action{Kind: game.AcceptTrade, Player: 1}))

	require.Empty(t, gs.Players[0].JailCards)
	require.Len(t, gs.Players[1].JailCards, 1)
	require.Equal(t, 1530, gs.Players[0].Cash)
	require.Equal(t, 1470, gs.Players[1].Cash)
}

func TestTradeValidation(t *testing.T) {
	e, gs := newTestEngine(t, 3, 1)
	gs.Properties[6].Owner = 0
	gs.Properties[11].Owner = 1
	gs.Phase = game.PostMove

	propose := func(offer *game.TradeOffer) error {
		return e.Step(game.Action{Kind: game.ProposeTrade, Player: 0, Trade: offer})
	}

	t.Run("self trade", func(t *testing.T) {
		err := propose(&game.TradeOffer{Proposer: 0, Responder: 0, CashOffered: 1})
		require.ErrorIs(t, err, ErrInvalidTrade)
	})

	t.Run("offering an unowned property", func(t *testing.T) {
		err := propose(&game.TradeOffer{Proposer: 0, Responder: 1, PropertiesOffered: []int{11}})
		require.ErrorIs(t, err, ErrInvalidTrade)
	})

	t.Run("asking a property the responder does not own", func(t *testing.T) {
		err := propose(&game.TradeOffer{Proposer: 0, Responder: 1, PropertiesAsking: []int{6}})
		require.ErrorIs(t, err, ErrInvalidTrade)
	})

	t.Run("cash beyond means", func(t *testing.T) {
		err := propose(&game.TradeOffer{Proposer: 0, Responder: 1, CashOffered: 9999})
		require.ErrorIs(t, err, ErrInvalidTrade)
	})

	t.Run("jail cards not held", func(t *testing.T) {
		err := propose(&game.TradeOffer{Proposer: 0, Responder: 1, JailCardsOffered: 1})
		require.ErrorIs(t, err, ErrInvalidTrade)
	})

	t.Run("empty offer", func(t *testing.T) {
		err := propose(&game.TradeOffer{Proposer: 0, Responder: 1})
		require.ErrorIs(t, err, ErrInvalidTrade)
	})

	t.Run("bankrupt responder", func(t *testing.T) {
		gs.Players[2].Bankrupt = true
		err := propose(&game.TradeOffer{Proposer: 0, Responder: 2, CashOffered: 1})
		require.ErrorIs(t, err, ErrInvalidTrade)
		gs.Players[2].Bankrupt = false
	})

	t.Run("street from an improved group", func(t *testing.T) {
		gs.Properties[1].Owner = 0
		gs.Properties[3].Owner = 0
		gs.Properties[3].Improvements = 1
		err := propose(&game.TradeOffer{Proposer: 0, Responder: 1, PropertiesOffered: []int{1}})
		require.ErrorIs(t, err, ErrInvalidTrade)
		gs.Properties[3].Improvements = 0
	})

	t.Run("untradable position", func(t *testing.T) {
		err := propose(&game.TradeOffer{Proposer: 0, Responder: 1, PropertiesOffered: []int{4}})
		require.ErrorIs(t, err, ErrInvalidTrade)
	})

	t.Run("mortgaged property trades as-is", func(t *testing.T) {
		gs.Properties[6].Mortgaged = true
		require.NoError(t, propose(&game.TradeOffer{Proposer: 0, Responder: 1, PropertiesOffered: []int{6}, CashAsking: 10}))
		require.NoError(t, e.Step(game.Action{Kind: game.AcceptTrade, Player: 1}))
		require.Equal(t, 1, gs.Properties[6].Owner)
		require.True(t, gs.Properties[6].Mortgaged)
	})
}
