package engine

import (
	"testing"

	"monopoly/game"

	"github.com/stretchr/testify/require"
)

func declineIntoAuction(t *testing.T, e *Engine, gs *game.GameState, position int) {
	t.Helper()
	gs.Players[gs.Current].Position = position
	gs.Phase = game.AwaitingBuy
	require.NoError(t, e.Step(game.Action{Kind: game.DeclineBuy, Player: gs.Current, Position: position}))
	require.Equal(t, game.AuctionPhase, gs.Phase)
}

func TestAuctionAward(t *testing.T) {
	e, gs := newTestEngine(t, 3, 1)
	declineIntoAuction(t, e, gs, 6)

	require.Equal(t, []int{0, 1, 2}, gs.Auction.Bidders)
	require.Equal(t, 0, gs.Acting())

	require.NoError(t, e.Step(game.Action{Kind: game.Bid, Player: 0, Amount: 1}))
	require.NoError(t, e.Step(game.Action{Kind: game.Bid, Player: 1, Amount: 40}))
	require.NoError(t, e.Step(game.Action{Kind: game.PassBid, Player: 2}))
	require.NoError(t, e.Step(game.Action{Kind: game.PassBid, Player: 0}))

	require.Equal(t, game.PostMove, gs.Phase)
	require.Nil(t, gs.Auction)
	require.Equal(t, 1, gs.Properties[6].Owner)
	require.Equal(t, 1460, gs.Players[1].Cash)
	require.Equal(t, 40, gs.Ledger.BankCollected)
	// The turn stays with the decliner.
	require.Equal(t, 0, gs.Current)
}

func TestAuctionAllPass(t *testing.T) {
	e, gs := newTestEngine(t, 3, 1)
	declineIntoAuction(t, e, gs, 6)

	require.NoError(t, e.Step(game.Action{Kind: game.PassBid, Player: 0}))
	require.NoError(t, e.Step(game.Action{Kind: game.PassBid, Player: 1}))
	require.NoError(t, e.Step(game.Action{Kind: game.PassBid, Player: 2}))

	require.Equal(t, game.PostMove, gs.Phase)
	require.Equal(t, -1, gs.Properties[6].Owner)
	require.Equal(t, 0, gs.Ledger.BankCollected)
}

func TestAuctionBidValidation(t *testing.T) {
	e, gs := newTestEngine(t, 3, 1)
	declineIntoAuction(t, e, gs, 6)

	t.Run("opening bid must meet the minimum", func(t *testing.T) {
		err := e.Step(game.Action{Kind: game.Bid, Player: 0, Amount: 0})
		require.ErrorIs(t, err, ErrIllegalAction)
	})

	t.Run("bids are strictly increasing", func(t *testing.T) {
		require.NoError(t, e.Step(game.Action{Kind: game.Bid, Player: 0, Amount: 30}))
		err := e.Step(game.Action{Kind: game.Bid, Player: 1, Amount: 30})
		require.ErrorIs(t, err, ErrIllegalAction)
		require.NoError(t, e.Step(game.Action{Kind: game.Bid, Player: 1, Amount: 31}))
	})

	t.Run("bid is capped by cash", func(t *testing.T) {
		err := e.Step(game.Action{Kind: game.Bid, Player: 2, Amount: 2000})
		require.ErrorIs(t, err, ErrIllegalAction)
	})

	t.Run("broke bidder can only pass", func(t *testing.T) {
		gs.Players[2].Cash = 0
		legal := e.LegalActions()
		require.Len(t, legal, 1)
		require.Equal(t, game.PassBid, legal[0].Kind)
	})
}

func TestAuctionSkipsBankruptPlayers(t *testing.T) {
	e, gs := newTestEngine(t, 4, 1)
	gs.Players[2].Bankrupt = true
	gs.Current = 1
	declineIntoAuction(t, e, gs, 6)

	require.Equal(t, []int{1, 3, 0}, gs.Auction.Bidders)
}

func TestAuctionSingleBidderTakesItOrLeavesIt(t *testing.T) {
	e, gs := newTestEngine(t, 3, 1)
	declineIntoAuction(t, e, gs, 6)

	require.NoError(t, e.Step(game.Action{Kind: game.PassBid, Player: 0}))
	require.NoError(t, e.Step(game.Action{Kind: game.PassBid, Player: 1}))

	// Last bidder standing with no bid yet may still buy it for the minimum.
	require.Equal(t, 2, gs.Acting())
	require.NoError(t, e.Step(game.Action{Kind: game.Bid, Player: 2, Amount: 1}))
	require.Equal(t, game.PostMove, gs.Phase)
	require.Equal(t, 2, gs.Properties[6].Owner)
	require.Equal(t, 1499, gs.Players[2].Cash)
}
