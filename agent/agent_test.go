package agent

import (
	"testing"

	"monopoly/env"
	"monopoly/game"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func freshObs(t *testing.T) env.Observation {
	t.Helper()
	e := env.New(game.StandardRules(), zerolog.Nop())
	obs, _, err := e.Reset([]string{"Alice", "Bob"}, 5)
	require.NoError(t, err)
	return obs
}

func TestRandomStaysInTheLegalSet(t *testing.T) {
	a := NewRandom("rnd", 9)
	obs := freshObs(t)
	legal := []game.Action{
		{Kind: game.RollDice, Player: 0},
		{Kind: game.EndTurn, Player: 0},
	}
	for i := 0; i < 50; i++ {
		pick, err := a.Decide(obs, legal)
		require.NoError(t, err)
		require.Contains(t, []game.ActionKind{game.RollDice, game.EndTurn}, pick.Kind)
	}

	t.Run("same seed, same choices", func(t *testing.T) {
		x, y := NewRandom("x", 3), NewRandom("y", 3)
		for i := 0; i < 20; i++ {
			px, _ := x.Decide(obs, legal)
			py, _ := y.Decide(obs, legal)
			require.True(t, px.Equal(py))
		}
	})

	t.Run("empty legal set errors", func(t *testing.T) {
		_, err := a.Decide(obs, nil)
		require.Error(t, err)
	})
}

func TestGreedyBuysWhenFlush(t *testing.T) {
	a := NewGreedy("greedy")
	obs := freshObs(t)
	obs.Phase = game.AwaitingBuy
	obs.Players[0].Position = 6 // Oriental Avenue, 100
	legal := []game.Action{
		{Kind: game.DeclineBuy, Player: 0, Position: 6},
		{Kind: game.BuyProperty, Player: 0, Position: 6},
	}

	pick, err := a.Decide(obs, legal)
	require.NoError(t, err)
	require.Equal(t, game.BuyProperty, pick.Kind)

	t.Run("declines below the reserve", func(t *testing.T) {
		obs.Players[0].Cash = 150
		pick, err := a.Decide(obs, legal)
		require.NoError(t, err)
		require.Equal(t, game.DeclineBuy, pick.Kind)
	})
}

func TestGreedyAuction(t *testing.T) {
	a := NewGreedy("greedy")
	obs := freshObs(t)
	obs.Phase = game.AuctionPhase
	obs.Acting = 0
	obs.Auction = &game.AuctionContext{Position: 39, Bidders: []int{0, 1}, HighBid: 40, HighBidder: 1}
	legal := []game.Action{
		{Kind: game.PassBid, Player: 0},
		{Kind: game.Bid, Player: 0, Amount: 41},
	}

	t.Run("bids while under half list price", func(t *testing.T) {
		pick, err := a.Decide(obs, legal)
		require.NoError(t, err)
		require.Equal(t, game.Bid, pick.Kind)
		require.Equal(t, 41, pick.Amount)
	})

	t.Run("passes beyond half list price", func(t *testing.T) {
		obs.Auction.HighBid = 200
		over := []game.Action{
			{Kind: game.PassBid, Player: 0},
			{Kind: game.Bid, Player: 0, Amount: 201},
		}
		pick, err := a.Decide(obs, over)
		require.NoError(t, err)
		require.Equal(t, game.PassBid, pick.Kind)
	})
}

func TestGreedyJail(t *testing.T) {
	a := NewGreedy("greedy")
	obs := freshObs(t)
	obs.Phase = game.InJailDecision

	t.Run("prefers the free card", func(t *testing.T) {
		legal := []game.Action{
			{Kind: game.RollDice, Player: 0},
			{Kind: game.UseJailCard, Player: 0},
			{Kind: game.PayJailFine, Player: 0, Amount: 50},
		}
		pick, err := a.Decide(obs, legal)
		require.NoError(t, err)
		require.Equal(t, game.UseJailCard, pick.Kind)
	})

	t.Run("pays the fine when flush", func(t *testing.T) {
		legal := []game.Action{
			{Kind: game.RollDice, Player: 0},
			{Kind: game.PayJailFine, Player: 0, Amount: 50},
		}
		pick, err := a.Decide(obs, legal)
		require.NoError(t, err)
		require.Equal(t, game.PayJailFine, pick.Kind)
	})

	t.Run("rolls when broke", func(t *testing.T) {
		obs.Players[0].Cash = 60
		legal := []game.Action{
			{Kind: game.RollDice, Player: 0},
			{Kind: game.PayJailFine, Player: 0, Amount: 50},
		}
		pick, err := a.Decide(obs, legal)
		require.NoError(t, err)
		require.Equal(t, game.RollDice, pick.Kind)
	})
}

func TestGreedyTradeResponse(t *testing.T) {
	a := NewGreedy("greedy")
	obs := freshObs(t)
	obs.Phase = game.TradeResponse
	obs.Acting = 1
	legal := []game.Action{
		{Kind: game.AcceptTrade, Player: 1},
		{Kind: game.RejectTrade, Player: 1},
	}

	t.Run("accepts a favorable offer", func(t *testing.T) {
		obs.Trade = &game.TradeOffer{
			Proposer: 0, Responder: 1,
			PropertiesOffered: []int{6}, // worth 100
			CashAsking:        80,
		}
		pick, err := a.Decide(obs, legal)
		require.NoError(t, err)
		require.Equal(t, game.AcceptTrade, pick.Kind)
	})

	t.Run("rejects a losing offer", func(t *testing.T) {
		obs.Trade = &game.TradeOffer{
			Proposer: 0, Responder: 1,
			CashOffered:      80,
			PropertiesAsking: []int{6},
		}
		pick, err := a.Decide(obs, legal)
		require.NoError(t, err)
		require.Equal(t, game.RejectTrade, pick.Kind)
	})

	t.Run("mortgaged deeds count at mortgage value", func(t *testing.T) {
		obs.Properties[6].Mortgaged = true
		obs.Trade = &game.TradeOffer{
			Proposer: 0, Responder: 1,
			PropertiesOffered: []int{6}, // now worth 50
			CashAsking:        80,
		}
		pick, err := a.Decide(obs, legal)
		require.NoError(t, err)
		require.Equal(t, game.RejectTrade, pick.Kind)
	})
}

func TestGreedyDebt(t *testing.T) {
	a := NewGreedy("greedy")
	obs := freshObs(t)
	obs.Phase = game.DebtSettlement

	t.Run("sells before mortgaging", func(t *testing.T) {
		legal := []game.Action{
			{Kind: game.DeclareBankruptcy, Player: 0},
			{Kind: game.Mortgage, Player: 0, Position: 1},
			{Kind: game.SellImprovement, Player: 0, Position: 1},
		}
		pick, err := a.Decide(obs, legal)
		require.NoError(t, err)
		require.Equal(t, game.SellImprovement, pick.Kind)
	})

	t.Run("goes bankrupt only as a last resort", func(t *testing.T) {
		legal := []game.Action{{Kind: game.DeclareBankruptcy, Player: 0}}
		pick, err := a.Decide(obs, legal)
		require.NoError(t, err)
		require.Equal(t, game.DeclareBankruptcy, pick.Kind)
	})
}

func TestGreedyBuilds(t *testing.T) {
	a := NewGreedy("greedy")
	obs := freshObs(t)
	obs.Phase = game.PostMove
	legal := []game.Action{
		{Kind: game.EndTurn, Player: 0},
		{Kind: game.BuildImprovement, Player: 0, Position: 1},
	}

	pick, err := a.Decide(obs, legal)
	require.NoError(t, err)
	require.Equal(t, game.BuildImprovement, pick.Kind)

	t.Run("ends the turn when building would break the reserve", func(t *testing.T) {
		obs.Players[0].Cash = 120
		pick, err := a.Decide(obs, legal)
		require.NoError(t, err)
		require.Equal(t, game.EndTurn, pick.Kind)
	})
}
