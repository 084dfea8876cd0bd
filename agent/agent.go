// Package agent provides reference implementations of the env.Agent
// capability: a seeded uniform-random player and a scripted greedy player.
package agent

import (
	"fmt"

	"monopoly/env"
	"monopoly/game"

	"golang.org/x/exp/rand"
)

// Random picks uniformly from the legal set. Seeded for reproducible games.
type Random struct {
	name string
	rng  *rand.Rand
}

func NewRandom(name string, seed uint64) *Random {
	return &Random{name: name, rng: rand.New(rand.NewSource(seed))}
}

func (a *Random) Name() string { return a.name }

func (a *Random) Decide(_ env.Observation, legal []game.Action) (game.Action, error) {
	if len(legal) == 0 {
		return game.Action{}, fmt.Errorf("agent: empty legal set")
	}
	return legal[a.rng.Intn(len(legal))], nil
}

// Greedy is a fixed acquisition policy: buy whatever it lands on, bid up to
// half the list price, build as soon as building is legal, leave jail the
// cheapest immediate way, and keep a small cash reserve.
type Greedy struct {
	name    string
	reserve int // cash floor kept after discretionary spending
}

func NewGreedy(name string) *Greedy {
	return &Greedy{name: name, reserve: 100}
}

func (a *Greedy) Name() string { return a.name }

func (a *Greedy) Decide(obs env.Observation, legal []game.Action) (game.Action, error) {
	if len(legal) == 0 {
		return game.Action{}, fmt.Errorf("agent: empty legal set")
	}
	me := obs.Acting
	cash := obs.Players[me].Cash

	switch obs.Phase {
	case game.AwaitingBuy:
		pos := obs.Players[me].Position
		if cash-obs.Board.Space(pos).Price >= a.reserve {
			if buy, ok := find(legal, game.BuyProperty); ok {
				return buy, nil
			}
		}
		return game.Action{Kind: game.DeclineBuy, Player: me, Position: pos}, nil

	case game.AuctionPhase:
		if bid, ok := find(legal, game.Bid); ok {
			price := obs.Board.Space(obs.Auction.Position).Price
			if bid.Amount <= price/2 && cash-bid.Amount >= a.reserve {
				return bid, nil
			}
		}
		return game.Action{Kind: game.PassBid, Player: me}, nil

	case game.InJailDecision:
		if card, ok := find(legal, game.UseJailCard); ok {
			return card, nil
		}
		if fine, ok := find(legal, game.PayJailFine); ok && cash-fine.Amount >= a.reserve {
			return fine, nil
		}
		return game.Action{Kind: game.RollDice, Player: me}, nil

	case game.PostMove:
		if build, ok := find(legal, game.BuildImprovement); ok {
			cost := obs.Board.Space(build.Position).Group.HouseCost()
			if cash-cost >= a.reserve {
				return build, nil
			}
		}
		if lift, ok := find(legal, game.Unmortgage); ok {
			if cash-obs.Board.Space(lift.Position).UnmortgageCost >= a.reserve {
				return lift, nil
			}
		}
		return game.Action{Kind: game.EndTurn, Player: me}, nil

	case game.TradeResponse:
		if a.tradeValue(obs) >= 0 {
			return game.Action{Kind: game.AcceptTrade, Player: me}, nil
		}
		return game.Action{Kind: game.RejectTrade, Player: me}, nil

	case game.DebtSettlement:
		// Raise cash before giving up: sell first, then mortgage.
		if sell, ok := find(legal, game.SellImprovement); ok {
			return sell, nil
		}
		if mortgage, ok := find(legal, game.Mortgage); ok {
			return mortgage, nil
		}
		return game.Action{Kind: game.DeclareBankruptcy, Player: me}, nil
	}
	return legal[0], nil
}

// tradeValue is the net book value of the pending offer from the
// responder's side: what is offered minus what is asked. Mortgaged deeds
// count at mortgage value, jail cards at the fine amount.
func (a *Greedy) tradeValue(obs env.Observation) int {
	offer := obs.Trade
	value := offer.CashOffered - offer.CashAsking
	value += obs.Rules.JailFine * (offer.JailCardsOffered - offer.JailCardsAsking)
	for _, pos := range offer.PropertiesOffered {
		value += a.deedValue(obs, pos)
	}
	for _, pos := range offer.PropertiesAsking {
		value -= a.deedValue(obs, pos)
	}
	return value
}

func (a *Greedy) deedValue(obs env.Observation, pos int) int {
	space := obs.Board.Space(pos)
	if obs.Properties[pos].Mortgaged {
		return space.MortgageValue
	}
	return space.Price
}

func find(legal []game.Action, kind game.ActionKind) (game.Action, bool) {
	for _, a := range legal {
		if a.Kind == kind {
			return a, true
		}
	}
	return game.Action{}, false
}
