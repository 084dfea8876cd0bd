package engine

import (
	"fmt"

	"monopoly/game"
)

// startAuction opens an auction for the property among all non-bankrupt
// players (the declining player included), in turn order from the current
// player.
func (e *Engine) startAuction(position int) {
	gs := e.state
	var bidders []int
	for i := 0; i < len(gs.Players); i++ {
		id := (gs.Current + i) % len(gs.Players)
		if !gs.Players[id].Bankrupt {
			bidders = append(bidders, id)
		}
	}
	gs.Auction = &game.AuctionContext{
		Position:   position,
		Bidders:    bidders,
		HighBid:    0,
		HighBidder: -1,
	}
	gs.Phase = game.AuctionPhase
	e.log.Debug().Int("position", position).Ints("bidders", bidders).Msg("auction opened")
}

// minNextBid is the lowest amount the pending bidder may offer.
func (e *Engine) minNextBid() int {
	a := e.state.Auction
	if a.HighBidder < 0 {
		return e.state.Rules.MinBid
	}
	return a.HighBid + 1
}

func (e *Engine) validateBid(action game.Action) error {
	gs := e.state
	if gs.Phase != game.AuctionPhase {
		return fmt.Errorf("%w: no auction in progress", ErrIllegalAction)
	}
	min := e.minNextBid()
	if action.Amount < min {
		return fmt.Errorf("%w: bid %d below minimum %d", ErrIllegalAction, action.Amount, min)
	}
	if action.Amount > gs.Players[action.Player].Cash {
		return fmt.Errorf("%w: bid %d exceeds cash %d", ErrIllegalAction, action.Amount, gs.Players[action.Player].Cash)
	}
	return nil
}

func (e *Engine) applyBid(player, amount int) {
	a := e.state.Auction
	a.HighBid = amount
	a.HighBidder = player
	if len(a.Bidders) == 1 {
		// Everyone else already passed; the bid closes the sale.
		e.closeAuction()
		return
	}
	a.Turn = (a.Turn + 1) % len(a.Bidders)
}

// applyPassBid removes the bidder. The auction closes when the high bidder
// is the only one left, or becomes a no-sale when everyone has passed.
func (e *Engine) applyPassBid(player int) {
	gs := e.state
	a := gs.Auction
	a.Bidders = append(a.Bidders[:a.Turn], a.Bidders[a.Turn+1:]...)
	if a.Turn >= len(a.Bidders) {
		a.Turn = 0
	}

	if len(a.Bidders) == 0 {
		// Nobody bid; the property stays with the bank.
		e.log.Debug().Int("position", a.Position).Msg("auction closed with no sale")
		gs.Auction = nil
		gs.Phase = game.PostMove
		return
	}
	if len(a.Bidders) == 1 && a.Bidders[0] == a.HighBidder {
		e.closeAuction()
	}
}

func (e *Engine) closeAuction() {
	gs := e.state
	a := gs.Auction
	winner := gs.Players[a.HighBidder]
	winner.Cash -= a.HighBid
	gs.Ledger.Collect(a.HighBid)
	gs.Properties[a.Position].Owner = a.HighBidder
	e.log.Debug().Int("position", a.Position).Int("winner", a.HighBidder).Int("price", a.HighBid).Msg("auction won")
	gs.Auction = nil
	gs.Phase = game.PostMove
}
