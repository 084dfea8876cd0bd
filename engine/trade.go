package engine

import (
	"fmt"

	"monopoly/game"
)

// validateTrade checks a proposed offer structurally: both sides must own
// what they put up, traded properties must be unimproved, and cash and jail
// card amounts must be covered. Mortgaged properties trade as-is.
func (e *Engine) validateTrade(offer *game.TradeOffer) error {
	gs := e.state
	if offer == nil {
		return fmt.Errorf("%w: missing offer", ErrInvalidTrade)
	}
	if offer.Responder < 0 || offer.Responder >= len(gs.Players) {
		return fmt.Errorf("%w: no such player %d", ErrInvalidTrade, offer.Responder)
	}
	if offer.Responder == offer.Proposer {
		return fmt.Errorf("%w: cannot trade with yourself", ErrInvalidTrade)
	}
	if offer.Proposer != gs.Current {
		return fmt.Errorf("%w: proposer %d is not the turn player", ErrInvalidTrade, offer.Proposer)
	}
	if gs.Players[offer.Responder].Bankrupt {
		return fmt.Errorf("%w: responder %d is bankrupt", ErrInvalidTrade, offer.Responder)
	}
	if offer.CashOffered < 0 || offer.CashAsking < 0 ||
		offer.JailCardsOffered < 0 || offer.JailCardsAsking < 0 {
		return fmt.Errorf("%w: negative amounts", ErrInvalidTrade)
	}
	if offer.CashOffered > gs.Players[offer.Proposer].Cash {
		return fmt.Errorf("%w: proposer cannot cover $%d", ErrInvalidTrade, offer.CashOffered)
	}
	if offer.CashAsking > gs.Players[offer.Responder].Cash {
		return fmt.Errorf("%w: responder cannot cover $%d", ErrInvalidTrade, offer.CashAsking)
	}
	if offer.JailCardsOffered > len(gs.Players[offer.Proposer].JailCards) {
		return fmt.Errorf("%w: proposer holds too few jail cards", ErrInvalidTrade)
	}
	if offer.JailCardsAsking > len(gs.Players[offer.Responder].JailCards) {
		return fmt.Errorf("%w: responder holds too few jail cards", ErrInvalidTrade)
	}
	if err := e.checkTradedProperties(offer.PropertiesOffered, offer.Proposer); err != nil {
		return err
	}
	if err := e.checkTradedProperties(offer.PropertiesAsking, offer.Responder); err != nil {
		return err
	}
	if offer.CashOffered == 0 && offer.CashAsking == 0 &&
		offer.JailCardsOffered == 0 && offer.JailCardsAsking == 0 &&
		len(offer.PropertiesOffered) == 0 && len(offer.PropertiesAsking) == 0 {
		return fmt.Errorf("%w: empty offer", ErrInvalidTrade)
	}
	return nil
}

func (e *Engine) checkTradedProperties(positions []int, owner int) error {
	gs := e.state
	for _, pos := range positions {
		if pos < 0 || pos >= gs.Board.Len() || !gs.Board.Space(pos).Kind.IsOwnable() {
			return fmt.Errorf("%w: position %d is not tradable", ErrInvalidTrade, pos)
		}
		if gs.Properties[pos].Owner != owner {
			return fmt.Errorf("%w: player %d does not own position %d", ErrInvalidTrade, owner, pos)
		}
		if space := gs.Board.Space(pos); space.Kind == game.Street {
			// Trading a street out of an improved group would strand
			// improvements on a broken monopoly.
			for _, member := range gs.Board.GroupMembers(space.Group) {
				if gs.Properties[member].Improvements > 0 {
					return fmt.Errorf("%w: group of position %d has improvements", ErrInvalidTrade, pos)
				}
			}
		}
	}
	return nil
}

// acceptTrade executes the pending offer. Everything moves between the two
// players, so the bank ledger is untouched.
func (e *Engine) acceptTrade() {
	gs := e.state
	offer := gs.Trade
	proposer := gs.Players[offer.Proposer]
	responder := gs.Players[offer.Responder]

	proposer.Cash += offer.CashAsking - offer.CashOffered
	responder.Cash += offer.CashOffered - offer.CashAsking

	for _, pos := range offer.PropertiesOffered {
		gs.Properties[pos].Owner = offer.Responder
	}
	for _, pos := range offer.PropertiesAsking {
		gs.Properties[pos].Owner = offer.Proposer
	}

	moveJailCards(proposer, responder, offer.JailCardsOffered)
	moveJailCards(responder, proposer, offer.JailCardsAsking)

	e.log.Debug().Int("proposer", offer.Proposer).Int("responder", offer.Responder).Msg("trade executed")
	gs.Trade = nil
	gs.Phase = game.PostMove
}

func moveJailCards(from, to *game.Player, n int) {
	for i := 0; i < n; i++ {
		card := from.JailCards[len(from.JailCards)-1]
		from.JailCards = from.JailCards[:len(from.JailCards)-1]
		to.JailCards = append(to.JailCards, card)
	}
}
