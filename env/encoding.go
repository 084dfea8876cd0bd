package env

import (
	"fmt"

	"monopoly/game"
)

// Flat action-index layout for agents that want a fixed-size action space.
// Parameterless kinds get one slot each; positional kinds get one slot per
// street or per ownable property. Bid maps to a single slot meaning "raise
// by the minimum"; free-form trade proposals have no flat representation and
// are available to programmatic agents only.
const (
	idxRollDice = iota
	idxBuyProperty
	idxDeclineBuy
	idxBid
	idxPassBid
	idxUseJailCard
	idxPayJailFine
	idxAcceptTrade
	idxRejectTrade
	idxDeclareBankruptcy
	idxEndTurn

	idxBuild      = idxEndTurn + 1                   // 22 street slots
	idxSell       = idxBuild + game.NumStreets       // 22 street slots
	idxMortgage   = idxSell + game.NumStreets        // 28 property slots
	idxUnmortgage = idxMortgage + game.NumProperties // 28 property slots

	// ActionSpaceSize is the size of the flat action space.
	ActionSpaceSize = idxUnmortgage + game.NumProperties
)

// Encoder translates catalog actions to and from flat indices.
type Encoder struct {
	board *game.Board
}

func NewEncoder(board *game.Board) *Encoder {
	return &Encoder{board: board}
}

// Encode maps an action to its flat index. Trade proposals are not
// representable.
func (c *Encoder) Encode(a game.Action) (int, error) {
	switch a.Kind {
	case game.RollDice:
		return idxRollDice, nil
	case game.BuyProperty:
		return idxBuyProperty, nil
	case game.DeclineBuy:
		return idxDeclineBuy, nil
	case game.Bid:
		return idxBid, nil
	case game.PassBid:
		return idxPassBid, nil
	case game.UseJailCard:
		return idxUseJailCard, nil
	case game.PayJailFine:
		return idxPayJailFine, nil
	case game.AcceptTrade:
		return idxAcceptTrade, nil
	case game.RejectTrade:
		return idxRejectTrade, nil
	case game.DeclareBankruptcy:
		return idxDeclareBankruptcy, nil
	case game.EndTurn:
		return idxEndTurn, nil
	case game.BuildImprovement:
		return idxBuild + c.board.Space(a.Position).StreetIndex, nil
	case game.SellImprovement:
		return idxSell + c.board.Space(a.Position).StreetIndex, nil
	case game.Mortgage:
		return idxMortgage + c.board.Space(a.Position).PropertyIndex, nil
	case game.Unmortgage:
		return idxUnmortgage + c.board.Space(a.Position).PropertyIndex, nil
	}
	return 0, fmt.Errorf("env: action %s has no flat encoding", a)
}

// Decode rebuilds the action at a flat index using the observation for the
// contextual parameters (acting player, pending position, minimum bid).
func (c *Encoder) Decode(index int, obs Observation) (game.Action, error) {
	actor := obs.Acting
	switch {
	case index < 0 || index >= ActionSpaceSize:
		return game.Action{}, fmt.Errorf("env: action index %d out of range", index)
	case index == idxRollDice:
		return game.Action{Kind: game.RollDice, Player: actor}, nil
	case index == idxBuyProperty:
		return game.Action{Kind: game.BuyProperty, Player: actor, Position: obs.Players[actor].Position}, nil
	case index == idxDeclineBuy:
		return game.Action{Kind: game.DeclineBuy, Player: actor, Position: obs.Players[actor].Position}, nil
	case index == idxBid:
		if obs.Auction == nil {
			return game.Action{}, fmt.Errorf("env: bid index without an auction")
		}
		amount := obs.Auction.HighBid + 1
		if obs.Auction.HighBidder < 0 {
			amount = obs.Rules.MinBid
		}
		return game.Action{Kind: game.Bid, Player: actor, Amount: amount}, nil
	case index == idxPassBid:
		return game.Action{Kind: game.PassBid, Player: actor}, nil
	case index == idxUseJailCard:
		return game.Action{Kind: game.UseJailCard, Player: actor}, nil
	case index == idxPayJailFine:
		return game.Action{Kind: game.PayJailFine, Player: actor, Amount: obs.Rules.JailFine}, nil
	case index == idxAcceptTrade:
		return game.Action{Kind: game.AcceptTrade, Player: actor}, nil
	case index == idxRejectTrade:
		return game.Action{Kind: game.RejectTrade, Player: actor}, nil
	case index == idxDeclareBankruptcy:
		return game.Action{Kind: game.DeclareBankruptcy, Player: actor}, nil
	case index == idxEndTurn:
		return game.Action{Kind: game.EndTurn, Player: actor}, nil
	case index < idxSell:
		return game.Action{Kind: game.BuildImprovement, Player: actor, Position: c.board.StreetAt(index - idxBuild)}, nil
	case index < idxMortgage:
		return game.Action{Kind: game.SellImprovement, Player: actor, Position: c.board.StreetAt(index - idxSell)}, nil
	case index < idxUnmortgage:
		return game.Action{Kind: game.Mortgage, Player: actor, Position: c.board.PropertyAt(index - idxMortgage)}, nil
	default:
		return game.Action{Kind: game.Unmortgage, Player: actor, Position: c.board.PropertyAt(index - idxUnmortgage)}, nil
	}
}

// Mask marks the flat indices of the legal actions. Unencodable entries
// (trade proposals) are skipped.
func (c *Encoder) Mask(legal []game.Action) []bool {
	mask := make([]bool, ActionSpaceSize)
	for _, a := range legal {
		if idx, err := c.Encode(a); err == nil {
			mask[idx] = true
		}
	}
	return mask
}
