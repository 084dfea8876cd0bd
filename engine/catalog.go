package engine

import "monopoly/game"

// LegalActions enumerates the choices open to the pending actor. Bid
// entries carry the minimum raise; Step accepts any affordable amount above
// it. Trade proposals are free-form and validated on submission, so they
// are not enumerated here.
func (e *Engine) LegalActions() []game.Action {
	gs := e.state
	actor := gs.Acting()

	switch gs.Phase {
	case game.AwaitingRoll:
		return []game.Action{{Kind: game.RollDice, Player: actor}}

	case game.InJailDecision:
		p := gs.Players[actor]
		actions := []game.Action{{Kind: game.RollDice, Player: actor}}
		if len(p.JailCards) > 0 {
			actions = append(actions, game.Action{Kind: game.UseJailCard, Player: actor})
		}
		if p.Cash >= gs.Rules.JailFine {
			actions = append(actions, game.Action{Kind: game.PayJailFine, Player: actor, Amount: gs.Rules.JailFine})
		}
		return actions

	case game.AwaitingBuy:
		pos := gs.Players[actor].Position
		actions := []game.Action{{Kind: game.DeclineBuy, Player: actor, Position: pos}}
		if gs.Players[actor].Cash >= gs.Board.Space(pos).Price {
			actions = append(actions, game.Action{Kind: game.BuyProperty, Player: actor, Position: pos})
		}
		return actions

	case game.AuctionPhase:
		actions := []game.Action{{Kind: game.PassBid, Player: actor}}
		if min := e.minNextBid(); gs.Players[actor].Cash >= min {
			actions = append(actions, game.Action{Kind: game.Bid, Player: actor, Amount: min})
		}
		return actions

	case game.PostMove:
		actions := []game.Action{{Kind: game.EndTurn, Player: actor}}
		return append(actions, e.managementActions(actor, false)...)

	case game.TradeResponse:
		return []game.Action{
			{Kind: game.AcceptTrade, Player: actor},
			{Kind: game.RejectTrade, Player: actor},
		}

	case game.DebtSettlement:
		actions := []game.Action{{Kind: game.DeclareBankruptcy, Player: actor}}
		return append(actions, e.managementActions(actor, true)...)
	}
	return nil
}

// managementActions lists the asset moves available to a player. During
// debt settlement only cash-raising moves (selling and mortgaging) count.
func (e *Engine) managementActions(player int, raisingOnly bool) []game.Action {
	gs := e.state
	var actions []game.Action
	cash := gs.Players[player].Cash

	for _, pos := range gs.OwnedPositions(player) {
		space := gs.Board.Space(pos)
		if !raisingOnly {
			if gs.CanBuild(player, pos) && cash >= space.Group.HouseCost() {
				actions = append(actions, game.Action{Kind: game.BuildImprovement, Player: player, Position: pos})
			}
			if gs.CanUnmortgage(player, pos) {
				actions = append(actions, game.Action{Kind: game.Unmortgage, Player: player, Position: pos})
			}
		}
		if gs.CanSellImprovement(player, pos) {
			actions = append(actions, game.Action{Kind: game.SellImprovement, Player: player, Position: pos})
		}
		if gs.CanMortgage(player, pos) {
			actions = append(actions, game.Action{Kind: game.Mortgage, Player: player, Position: pos})
		}
	}
	return actions
}
