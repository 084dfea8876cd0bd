package engine

import (
	"fmt"

	"monopoly/game"
)

// rentMode adjusts rent for card-directed landings.
type rentMode int

const (
	normalRent         rentMode = iota
	doubleRailroadRent          // "pay twice the rental"
	tenTimesDiceRent            // utility card: ten times a fresh roll
)

// resolveLanding runs the consequences of the player arriving on their
// current space: rent or tax charges, card draws (which may move again),
// jailing, or suspension on a buy decision or auction.
func (e *Engine) resolveLanding(player, diceTotal int, mode rentMode) {
	gs := e.state
	p := gs.Players[player]
	space := gs.Board.Space(p.Position)

	switch space.Kind {
	case game.Street, game.Railroad, game.Utility:
		e.resolveOwnable(player, diceTotal, mode)
	case game.Tax:
		e.charge(player, -1, space.TaxAmount, game.ResumeTurn)
		e.endLanding()
	case game.Chance, game.CommunityChest:
		e.drawAndApply(player, space.Kind)
	case game.GoToJail:
		e.sendToJail(p)
		e.endLanding()
	default:
		// GO, Jail (just visiting), Free Parking.
		e.endLanding()
	}
}

func (e *Engine) resolveOwnable(player, diceTotal int, mode rentMode) {
	gs := e.state
	p := gs.Players[player]
	pos := p.Position
	ps := &gs.Properties[pos]
	space := gs.Board.Space(pos)

	if ps.Owner < 0 {
		gs.Phase = game.AwaitingBuy
		return
	}
	if ps.Owner == player {
		e.endLanding()
		return
	}

	rent := 0
	switch mode {
	case doubleRailroadRent:
		if !ps.Mortgaged {
			rent = 2 * gs.Board.RailroadRent(gs.CountOwnedKind(ps.Owner, game.Railroad))
		}
	case tenTimesDiceRent:
		if !ps.Mortgaged {
			d1, d2 := gs.RollDice()
			rent = 10 * (d1 + d2)
		}
	default:
		rent = gs.RentOwed(pos, diceTotal)
	}
	if rent > 0 {
		e.log.Debug().Int("player", player).Int("owner", ps.Owner).Int("rent", rent).Str("space", space.Name).Msg("rent due")
		e.charge(player, ps.Owner, rent, game.ResumeTurn)
	}
	e.endLanding()
}

// drawAndApply draws the top card and applies its effect. Movement effects
// re-enter landing resolution at the new space.
func (e *Engine) drawAndApply(player int, kind game.SpaceKind) {
	gs := e.state
	p := gs.Players[player]
	var card game.Card
	if kind == game.Chance {
		card = gs.Chance.Draw()
	} else {
		card = gs.CommunityChest.Draw()
	}
	e.log.Debug().Int("player", player).Stringer("deck", card.Deck).Str("card", card.Text).Msg("card drawn")

	switch card.Kind {
	case game.EffectAdvanceTo:
		e.moveForwardTo(p, card.Target)
		e.resolveLanding(player, 0, normalRent)
	case game.EffectAdvanceToNearest:
		e.moveForwardTo(p, gs.Board.NearestSpace(p.Position, card.TargetKind))
		mode := doubleRailroadRent
		if card.TargetKind == game.Utility {
			mode = tenTimesDiceRent
		}
		e.resolveLanding(player, 0, mode)
	case game.EffectGoBack:
		p.Position = (p.Position - card.Amount + game.BoardSize) % game.BoardSize
		e.resolveLanding(player, card.Amount, normalRent)
	case game.EffectCollect:
		p.Cash += card.Amount
		gs.Ledger.Pay(card.Amount)
		e.endLanding()
	case game.EffectPay:
		e.charge(player, -1, card.Amount, game.ResumeTurn)
		e.endLanding()
	case game.EffectCollectFromEach:
		for _, other := range gs.Players {
			if other.ID == player || other.Bankrupt {
				continue
			}
			e.charge(other.ID, player, card.Amount, game.ResumeTurn)
		}
		e.endLanding()
	case game.EffectPayEach:
		for _, other := range gs.Players {
			if other.ID == player || other.Bankrupt {
				continue
			}
			e.charge(player, other.ID, card.Amount, game.ResumeTurn)
		}
		e.endLanding()
	case game.EffectRepairs:
		houses, hotels := gs.ImprovementCounts(player)
		bill := houses*card.PerHouse + hotels*card.PerHotel
		if bill > 0 {
			e.charge(player, -1, bill, game.ResumeTurn)
		}
		e.endLanding()
	case game.EffectGoToJail:
		e.sendToJail(p)
		e.endLanding()
	case game.EffectJailFree:
		p.JailCards = append(p.JailCards, card)
		e.endLanding()
	default:
		panic(fmt.Sprintf("engine: unhandled card effect %d", card.Kind))
	}
}

// charge moves cash from debtor to creditor (-1 for the bank) when the
// debtor can pay. Otherwise the obligation is queued and the debtor will be
// put into debt settlement; cash never goes negative. Reports whether the
// payment happened.
func (e *Engine) charge(debtor, creditor, amount int, resume game.DebtResume) bool {
	gs := e.state
	p := gs.Players[debtor]
	if p.Cash >= amount {
		p.Cash -= amount
		if creditor < 0 {
			gs.Ledger.Collect(amount)
		} else {
			gs.Players[creditor].Cash += amount
		}
		return true
	}
	gs.DebtQueue = append(gs.DebtQueue, game.DebtContext{
		Debtor:   debtor,
		Creditor: creditor,
		Amount:   amount,
		Resume:   resume,
	})
	return false
}

// endLanding suspends on the first queued debt, or returns control to the
// turn player for post-move management.
func (e *Engine) endLanding() {
	if len(e.state.DebtQueue) > 0 {
		e.popDebt()
		return
	}
	e.state.Phase = game.PostMove
}

func (e *Engine) popDebt() {
	gs := e.state
	debt := gs.DebtQueue[0]
	gs.DebtQueue = gs.DebtQueue[1:]
	gs.Debt = &debt
	gs.Phase = game.DebtSettlement
	e.log.Debug().Int("debtor", debt.Debtor).Int("creditor", debt.Creditor).Int("amount", debt.Amount).Msg("debt settlement opened")
}
