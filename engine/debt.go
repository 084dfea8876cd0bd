package engine

import "monopoly/game"

// trySettleDebt pays off the open obligation as soon as the debtor's cash
// covers it. The raised cash may cover queued obligations too, so those are
// settled eagerly and the engine suspends only on the first one still short.
// No-op outside debt settlement.
func (e *Engine) trySettleDebt() {
	gs := e.state
	if gs.Phase != game.DebtSettlement || gs.Debt == nil {
		return
	}
	debt := gs.Debt
	if gs.Players[debt.Debtor].Cash < debt.Amount {
		return
	}
	e.payDebt(debt)
	gs.Debt = nil

	for len(gs.DebtQueue) > 0 {
		next := gs.DebtQueue[0]
		if gs.Players[next.Debtor].Cash < next.Amount {
			e.popDebt()
			return
		}
		gs.DebtQueue = gs.DebtQueue[1:]
		e.payDebt(&next)
	}
	e.resumeAfterDebt(debt)
}

func (e *Engine) payDebt(debt *game.DebtContext) {
	gs := e.state
	gs.Players[debt.Debtor].Cash -= debt.Amount
	if debt.Creditor < 0 {
		gs.Ledger.Collect(debt.Amount)
	} else {
		gs.Players[debt.Creditor].Cash += debt.Amount
	}
	e.log.Debug().Int("debtor", debt.Debtor).Int("amount", debt.Amount).Msg("debt settled")
}

// resumeAfterDebt picks up the turn where the failed payment interrupted it.
func (e *Engine) resumeAfterDebt(debt *game.DebtContext) {
	gs := e.state
	if debt.Resume == game.ResumeJailRelease && debt.Debtor == gs.Current {
		p := gs.CurrentPlayer()
		e.releaseFromJail(p)
		steps := gs.LastRoll[0] + gs.LastRoll[1]
		e.moveBy(p, steps)
		e.resolveLanding(p.ID, steps, normalRent)
		return
	}
	gs.Phase = game.PostMove
}

// declareBankruptcy removes the debtor from the game. Improvements are sold
// back to the bank at half cost, then everything the debtor has goes to the
// creditor: a player creditor takes the cash, deeds (mortgages intact) and
// jail cards; the bank clears the deeds back to unowned and returns jail
// cards to their decks.
func (e *Engine) declareBankruptcy() {
	gs := e.state
	debt := gs.Debt
	debtor := gs.Players[debt.Debtor]
	creditor := debt.Creditor

	for _, pos := range gs.OwnedPositions(debt.Debtor) {
		ps := &gs.Properties[pos]
		if ps.Improvements > 0 {
			refund := ps.Improvements * gs.Board.Space(pos).Group.HouseCost() / 2
			debtor.Cash += refund
			gs.Ledger.Pay(refund)
			if ps.Improvements == 5 {
				gs.HotelsAvailable++
			} else {
				gs.HousesAvailable += ps.Improvements
			}
			ps.Improvements = 0
		}
		if creditor < 0 {
			ps.Owner = -1
			ps.Mortgaged = false
		} else {
			ps.Owner = creditor
		}
	}

	if debtor.Cash > 0 {
		if creditor < 0 {
			gs.Ledger.Collect(debtor.Cash)
		} else {
			gs.Players[creditor].Cash += debtor.Cash
		}
		debtor.Cash = 0
	}

	for _, card := range debtor.JailCards {
		if creditor < 0 {
			gs.Deck(card.Deck).Return(card)
		} else {
			gs.Players[creditor].JailCards = append(gs.Players[creditor].JailCards, card)
		}
	}
	debtor.JailCards = nil
	debtor.Bankrupt = true
	debtor.InJail = false

	e.log.Info().Int("player", debt.Debtor).Int("creditor", creditor).Msg("player bankrupt")

	// All remaining obligations of the debtor die with them.
	gs.Debt = nil
	remaining := gs.DebtQueue[:0]
	for _, d := range gs.DebtQueue {
		if d.Debtor != debt.Debtor {
			remaining = append(remaining, d)
		}
	}
	gs.DebtQueue = remaining

	if gs.ActivePlayers() == 1 {
		gs.Winner = gs.NextActivePlayer(debt.Debtor)
		gs.Phase = game.Terminal
		e.log.Info().Int("winner", gs.Winner).Msg("game over")
		return
	}
	if len(gs.DebtQueue) > 0 {
		e.popDebt()
		return
	}
	if debt.Debtor == gs.Current {
		e.advanceTurn()
		return
	}
	gs.Phase = game.PostMove
}
