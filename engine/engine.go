// Package engine drives the turn state machine: it validates proposed
// actions against the legal set for the current phase, applies them, and
// runs the automatic segments (movement, landing resolution, turn handover)
// until the game suspends on the next decision point.
package engine

import (
	"errors"
	"fmt"

	"monopoly/game"

	"github.com/rs/zerolog"
)

var (
	// ErrGameOver is returned for any action proposed on a terminal state.
	ErrGameOver = errors.New("game is over")
	// ErrIllegalAction is returned when the proposed action is not in the
	// legal set for the current phase and actor. The state is unchanged.
	ErrIllegalAction = errors.New("illegal action")
	// ErrInvalidTrade is returned for a structurally invalid trade offer.
	ErrInvalidTrade = errors.New("invalid trade")
)

// Engine owns a game state and advances it one validated action at a time.
type Engine struct {
	state        *game.GameState
	log          zerolog.Logger
	initialTotal int
	baselined    bool
}

// New wraps a game state. The logger receives per-action debug events.
func New(state *game.GameState, logger zerolog.Logger) *Engine {
	return &Engine{state: state, log: logger}
}

// State exposes the live state. Callers must not mutate it; use
// State().Copy() for observations.
func (e *Engine) State() *game.GameState { return e.state }

// Step validates and applies one action, then auto-advances through any
// non-decision segments. On error the state is untouched.
func (e *Engine) Step(a game.Action) error {
	gs := e.state
	if gs.Phase == game.Terminal {
		return ErrGameOver
	}
	if !e.baselined {
		// The conservation baseline is read off the live state, not the
		// rule table, so callers may stage cash before the first step.
		e.initialTotal = gs.TotalCash() - gs.Ledger.BankPaid + gs.Ledger.BankCollected
		e.baselined = true
	}
	if a.Player != gs.Acting() {
		return fmt.Errorf("%w: player %d acting out of turn (pending: %d)",
			ErrIllegalAction, a.Player, gs.Acting())
	}
	if err := e.validate(a); err != nil {
		return err
	}

	e.log.Debug().
		Int("turn", gs.Turn).
		Stringer("phase", gs.Phase).
		Stringer("action", a).
		Msg("applying action")

	e.apply(a)
	e.checkInvariants()
	return nil
}

// validate checks the action against the legal set. Bid amounts and trade
// offers carry free parameters, so they are validated structurally instead
// of by set membership.
func (e *Engine) validate(a game.Action) error {
	switch a.Kind {
	case game.Bid:
		return e.validateBid(a)
	case game.ProposeTrade:
		if e.state.Phase != game.PostMove || a.Player != e.state.Current {
			return fmt.Errorf("%w: %s not available in phase %s", ErrIllegalAction, a.Kind, e.state.Phase)
		}
		return e.validateTrade(a.Trade)
	}
	for _, legal := range e.LegalActions() {
		if legal.Equal(a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s not available in phase %s", ErrIllegalAction, a, e.state.Phase)
}

func (e *Engine) apply(a game.Action) {
	gs := e.state
	switch a.Kind {
	case game.RollDice:
		if gs.Phase == game.InJailDecision {
			e.rollInJail()
		} else {
			e.rollAndMove()
		}
	case game.BuyProperty:
		e.buyProperty(a.Player, a.Position)
	case game.DeclineBuy:
		e.startAuction(a.Position)
	case game.Bid:
		e.applyBid(a.Player, a.Amount)
	case game.PassBid:
		e.applyPassBid(a.Player)
	case game.UseJailCard:
		e.useJailCard(a.Player)
	case game.PayJailFine:
		e.payJailFine(a.Player)
	case game.BuildImprovement:
		e.build(a.Player, a.Position)
	case game.SellImprovement:
		e.sellImprovement(a.Player, a.Position)
	case game.Mortgage:
		e.mortgage(a.Player, a.Position)
	case game.Unmortgage:
		e.unmortgage(a.Player, a.Position)
	case game.ProposeTrade:
		offer := *a.Trade
		gs.Trade = &offer
		gs.Phase = game.TradeResponse
	case game.AcceptTrade:
		e.acceptTrade()
	case game.RejectTrade:
		gs.Trade = nil
		gs.Phase = game.PostMove
	case game.DeclareBankruptcy:
		e.declareBankruptcy()
	case game.EndTurn:
		e.endTurn()
	default:
		panic(fmt.Sprintf("engine: unhandled action kind %s", a.Kind))
	}
}

// rollAndMove handles the normal AwaitingRoll dice roll: doubles counting,
// the three-doubles jailing, movement and landing resolution.
func (e *Engine) rollAndMove() {
	gs := e.state
	p := gs.CurrentPlayer()
	d1, d2 := gs.RollDice()
	if d1 == d2 {
		gs.DoublesCount++
		if gs.DoublesCount >= gs.Rules.DoublesLimit {
			e.log.Debug().Int("player", p.ID).Msg("third consecutive doubles, jailed")
			e.sendToJail(p)
			gs.Phase = game.PostMove
			return
		}
	} else {
		gs.DoublesCount = 0
	}
	e.moveBy(p, d1+d2)
	e.resolveLanding(p.ID, d1+d2, normalRent)
}

// rollInJail handles the escape attempt. Doubles release without a further
// roll this turn. The third failed attempt forces the fine.
func (e *Engine) rollInJail() {
	gs := e.state
	p := gs.CurrentPlayer()
	d1, d2 := gs.RollDice()
	gs.DoublesCount = 0
	if d1 == d2 {
		e.releaseFromJail(p)
		e.moveBy(p, d1+d2)
		e.resolveLanding(p.ID, d1+d2, normalRent)
		return
	}
	p.JailTurns++
	if p.JailTurns < gs.Rules.MaxJailTurns {
		gs.Phase = game.PostMove
		return
	}
	// Forced fine. If the cash is short the debt is held open and the
	// stored roll replays once it settles.
	if !e.charge(p.ID, -1, gs.Rules.JailFine, game.ResumeJailRelease) {
		e.popDebt()
		return
	}
	e.releaseFromJail(p)
	e.moveBy(p, d1+d2)
	e.resolveLanding(p.ID, d1+d2, normalRent)
}

// useJailCard returns the card to its deck, releases the player and runs
// the turn's roll immediately.
func (e *Engine) useJailCard(player int) {
	gs := e.state
	p := gs.Players[player]
	card := p.JailCards[len(p.JailCards)-1]
	p.JailCards = p.JailCards[:len(p.JailCards)-1]
	gs.Deck(card.Deck).Return(card)
	e.releaseFromJail(p)
	e.rollAndMove()
}

func (e *Engine) payJailFine(player int) {
	gs := e.state
	p := gs.Players[player]
	p.Cash -= gs.Rules.JailFine
	gs.Ledger.Collect(gs.Rules.JailFine)
	e.releaseFromJail(p)
	e.rollAndMove()
}

func (e *Engine) buyProperty(player, position int) {
	gs := e.state
	price := gs.Board.Space(position).Price
	gs.Players[player].Cash -= price
	gs.Ledger.Collect(price)
	gs.Properties[position].Owner = player
	e.log.Debug().Int("player", player).Int("position", position).Int("price", price).Msg("property bought")
	gs.Phase = game.PostMove
}

func (e *Engine) build(player, position int) {
	gs := e.state
	space := gs.Board.Space(position)
	cost := space.Group.HouseCost()
	gs.Players[player].Cash -= cost
	gs.Ledger.Collect(cost)
	ps := &gs.Properties[position]
	ps.Improvements++
	if ps.Improvements == 5 {
		// A hotel replaces the four houses, which go back to the stock.
		gs.HotelsAvailable--
		gs.HousesAvailable += 4
	} else {
		gs.HousesAvailable--
	}
}

func (e *Engine) sellImprovement(player, position int) {
	gs := e.state
	space := gs.Board.Space(position)
	refund := space.Group.HouseCost() / 2
	gs.Players[player].Cash += refund
	gs.Ledger.Pay(refund)
	ps := &gs.Properties[position]
	if ps.Improvements == 5 {
		gs.HotelsAvailable++
		gs.HousesAvailable -= 4
	} else {
		gs.HousesAvailable++
	}
	ps.Improvements--
	e.trySettleDebt()
}

func (e *Engine) mortgage(player, position int) {
	gs := e.state
	value := gs.Board.Space(position).MortgageValue
	gs.Players[player].Cash += value
	gs.Ledger.Pay(value)
	gs.Properties[position].Mortgaged = true
	e.trySettleDebt()
}

func (e *Engine) unmortgage(player, position int) {
	gs := e.state
	cost := gs.Board.Space(position).UnmortgageCost
	gs.Players[player].Cash -= cost
	gs.Ledger.Collect(cost)
	gs.Properties[position].Mortgaged = false
}

// endTurn hands over, or lets the same player roll again after doubles.
func (e *Engine) endTurn() {
	gs := e.state
	p := gs.CurrentPlayer()
	if gs.DoublesCount > 0 && !p.InJail && !p.Bankrupt {
		gs.Phase = game.AwaitingRoll
		return
	}
	e.advanceTurn()
}

func (e *Engine) advanceTurn() {
	gs := e.state
	gs.Turn++
	if gs.Turn >= gs.Rules.MaxTurns {
		e.log.Info().Int("turn", gs.Turn).Msg("turn limit reached, game drawn")
		gs.Winner = -1
		gs.Phase = game.Terminal
		return
	}
	gs.DoublesCount = 0
	gs.Current = gs.NextActivePlayer(gs.Current)
	e.startTurn()
}

func (e *Engine) startTurn() {
	gs := e.state
	if gs.CurrentPlayer().InJail {
		gs.Phase = game.InJailDecision
	} else {
		gs.Phase = game.AwaitingRoll
	}
}

func (e *Engine) sendToJail(p *game.Player) {
	p.Position = game.JailPosition
	p.InJail = true
	p.JailTurns = 0
	e.state.DoublesCount = 0
}

func (e *Engine) releaseFromJail(p *game.Player) {
	p.InJail = false
	p.JailTurns = 0
}

// moveBy advances the player clockwise, crediting the salary on passing GO.
func (e *Engine) moveBy(p *game.Player, steps int) {
	next := (p.Position + steps) % game.BoardSize
	if next < p.Position {
		e.paySalary(p)
	}
	p.Position = next
}

// moveForwardTo moves the player forward to the target position, crediting
// the salary when the move wraps past (or onto) GO.
func (e *Engine) moveForwardTo(p *game.Player, target int) {
	if target <= p.Position {
		e.paySalary(p)
	}
	p.Position = target
}

func (e *Engine) paySalary(p *game.Player) {
	p.Cash += e.state.Rules.GoSalary
	e.state.Ledger.Pay(e.state.Rules.GoSalary)
}

// checkInvariants panics on accounting corruption. Every reachable state
// must conserve cash against the bank ledger and keep the building stock
// within bounds.
func (e *Engine) checkInvariants() {
	gs := e.state
	if !gs.Ledger.Conserved(e.initialTotal, gs.TotalCash()) {
		panic(fmt.Sprintf("engine: cash conservation violated: total %d, initial %d, bank paid %d, collected %d",
			gs.TotalCash(), e.initialTotal, gs.Ledger.BankPaid, gs.Ledger.BankCollected))
	}
	if gs.HousesAvailable < 0 || gs.HousesAvailable > gs.Rules.Houses {
		panic(fmt.Sprintf("engine: house stock out of bounds: %d", gs.HousesAvailable))
	}
	if gs.HotelsAvailable < 0 || gs.HotelsAvailable > gs.Rules.Hotels {
		panic(fmt.Sprintf("engine: hotel stock out of bounds: %d", gs.HotelsAvailable))
	}
	for _, pos := range gs.Board.Streets() {
		ps := &gs.Properties[pos]
		if ps.Improvements == 0 {
			continue
		}
		if ps.Mortgaged || ps.Owner < 0 || !gs.OwnsFullGroup(ps.Owner, gs.Board.Space(pos).Group) {
			panic(fmt.Sprintf("engine: improvements on position %d without an unmortgaged monopoly", pos))
		}
	}
	for _, p := range gs.Players {
		if p.Cash < 0 {
			panic(fmt.Sprintf("engine: player %d has negative cash %d", p.ID, p.Cash))
		}
		if p.Bankrupt && len(gs.OwnedPositions(p.ID)) > 0 {
			panic(fmt.Sprintf("engine: bankrupt player %d still owns property", p.ID))
		}
	}
}
