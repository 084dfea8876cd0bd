// Package env wraps the engine in a synchronous reset/step environment for
// player agents: observations are read-only snapshots, rewards are sparse
// (terminal only), and a drive loop enforces a retry budget on agents that
// keep proposing illegal actions.
package env

import (
	"errors"
	"fmt"

	"monopoly/engine"
	"monopoly/game"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PlayerView is one player's slice of an observation.
type PlayerView struct {
	Name      string
	Cash      int
	Position  int
	InJail    bool
	JailTurns int
	JailCards int
	Bankrupt  bool
}

// PropertyView is the public state of one board position.
type PropertyView struct {
	Owner        int
	Improvements int
	Mortgaged    bool
}

// Observation is a read-only projection of the game state. The game is full
// information, so every agent sees the same snapshot. The board reference is
// immutable and shared.
type Observation struct {
	GameID string
	Board  *game.Board
	Rules  game.Rules

	Turn    int
	Current int
	Acting  int
	Phase   game.Phase

	LastRoll   [2]int
	Players    []PlayerView
	Properties []PropertyView

	HousesAvailable int
	HotelsAvailable int

	Auction *game.AuctionContext
	Trade   *game.TradeOffer
	Debt    *game.DebtContext

	Winner int
}

// Done reports whether the observed state is terminal.
func (o Observation) Done() bool { return o.Phase == game.Terminal }

// Info carries step metadata alongside the observation.
type Info struct {
	Legal           []game.Action
	Acting          int
	IllegalAttempts int
}

// Agent is the player-agent capability: pick one action from the legal set.
// Implementations live in the agent package.
type Agent interface {
	Name() string
	Decide(obs Observation, legal []game.Action) (game.Action, error)
}

// Renderer consumes observations after every applied step. It must not
// mutate anything it is handed.
type Renderer interface {
	Draw(Observation)
}

// Environment is the reset/step surface over one game at a time.
type Environment struct {
	log      zerolog.Logger
	rules    game.Rules
	renderer Renderer

	id       uuid.UUID
	eng      *engine.Engine
	seed     uint64
	attempts int
}

// Option configures an Environment.
type Option func(*Environment)

// WithRenderer attaches a renderer called after each applied step.
func WithRenderer(r Renderer) Option {
	return func(e *Environment) { e.renderer = r }
}

// New builds an environment. Reset must be called before Step.
func New(rules game.Rules, logger zerolog.Logger, opts ...Option) *Environment {
	e := &Environment{log: logger, rules: rules}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Reset starts a fresh game for the named players with the given seed and
// returns the first observation and legal set.
func (e *Environment) Reset(names []string, seed uint64) (Observation, []game.Action, error) {
	if len(names) < 2 {
		return Observation{}, nil, fmt.Errorf("env: need at least two players, got %d", len(names))
	}
	e.id = uuid.New()
	e.seed = seed
	e.attempts = 0
	gs := game.NewGameState(game.NewBoard(), e.rules, names, seed)
	e.eng = engine.New(gs, e.log.With().Str("game", e.id.String()).Logger())

	e.log.Info().Str("game", e.id.String()).Uint64("seed", seed).Strs("players", names).Msg("game started")

	obs := e.observe()
	if e.renderer != nil {
		e.renderer.Draw(obs)
	}
	return obs, e.eng.LegalActions(), nil
}

// Step validates and applies one action. Illegal actions leave the state
// untouched and are reported back; the info block carries the running count
// of illegal attempts at the current decision point.
func (e *Environment) Step(a game.Action) (Observation, float64, bool, Info, error) {
	if e.eng == nil {
		return Observation{}, 0, false, Info{}, errors.New("env: Step before Reset")
	}
	actor := e.eng.State().Acting()
	if err := e.eng.Step(a); err != nil {
		e.attempts++
		info := Info{Legal: e.eng.LegalActions(), Acting: actor, IllegalAttempts: e.attempts}
		return e.observe(), 0, false, info, err
	}
	e.attempts = 0

	obs := e.observe()
	if e.renderer != nil {
		e.renderer.Draw(obs)
	}
	done := obs.Done()
	reward := 0.0
	if done && obs.Winner >= 0 {
		if obs.Winner == actor {
			reward = 1
		} else {
			reward = -1
		}
	}
	info := Info{Legal: e.eng.LegalActions(), Acting: obs.Acting}
	return obs, reward, done, info, nil
}

// Close releases renderer resources. The core holds none of its own.
func (e *Environment) Close() error {
	if c, ok := e.renderer.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// Run plays a whole game, one agent per seat. Agents that error or exhaust
// the illegal-attempt retry budget at a decision point are auto-resolved
// with the safe default for the phase, so a broken agent cannot stall the
// game. Returns the terminal observation.
func (e *Environment) Run(agents []Agent, seed uint64) (Observation, error) {
	names := make([]string, len(agents))
	for i, a := range agents {
		names[i] = a.Name()
	}
	obs, legal, err := e.Reset(names, seed)
	if err != nil {
		return Observation{}, err
	}

	for !obs.Done() {
		actor := obs.Acting
		action, decideErr := agents[actor].Decide(obs, legal)
		retries := 0
		for {
			if decideErr != nil || retries >= e.rules.RetryBudget {
				if decideErr != nil {
					e.log.Warn().Err(decideErr).Int("player", actor).Msg("agent error, using default action")
				} else {
					e.log.Warn().Int("player", actor).Stringer("phase", obs.Phase).Msg("retry budget exhausted, using default action")
				}
				action = e.defaultAction(actor, obs)
				decideErr = nil
			}
			next, _, _, info, stepErr := e.Step(action)
			if stepErr == nil {
				obs, legal = next, info.Legal
				break
			}
			if !errors.Is(stepErr, engine.ErrIllegalAction) && !errors.Is(stepErr, engine.ErrInvalidTrade) {
				return obs, stepErr
			}
			retries++
			if retries < e.rules.RetryBudget {
				action, decideErr = agents[actor].Decide(obs, legal)
			}
		}
	}

	e.log.Info().Str("game", e.id.String()).Int("winner", obs.Winner).Int("turns", obs.Turn).Msg("game finished")
	return obs, nil
}

// defaultAction is the safe fallback per phase: never spends money, never
// acquires anything, always makes progress.
func (e *Environment) defaultAction(actor int, obs Observation) game.Action {
	switch obs.Phase {
	case game.AwaitingRoll, game.InJailDecision:
		return game.Action{Kind: game.RollDice, Player: actor}
	case game.AwaitingBuy:
		return game.Action{Kind: game.DeclineBuy, Player: actor, Position: obs.Players[actor].Position}
	case game.AuctionPhase:
		return game.Action{Kind: game.PassBid, Player: actor}
	case game.TradeResponse:
		return game.Action{Kind: game.RejectTrade, Player: actor}
	case game.DebtSettlement:
		return game.Action{Kind: game.DeclareBankruptcy, Player: actor}
	default:
		return game.Action{Kind: game.EndTurn, Player: actor}
	}
}

// observe snapshots the live state into a read-only projection.
func (e *Environment) observe() Observation {
	gs := e.eng.State()
	obs := Observation{
		GameID:          e.id.String(),
		Board:           gs.Board,
		Rules:           gs.Rules,
		Turn:            gs.Turn,
		Current:         gs.Current,
		Acting:          gs.Acting(),
		Phase:           gs.Phase,
		LastRoll:        gs.LastRoll,
		Players:         make([]PlayerView, len(gs.Players)),
		Properties:      make([]PropertyView, len(gs.Properties)),
		HousesAvailable: gs.HousesAvailable,
		HotelsAvailable: gs.HotelsAvailable,
		Winner:          gs.Winner,
	}
	for i, p := range gs.Players {
		obs.Players[i] = PlayerView{
			Name:      p.Name,
			Cash:      p.Cash,
			Position:  p.Position,
			InJail:    p.InJail,
			JailTurns: p.JailTurns,
			JailCards: len(p.JailCards),
			Bankrupt:  p.Bankrupt,
		}
	}
	for i, ps := range gs.Properties {
		obs.Properties[i] = PropertyView{Owner: ps.Owner, Improvements: ps.Improvements, Mortgaged: ps.Mortgaged}
	}
	if gs.Auction != nil {
		a := *gs.Auction
		a.Bidders = append([]int(nil), gs.Auction.Bidders...)
		obs.Auction = &a
	}
	if gs.Trade != nil {
		t := *gs.Trade
		t.PropertiesOffered = append([]int(nil), gs.Trade.PropertiesOffered...)
		t.PropertiesAsking = append([]int(nil), gs.Trade.PropertiesAsking...)
		obs.Trade = &t
	}
	if gs.Debt != nil {
		d := *gs.Debt
		obs.Debt = &d
	}
	return obs
}
