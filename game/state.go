package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"golang.org/x/exp/rand"
)

// Phase is the current decision point of the turn state machine. Movement,
// landing resolution and turn handover run to completion inside the engine
// and are never observed as a suspended phase.
type Phase int

const (
	AwaitingRoll Phase = iota
	InJailDecision
	AwaitingBuy
	AuctionPhase
	PostMove
	TradeResponse
	DebtSettlement
	Terminal
)

var phaseNames = [...]string{
	"AwaitingRoll", "InJailDecision", "AwaitingBuy", "Auction",
	"PostMove", "TradeResponse", "DebtSettlement", "Terminal",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Player holds one player's dynamic state. Bankrupt players stay in the
// sequence (turn order is fixed at game start) but are skipped.
type Player struct {
	ID        int
	Name      string
	Cash      int
	Position  int
	InJail    bool
	JailTurns int    // failed escape rolls this jailing
	JailCards []Card // kept get-out-of-jail-free cards
	Bankrupt  bool
}

// PropertyState is the mutable state of one ownable space.
type PropertyState struct {
	Owner        int // player ID, -1 unowned
	Improvements int // 0..5, 5 = hotel
	Mortgaged    bool
}

// AuctionContext is the pending state of a declined-buy auction.
type AuctionContext struct {
	Position   int
	Bidders    []int // active bidder IDs, bid order
	Turn       int   // index into Bidders of whoever must bid or pass
	HighBid    int
	HighBidder int // -1 until the first bid
}

// Bidder returns the ID of the player whose bid/pass decision is pending.
func (a *AuctionContext) Bidder() int { return a.Bidders[a.Turn] }

// DebtResume says what the engine continues with once a debt is settled.
type DebtResume int

const (
	ResumeTurn        DebtResume = iota // continue to post-move / end of turn
	ResumeJailRelease                   // forced fine paid: move by the stored roll
)

// DebtContext is the pending state of an unmet cash obligation. The
// obligation is held open (cash is not driven negative); the debtor must
// liquidate until Cash >= Amount or declare bankruptcy.
type DebtContext struct {
	Debtor   int
	Creditor int // -1 when the bank is the creditor
	Amount   int
	Resume   DebtResume
}

// GameState is the single source of truth for one game instance. It is
// mutated exclusively by the engine.
type GameState struct {
	Board *Board
	Rules Rules

	Players    []*Player
	Properties []PropertyState // indexed by board position

	Current      int // current turn player index
	Phase        Phase
	Turn         int
	DoublesCount int
	LastRoll     [2]int

	HousesAvailable int
	HotelsAvailable int

	Chance         *Deck
	CommunityChest *Deck

	Auction *AuctionContext
	Trade   *TradeOffer
	Debt    *DebtContext
	// DebtQueue holds further unmet obligations behind Debt, e.g. when a
	// card charges one player per opponent and the cash runs out partway.
	DebtQueue []DebtContext

	Ledger Ledger
	Winner int // player ID, -1 while the game runs or on a turn-limit draw

	Seed uint64
	rng  *rand.Rand
}

// StateHash identifies a state for replay and debugging.
type StateHash uint64

// NewGameState builds a fresh game for the named players. All randomness
// (dice, deck order) derives from the given seed.
func NewGameState(board *Board, rules Rules, names []string, seed uint64) *GameState {
	if len(names) < 2 {
		panic("game: need at least two players")
	}
	gs := &GameState{
		Board:           board,
		Rules:           rules,
		Properties:      make([]PropertyState, board.Len()),
		Phase:           AwaitingRoll,
		HousesAvailable: rules.Houses,
		HotelsAvailable: rules.Hotels,
		Chance:          NewChanceDeck(),
		CommunityChest:  NewCommunityChestDeck(),
		Winner:          -1,
		Seed:            seed,
		rng:             rand.New(rand.NewSource(seed)),
	}
	for i := range gs.Properties {
		gs.Properties[i].Owner = -1
	}
	for i, name := range names {
		gs.Players = append(gs.Players, &Player{ID: i, Name: name, Cash: rules.StartingCash})
	}
	gs.Chance.Shuffle(gs.rng)
	gs.CommunityChest.Shuffle(gs.rng)
	return gs
}

// RollDice rolls two dice from the game RNG.
func (gs *GameState) RollDice() (int, int) {
	d1 := int(gs.rng.Intn(6)) + 1
	d2 := int(gs.rng.Intn(6)) + 1
	gs.LastRoll = [2]int{d1, d2}
	return d1, d2
}

// CurrentPlayer returns the player whose turn it is. During auctions, trade
// responses and debt settlement the acting player may differ; see Acting.
func (gs *GameState) CurrentPlayer() *Player {
	return gs.Players[gs.Current]
}

// Acting returns the ID of the player whose decision is outstanding.
func (gs *GameState) Acting() int {
	switch gs.Phase {
	case AuctionPhase:
		return gs.Auction.Bidder()
	case TradeResponse:
		return gs.Trade.Responder
	case DebtSettlement:
		return gs.Debt.Debtor
	default:
		return gs.Current
	}
}

// ActivePlayers returns the number of non-bankrupt players.
func (gs *GameState) ActivePlayers() int {
	n := 0
	for _, p := range gs.Players {
		if !p.Bankrupt {
			n++
		}
	}
	return n
}

// NextActivePlayer returns the next non-bankrupt player index after from.
func (gs *GameState) NextActivePlayer(from int) int {
	for i := 1; i <= len(gs.Players); i++ {
		next := (from + i) % len(gs.Players)
		if !gs.Players[next].Bankrupt {
			return next
		}
	}
	return from
}

// Deck returns the deck of the given kind.
func (gs *GameState) Deck(kind DeckKind) *Deck {
	if kind == ChanceDeck {
		return gs.Chance
	}
	return gs.CommunityChest
}

// OwnedPositions returns the board positions owned by a player, in board
// order.
func (gs *GameState) OwnedPositions(player int) []int {
	var owned []int
	for _, pos := range gs.Board.Properties() {
		if gs.Properties[pos].Owner == player {
			owned = append(owned, pos)
		}
	}
	return owned
}

// CountOwnedKind counts how many spaces of a kind the player owns.
func (gs *GameState) CountOwnedKind(player int, kind SpaceKind) int {
	n := 0
	for _, pos := range gs.Board.Properties() {
		if gs.Board.Space(pos).Kind == kind && gs.Properties[pos].Owner == player {
			n++
		}
	}
	return n
}

// OwnsFullGroup reports whether the player owns every street in the group.
func (gs *GameState) OwnsFullGroup(player int, group ColorGroup) bool {
	members := gs.Board.GroupMembers(group)
	if len(members) == 0 {
		return false
	}
	for _, pos := range members {
		if gs.Properties[pos].Owner != player {
			return false
		}
	}
	return true
}

// RentOwed computes the rent for landing on an owned property. Mortgaged
// properties collect nothing. diceTotal matters only for utilities.
func (gs *GameState) RentOwed(position, diceTotal int) int {
	ps := &gs.Properties[position]
	if ps.Owner < 0 || ps.Mortgaged {
		return 0
	}
	space := gs.Board.Space(position)
	switch space.Kind {
	case Street:
		return gs.Board.StreetRent(position, ps.Improvements, gs.OwnsFullGroup(ps.Owner, space.Group))
	case Railroad:
		return gs.Board.RailroadRent(gs.CountOwnedKind(ps.Owner, Railroad))
	case Utility:
		return gs.Board.UtilityRent(gs.CountOwnedKind(ps.Owner, Utility), diceTotal)
	}
	return 0
}

// CanBuild reports whether the player may add one improvement level on the
// street: full group owned, nothing in the group mortgaged, below hotel,
// stock available, and the even-building rule (the target must be among the
// least-improved members of its group).
func (gs *GameState) CanBuild(player, position int) bool {
	space := gs.Board.Space(position)
	if space.Kind != Street {
		return false
	}
	ps := &gs.Properties[position]
	if ps.Owner != player || ps.Improvements >= 5 {
		return false
	}
	if !gs.OwnsFullGroup(player, space.Group) {
		return false
	}
	for _, pos := range gs.Board.GroupMembers(space.Group) {
		other := &gs.Properties[pos]
		if other.Mortgaged {
			return false
		}
		if other.Improvements < ps.Improvements {
			return false // must build up the least-improved member first
		}
	}
	if ps.Improvements == 4 {
		return gs.HotelsAvailable > 0
	}
	return gs.HousesAvailable > 0
}

// CanSellImprovement reports whether one improvement level can come off the
// street: must hold at least one and be among the most-improved members of
// its group (even-selling). Breaking a hotel back into four houses needs
// house stock.
func (gs *GameState) CanSellImprovement(player, position int) bool {
	space := gs.Board.Space(position)
	if space.Kind != Street {
		return false
	}
	ps := &gs.Properties[position]
	if ps.Owner != player || ps.Improvements == 0 {
		return false
	}
	for _, pos := range gs.Board.GroupMembers(space.Group) {
		if gs.Properties[pos].Improvements > ps.Improvements {
			return false
		}
	}
	if ps.Improvements == 5 {
		return gs.HousesAvailable >= 4
	}
	return true
}

// CanMortgage reports whether the property can be mortgaged: owned,
// unmortgaged, and (for streets) no improvements anywhere in its group.
func (gs *GameState) CanMortgage(player, position int) bool {
	space := gs.Board.Space(position)
	if !space.Kind.IsOwnable() {
		return false
	}
	ps := &gs.Properties[position]
	if ps.Owner != player || ps.Mortgaged {
		return false
	}
	if space.Kind == Street {
		for _, pos := range gs.Board.GroupMembers(space.Group) {
			if gs.Properties[pos].Improvements > 0 {
				return false
			}
		}
	}
	return true
}

// CanUnmortgage reports whether the player can lift the mortgage now.
func (gs *GameState) CanUnmortgage(player, position int) bool {
	space := gs.Board.Space(position)
	if !space.Kind.IsOwnable() {
		return false
	}
	ps := &gs.Properties[position]
	return ps.Owner == player && ps.Mortgaged && gs.Players[player].Cash >= space.UnmortgageCost
}

// LiquidationValue is the cash the player could still raise by selling
// every improvement at half cost and mortgaging every unmortgaged deed.
func (gs *GameState) LiquidationValue(player int) int {
	total := 0
	for _, pos := range gs.OwnedPositions(player) {
		space := gs.Board.Space(pos)
		ps := &gs.Properties[pos]
		total += ps.Improvements * space.Group.HouseCost() / 2
		if !ps.Mortgaged {
			total += space.MortgageValue
		}
	}
	return total
}

// TotalCash sums all player cash, for the conservation invariant.
func (gs *GameState) TotalCash() int {
	total := 0
	for _, p := range gs.Players {
		total += p.Cash
	}
	return total
}

// ImprovementCounts returns the player's total houses and hotels on board.
func (gs *GameState) ImprovementCounts(player int) (houses, hotels int) {
	for _, pos := range gs.Board.Streets() {
		ps := &gs.Properties[pos]
		if ps.Owner != player {
			continue
		}
		if ps.Improvements == 5 {
			hotels++
		} else {
			houses += ps.Improvements
		}
	}
	return houses, hotels
}

// Copy deep-copies the dynamic state. The board is immutable and shared.
// The RNG is re-seeded from the original seed, so a copy is a snapshot for
// observation, not a fork of the random stream.
func (gs *GameState) Copy() *GameState {
	players := make([]*Player, len(gs.Players))
	for i, p := range gs.Players {
		cp := *p
		cp.JailCards = append([]Card(nil), p.JailCards...)
		players[i] = &cp
	}
	props := make([]PropertyState, len(gs.Properties))
	copy(props, gs.Properties)

	cp := *gs
	cp.Players = players
	cp.Properties = props
	if gs.Auction != nil {
		a := *gs.Auction
		a.Bidders = append([]int(nil), gs.Auction.Bidders...)
		cp.Auction = &a
	}
	if gs.Trade != nil {
		t := *gs.Trade
		t.PropertiesOffered = append([]int(nil), gs.Trade.PropertiesOffered...)
		t.PropertiesAsking = append([]int(nil), gs.Trade.PropertiesAsking...)
		cp.Trade = &t
	}
	if gs.Debt != nil {
		d := *gs.Debt
		cp.Debt = &d
	}
	cp.DebtQueue = append([]DebtContext(nil), gs.DebtQueue...)
	chance := *gs.Chance
	chance.cards = append([]Card(nil), gs.Chance.cards...)
	cp.Chance = &chance
	community := *gs.CommunityChest
	community.cards = append([]Card(nil), gs.CommunityChest.cards...)
	cp.CommunityChest = &community
	cp.rng = rand.New(rand.NewSource(gs.Seed))
	return &cp
}

// Hash folds the decision-relevant state into a 64-bit identity.
func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()
	write := func(v int64) {
		binary.Write(hasher, binary.LittleEndian, v)
	}
	write(int64(gs.Current))
	write(int64(gs.Phase))
	write(int64(gs.Turn))
	write(int64(gs.DoublesCount))
	for _, p := range gs.Players {
		write(int64(p.Cash))
		write(int64(p.Position))
		bits := int64(0)
		if p.InJail {
			bits |= 1
		}
		if p.Bankrupt {
			bits |= 2
		}
		write(bits)
		write(int64(p.JailTurns))
		write(int64(len(p.JailCards)))
	}
	for i := range gs.Properties {
		ps := &gs.Properties[i]
		write(int64(ps.Owner))
		write(int64(ps.Improvements))
		if ps.Mortgaged {
			write(1)
		} else {
			write(0)
		}
	}
	return StateHash(hasher.Sum64())
}
