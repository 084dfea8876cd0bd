package game

import "golang.org/x/exp/rand"

// DeckKind identifies which deck a card belongs to, so keep cards can be
// returned to the right deck.
type DeckKind int

const (
	ChanceDeck DeckKind = iota
	CommunityChestDeck
)

func (d DeckKind) String() string {
	if d == ChanceDeck {
		return "Chance"
	}
	return "Community Chest"
}

// EffectKind is the discriminated card effect tag.
type EffectKind int

const (
	EffectAdvanceTo        EffectKind = iota // move to Target, salary on passing GO
	EffectAdvanceToNearest                   // move forward to nearest TargetKind
	EffectGoBack                             // move back Amount spaces
	EffectCollect                            // bank pays Amount
	EffectPay                                // pay Amount to bank
	EffectCollectFromEach                    // every other player pays Amount
	EffectPayEach                            // pay Amount to every other player
	EffectRepairs                            // pay PerHouse/PerHotel to bank
	EffectGoToJail
	EffectJailFree // keep card, leaves the deck until used
)

// Card is one chance or community chest card.
type Card struct {
	ID       int
	Deck     DeckKind
	Text     string
	Kind     EffectKind
	Amount   int
	PerHouse int
	PerHotel int
	Target   int
	// TargetKind is the space kind sought by EffectAdvanceToNearest.
	// Nearest-railroad cards charge double rent; nearest-utility cards
	// charge ten times a fresh roll.
	TargetKind SpaceKind
}

// Deck is an ordered card sequence. Drawing rotates the drawn card to the
// bottom, except keep cards which leave the deck until returned.
type Deck struct {
	kind  DeckKind
	cards []Card
}

func (d *Deck) Kind() DeckKind { return d.kind }

func (d *Deck) Len() int { return len(d.cards) }

// Shuffle randomizes the deck order using the game RNG.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes the top card. Non-keep cards rotate to the bottom
// immediately; a JailFree card stays out until Return is called.
func (d *Deck) Draw() Card {
	card := d.cards[0]
	d.cards = d.cards[1:]
	if card.Kind != EffectJailFree {
		d.cards = append(d.cards, card)
	}
	return card
}

// Return puts a keep card back on the bottom of the deck.
func (d *Deck) Return(card Card) {
	d.cards = append(d.cards, card)
}

// Peek returns the top card without drawing it.
func (d *Deck) Peek() Card { return d.cards[0] }

// NewChanceDeck builds the standard 16-card chance deck in canonical order.
func NewChanceDeck() *Deck {
	cards := []Card{
		{ID: 1, Text: "Advance to Go (Collect $200).", Kind: EffectAdvanceTo, Target: 0},
		{ID: 2, Text: "Advance to Illinois Avenue. If you pass Go, collect $200.", Kind: EffectAdvanceTo, Target: 24},
		{ID: 3, Text: "Advance to St. Charles Place. If you pass Go, collect $200.", Kind: EffectAdvanceTo, Target: 11},
		{ID: 4, Text: "Advance token to the nearest Utility. If unowned, you may buy it from the Bank.", Kind: EffectAdvanceToNearest, TargetKind: Utility},
		{ID: 5, Text: "Advance token to the nearest Railroad and pay owner twice the rental to which they are otherwise entitled.", Kind: EffectAdvanceToNearest, TargetKind: Railroad},
		{ID: 6, Text: "Bank pays you dividend of $50.", Kind: EffectCollect, Amount: 50},
		{ID: 7, Text: "Get Out of Jail Free. This card may be kept until needed, or traded/sold.", Kind: EffectJailFree},
		{ID: 8, Text: "Go Back 3 Spaces.", Kind: EffectGoBack, Amount: 3},
		{ID: 9, Text: "Go to Jail. Go directly to jail, do not pass Go, do not collect $200.", Kind: EffectGoToJail},
		{ID: 10, Text: "Make general repairs on all your property: For each house pay $25, for each hotel pay $100.", Kind: EffectRepairs, PerHouse: 25, PerHotel: 100},
		{ID: 11, Text: "Pay poor tax of $15.", Kind: EffectPay, Amount: 15},
		{ID: 12, Text: "Take a trip to Reading Railroad. If you pass Go, collect $200.", Kind: EffectAdvanceTo, Target: 5},
		{ID: 13, Text: "Take a walk on the Boardwalk. Advance token to Boardwalk.", Kind: EffectAdvanceTo, Target: 39},
		{ID: 14, Text: "You have been elected Chairman of the Board. Pay each player $50.", Kind: EffectPayEach, Amount: 50},
		{ID: 15, Text: "Your building loan matures. Collect $150.", Kind: EffectCollect, Amount: 150},
		{ID: 16, Text: "Receive for services $25.", Kind: EffectCollect, Amount: 25},
	}
	for i := range cards {
		cards[i].Deck = ChanceDeck
	}
	return &Deck{kind: ChanceDeck, cards: cards}
}

// NewCommunityChestDeck builds the standard 16-card community chest deck.
func NewCommunityChestDeck() *Deck {
	cards := []Card{
		{ID: 1, Text: "Advance to Go (Collect $200).", Kind: EffectAdvanceTo, Target: 0},
		{ID: 2, Text: "Bank error in your favor. Collect $200.", Kind: EffectCollect, Amount: 200},
		{ID: 3, Text: "Doctor's fees. Pay $50.", Kind: EffectPay, Amount: 50},
		{ID: 4, Text: "From sale of stock you get $50.", Kind: EffectCollect, Amount: 50},
		{ID: 5, Text: "Get Out of Jail Free. This card may be kept until needed, or traded/sold.", Kind: EffectJailFree},
		{ID: 6, Text: "Go to Jail. Go directly to jail, do not pass Go, do not collect $200.", Kind: EffectGoToJail},
		{ID: 7, Text: "Grand Opera Night. Collect $50 from every player for opening night seats.", Kind: EffectCollectFromEach, Amount: 50},
		{ID: 8, Text: "Holiday Fund matures. Receive $100.", Kind: EffectCollect, Amount: 100},
		{ID: 9, Text: "Income tax refund. Collect $20.", Kind: EffectCollect, Amount: 20},
		{ID: 10, Text: "It is your birthday. Collect $10 from every player.", Kind: EffectCollectFromEach, Amount: 10},
		{ID: 11, Text: "Life insurance matures. Collect $100.", Kind: EffectCollect, Amount: 100},
		{ID: 12, Text: "Pay hospital fees of $100.", Kind: EffectPay, Amount: 100},
		{ID: 13, Text: "Pay school fees of $150.", Kind: EffectPay, Amount: 150},
		{ID: 14, Text: "Receive $25 consultancy fee.", Kind: EffectCollect, Amount: 25},
		{ID: 15, Text: "You inherit $100.", Kind: EffectCollect, Amount: 100},
		{ID: 16, Text: "You are assessed for street repairs: Pay $40 per house and $115 per hotel.", Kind: EffectRepairs, PerHouse: 40, PerHotel: 115},
	}
	for i := range cards {
		cards[i].Deck = CommunityChestDeck
	}
	return &Deck{kind: CommunityChestDeck, cards: cards}
}
