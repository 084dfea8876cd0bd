package game

import (
	"fmt"
	"strings"
)

// ActionKind represents the type of action a player can perform.
type ActionKind int

const (
	RollDice ActionKind = iota
	BuyProperty
	DeclineBuy
	Bid
	PassBid
	UseJailCard
	PayJailFine
	BuildImprovement
	SellImprovement
	Mortgage
	Unmortgage
	ProposeTrade
	AcceptTrade
	RejectTrade
	DeclareBankruptcy
	EndTurn

	NumActionKinds = int(EndTurn) + 1
)

var actionKindNames = [...]string{
	"RollDice", "BuyProperty", "DeclineBuy", "Bid", "PassBid",
	"UseJailCard", "PayJailFine", "BuildImprovement", "SellImprovement",
	"Mortgage", "Unmortgage", "ProposeTrade", "AcceptTrade", "RejectTrade",
	"DeclareBankruptcy", "EndTurn",
}

func (k ActionKind) String() string {
	if int(k) < len(actionKindNames) {
		return actionKindNames[k]
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// TradeOffer is an asset bundle exchange proposed by one player to another.
// Properties are referenced by board position.
type TradeOffer struct {
	Proposer  int
	Responder int

	CashOffered       int
	PropertiesOffered []int
	JailCardsOffered  int

	CashAsking       int
	PropertiesAsking []int
	JailCardsAsking  int
}

// Action is a discriminated union over ActionKind. Position carries the
// property parameter for build/sell/mortgage/unmortgage, Amount the bid
// amount, Trade the trade offer. Unused fields are zero.
type Action struct {
	Kind     ActionKind
	Player   int
	Position int
	Amount   int
	Trade    *TradeOffer
}

// Equal reports whether two actions are the same move. Used by the engine
// to check a proposed action against the legal set.
func (a Action) Equal(b Action) bool {
	if a.Kind != b.Kind || a.Player != b.Player || a.Position != b.Position || a.Amount != b.Amount {
		return false
	}
	if (a.Trade == nil) != (b.Trade == nil) {
		return false
	}
	if a.Trade != nil {
		if a.Trade.Proposer != b.Trade.Proposer || a.Trade.Responder != b.Trade.Responder ||
			a.Trade.CashOffered != b.Trade.CashOffered || a.Trade.CashAsking != b.Trade.CashAsking ||
			a.Trade.JailCardsOffered != b.Trade.JailCardsOffered || a.Trade.JailCardsAsking != b.Trade.JailCardsAsking ||
			!equalInts(a.Trade.PropertiesOffered, b.Trade.PropertiesOffered) ||
			!equalInts(a.Trade.PropertiesAsking, b.Trade.PropertiesAsking) {
			return false
		}
	}
	return true
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String renders a compact game-notation form, e.g. "P1 B@7:$100".
func (a Action) String() string {
	p := fmt.Sprintf("P%d", a.Player+1)
	switch a.Kind {
	case RollDice:
		return p + " ROLL"
	case BuyProperty:
		return fmt.Sprintf("%s B@%d", p, a.Position)
	case DeclineBuy:
		return fmt.Sprintf("%s AU@%d", p, a.Position)
	case Bid:
		return fmt.Sprintf("%s.$%d", p, a.Amount)
	case PassBid:
		return p + ".F"
	case UseJailCard:
		return p + " GOOJF"
	case PayJailFine:
		return fmt.Sprintf("%s P$%d", p, a.Amount)
	case BuildImprovement:
		return fmt.Sprintf("%s H@%d", p, a.Position)
	case SellImprovement:
		return fmt.Sprintf("%s SH@%d", p, a.Position)
	case Mortgage:
		return fmt.Sprintf("%s MG@%d", p, a.Position)
	case Unmortgage:
		return fmt.Sprintf("%s UM@%d", p, a.Position)
	case ProposeTrade:
		if a.Trade == nil {
			return p + " T(?)"
		}
		var give, get []string
		for _, pos := range a.Trade.PropertiesOffered {
			give = append(give, fmt.Sprintf("@%d", pos))
		}
		if a.Trade.CashOffered > 0 {
			give = append(give, fmt.Sprintf("$%d", a.Trade.CashOffered))
		}
		for _, pos := range a.Trade.PropertiesAsking {
			get = append(get, fmt.Sprintf("@%d", pos))
		}
		if a.Trade.CashAsking > 0 {
			get = append(get, fmt.Sprintf("$%d", a.Trade.CashAsking))
		}
		givePart, getPart := "0", "0"
		if len(give) > 0 {
			givePart = strings.Join(give, "+")
		}
		if len(get) > 0 {
			getPart = strings.Join(get, "+")
		}
		return fmt.Sprintf("%s T(>P%d:%s;%s)", p, a.Trade.Responder+1, givePart, getPart)
	case AcceptTrade:
		return p + " ACCEPT"
	case RejectTrade:
		return p + " REJECT"
	case DeclareBankruptcy:
		return p + " BANKRUPT"
	case EndTurn:
		return p + " ENDTURN"
	}
	return p + " ?"
}
