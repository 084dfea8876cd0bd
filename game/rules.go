package game

// Rules is the standard rule table. Fields are plain values so tests can
// override individual rules.
type Rules struct {
	StartingCash int
	GoSalary     int
	JailFine     int
	MaxJailTurns int // failed escape rolls before the fine is forced
	DoublesLimit int // consecutive doubles before jailing
	Houses       int // total house stock
	Hotels       int // total hotel stock
	MinBid       int // opening auction bid
	MaxTurns     int // turn counter bound before the game is called
	RetryBudget  int // illegal attempts before an agent is auto-resolved
}

// StandardRules returns the standard US rule set.
func StandardRules() Rules {
	return Rules{
		StartingCash: 1500,
		GoSalary:     200,
		JailFine:     50,
		MaxJailTurns: 3,
		DoublesLimit: 3,
		Houses:       32,
		Hotels:       12,
		MinBid:       1,
		MaxTurns:     300,
		RetryBudget:  3,
	}
}
