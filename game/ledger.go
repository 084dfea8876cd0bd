package game

// Ledger is a running record of every cash flow between the bank and the
// players. Player-to-player transfers never touch it. The conservation
// invariant: the sum of all player cash equals the initial total plus
// BankPaid minus BankCollected at every reachable state.
type Ledger struct {
	BankPaid      int // bank -> players (salary, card credits, mortgages)
	BankCollected int // players -> bank (purchases, taxes, fines, buildings)
}

// Pay records a payout from the bank.
func (l *Ledger) Pay(amount int) { l.BankPaid += amount }

// Collect records a collection by the bank.
func (l *Ledger) Collect(amount int) { l.BankCollected += amount }

// Conserved checks the exact accounting invariant against the given initial
// total and the current sum of player cash.
func (l *Ledger) Conserved(initialTotal, currentTotal int) bool {
	return currentTotal == initialTotal+l.BankPaid-l.BankCollected
}
