package game

// SpaceKind identifies what kind of space a board position holds.
type SpaceKind int

const (
	Go SpaceKind = iota
	Street
	Railroad
	Utility
	Tax
	Chance
	CommunityChest
	Jail
	FreeParking
	GoToJail
)

func (k SpaceKind) String() string {
	switch k {
	case Go:
		return "Go"
	case Street:
		return "Street"
	case Railroad:
		return "Railroad"
	case Utility:
		return "Utility"
	case Tax:
		return "Tax"
	case Chance:
		return "Chance"
	case CommunityChest:
		return "CommunityChest"
	case Jail:
		return "Jail"
	case FreeParking:
		return "FreeParking"
	case GoToJail:
		return "GoToJail"
	}
	return "Unknown"
}

// IsOwnable reports whether spaces of this kind can be bought, auctioned,
// mortgaged and traded.
func (k SpaceKind) IsOwnable() bool {
	return k == Street || k == Railroad || k == Utility
}

// ColorGroup is the color set a street belongs to. Building cost is a
// property of the group, not the individual street.
type ColorGroup int

const (
	NoGroup ColorGroup = iota
	Brown
	LightBlue
	Pink
	Orange
	Red
	Yellow
	Green
	DarkBlue
)

var groupNames = map[ColorGroup]string{
	NoGroup: "None", Brown: "Brown", LightBlue: "Light Blue", Pink: "Pink",
	Orange: "Orange", Red: "Red", Yellow: "Yellow", Green: "Green", DarkBlue: "Dark Blue",
}

func (g ColorGroup) String() string { return groupNames[g] }

// HouseCost returns the per-building cost for streets in this group.
// Hotels cost the same as houses in the standard rule table.
func (g ColorGroup) HouseCost() int {
	switch g {
	case Brown, LightBlue:
		return 50
	case Pink, Orange:
		return 100
	case Red, Yellow:
		return 150
	case Green, DarkBlue:
		return 200
	}
	return 0
}

// Railroad rent by number of railroads the landlord owns (1..4).
var railroadRents = [4]int{25, 50, 100, 200}

// Utility rent multiplier on the dice total, by utilities owned (1..2).
var utilityMultipliers = [2]int{4, 10}

// Space is one immutable board position.
type Space struct {
	Position       int
	Name           string
	Kind           SpaceKind
	Group          ColorGroup
	Price          int
	MortgageValue  int
	UnmortgageCost int
	// Rent indexed by improvement level for streets: 0 = unimproved base
	// (doubled when the owner holds the full group), 1..4 = houses, 5 = hotel.
	Rent      [6]int
	TaxAmount int
	// PropertyIndex and StreetIndex are dense indices over ownable spaces
	// and streets respectively, used by the flat action encoding. -1 when
	// not applicable.
	PropertyIndex int
	StreetIndex   int
}

// Board is the static description of the 40 spaces. Read-only after
// construction.
type Board struct {
	spaces     []Space
	properties []int // positions of ownable spaces, in board order
	streets    []int // positions of streets, in board order
	groups     map[ColorGroup][]int
}

const (
	BoardSize    = 40
	JailPosition = 10

	NumProperties = 28
	NumStreets    = 22
)

func street(name string, group ColorGroup, price, mortgage, unmortgage int, rent [6]int) Space {
	return Space{Name: name, Kind: Street, Group: group, Price: price,
		MortgageValue: mortgage, UnmortgageCost: unmortgage, Rent: rent}
}

func railroad(name string) Space {
	return Space{Name: name, Kind: Railroad, Price: 200, MortgageValue: 100, UnmortgageCost: 110}
}

func utility(name string) Space {
	return Space{Name: name, Kind: Utility, Price: 150, MortgageValue: 75, UnmortgageCost: 83}
}

// NewBoard builds the standard US board.
func NewBoard() *Board {
	spaces := []Space{
		{Name: "GO", Kind: Go},
		street("Mediterranean Avenue", Brown, 60, 30, 33, [6]int{2, 10, 30, 90, 160, 250}),
		{Name: "Community Chest", Kind: CommunityChest},
		street("Baltic Avenue", Brown, 60, 30, 33, [6]int{4, 20, 60, 180, 320, 450}),
		{Name: "Income Tax", Kind: Tax, TaxAmount: 200},
		railroad("Reading Railroad"),
		street("Oriental Avenue", LightBlue, 100, 50, 55, [6]int{6, 30, 90, 270, 400, 550}),
		{Name: "Chance", Kind: Chance},
		street("Vermont Avenue", LightBlue, 100, 50, 55, [6]int{6, 30, 90, 270, 400, 550}),
		street("Connecticut Avenue", LightBlue, 120, 60, 66, [6]int{8, 40, 100, 300, 450, 600}),
		{Name: "Jail", Kind: Jail},
		street("St. Charles Place", Pink, 140, 70, 77, [6]int{10, 50, 150, 450, 625, 750}),
		utility("Electric Company"),
		street("States Avenue", Pink, 140, 70, 77, [6]int{10, 50, 150, 450, 625, 750}),
		street("Virginia Avenue", Pink, 160, 80, 88, [6]int{12, 60, 180, 500, 700, 900}),
		railroad("Pennsylvania Railroad"),
		street("St. James Place", Orange, 180, 90, 99, [6]int{14, 70, 200, 550, 750, 950}),
		{Name: "Community Chest", Kind: CommunityChest},
		street("Tennessee Avenue", Orange, 180, 90, 99, [6]int{14, 70, 200, 550, 750, 950}),
		street("New York Avenue", Orange, 200, 100, 110, [6]int{16, 80, 220, 600, 800, 1000}),
		{Name: "Free Parking", Kind: FreeParking},
		street("Kentucky Avenue", Red, 220, 110, 121, [6]int{18, 90, 250, 700, 875, 1050}),
		{Name: "Chance", Kind: Chance},
		street("Indiana Avenue", Red, 220, 110, 121, [6]int{18, 90, 250, 700, 875, 1050}),
		street("Illinois Avenue", Red, 240, 120, 132, [6]int{20, 100, 300, 750, 925, 1100}),
		railroad("B&O Railroad"),
		street("Atlantic Avenue", Yellow, 260, 130, 143, [6]int{22, 110, 330, 800, 975, 1150}),
		street("Ventnor Avenue", Yellow, 260, 130, 143, [6]int{22, 110, 330, 800, 975, 1150}),
		utility("Water Works"),
		street("Marvin Gardens", Yellow, 280, 140, 154, [6]int{24, 120, 360, 850, 1025, 1200}),
		{Name: "Go To Jail", Kind: GoToJail},
		street("Pacific Avenue", Green, 300, 150, 165, [6]int{26, 130, 390, 900, 1100, 1275}),
		street("North Carolina Avenue", Green, 300, 150, 165, [6]int{26, 130, 390, 900, 1100, 1275}),
		{Name: "Community Chest", Kind: CommunityChest},
		street("Pennsylvania Avenue", Green, 320, 160, 176, [6]int{28, 150, 450, 1000, 1200, 1400}),
		railroad("Short Line"),
		{Name: "Chance", Kind: Chance},
		street("Park Place", DarkBlue, 350, 175, 193, [6]int{35, 175, 500, 1100, 1300, 1500}),
		{Name: "Luxury Tax", Kind: Tax, TaxAmount: 100},
		street("Boardwalk", DarkBlue, 400, 200, 220, [6]int{50, 200, 600, 1400, 1700, 2000}),
	}

	b := &Board{spaces: spaces, groups: make(map[ColorGroup][]int)}
	for i := range b.spaces {
		s := &b.spaces[i]
		s.Position = i
		s.PropertyIndex = -1
		s.StreetIndex = -1
		if s.Kind.IsOwnable() {
			s.PropertyIndex = len(b.properties)
			b.properties = append(b.properties, i)
		}
		if s.Kind == Street {
			s.StreetIndex = len(b.streets)
			b.streets = append(b.streets, i)
			b.groups[s.Group] = append(b.groups[s.Group], i)
		}
	}
	return b
}

// Space returns the space at position. Out-of-range positions are a
// programming error.
func (b *Board) Space(position int) *Space {
	if position < 0 || position >= len(b.spaces) {
		panic("board: position out of range")
	}
	return &b.spaces[position]
}

func (b *Board) Len() int { return len(b.spaces) }

// Properties returns the positions of all ownable spaces in board order.
func (b *Board) Properties() []int { return b.properties }

// Streets returns the positions of all streets in board order.
func (b *Board) Streets() []int { return b.streets }

// PropertyAt maps a dense property index back to a board position.
func (b *Board) PropertyAt(propertyIndex int) int { return b.properties[propertyIndex] }

// StreetAt maps a dense street index back to a board position.
func (b *Board) StreetAt(streetIndex int) int { return b.streets[streetIndex] }

// GroupMembers returns the positions of all streets in a color group.
func (b *Board) GroupMembers(group ColorGroup) []int { return b.groups[group] }

// NearestSpace returns the position of the next space of the given kind,
// walking forward (and wrapping) from the given position.
func (b *Board) NearestSpace(from int, kind SpaceKind) int {
	for offset := 1; offset <= len(b.spaces); offset++ {
		next := (from + offset) % len(b.spaces)
		if b.spaces[next].Kind == kind {
			return next
		}
	}
	return from
}

// StreetRent returns the rent for a street at the given improvement level.
// An unimproved street earns double base rent when the owner holds the full
// color group.
func (b *Board) StreetRent(position, level int, fullGroup bool) int {
	s := b.Space(position)
	if s.Kind != Street {
		panic("board: StreetRent on non-street")
	}
	if level == 0 {
		if fullGroup {
			return 2 * s.Rent[0]
		}
		return s.Rent[0]
	}
	return s.Rent[level]
}

// RailroadRent returns the rent owed for landing on a railroad whose owner
// holds the given number of railroads.
func (b *Board) RailroadRent(railroadsOwned int) int {
	return railroadRents[railroadsOwned-1]
}

// UtilityRent returns the rent owed for a utility landing given the dice
// total and the landlord's utility count.
func (b *Board) UtilityRent(utilitiesOwned, diceTotal int) int {
	return utilityMultipliers[utilitiesOwned-1] * diceTotal
}
