package arena

import "fmt"

// Player identifies one of the two players. Player 0 is favoured by even
// priorities, player 1 by odd ones.
type Player uint8

const (
	Player0 Player = 0
	Player1 Player = 1
)

// Opponent returns the other player.
func (p Player) Opponent() Player { return 1 - p }

// String implements fmt.Stringer.
func (p Player) String() string { return fmt.Sprintf("player %d", uint8(p)) }

// ForPriority returns the player whose parity matches the non-negative
// priority p.
func ForPriority(p int) Player { return Player(p % 2) }

// Region labels the winner of a node. The zero value is Unassigned, so a
// freshly allocated label slice never claims a winner by accident.
type Region uint8

const (
	Unassigned Region = iota
	Region0
	Region1
)

// RegionOf returns the region won by p.
func RegionOf(p Player) Region { return Region(p) + 1 }

// Player returns the winning player and true, or false if r is Unassigned.
func (r Region) Player() (Player, bool) {
	if r == Unassigned {
		return 0, false
	}
	return Player(r - 1), true
}

// String implements fmt.Stringer.
func (r Region) String() string {
	switch r {
	case Region0:
		return "W0"
	case Region1:
		return "W1"
	default:
		return "unassigned"
	}
}
