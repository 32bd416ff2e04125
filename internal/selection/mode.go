// Package selection filters and orders a study candidate pool
// according to the active study mode.
package selection

// Mode is the policy governing which cards are shown and in what
// order. It is a closed enumeration; free-form input is mapped through
// ParseMode at the boundary so dispatch inside the engine is total.
type Mode int

const (
	// ModeAll returns the pool in its original storage order.
	ModeAll Mode = iota
	// ModeRandom returns the pool in a fresh uniform shuffle.
	ModeRandom
	// ModeProgressive prioritizes unstudied, low-confidence, and due
	// cards.
	ModeProgressive
)

var modeNames = map[Mode]string{
	ModeAll:         "all",
	ModeRandom:      "random",
	ModeProgressive: "progressive",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "all"
}

// ParseMode maps a mode name to its Mode. Unrecognized input falls
// back to ModeAll; a permissive default, not an error.
func ParseMode(s string) Mode {
	switch s {
	case "random":
		return ModeRandom
	case "progressive":
		return ModeProgressive
	default:
		return ModeAll
	}
}
