package components

import "fmt"

// ElementKind is the coarse classification used by the team index.
type ElementKind uint8

const (
	KindEmpty ElementKind = iota
	KindAnt
	KindFood
	KindHive
	KindDirt
)

// String returns the kind name.
func (k ElementKind) String() string {
	switch k {
	case KindAnt:
		return "ant"
	case KindFood:
		return "food"
	case KindHive:
		return "hive"
	case KindDirt:
		return "dirt"
	}
	return "empty"
}

// Teamed reports whether elements of this kind belong to a team.
func (k ElementKind) Teamed() bool {
	return k == KindAnt || k == KindHive
}

// Mobile reports whether elements of this kind take part in the round iteration.
func (k ElementKind) Mobile() bool {
	return k == KindAnt || k == KindHive
}

// NoTeam is the team id of teamless index keys.
const NoTeam = -1

// TeamElement is the index key: a kind plus an optional team id.
// Food, Dirt and Empty always carry NoTeam.
type TeamElement struct {
	Kind ElementKind
	Team int
}

// Key builds the index key for a kind, dropping the team for teamless kinds.
func Key(kind ElementKind, team int) TeamElement {
	if !kind.Teamed() {
		team = NoTeam
	}
	return TeamElement{Kind: kind, Team: team}
}

// HasTeam reports whether the key names a team.
func (te TeamElement) HasTeam() bool {
	return te.Team != NoTeam
}

func (te TeamElement) String() string {
	if !te.HasTeam() {
		return te.Kind.String()
	}
	return fmt.Sprintf("%s/%d", te.Kind, te.Team)
}

// FoodElement is the index key of all food piles.
var FoodElement = TeamElement{Kind: KindFood, Team: NoTeam}

// DirtElement is the index key of all dirt.
var DirtElement = TeamElement{Kind: KindDirt, Team: NoTeam}
