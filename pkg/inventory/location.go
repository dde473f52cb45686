package inventory

import "fmt"

// LocationKind distinguishes the two container families.
type LocationKind int

const (
	Rigid LocationKind = iota + 1
	Flex
)

// Location points at one slot of a rigid container or one position of a
// flex container. Locations are comparable values.
type Location struct {
	Kind      LocationKind
	Container ItemID
	Index     int
}

// RigidAt returns the location of slot ix in rigid container c.
func RigidAt(c ItemID, ix int) Location {
	return Location{Kind: Rigid, Container: c, Index: ix}
}

// FlexAt returns the location of position ix in flex container c.
func FlexAt(c ItemID, ix int) Location {
	return Location{Kind: Flex, Container: c, Index: ix}
}

func (l Location) String() string {
	switch l.Kind {
	case Rigid:
		return fmt.Sprintf("rigid(%d)[%d]", l.Container, l.Index)
	case Flex:
		return fmt.Sprintf("flex(%d)[%d]", l.Container, l.Index)
	default:
		return "nowhere"
	}
}
