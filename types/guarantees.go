package types

import (
	"fmt"
	"strings"
)

/*
Guarantee is a precondition asserted by the caller. Each asserted guarantee
removes the matching validation from the call it is passed to. Asserting a
guarantee that does not hold is a contract violation: results are undefined,
no error is reported.
*/
type Guarantee uint8

const (
	Sorted Guarantee = 1 << iota
	SufficientLength
	Monotonous
	InBounds
)

// Guarantees is the bit-set of asserted preconditions, the zero value asserts nothing.
type Guarantees uint8

const (
	None Guarantees = 0
	All             = Guarantees(Sorted | SufficientLength | Monotonous | InBounds)
)

var GuaranteeNameMap = map[string]Guarantee{
	"sorted":           Sorted,
	"sufficientlength": SufficientLength,
	"length":           SufficientLength,
	"monotonous":       Monotonous,
	"monotone":         Monotonous,
	"inbounds":         InBounds,
	"bounds":           InBounds,
}

func NewGuarantees(gs ...Guarantee) (set Guarantees) {
	for _, g := range gs {
		set |= Guarantees(g)
	}
	return
}

func (set Guarantees) Has(g Guarantee) bool {
	return set&Guarantees(g) != 0
}

// HasAll reports whether every listed guarantee is asserted
func (set Guarantees) HasAll(gs ...Guarantee) bool {
	for _, g := range gs {
		if !set.Has(g) {
			return false
		}
	}
	return true
}

func (set Guarantees) With(gs ...Guarantee) Guarantees {
	return set | NewGuarantees(gs...)
}

func (set Guarantees) Without(gs ...Guarantee) Guarantees {
	return set &^ NewGuarantees(gs...)
}

func (g Guarantee) String() string {
	switch g {
	case Sorted:
		return "Sorted"
	case SufficientLength:
		return "SufficientLength"
	case Monotonous:
		return "Monotonous"
	case InBounds:
		return "InBounds"
	}
	return fmt.Sprintf("Guarantee(%d)", uint8(g))
}

func (set Guarantees) String() string {
	var names []string
	for _, g := range []Guarantee{Sorted, SufficientLength, Monotonous, InBounds} {
		if set.Has(g) {
			names = append(names, g.String())
		}
	}
	return "[" + strings.Join(names, ",") + "]"
}

// ParseGuarantees reads guarantee names case insensitively, ignoring separators like "In-Bounds"
func ParseGuarantees(names []string) (set Guarantees, err error) {
	for _, name := range names {
		key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(name))
		g, ok := GuaranteeNameMap[key]
		if !ok {
			err = fmt.Errorf("unknown guarantee %q", name)
			return
		}
		set |= Guarantees(g)
	}
	return
}
