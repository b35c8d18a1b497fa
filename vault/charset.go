package vault

import "fmt"

// CharSet selects which character classes a derived password is drawn from.
type CharSet uint8

const (
	// CharSetStandard draws from letters, digits and symbols.
	CharSetStandard CharSet = iota
	// CharSetRequireAll draws from the standard alphabet and guarantees at
	// least one character of every class.
	CharSetRequireAll
	// CharSetReduced draws from letters and digits only, for sites that
	// reject symbols.
	CharSetReduced
)

// CharSets lists every valid CharSet in display order.
var CharSets = []CharSet{CharSetStandard, CharSetRequireAll, CharSetReduced}

const (
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars  = "0123456789"
	symbolChars = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// Valid reports whether c is one of the defined charsets.
func (c CharSet) Valid() bool {
	return c <= CharSetReduced
}

func (c CharSet) String() string {
	switch c {
	case CharSetStandard:
		return "Standard"
	case CharSetRequireAll:
		return "Require all"
	case CharSetReduced:
		return "Reduced"
	default:
		panic(fmt.Sprintf("vault: invalid charset %d", uint8(c)))
	}
}

// Next returns the charset after c, wrapping around.
func (c CharSet) Next() CharSet {
	return CharSets[(int(c)+1)%len(CharSets)]
}

func (c CharSet) alphabet() string {
	switch c {
	case CharSetStandard, CharSetRequireAll:
		return lowerChars + upperChars + digitChars + symbolChars
	case CharSetReduced:
		return lowerChars + upperChars + digitChars
	default:
		panic(fmt.Sprintf("vault: invalid charset %d", uint8(c)))
	}
}

// classes returns the character classes every password must contain.
func (c CharSet) classes() []string {
	if c == CharSetRequireAll {
		return []string{lowerChars, upperChars, digitChars, symbolChars}
	}
	return nil
}
