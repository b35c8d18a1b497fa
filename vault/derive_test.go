package vault

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testKey(b byte) *[KeySize]byte {
	var k [KeySize]byte
	for i := range k {
		k[i] = b
	}
	return &k
}

func TestDerivePassword_Deterministic(t *testing.T) {
	key := testKey(7)
	a := derivePassword(key, "work", "pin", CharSetStandard)
	b := derivePassword(key, "work", "pin", CharSetStandard)
	assert.Equal(t, a, b)
	assert.Len(t, a, PasswordLength)
}

func TestDerivePassword_InputsMatter(t *testing.T) {
	key := testKey(7)
	base := derivePassword(key, "work", "", CharSetStandard)

	assert.NotEqual(t, base, derivePassword(key, "home", "", CharSetStandard))
	assert.NotEqual(t, base, derivePassword(key, "work", "pin", CharSetStandard))
	assert.NotEqual(t, base, derivePassword(key, "work", "", CharSetReduced))
	assert.NotEqual(t, base, derivePassword(testKey(8), "work", "", CharSetStandard))
}

func TestDerivePassword_FieldsAreLengthPrefixed(t *testing.T) {
	key := testKey(1)
	assert.NotEqual(t,
		derivePassword(key, "ab", "c", CharSetStandard),
		derivePassword(key, "a", "bc", CharSetStandard))
}

func TestDerivePassword_Charsets(t *testing.T) {
	key := testKey(3)
	aliases := []string{"a", "b", "c", "work", "home", "bank", "mail", "forum"}

	t.Run("reduced has no symbols", func(t *testing.T) {
		for _, alias := range aliases {
			pw := derivePassword(key, alias, "", CharSetReduced)
			assert.False(t, strings.ContainsAny(pw, symbolChars), pw)
		}
	})

	t.Run("require all has every class", func(t *testing.T) {
		for _, alias := range aliases {
			pw := derivePassword(key, alias, "", CharSetRequireAll)
			for _, class := range []string{lowerChars, upperChars, digitChars, symbolChars} {
				assert.True(t, strings.ContainsAny(pw, class), "%q lacks %q", pw, class)
			}
		}
	})
}

func TestCharSet(t *testing.T) {
	assert.Equal(t, "Standard", CharSetStandard.String())
	assert.Equal(t, "Require all", CharSetRequireAll.String())
	assert.Equal(t, "Reduced", CharSetReduced.String())
	assert.Equal(t, CharSetRequireAll, CharSetStandard.Next())
	assert.Equal(t, CharSetStandard, CharSetReduced.Next())
	assert.False(t, CharSet(9).Valid())
	assert.Panics(t, func() { _ = CharSet(9).String() })
}
