package vault

import (
	"encoding/binary"
	"io"
	"strings"

	"github.com/zeebo/blake3"
)

// PasswordLength is the length of every derived password.
const PasswordLength = 16

// derivePassword maps (alias, secret, charset) to a password using a BLAKE3
// keyed XOF. Bytes are rejection-sampled so every alphabet character is
// equally likely. For CharSetRequireAll the stream is read further until a
// candidate contains every class; the output stays deterministic.
func derivePassword(key *[KeySize]byte, alias, secret string, charset CharSet) string {
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("vault: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	writeField(hasher, []byte(alias))
	writeField(hasher, []byte(secret))
	hasher.Write([]byte{byte(charset)})

	alphabet := charset.alphabet()
	limit := 256 - 256%len(alphabet)
	stream := hasher.Digest()
	required := charset.classes()

	var buf [64]byte
	out := make([]byte, 0, PasswordLength)
	for {
		if _, err := io.ReadFull(stream, buf[:]); err != nil {
			panic("vault: BLAKE3 output stream failed: " + err.Error())
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) < PasswordLength {
				continue
			}
			if hasAll(out, required) {
				return string(out)
			}
			out = out[:0]
		}
	}
}

// writeField writes a length-prefixed field so ("ab","c") and ("a","bc") differ.
func writeField(h *blake3.Hasher, field []byte) {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(field)))
	h.Write(n[:])
	h.Write(field)
}

func hasAll(password []byte, classes []string) bool {
	for _, class := range classes {
		if !strings.ContainsAny(string(password), class) {
			return false
		}
	}
	return true
}
