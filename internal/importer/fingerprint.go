package importer

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Fingerprint derives the duplicate-detection key for a row from its source,
// issue text and compacted proposed tags. Inputs are trimmed and NFC
// normalized so visually identical text from different exports matches.
// Every field is length-prefixed, so no field content can imitate a
// boundary between fields.
func Fingerprint(source, issue string, proposed []string) string {
	h := sha256.New()
	writeField(h, canonical(source))
	writeField(h, canonical(issue))
	writeLength(h, len(proposed))
	for _, tag := range proposed {
		writeField(h, canonical(tag))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeField(h hash.Hash, value string) {
	writeLength(h, len(value))
	h.Write([]byte(value))
}

func writeLength(h hash.Hash, n int) {
	var buf [binary.MaxVarintLen64]byte
	h.Write(buf[:binary.PutUvarint(buf[:], uint64(n))])
}

func canonical(value string) string {
	return norm.NFC.String(strings.TrimSpace(value))
}
