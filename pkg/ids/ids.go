// Package ids centralizes entity identifier handling. The server store uses
// 24-hex ObjectId-shaped identifiers; records created purely client-side use
// "local-" prefixed synthetic identifiers. Every comparison in the codebase
// goes through Equal so the two shapes (and accidental numeric ids coming
// from old snapshots) compare consistently.
package ids

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const LocalPrefix = "local-"

// New returns a 24-hex identifier: 4 bytes of big-endian unix time followed
// by 8 random bytes, matching the shape the store expects.
func New() string {
	var b [12]byte
	binary.BigEndian.PutUint32(b[:4], uint32(time.Now().Unix()))
	if _, err := rand.Read(b[4:]); err != nil {
		// crypto/rand failing is unrecoverable for id generation
		panic(fmt.Sprintf("ids: rand read: %v", err))
	}
	return hex.EncodeToString(b[:])
}

// NewLocal returns a synthetic identifier for records that exist only in the
// local store. Time-based so ids sort roughly by creation, with a uuid
// fragment to avoid collisions within the same millisecond.
func NewLocal() string {
	return fmt.Sprintf("%s%d-%s", LocalPrefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}

// Normalize maps any id representation to its canonical comparable form.
func Normalize(id any) string {
	return strings.TrimSpace(fmt.Sprint(id))
}

// Equal reports whether two ids refer to the same record, tolerant of
// numeric vs string representations and of hex-digit casing.
func Equal(a, b any) bool {
	na, nb := Normalize(a), Normalize(b)
	return na != "" && strings.EqualFold(na, nb)
}

// IsHex reports whether id is a syntactically valid store identifier.
func IsHex(id string) bool {
	id = Normalize(id)
	if len(id) != 24 {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}

// IsLocal reports whether id is a client-synthesized identifier.
func IsLocal(id string) bool {
	return strings.HasPrefix(Normalize(id), LocalPrefix)
}
