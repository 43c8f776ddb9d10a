package model

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// NameKey indexes players by display name. Several players may share a name
// (and therefore a key); the cohort label tells them apart.
type NameKey string

// KeyForName returns the index key for a display name. Hex keeps arbitrary
// league names (spaces, CJK, punctuation) safe to use in file names and
// storage keys.
func KeyForName(name string) NameKey {
	return NameKey(hex.EncodeToString([]byte(name)))
}

// DerivePlayerID computes the stable id for a (name, cohort) pair. The NUL
// separator keeps ("ab","c") and ("a","bc") distinct.
func DerivePlayerID(name, cohort string) PlayerID {
	sum := blake2b.Sum256([]byte(name + "\x00" + cohort))
	return PlayerID(hex.EncodeToString(sum[:]))
}
