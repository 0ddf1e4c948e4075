package scripttype

import (
	"encoding/binary"

	spooky "github.com/dgryski/go-spooky"
)

// rehash combines several hashes into one
func rehash(x ...uint64) uint64 {
	var h uint64
	b := make([]byte, 8)
	for _, xi := range x {
		binary.LittleEndian.PutUint64(b, xi)
		h = spooky.Hash64Seed(b, h)
	}
	return h
}

// rehashString combines a hash with the hash of a string
func rehashString(x uint64, s string) uint64 {
	return spooky.Hash64Seed([]byte(s), x)
}

// These constants ensure that the hash of each type is repeatable but unique.
// The numbers are randomly generated.
const (
	saltBool      = 5461283906417
	saltInt       = 8013672550952
	saltFloat     = 3390854192733
	saltStr       = 9127465301878
	saltNone      = 2684397151460
	saltTensor    = 7850214936529
	saltList      = 1946082735514
	saltDict      = 6523901847265
	saltOptional  = 3071956428184
	saltFunction  = 8894236015747
	saltInterface = 4415709268351
)
