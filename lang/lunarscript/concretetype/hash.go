package concretetype

import (
	"encoding/binary"
	"sort"
	"unsafe"

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

// These constants ensure that the hash of each snapshot field is repeatable
// but unique. The numbers are randomly generated.
const (
	saltOrigin    = 7093154862091
	saltPoisoned  = 1824049375166
	saltConstant  = 5530281936472
	saltAttribute = 9148503267910
	saltOverload  = 3369871250438
	saltFunction  = 6287410935621
	saltModule    = 2051938467284
	saltInterface = 8730264159873
)

// fingerprint summarizes everything in a snapshot whose equality is
// internally defined. Structurally equal snapshots always produce equal
// fingerprints, so fingerprints can bucket candidates for full comparison;
// they never decide equality on their own. Constant values carry an
// external, possibly-failing equality relation, so only constant names are
// folded in. failedAttributes do not participate in equality and are
// excluded here too.
func fingerprint(d *descriptor) uint64 {
	h := rehash(saltOrigin, uint64(uintptr(unsafe.Pointer(d.origin))))
	h = rehash(h, uint64(d.iterableKind))
	if d.poisoned {
		h = rehash(h, saltPoisoned)
	}

	names := make([]string, 0, len(d.constants))
	for name := range d.constants {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		h = rehashString(rehash(h, saltConstant), name)
	}

	names = names[:0]
	for name := range d.attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		a := d.attributes[name]
		h = rehashString(rehash(h, saltAttribute), name)
		h = rehash(h, a.Type.Hash(), boolHash(a.IsParameter))
	}

	names = names[:0]
	for name := range d.overloads {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		h = rehashString(rehash(h, saltOverload), name)
		for _, overload := range d.overloads[name] {
			h = rehashString(h, overload)
		}
	}

	names = names[:0]
	for name := range d.functionAttributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		f := d.functionAttributes[name]
		h = rehashString(rehash(h, saltFunction), name)
		// handles compare by identity, so the pointer is the hash
		h = rehash(h, uint64(uintptr(unsafe.Pointer(f.fn))))
	}

	// insertion order is neutralized during comparison, so it must be
	// neutralized here too
	for _, m := range sortedModules(d.modules) {
		h = rehashString(rehash(h, saltModule), m.name)
		if m.meta != nil {
			h = rehash(h, fingerprint(&m.meta.data))
		} else {
			h = rehash(h, saltInterface, m.iface.Hash())
		}
	}
	return h
}

func boolHash(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
