package concretetype

import (
	"sort"

	"github.com/pkg/errors"
)

// equalData reports whether two snapshots are structurally equal, which is
// exactly the condition under which two instances can share a compiled
// type. The checks are vaguely ordered so that cheap, discriminating ones
// happen first. A failure from a constant's equality relation is returned
// as an error and never coerced into a false result.
func equalData(a, b *descriptor) (bool, error) {
	if a.poisoned || b.poisoned {
		return false, nil
	}
	if a.origin != b.origin {
		return false, nil
	}
	if a.iterableKind != b.iterableKind {
		return false, nil
	}
	if eq, err := equalConstants(a, b); err != nil || !eq {
		return eq, err
	}
	if !equalAttributes(a.attributes, b.attributes) {
		return false, nil
	}
	if !equalOverloads(a.overloads, b.overloads) {
		return false, nil
	}
	if !equalFunctionAttributes(a.functionAttributes, b.functionAttributes) {
		return false, nil
	}
	// failedAttributes are diagnostics only and deliberately do not
	// participate; submodules involve the most work, so they go last
	return equalModules(a.modules, b.modules)
}

func equalConstants(a, b *descriptor) (bool, error) {
	if len(a.constants) != len(b.constants) {
		return false, nil
	}
	for name, av := range a.constants {
		bv, ok := b.constants[name]
		if !ok {
			return false, nil
		}
		eq, err := av.Equal(bv)
		if err != nil {
			return false, errors.Wrapf(err, "comparing constant %s of %s", name, a.origin.QualName)
		}
		if !eq {
			return false, nil
		}
	}
	return true, nil
}

func equalAttributes(a, b map[string]Attribute) bool {
	if len(a) != len(b) {
		return false
	}
	for name, aa := range a {
		ba, ok := b[name]
		if !ok || aa.IsParameter != ba.IsParameter || !aa.Type.Equal(ba.Type) {
			return false
		}
	}
	return true
}

func equalOverloads(a, b map[string][]string) bool {
	if len(a) != len(b) {
		return false
	}
	for name, ao := range a {
		bo, ok := b[name]
		if !ok || len(ao) != len(bo) {
			return false
		}
		// overload resolution order is part of the meaning
		for i := range ao {
			if ao[i] != bo[i] {
				return false
			}
		}
	}
	return true
}

func equalFunctionAttributes(a, b map[string]functionAttribute) bool {
	if len(a) != len(b) {
		return false
	}
	for name, af := range a {
		bf, ok := b[name]
		// functions are not first class, so type comparison is not enough:
		// the underlying function objects must be identical
		if !ok || af.fn != bf.fn {
			return false
		}
	}
	return true
}

func equalModules(a, b []moduleEntry) (bool, error) {
	if len(a) != len(b) {
		return false, nil
	}
	// submodules are stored in insertion order to keep compilation
	// deterministic, but insertion order must not influence equality, so
	// compare sorted copies and leave the live slices untouched
	as := sortedModules(a)
	bs := sortedModules(b)
	for i := range as {
		eq, err := as[i].equal(bs[i])
		if err != nil || !eq {
			return eq, err
		}
	}
	return true, nil
}

func (m moduleEntry) equal(o moduleEntry) (bool, error) {
	if m.name != o.name {
		return false, nil
	}
	switch {
	case m.meta != nil && o.meta != nil:
		return m.meta.Equal(o.meta)
	case m.iface != nil && o.iface != nil:
		return m.iface.Equal(o.iface), nil
	default:
		// a concretely-typed submodule never equals an interface-typed one
		return false, nil
	}
}

func sortedModules(modules []moduleEntry) []moduleEntry {
	out := append([]moduleEntry(nil), modules...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}
