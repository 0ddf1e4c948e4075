// Package concretetype decides when two dynamically-composed module
// instances can share one compiled class type.
//
// A script class is best thought of as a template for a family of compiled
// types: the template arguments are the things the type system cannot
// express directly, such as constant values and function attributes.
// Different constants produce different compiled method bodies, so each
// fully-specified member of the family needs its own compiled type, while
// instances that agree on every member must share exactly one.
//
// A ConcreteType captures one fully-specified member of the family. It has
// two phases: a Builder accumulates the structural snapshot of an instance
// while the object graph is walked, then Build freezes it into an immutable
// ConcreteType that derives the compiled class type and services attribute
// lookups during method compilation. Two instances behave identically under
// compilation iff their snapshots compare equal.
package concretetype

import (
	"fmt"

	"github.com/lunarml/lunar/lang/lunarscript/scripttype"
)

// IterableKind classifies whether an instance's submodules are treated as an
// ordered sequence or a keyed mapping by the compiler.
type IterableKind int

const (
	// IterableNone indicates an ordinary module
	IterableNone IterableKind = iota
	// IterableList indicates the submodules form an ordered sequence
	IterableList
	// IterableDict indicates the submodules form a keyed mapping
	IterableDict
)

// String returns a readable name for this kind
func (k IterableKind) String() string {
	switch k {
	case IterableNone:
		return "none"
	case IterableList:
		return "list"
	case IterableDict:
		return "dict"
	default:
		return fmt.Sprintf("invalid(%d)", int(k))
	}
}

// OriginClass identifies the dynamic class a module instance was created
// from. Handles compare by identity: instances of distinct class objects
// never share a compiled type, because compiled method bodies are bound to
// the defining class.
type OriginClass struct {
	// QualName is the class's qualified name. The prefix may be empty for
	// classes defined at the top level of a script.
	QualName scripttype.QualifiedName
}

// FunctionHandle identifies one function object from the dynamic script
// environment. Handles compare by identity: two distinct functions that
// happen to share a function type are never interchangeable, since
// functions are not first class in the type system.
type FunctionHandle struct {
	// Name is the function's name, used only for diagnostics
	Name string
}

// Attribute describes one non-function attribute slot: its declared type
// and whether the slot holds a parameter.
type Attribute struct {
	Type        scripttype.Type
	IsParameter bool
}

// functionAttribute pairs a function's type with the identity of the
// underlying function object.
type functionAttribute struct {
	typ scripttype.FunctionType
	fn  *FunctionHandle
}

// moduleEntry is one submodule slot. Exactly one of meta and iface is set:
// meta for a submodule with its own concrete type, iface for a submodule
// deliberately typed by an abstract interface instead of being shared
// structurally.
type moduleEntry struct {
	name  string
	meta  *ConcreteType
	iface scripttype.Type
}

// compiledType returns the static type this entry contributes to the parent
// class layout.
func (m moduleEntry) compiledType() scripttype.Type {
	if m.meta != nil {
		return m.meta.CompiledType()
	}
	return m.iface
}

// descriptor is the structural snapshot of one module instance: everything
// that can influence the instance's compiled methods. It is shared by
// Builder (mutable phase) and ConcreteType (frozen phase).
//
// NOTE: any new field here must be accounted for in equalData and in
// fingerprint, or structurally distinct instances may share a type.
type descriptor struct {
	origin *OriginClass

	// if true this snapshot compares equal to nothing, which guarantees the
	// resulting type is never shared (used e.g. for traced instances)
	poisoned bool

	constants          map[string]scripttype.Value
	attributes         map[string]Attribute
	functionAttributes map[string]functionAttribute
	overloads          map[string][]string

	// attributes the walker could not represent, with a reason; these are
	// kept for diagnostics only and do not participate in equality
	failedAttributes map[string]string

	// submodules in insertion order; the order fixes the compiled field
	// layout but is neutralized (by sorting copies) during comparison
	modules []moduleEntry

	// attribute names in insertion order, for deterministic field layout
	attrOrder []string

	iterableKind IterableKind
}

func newDescriptor(origin *OriginClass) descriptor {
	return descriptor{
		origin:             origin,
		constants:          make(map[string]scripttype.Value),
		attributes:         make(map[string]Attribute),
		functionAttributes: make(map[string]functionAttribute),
		overloads:          make(map[string][]string),
		failedAttributes:   make(map[string]string),
	}
}
