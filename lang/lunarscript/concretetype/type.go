package concretetype

import (
	"github.com/lunarml/lunar/lang/lunarscript/scripttype"
)

// Submodule is one entry of a finalized type's submodule layout
type Submodule struct {
	Name string
	Type scripttype.Type
}

// ConcreteType is the finalized, immutable form of a snapshot, paired with
// the compiled class type derived from it. It is the source of truth for
// attribute lookups during method compilation: if two instances share a
// ConcreteType they are guaranteed to behave identically under attribute
// access.
//
// A ConcreteType is immutable after Build and may be referenced by any
// number of parent snapshots and compiled call sites concurrently.
type ConcreteType struct {
	data     descriptor
	compiled *scripttype.ClassType
}

// Equal reports whether this type and other can be shared. A failure from a
// constant's equality relation is propagated.
func (t *ConcreteType) Equal(other *ConcreteType) (bool, error) {
	if t.compiled == other.compiled {
		// same compiled type, so the instances trivially share
		return true, nil
	}
	return equalData(&t.data, &other.data)
}

// CompiledType returns the compiled class type derived from this snapshot
func (t *ConcreteType) CompiledType() *scripttype.ClassType {
	return t.compiled
}

// OriginClass returns the identity handle of the defining class
func (t *ConcreteType) OriginClass() *OriginClass {
	return t.data.origin
}

// IterableModuleKind reports whether the instance behaves like an ordered
// sequence or keyed mapping of submodules.
func (t *ConcreteType) IterableModuleKind() IterableKind {
	return t.data.iterableKind
}

// IsPoisoned reports whether this type is excluded from sharing
func (t *ConcreteType) IsPoisoned() bool {
	return t.data.poisoned
}

// FindConstant returns the value of the named constant
func (t *ConcreteType) FindConstant(name string) (scripttype.Value, bool) {
	v, ok := t.data.constants[name]
	return v, ok
}

// FindOverloads returns the overload resolution order for the named method
func (t *ConcreteType) FindOverloads(name string) ([]string, bool) {
	o, ok := t.data.overloads[name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), o...), true
}

// FindFunctionAttribute returns the handle of the named function attribute
func (t *ConcreteType) FindFunctionAttribute(name string) (*FunctionHandle, bool) {
	f, ok := t.data.functionAttributes[name]
	if !ok {
		return nil, false
	}
	return f.fn, true
}

// FindFailedAttribute returns the failure reason recorded for the named
// attribute, if the walker could not represent it.
func (t *ConcreteType) FindFailedAttribute(name string) (string, bool) {
	r, ok := t.data.failedAttributes[name]
	return r, ok
}

// FindSubmoduleConcreteType returns the concrete type of the named
// submodule. Interface-typed submodules have no concrete type and report a
// miss.
func (t *ConcreteType) FindSubmoduleConcreteType(name string) (*ConcreteType, bool) {
	for _, m := range t.data.modules {
		if m.name == name && m.meta != nil {
			return m.meta, true
		}
	}
	return nil, false
}

// Constants returns a copy of the constant table
func (t *ConcreteType) Constants() map[string]scripttype.Value {
	out := make(map[string]scripttype.Value, len(t.data.constants))
	for name, v := range t.data.constants {
		out[name] = v
	}
	return out
}

// Attributes returns a copy of the attribute table
func (t *ConcreteType) Attributes() map[string]Attribute {
	out := make(map[string]Attribute, len(t.data.attributes))
	for name, a := range t.data.attributes {
		out[name] = a
	}
	return out
}

// Modules returns the submodule layout in insertion order, each entry typed
// by its compiled class type or module interface.
func (t *ConcreteType) Modules() []Submodule {
	out := make([]Submodule, 0, len(t.data.modules))
	for _, m := range t.data.modules {
		out = append(out, Submodule{Name: m.name, Type: m.compiledType()})
	}
	return out
}

// String returns a short identifier for this type
func (t *ConcreteType) String() string {
	return "concrete:" + t.compiled.Name().String()
}
