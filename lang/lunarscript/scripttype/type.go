package scripttype

import (
	"fmt"
	"strings"
)

// Type is the static type of a LunarScript value. Types are immutable and
// compared structurally, except for ClassType, which compares by identity.
type Type interface {
	// Hash returns a fingerprint for this type. Types that compare equal
	// under Equal must return the same hash.
	Hash() uint64

	// Equal reports whether this type is equal to other.
	Equal(other Type) bool

	// String returns the canonical rendering of this type, as it would
	// appear in a LunarScript annotation.
	String() string
}

// IsFunction reports whether t is a function type. Function-typed members
// are not first class in the type system and are tracked separately from
// ordinary attributes.
func IsFunction(t Type) bool {
	_, ok := t.(FunctionType)
	return ok
}

// IsModuleInterface reports whether t is an interface type that can stand
// in for a submodule.
func IsModuleInterface(t Type) bool {
	it, ok := t.(InterfaceType)
	return ok && it.Module
}

// BoolType represents the bool type
type BoolType struct{}

// Hash returns a fingerprint for this type
func (t BoolType) Hash() uint64 { return saltBool }

// Equal reports whether this type is equal to other
func (t BoolType) Equal(other Type) bool {
	_, ok := other.(BoolType)
	return ok
}

// String returns the canonical rendering of this type
func (t BoolType) String() string { return "bool" }

// IntType represents the int type
type IntType struct{}

// Hash returns a fingerprint for this type
func (t IntType) Hash() uint64 { return saltInt }

// Equal reports whether this type is equal to other
func (t IntType) Equal(other Type) bool {
	_, ok := other.(IntType)
	return ok
}

// String returns the canonical rendering of this type
func (t IntType) String() string { return "int" }

// FloatType represents the float type
type FloatType struct{}

// Hash returns a fingerprint for this type
func (t FloatType) Hash() uint64 { return saltFloat }

// Equal reports whether this type is equal to other
func (t FloatType) Equal(other Type) bool {
	_, ok := other.(FloatType)
	return ok
}

// String returns the canonical rendering of this type
func (t FloatType) String() string { return "float" }

// StrType represents the str type
type StrType struct{}

// Hash returns a fingerprint for this type
func (t StrType) Hash() uint64 { return saltStr }

// Equal reports whether this type is equal to other
func (t StrType) Equal(other Type) bool {
	_, ok := other.(StrType)
	return ok
}

// String returns the canonical rendering of this type
func (t StrType) String() string { return "str" }

// NoneType represents the type of the None value
type NoneType struct{}

// Hash returns a fingerprint for this type
func (t NoneType) Hash() uint64 { return saltNone }

// Equal reports whether this type is equal to other
func (t NoneType) Equal(other Type) bool {
	_, ok := other.(NoneType)
	return ok
}

// String returns the canonical rendering of this type
func (t NoneType) String() string { return "None" }

// TensorType represents the tensor type. Shape information is deliberately
// not part of the type: attributes holding tensors of different shapes must
// still map onto one compiled attribute slot.
type TensorType struct{}

// Hash returns a fingerprint for this type
func (t TensorType) Hash() uint64 { return saltTensor }

// Equal reports whether this type is equal to other
func (t TensorType) Equal(other Type) bool {
	_, ok := other.(TensorType)
	return ok
}

// String returns the canonical rendering of this type
func (t TensorType) String() string { return "Tensor" }

// ListType represents a homogeneous list type
type ListType struct {
	Elem Type
}

// Hash returns a fingerprint for this type
func (t ListType) Hash() uint64 { return rehash(saltList, t.Elem.Hash()) }

// Equal reports whether this type is equal to other
func (t ListType) Equal(other Type) bool {
	o, ok := other.(ListType)
	return ok && t.Elem.Equal(o.Elem)
}

// String returns the canonical rendering of this type
func (t ListType) String() string { return fmt.Sprintf("List[%v]", t.Elem) }

// DictType represents a homogeneous dict type
type DictType struct {
	Key  Type
	Elem Type
}

// Hash returns a fingerprint for this type
func (t DictType) Hash() uint64 { return rehash(saltDict, t.Key.Hash(), t.Elem.Hash()) }

// Equal reports whether this type is equal to other
func (t DictType) Equal(other Type) bool {
	o, ok := other.(DictType)
	return ok && t.Key.Equal(o.Key) && t.Elem.Equal(o.Elem)
}

// String returns the canonical rendering of this type
func (t DictType) String() string { return fmt.Sprintf("Dict[%v, %v]", t.Key, t.Elem) }

// OptionalType represents a value that may be None
type OptionalType struct {
	Elem Type
}

// Hash returns a fingerprint for this type
func (t OptionalType) Hash() uint64 { return rehash(saltOptional, t.Elem.Hash()) }

// Equal reports whether this type is equal to other
func (t OptionalType) Equal(other Type) bool {
	o, ok := other.(OptionalType)
	return ok && t.Elem.Equal(o.Elem)
}

// String returns the canonical rendering of this type
func (t OptionalType) String() string { return fmt.Sprintf("Optional[%v]", t.Elem) }

// FunctionType represents the type of a function: its parameter types and
// return type. Note that equality of function types says nothing about
// equality of the underlying functions.
type FunctionType struct {
	Params []Type
	Return Type
}

// Hash returns a fingerprint for this type
func (t FunctionType) Hash() uint64 {
	hs := []uint64{saltFunction}
	for _, p := range t.Params {
		hs = append(hs, p.Hash())
	}
	if t.Return != nil {
		hs = append(hs, t.Return.Hash())
	}
	return rehash(hs...)
}

// Equal reports whether this type is equal to other
func (t FunctionType) Equal(other Type) bool {
	o, ok := other.(FunctionType)
	if !ok || len(t.Params) != len(o.Params) {
		return false
	}
	for i, p := range t.Params {
		if !p.Equal(o.Params[i]) {
			return false
		}
	}
	if t.Return == nil || o.Return == nil {
		return t.Return == nil && o.Return == nil
	}
	return t.Return.Equal(o.Return)
}

// String returns the canonical rendering of this type
func (t FunctionType) String() string {
	params := make([]string, 0, len(t.Params))
	for _, p := range t.Params {
		params = append(params, p.String())
	}
	ret := "None"
	if t.Return != nil {
		ret = t.Return.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), ret)
}

// InterfaceType represents an abstract interface type, identified by its
// qualified name. Module interfaces are used to type submodules that are
// deliberately not shared structurally, such as polymorphic containers.
type InterfaceType struct {
	Name   QualifiedName
	Module bool
}

// Hash returns a fingerprint for this type
func (t InterfaceType) Hash() uint64 {
	h := rehashString(saltInterface, t.Name.String())
	if t.Module {
		h = rehash(h, 1)
	}
	return h
}

// Equal reports whether this type is equal to other
func (t InterfaceType) Equal(other Type) bool {
	o, ok := other.(InterfaceType)
	return ok && t.Name == o.Name && t.Module == o.Module
}

// String returns the canonical rendering of this type
func (t InterfaceType) String() string { return t.Name.String() }
