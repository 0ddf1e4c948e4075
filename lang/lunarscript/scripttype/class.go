package scripttype

import (
	"unsafe"

	"github.com/pkg/errors"
)

// Attribute is one named slot of a compiled class type
type Attribute struct {
	Name        string
	Type        Type
	IsParameter bool
}

// ClassType is the compiled class representation of a module instance. It is
// populated attribute-by-attribute while a concrete type is being built and
// is immutable once registered; attribute order is the compiled field layout
// and is therefore preserved exactly as inserted.
//
// Unlike every other type, class types compare by identity: two classes with
// identical attribute lists are still distinct types, because compiled method
// bodies are bound to one specific class.
type ClassType struct {
	name   QualifiedName
	module bool
	attrs  []Attribute
	index  map[string]int
}

// NewClassType creates an empty class type with the given qualified name
func NewClassType(name QualifiedName, module bool) *ClassType {
	return &ClassType{
		name:   name,
		module: module,
		index:  make(map[string]int),
	}
}

// Name returns the qualified name this class was registered under
func (c *ClassType) Name() QualifiedName { return c.name }

// IsModule reports whether this class type was compiled from a module instance
func (c *ClassType) IsModule() bool { return c.module }

// AddAttribute appends a named slot to the class layout
func (c *ClassType) AddAttribute(name string, t Type, isParameter bool) error {
	if t == nil {
		return errors.Errorf("attribute %s of %s: nil type", name, c.name)
	}
	if _, ok := c.index[name]; ok {
		return errors.Errorf("attribute %s already defined on %s", name, c.name)
	}
	c.index[name] = len(c.attrs)
	c.attrs = append(c.attrs, Attribute{Name: name, Type: t, IsParameter: isParameter})
	return nil
}

// Attr looks up a named slot
func (c *ClassType) Attr(name string) (Attribute, bool) {
	i, ok := c.index[name]
	if !ok {
		return Attribute{}, false
	}
	return c.attrs[i], true
}

// Attributes returns the class layout in insertion order
func (c *ClassType) Attributes() []Attribute {
	return append([]Attribute(nil), c.attrs...)
}

// Hash returns a fingerprint for this type
func (c *ClassType) Hash() uint64 {
	// two class types are the same iff they are at the same memory location
	return uint64(uintptr(unsafe.Pointer(c)))
}

// Equal reports whether this type is equal to other
func (c *ClassType) Equal(other Type) bool {
	o, ok := other.(*ClassType)
	return ok && c == o
}

// String returns the canonical rendering of this type
func (c *ClassType) String() string { return c.name.String() }
