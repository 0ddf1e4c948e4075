package concretetype

import (
	"github.com/pkg/errors"

	"github.com/lunarml/lunar/lang/lunarscript/scripttype"
)

// ErrBuilderConsumed is the error returned when a Builder is used after
// Build has consumed it.
var ErrBuilderConsumed = errors.New("builder was already consumed by Build")

// DefaultNamespace is the namespace that compiled types are rooted in when
// their origin class has no prefix of its own.
const DefaultNamespace = "__lunar__"

// TypeRegistry is the naming authority consulted during Build. It is the
// sole arbiter of global name uniqueness; Reserve must atomically claim the
// given name or a mangled alternative, and Register must bind the class
// under the name it reserved. *scripttype.Registry implements it.
type TypeRegistry interface {
	Reserve(qn scripttype.QualifiedName) scripttype.QualifiedName
	Register(cls *scripttype.ClassType) error
}

// Builder accumulates the structural snapshot of one module instance while
// the object graph is walked. Every setter is additive and write-once per
// name; Build consumes the Builder and any use afterward is an error.
//
// A Builder is exclusively owned by the walk that populates it and is not
// safe for concurrent use.
type Builder struct {
	data     descriptor
	consumed bool
}

// NewBuilder creates a Builder for an instance of the given class
func NewBuilder(origin *OriginClass) *Builder {
	return &Builder{data: newDescriptor(origin)}
}

func (b *Builder) mutable() error {
	if b.consumed {
		return ErrBuilderConsumed
	}
	return nil
}

// AddConstant records a constant member
func (b *Builder) AddConstant(name string, value scripttype.Value) error {
	if err := b.mutable(); err != nil {
		return err
	}
	if value == nil {
		return errors.Errorf("constant %s of %s: nil value", name, b.data.origin.QualName)
	}
	if _, ok := b.data.constants[name]; ok {
		return errors.Errorf("constant %s of %s was added twice", name, b.data.origin.QualName)
	}
	b.data.constants[name] = value
	return nil
}

// AddAttribute records a typed attribute member. Function-typed attributes
// are rejected: they must go through AddFunctionAttribute, since functions
// are tracked by identity rather than by type.
func (b *Builder) AddAttribute(name string, typ scripttype.Type, isParameter bool) error {
	if err := b.mutable(); err != nil {
		return err
	}
	if typ == nil {
		return errors.Errorf("attribute %s of %s: nil type", name, b.data.origin.QualName)
	}
	if scripttype.IsFunction(typ) {
		return errors.Errorf(
			"attribute %s of %s is function-typed; use AddFunctionAttribute",
			name, b.data.origin.QualName)
	}
	if _, ok := b.data.attributes[name]; ok {
		return errors.Errorf("attribute %s of %s was added twice", name, b.data.origin.QualName)
	}
	b.data.attributes[name] = Attribute{Type: typ, IsParameter: isParameter}
	b.data.attrOrder = append(b.data.attrOrder, name)
	return nil
}

// AddFunctionAttribute records a function-valued member, identified by the
// underlying function object.
func (b *Builder) AddFunctionAttribute(name string, typ scripttype.FunctionType, fn *FunctionHandle) error {
	if err := b.mutable(); err != nil {
		return err
	}
	if fn == nil {
		return errors.Errorf("function attribute %s of %s: nil function handle", name, b.data.origin.QualName)
	}
	if _, ok := b.data.functionAttributes[name]; ok {
		return errors.Errorf("function attribute %s of %s was added twice", name, b.data.origin.QualName)
	}
	b.data.functionAttributes[name] = functionAttribute{typ: typ, fn: fn}
	return nil
}

// AddModule records a submodule with its own concrete type. Submodules are
// kept in insertion order to make the compiled field layout deterministic.
func (b *Builder) AddModule(name string, meta *ConcreteType) error {
	if err := b.mutable(); err != nil {
		return err
	}
	if meta == nil {
		return errors.Errorf("submodule %s of %s: nil concrete type", name, b.data.origin.QualName)
	}
	b.data.modules = append(b.data.modules, moduleEntry{name: name, meta: meta})
	return nil
}

// AddModuleInterface records a submodule typed by an abstract module
// interface instead of a concrete type. This is used when a submodule is
// deliberately not shared structurally, e.g. a polymorphic container.
func (b *Builder) AddModuleInterface(name string, iface scripttype.Type) error {
	if err := b.mutable(); err != nil {
		return err
	}
	if !scripttype.IsModuleInterface(iface) {
		return errors.Errorf("submodule %s of %s: %v is not a module interface", name, b.data.origin.QualName, iface)
	}
	b.data.modules = append(b.data.modules, moduleEntry{name: name, iface: iface})
	return nil
}

// AddOverload records the overload resolution order for a method. The order
// of the overload names is semantically meaningful.
func (b *Builder) AddOverload(methodName string, overloadedMethodNames []string) error {
	if err := b.mutable(); err != nil {
		return err
	}
	if _, ok := b.data.overloads[methodName]; ok {
		return errors.Errorf("overloads for %s of %s were added twice", methodName, b.data.origin.QualName)
	}
	b.data.overloads[methodName] = append([]string(nil), overloadedMethodNames...)
	return nil
}

// AddFailedAttribute records an attribute the walker could not represent,
// along with a hint as to why. Failed attributes are diagnostics only and
// never influence type sharing.
func (b *Builder) AddFailedAttribute(name string, failureReason string) error {
	if err := b.mutable(); err != nil {
		return err
	}
	b.data.failedAttributes[name] = failureReason
	return nil
}

// SetIterableModuleKind marks the instance as list-like or dict-like
func (b *Builder) SetIterableModuleKind(kind IterableKind) error {
	if err := b.mutable(); err != nil {
		return err
	}
	b.data.iterableKind = kind
	return nil
}

// SetPoisoned excludes this snapshot from type sharing permanently
func (b *Builder) SetPoisoned() error {
	if err := b.mutable(); err != nil {
		return err
	}
	b.data.poisoned = true
	return nil
}

// Equal reports whether this snapshot is structurally equal to another
// Builder's. A failure from a constant's equality relation is propagated.
func (b *Builder) Equal(other *Builder) (bool, error) {
	return equalData(&b.data, &other.data)
}

// EqualType reports whether this snapshot is structurally equal to an
// already-finalized type, so a caller can reuse that type instead of
// building a new one.
func (b *Builder) EqualType(other *ConcreteType) (bool, error) {
	return equalData(&b.data, &other.data)
}

// Build freezes the snapshot into a ConcreteType. It derives a canonical
// qualified name from the origin class (rooted in DefaultNamespace when the
// class has no prefix), reserves it with the registry (mangling on
// collision), creates the compiled class type, populates it from the
// attributes and submodules in insertion order, and registers it.
//
// Build consumes the Builder: this transition is one-way even on error, and
// any later use of the Builder fails with ErrBuilderConsumed.
func (b *Builder) Build(reg TypeRegistry) (*ConcreteType, error) {
	if err := b.mutable(); err != nil {
		return nil, err
	}
	b.consumed = true

	qn := b.data.origin.QualName
	if qn.Prefix == "" {
		qn = qn.WithPrefix(DefaultNamespace)
	}
	qn = reg.Reserve(qn)

	cls := scripttype.NewClassType(qn, true)
	for _, name := range b.data.attrOrder {
		a := b.data.attributes[name]
		if err := cls.AddAttribute(name, a.Type, a.IsParameter); err != nil {
			return nil, errors.Wrapf(err, "building %s", qn)
		}
	}
	for _, m := range b.data.modules {
		if err := cls.AddAttribute(m.name, m.compiledType(), false); err != nil {
			return nil, errors.Wrapf(err, "building %s", qn)
		}
	}
	if err := reg.Register(cls); err != nil {
		return nil, errors.Wrapf(err, "building %s", qn)
	}
	return &ConcreteType{data: b.data, compiled: cls}, nil
}
