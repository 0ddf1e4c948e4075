package scripttype

import (
	"strconv"
	"sync"

	"github.com/pkg/errors"
)

const manglePrefix = "___lunar_mangle_"

// Registry is the global authority on compiled class type names. It performs
// no structural comparison: two distinct concrete types may legitimately
// want the same canonical name (the same class instantiated with different
// constants) and are disambiguated by mangling, never rejected.
//
// All operations are serialized on one mutex, so concurrent builds cannot
// race two class types onto the same name as long as they Reserve before
// they Register.
type Registry struct {
	mu       sync.Mutex
	classes  map[string]*ClassType
	reserved map[string]bool
	mangled  uint64
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		classes:  make(map[string]*ClassType),
		reserved: make(map[string]bool),
	}
}

// Lookup returns the class registered under the given name, or nil
func (r *Registry) Lookup(qn QualifiedName) *ClassType {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.classes[qn.String()]
}

// Mangle returns a fresh name derived from qn that is not yet registered or
// reserved. The mangle marker is inserted between prefix and name, so
// "ns.M" becomes "ns.___lunar_mangle_0.M".
func (r *Registry) Mangle(qn QualifiedName) QualifiedName {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mangle(qn)
}

func (r *Registry) mangle(qn QualifiedName) QualifiedName {
	for {
		marker := manglePrefix + strconv.FormatUint(r.mangled, 10)
		r.mangled++
		prefix := marker
		if qn.Prefix != "" {
			prefix = qn.Prefix + "." + marker
		}
		fresh := QualifiedName{Prefix: prefix, Name: qn.Name}
		if !r.taken(fresh) {
			return fresh
		}
	}
}

func (r *Registry) taken(qn QualifiedName) bool {
	s := qn.String()
	return r.classes[s] != nil || r.reserved[s]
}

// Reserve claims a name for an in-flight build. If qn is free it is marked
// taken and returned unchanged; otherwise a mangled alternative is claimed
// and returned. The subsequent Register must use the reserved name.
func (r *Registry) Reserve(qn QualifiedName) QualifiedName {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.taken(qn) {
		qn = r.mangle(qn)
	}
	r.reserved[qn.String()] = true
	return qn
}

// Register binds a class type under its name. Registering two classes under
// one name is an error.
func (r *Registry) Register(cls *ClassType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := cls.Name().String()
	if r.classes[name] != nil {
		return errors.Errorf("type %s is already registered", name)
	}
	r.classes[name] = cls
	delete(r.reserved, name)
	return nil
}
