package concretetype

import "sync"

// Store memoizes finalized types so that structurally equal instances
// compile onto one shared class type. Candidates are bucketed by snapshot
// fingerprint; a bucket hit still requires a full structural comparison.
//
// All operations are serialized on one mutex, so two concurrent builds of
// equal snapshots cannot both miss and register duplicate types.
type Store struct {
	mu      sync.Mutex
	buckets map[uint64][]*ConcreteType
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{buckets: make(map[uint64][]*ConcreteType)}
}

// FindEqual returns a previously-finalized type that is structurally equal
// to the builder's snapshot, or nil. A failure from a constant's equality
// relation is propagated.
func (s *Store) FindEqual(b *Builder) (*ConcreteType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findEqual(b)
}

func (s *Store) findEqual(b *Builder) (*ConcreteType, error) {
	for _, candidate := range s.buckets[fingerprint(&b.data)] {
		eq, err := b.EqualType(candidate)
		if err != nil {
			return nil, err
		}
		if eq {
			return candidate, nil
		}
	}
	return nil, nil
}

// Insert adds a finalized type to the memo. Poisoned types compare equal to
// nothing, so they are never inserted.
func (s *Store) Insert(t *ConcreteType) {
	if t.data.poisoned {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insert(t)
}

func (s *Store) insert(t *ConcreteType) {
	fp := fingerprint(&t.data)
	s.buckets[fp] = append(s.buckets[fp], t)
}

// BuildOrReuse returns a shared finalized type for the builder's snapshot:
// an existing structurally equal type if one is known, otherwise the result
// of consuming the builder with Build, memoized for future reuse.
func (s *Store) BuildOrReuse(b *Builder, reg TypeRegistry) (*ConcreteType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, err := s.findEqual(b); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}
	t, err := b.Build(reg)
	if err != nil {
		return nil, err
	}
	if !t.data.poisoned {
		s.insert(t)
	}
	return t, nil
}
