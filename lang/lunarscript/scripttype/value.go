package scripttype

import (
	"strconv"
	"strings"
)

// Value represents a constant value in a script. Each value carries its own
// equality relation, which is externally defined and therefore allowed to
// fail; a failed comparison must be reported as an error, never coerced to
// a false result, since silently treating incomparable values as unequal
// would duplicate compiled types.
type Value interface {
	// Equal applies this value's equality relation to other
	Equal(other Value) (bool, error)

	// String returns a rendering of this value for diagnostics
	String() string
}

// BoolValue represents a constant bool
type BoolValue bool

// Equal applies this value's equality relation to other
func (v BoolValue) Equal(other Value) (bool, error) {
	o, ok := other.(BoolValue)
	return ok && v == o, nil
}

// String returns a rendering of this value for diagnostics
func (v BoolValue) String() string { return strconv.FormatBool(bool(v)) }

// IntValue represents a constant integer
type IntValue int64

// Equal applies this value's equality relation to other
func (v IntValue) Equal(other Value) (bool, error) {
	o, ok := other.(IntValue)
	return ok && v == o, nil
}

// String returns a rendering of this value for diagnostics
func (v IntValue) String() string { return strconv.FormatInt(int64(v), 10) }

// FloatValue represents a constant float
type FloatValue float64

// Equal applies this value's equality relation to other
func (v FloatValue) Equal(other Value) (bool, error) {
	o, ok := other.(FloatValue)
	return ok && v == o, nil
}

// String returns a rendering of this value for diagnostics
func (v FloatValue) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }

// StrValue represents a constant string
type StrValue string

// Equal applies this value's equality relation to other
func (v StrValue) Equal(other Value) (bool, error) {
	o, ok := other.(StrValue)
	return ok && v == o, nil
}

// String returns a rendering of this value for diagnostics
func (v StrValue) String() string { return strconv.Quote(string(v)) }

// NoneValue represents the None constant
type NoneValue struct{}

// Equal applies this value's equality relation to other
func (v NoneValue) Equal(other Value) (bool, error) {
	_, ok := other.(NoneValue)
	return ok, nil
}

// String returns a rendering of this value for diagnostics
func (v NoneValue) String() string { return "None" }

// TupleValue represents a constant tuple of values
type TupleValue []Value

// Equal applies this value's equality relation to other. An error from any
// element comparison is propagated.
func (v TupleValue) Equal(other Value) (bool, error) {
	o, ok := other.(TupleValue)
	if !ok || len(v) != len(o) {
		return false, nil
	}
	for i, elem := range v {
		eq, err := elem.Equal(o[i])
		if err != nil {
			return false, err
		}
		if !eq {
			return false, nil
		}
	}
	return true, nil
}

// String returns a rendering of this value for diagnostics
func (v TupleValue) String() string {
	elems := make([]string, 0, len(v))
	for _, elem := range v {
		elems = append(elems, elem.String())
	}
	return "(" + strings.Join(elems, ", ") + ")"
}
