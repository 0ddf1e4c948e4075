package scripttype

import "strings"

// QualifiedName is a dotted name split into the namespace prefix and the
// final atom, e.g. "models.resnet" + "ResNet". The prefix may be empty for
// classes defined at the top level of a script.
type QualifiedName struct {
	Prefix string
	Name   string
}

// ParseQualifiedName splits a dotted name into prefix and final atom
func ParseQualifiedName(s string) QualifiedName {
	if i := strings.LastIndex(s, "."); i >= 0 {
		return QualifiedName{Prefix: s[:i], Name: s[i+1:]}
	}
	return QualifiedName{Name: s}
}

// WithPrefix returns a copy of qn rooted at the given namespace prefix
func (qn QualifiedName) WithPrefix(prefix string) QualifiedName {
	return QualifiedName{Prefix: prefix, Name: qn.Name}
}

// String returns the full dotted name
func (qn QualifiedName) String() string {
	if qn.Prefix == "" {
		return qn.Name
	}
	return qn.Prefix + "." + qn.Name
}
