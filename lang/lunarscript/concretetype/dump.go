package concretetype

import (
	"fmt"
	"sort"
	"strings"
)

// Dump renders every field of this type as human-readable text for
// diagnostics. Map-backed members are rendered sorted by name so the output
// is stable; submodules are rendered in insertion order, since that order
// is the compiled field layout.
func (t *ConcreteType) Dump() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ConcreteType for %s\n", t.data.origin.QualName)
	fmt.Fprintf(&b, "compiled type: %s\n", t.compiled.Name())
	fmt.Fprintf(&b, "poisoned: %v\n", t.data.poisoned)
	fmt.Fprintf(&b, "iterable kind: %v\n", t.data.iterableKind)

	b.WriteString("constants:\n")
	names := make([]string, 0, len(t.data.constants))
	for name := range t.data.constants {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "\t%s: %v\n", name, t.data.constants[name])
	}

	b.WriteString("attributes:\n")
	names = names[:0]
	for name := range t.data.attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		a := t.data.attributes[name]
		suffix := ""
		if a.IsParameter {
			suffix = " (parameter)"
		}
		fmt.Fprintf(&b, "\t%s: %v%s\n", name, a.Type, suffix)
	}

	b.WriteString("function attributes:\n")
	names = names[:0]
	for name := range t.data.functionAttributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		f := t.data.functionAttributes[name]
		fmt.Fprintf(&b, "\t%s: %v (%s)\n", name, f.typ, f.fn.Name)
	}

	b.WriteString("overloads:\n")
	names = names[:0]
	for name := range t.data.overloads {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "\t%s: %v\n", name, t.data.overloads[name])
	}

	b.WriteString("failed attributes:\n")
	names = names[:0]
	for name := range t.data.failedAttributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "\t%s: %s\n", name, t.data.failedAttributes[name])
	}

	b.WriteString("submodules:\n")
	for _, m := range t.data.modules {
		fmt.Fprintf(&b, "\t%s: %v\n", m.name, m.compiledType())
	}
	return b.String()
}
