package concretetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunarml/lunar/lang/lunarscript/scripttype"
)

func TestAddAttributeRejectsFunctionType(t *testing.T) {
	b := NewBuilder(newOrigin("ns.Foo"))
	fnType := scripttype.FunctionType{Return: scripttype.TensorType{}}

	err := b.AddAttribute("act", fnType, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "act")
	assert.Contains(t, err.Error(), "ns.Foo")

	// the violation aborts only that build; the registry is untouched and
	// other builds proceed normally
	reg := scripttype.NewRegistry()
	fresh := NewBuilder(newOrigin("ns.Foo"))
	require.NoError(t, fresh.AddFunctionAttribute("act", fnType, &FunctionHandle{Name: "relu"}))
	_, err = fresh.Build(reg)
	assert.NoError(t, err)
}

func TestMembersAreWriteOnce(t *testing.T) {
	b := NewBuilder(newOrigin("ns.Foo"))

	require.NoError(t, b.AddConstant("k", scripttype.IntValue(1)))
	assert.Error(t, b.AddConstant("k", scripttype.IntValue(2)))

	require.NoError(t, b.AddAttribute("w", scripttype.TensorType{}, true))
	assert.Error(t, b.AddAttribute("w", scripttype.TensorType{}, true))

	require.NoError(t, b.AddOverload("forward", []string{"forward_int"}))
	assert.Error(t, b.AddOverload("forward", []string{"forward_str"}))

	fnType := scripttype.FunctionType{Return: scripttype.NoneType{}}
	require.NoError(t, b.AddFunctionAttribute("hook", fnType, &FunctionHandle{Name: "hook"}))
	assert.Error(t, b.AddFunctionAttribute("hook", fnType, &FunctionHandle{Name: "hook"}))
}

func TestBuildConsumesBuilder(t *testing.T) {
	b := scenarioBuilder(t, newOrigin("ns.Foo"))
	reg := scripttype.NewRegistry()
	_, err := b.Build(reg)
	require.NoError(t, err)

	assert.Equal(t, ErrBuilderConsumed, b.AddConstant("k2", scripttype.IntValue(2)))
	assert.Equal(t, ErrBuilderConsumed, b.AddAttribute("w2", scripttype.TensorType{}, false))
	assert.Equal(t, ErrBuilderConsumed, b.SetPoisoned())
	assert.Equal(t, ErrBuilderConsumed, b.SetIterableModuleKind(IterableList))

	_, err = b.Build(reg)
	assert.Equal(t, ErrBuilderConsumed, err)
}

func TestBuildPopulatesCompiledType(t *testing.T) {
	reg := scripttype.NewRegistry()
	child := buildChild(t, reg, newOrigin("ns.Child"), true)
	iface := scripttype.InterfaceType{Name: scripttype.ParseQualifiedName("ns.ChildLike"), Module: true}

	b := NewBuilder(newOrigin("ns.Net"))
	require.NoError(t, b.AddConstant("depth", scripttype.IntValue(4)))
	require.NoError(t, b.AddAttribute("w", scripttype.TensorType{}, true))
	require.NoError(t, b.AddAttribute("training", scripttype.BoolType{}, false))
	require.NoError(t, b.AddFunctionAttribute("act",
		scripttype.FunctionType{Return: scripttype.TensorType{}}, &FunctionHandle{Name: "relu"}))
	require.NoError(t, b.AddModule("inner", child))
	require.NoError(t, b.AddModuleInterface("dynamic", iface))

	built, err := b.Build(reg)
	require.NoError(t, err)

	cls := built.CompiledType()
	assert.Equal(t, "ns.Net", cls.Name().String())
	assert.True(t, cls.IsModule())
	assert.Equal(t, cls, reg.Lookup(cls.Name()))

	// layout: attributes in insertion order, then submodules in insertion
	// order; constants and function attributes get no slots
	attrs := cls.Attributes()
	require.Len(t, attrs, 4)
	assert.Equal(t, "w", attrs[0].Name)
	assert.True(t, attrs[0].IsParameter)
	assert.Equal(t, "training", attrs[1].Name)
	assert.Equal(t, "inner", attrs[2].Name)
	assert.True(t, attrs[2].Type.Equal(child.CompiledType()))
	assert.Equal(t, "dynamic", attrs[3].Name)
	assert.True(t, attrs[3].Type.Equal(iface))
}

func TestBuildDefaultNamespace(t *testing.T) {
	b := NewBuilder(newOrigin("M"))
	built, err := b.Build(scripttype.NewRegistry())
	require.NoError(t, err)
	assert.Equal(t, "__lunar__.M", built.CompiledType().Name().String())
}

func TestBuildManglesOnCollision(t *testing.T) {
	reg := scripttype.NewRegistry()

	// same class, different constants: both canonicalize to "__lunar__.M"
	// and must be disambiguated by mangling, not rejected
	origin := newOrigin("M")
	a := NewBuilder(origin)
	b := NewBuilder(origin)
	require.NoError(t, a.AddConstant("k", scripttype.IntValue(1)))
	require.NoError(t, b.AddConstant("k", scripttype.IntValue(2)))

	builtA, err := a.Build(reg)
	require.NoError(t, err)
	builtB, err := b.Build(reg)
	require.NoError(t, err)

	assert.NotEqual(t, builtA.CompiledType(), builtB.CompiledType())
	assert.NotEqual(t,
		builtA.CompiledType().Name().String(),
		builtB.CompiledType().Name().String())
	assert.Equal(t, builtA.CompiledType(), reg.Lookup(builtA.CompiledType().Name()))
	assert.Equal(t, builtB.CompiledType(), reg.Lookup(builtB.CompiledType().Name()))
}

func TestFinalizedTypeQueries(t *testing.T) {
	reg := scripttype.NewRegistry()
	child := buildChild(t, reg, newOrigin("ns.Child"), true)
	iface := scripttype.InterfaceType{Name: scripttype.ParseQualifiedName("ns.ChildLike"), Module: true}
	act := &FunctionHandle{Name: "relu"}

	b := NewBuilder(newOrigin("ns.Net"))
	require.NoError(t, b.AddConstant("depth", scripttype.IntValue(4)))
	require.NoError(t, b.AddAttribute("w", scripttype.TensorType{}, true))
	require.NoError(t, b.AddFunctionAttribute("act",
		scripttype.FunctionType{Return: scripttype.TensorType{}}, act))
	require.NoError(t, b.AddOverload("forward", []string{"forward_int", "forward_str"}))
	require.NoError(t, b.AddFailedAttribute("opaque", "unsupported value kind"))
	require.NoError(t, b.AddModule("inner", child))
	require.NoError(t, b.AddModuleInterface("dynamic", iface))
	require.NoError(t, b.SetIterableModuleKind(IterableDict))

	built, err := b.Build(reg)
	require.NoError(t, err)

	v, ok := built.FindConstant("depth")
	require.True(t, ok)
	assertConstEqual(t, scripttype.IntValue(4), v)
	_, ok = built.FindConstant("missing")
	assert.False(t, ok)

	overloads, ok := built.FindOverloads("forward")
	require.True(t, ok)
	assert.Equal(t, []string{"forward_int", "forward_str"}, overloads)
	_, ok = built.FindOverloads("backward")
	assert.False(t, ok)

	fn, ok := built.FindFunctionAttribute("act")
	require.True(t, ok)
	assert.Equal(t, act, fn)
	_, ok = built.FindFunctionAttribute("w")
	assert.False(t, ok)

	reason, ok := built.FindFailedAttribute("opaque")
	require.True(t, ok)
	assert.Equal(t, "unsupported value kind", reason)
	_, ok = built.FindFailedAttribute("w")
	assert.False(t, ok)

	inner, ok := built.FindSubmoduleConcreteType("inner")
	require.True(t, ok)
	assert.Equal(t, child, inner)
	// interface-typed submodules have no concrete type
	_, ok = built.FindSubmoduleConcreteType("dynamic")
	assert.False(t, ok)

	assert.Equal(t, IterableDict, built.IterableModuleKind())
	assert.Equal(t, "ns.Net", built.OriginClass().QualName.String())

	modules := built.Modules()
	require.Len(t, modules, 2)
	assert.Equal(t, "inner", modules[0].Name)
	assert.Equal(t, "dynamic", modules[1].Name)

	attrs := built.Attributes()
	require.Len(t, attrs, 1)
	assert.True(t, attrs["w"].IsParameter)

	consts := built.Constants()
	require.Len(t, consts, 1)
	assertConstEqual(t, scripttype.IntValue(4), consts["depth"])
}

func assertConstEqual(t *testing.T, expected, actual scripttype.Value) {
	eq, err := expected.Equal(actual)
	require.NoError(t, err)
	assert.True(t, eq, "expected constant %v, got %v", expected, actual)
}
