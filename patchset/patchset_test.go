package patchset_test

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rj-helpers/nbtpatch/component"
	"github.com/rj-helpers/nbtpatch/item"
	"github.com/rj-helpers/nbtpatch/nbt"
	"github.com/rj-helpers/nbtpatch/patchset"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		in            string
		parent, child string
		nested        bool
	}{
		{in: "Damage", parent: "Damage"},
		{in: "display.Name", parent: "display", child: "Name", nested: true},
		{in: "a.b.c", parent: "a", child: "b.c", nested: true},
		{in: "display.", parent: "display", child: "", nested: true},
		{in: ".x", parent: "", child: "x", nested: true},
		{in: "", parent: ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p := patchset.ParsePath(tt.in)
			assert.Equal(t, tt.parent, p.Parent)
			assert.Equal(t, tt.child, p.Child)
			assert.Equal(t, tt.nested, p.Nested())
			assert.Equal(t, tt.in, p.String())
		})
	}
}

func TestBuilderMutualExclusion(t *testing.T) {
	b := patchset.NewBuilder().
		AddInt("Damage", 1).
		Remove("Damage").
		Remove("display.Lore").
		AddString("display.Lore", "x")

	ps := b.Build()
	assert.False(t, ps.HasAddition("Damage"))
	assert.True(t, ps.HasRemoval("Damage"))
	assert.True(t, ps.HasAddition("display.Lore"))
	assert.False(t, ps.HasRemoval("display.Lore"))
	assert.Equal(t, 2, ps.Len())
}

func TestBuildIsASnapshot(t *testing.T) {
	b := patchset.NewBuilder().AddInt("x", 1)
	ps := b.Build()

	b.AddInt("x", 2).Remove("y")

	v, ok := ps.Get("x")
	require.True(t, ok)
	assert.Equal(t, nbt.Int(1), v)
	assert.False(t, ps.HasRemoval("y"))

	again := b.Build()
	v, _ = again.Get("x")
	assert.Equal(t, nbt.Int(2), v)
	assert.True(t, again.HasRemoval("y"))
}

func TestBuildCopiesValues(t *testing.T) {
	display := nbt.NewCompound()
	display.PutString("Name", "a")
	ps := patchset.NewBuilder().Add("display", display).Build()

	display.PutString("Name", "b")

	v, _ := ps.Get("display")
	name, _ := v.(*nbt.Compound).Get("Name")
	assert.Equal(t, nbt.String("a"), name)
}

func TestReadsDoNotChangeTheSet(t *testing.T) {
	display := nbt.NewCompound()
	display.PutString("Name", "a")
	ps := patchset.NewBuilder().Add("display", display).Build()

	v, ok := ps.Get("display")
	require.True(t, ok)
	v.(*nbt.Compound).PutString("Injected", "x")
	for _, e := range ps.Entries() {
		e.(*nbt.Compound).Remove("Name")
	}

	tree := nbt.NewCompound()
	ps.ApplyToCompound(tree)
	assert.Equal(t, `{display:{Name:"a"}}`, tree.String())
}

func TestScalarConstructorsMatchCompoundSetters(t *testing.T) {
	ps := patchset.NewBuilder().
		AddInt("i", 10).
		AddString("s", "x").
		AddBool("b", true).
		Build()

	direct := nbt.NewCompound()
	direct.PutInt("i", 10)
	direct.PutString("s", "x")
	direct.PutBool("b", true)

	applied := nbt.NewCompound()
	ps.ApplyToCompound(applied)
	assert.True(t, nbt.Equal(direct, applied), "got %s want %s", applied, direct)
}

func TestComponentOverloads(t *testing.T) {
	reg := component.Defaults()
	ps := patchset.NewBuilder().
		AddComponent(reg.MustLookup("custom_name"), nbt.String("Sword")).
		RemoveComponent(reg.MustLookup("lore")).
		Build()

	assert.True(t, ps.HasAddition("display.Name"))
	assert.True(t, ps.HasRemoval("display.Lore"))
}

func TestQueries(t *testing.T) {
	ps := patchset.NewBuilder().
		AddInt("b", 1).
		AddInt("a", 2).
		Remove("z").
		Remove("y").
		Build()

	assert.Equal(t, []string{"b", "a"}, ps.AdditionPaths())
	assert.Equal(t, []string{"z", "y"}, ps.RemovalPaths())
	assert.Equal(t, "PatchSet{additions=[b, a], removals=[z, y]}", ps.String())

	_, ok := ps.Get("missing")
	assert.False(t, ok)

	entries := maps.Collect(ps.Entries())
	assert.Equal(t, map[string]nbt.Tag{"b": nbt.Int(1), "a": nbt.Int(2)}, entries)

	var order []string
	for k := range ps.Entries() {
		order = append(order, k)
	}
	assert.Equal(t, []string{"b", "a"}, order)

	// returned slices are copies
	paths := ps.AdditionPaths()
	paths[0] = "mutated"
	assert.True(t, ps.HasAddition("b"))
	assert.Equal(t, []string{"b", "a"}, ps.AdditionPaths())
}

func TestEmpty(t *testing.T) {
	e := patchset.Empty()
	assert.True(t, e.IsEmpty())
	assert.Same(t, e, patchset.Empty())
	assert.Equal(t, "PatchSet{additions=[], removals=[]}", e.String())

	stack := item.NewStack("minecraft:stick", 1)
	e.ApplyTo(stack)
	assert.Nil(t, stack.Nbt(), "empty patch set must not attach a compound")

	tree := sampleTree(t)
	before := tree.CopyCompound()
	e.ApplyToCompound(tree)
	assert.Equal(t, before.String(), tree.String())
}

func TestApplyScenario(t *testing.T) {
	ps := patchset.NewBuilder().
		AddInt("Damage", 10).
		AddBool("Unbreakable", true).
		Remove("display.Lore").
		Build()

	stack := item.NewStack("minecraft:diamond_sword", 1)
	stack.SetNbt(sampleTree(t))
	ps.ApplyTo(stack)

	tree := stack.Nbt()
	damage, _ := tree.Get("Damage")
	assert.Equal(t, nbt.Int(10), damage)
	unbreakable, _ := tree.Get("Unbreakable")
	assert.Equal(t, nbt.Bool(true), unbreakable)

	display := tree.GetCompound("display")
	assert.False(t, display.Contains("Lore"))
	name, _ := display.Get("Name")
	assert.Equal(t, nbt.String("Sword"), name)
}

func TestApplyAttachesCompound(t *testing.T) {
	stack := item.NewStack("minecraft:stick", 1)
	patchset.NewBuilder().AddString("display.Name", "Stick").Build().ApplyTo(stack)

	require.NotNil(t, stack.Nbt())
	assert.Equal(t, `{display:{Name:"Stick"}}`, stack.Nbt().String())
}

func TestApplyKeepsSiblings(t *testing.T) {
	tree := nbt.NewCompound()
	tree.GetOrCreateCompound("a").PutInt("c", 2)

	patchset.NewBuilder().AddInt("a.b", 1).Build().ApplyToCompound(tree)

	a := tree.GetCompound("a")
	b, _ := a.Get("b")
	c, _ := a.Get("c")
	assert.Equal(t, nbt.Int(1), b)
	assert.Equal(t, nbt.Int(2), c)
}

func TestApplyStoresCopies(t *testing.T) {
	lore, err := nbt.NewList(nbt.String("one"))
	require.NoError(t, err)
	ps := patchset.NewBuilder().Add("display.Lore", lore).Build()

	first, second := nbt.NewCompound(), nbt.NewCompound()
	ps.ApplyToCompound(first)
	ps.ApplyToCompound(second)

	v, _ := first.GetCompound("display").Get("Lore")
	require.NoError(t, v.(*nbt.List).Append(nbt.String("two")))

	stored, _ := ps.Get("display.Lore")
	assert.Equal(t, 1, stored.(*nbt.List).Len())
	other, _ := second.GetCompound("display").Get("Lore")
	assert.Equal(t, 1, other.(*nbt.List).Len())
}

func TestApplyAdditionsBeforeRemovals(t *testing.T) {
	tree := nbt.NewCompound()
	tree.PutInt("HideFlags", 63)

	b := patchset.NewBuilder().Remove("HideFlags").AddInt("Damage", 1)
	patchset.NewBuilder().Merge(b.Build()).Build().ApplyToCompound(tree)

	assert.False(t, tree.Contains("HideFlags"))
	assert.True(t, tree.Contains("Damage"))
}

func TestNestedAdditionUnderNonCompoundIsSkipped(t *testing.T) {
	tree := nbt.NewCompound()
	tree.PutString("display", "not a compound")

	patchset.NewBuilder().AddString("display.Name", "x").Build().ApplyToCompound(tree)

	v, _ := tree.Get("display")
	assert.Equal(t, nbt.String("not a compound"), v)
	assert.Equal(t, 1, tree.Len())
}

func TestRemovalNoOps(t *testing.T) {
	tests := []struct {
		name   string
		remove string
	}{
		{"missing parent", "missing.key"},
		{"missing top-level key", "Missing"},
		{"parent is not a compound", "Damage.x"},
		{"missing child", "display.Missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := sampleTree(t)
			before := tree.CopyCompound()
			patchset.NewBuilder().Remove(tt.remove).Build().ApplyToCompound(tree)
			assert.True(t, nbt.Equal(before, tree), "tree changed to %s", tree)
		})
	}
}

func TestTrailingSeparatorUsesEmptyChild(t *testing.T) {
	tree := nbt.NewCompound()
	patchset.NewBuilder().AddInt("display.", 1).Build().ApplyToCompound(tree)

	v, ok := tree.GetCompound("display").Get("")
	require.True(t, ok)
	assert.Equal(t, nbt.Int(1), v)

	patchset.NewBuilder().Remove("display.").Build().ApplyToCompound(tree)
	assert.True(t, tree.GetCompound("display").IsEmpty())
}

func TestFromDocument(t *testing.T) {
	source := nbt.NewCompound()
	source.GetOrCreateCompound("display").PutString("Name", "Sword")
	source.PutInt("Damage", 5)
	stack := item.NewStack("minecraft:diamond_sword", 1)
	stack.SetNbt(source)

	ps := patchset.FromDocument(stack)

	assert.Empty(t, ps.RemovalPaths())
	damage, ok := ps.Get("Damage")
	require.True(t, ok)
	assert.Equal(t, nbt.Int(5), damage)
	name, ok := ps.Get("display.Name")
	require.True(t, ok)
	assert.Equal(t, nbt.String("Sword"), name)
	assert.ElementsMatch(t, []string{"display", "Damage", "display.Name"}, ps.AdditionPaths())

	// snapshot is independent of the source
	source.PutInt("Damage", 6)
	damage, _ = ps.Get("Damage")
	assert.Equal(t, nbt.Int(5), damage)

	target := item.NewStack("minecraft:diamond_sword", 1)
	ps.ApplyTo(target)
	source.PutInt("Damage", 5)
	assert.True(t, nbt.Equal(source, target.Nbt()), "got %s", target.Nbt())
}

func TestFromDocumentWithoutCompound(t *testing.T) {
	ps := patchset.FromDocument(item.NewStack("minecraft:stick", 1))
	require.NotNil(t, ps)
	assert.True(t, ps.IsEmpty())
}

func TestFromDocumentIgnoresNonCompoundDisplay(t *testing.T) {
	source := nbt.NewCompound()
	source.PutString("display", "plain")
	ps := patchset.FromCompound(source)
	assert.Equal(t, []string{"display"}, ps.AdditionPaths())
}

func TestToBuilder(t *testing.T) {
	base := patchset.NewBuilder().AddInt("Damage", 1).Remove("display.Lore").Build()

	derived := base.ToBuilder().Remove("Damage").AddString("display.Lore", "x").Build()

	assert.True(t, base.HasAddition("Damage"))
	assert.True(t, base.HasRemoval("display.Lore"))
	assert.True(t, derived.HasRemoval("Damage"))
	assert.True(t, derived.HasAddition("display.Lore"))
	assert.True(t, slices.Equal([]string{"display.Lore"}, derived.AdditionPaths()))
}

func sampleTree(t *testing.T) *nbt.Compound {
	t.Helper()
	lore, err := nbt.NewList(nbt.String("line1"))
	require.NoError(t, err)
	tree := nbt.NewCompound()
	tree.PutInt("Damage", 3)
	display := tree.GetOrCreateCompound("display")
	display.PutString("Name", "Sword")
	display.Put("Lore", lore)
	return tree
}
