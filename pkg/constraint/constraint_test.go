package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomagicln/propcheck/pkg/arbitrary"
	"github.com/nomagicln/propcheck/pkg/args"
	"github.com/nomagicln/propcheck/pkg/gen"
)

type pair = args.Two[int, string]

func baseGen() gen.Gen[pair] {
	return args.NewTwo(arbitrary.Int(), arbitrary.String()).Gen()
}

func TestSlot_Not(t *testing.T) {
	m := Maker2[int, string]{}
	c := m.Second().Not("x")

	assert.Equal(t, Reject, c.Kind())
	assert.Equal(t, 1, c.Slot())
	assert.True(t, c.Rejects(pair{First: 1, Second: "x"}))
	assert.False(t, c.Rejects(pair{First: 1, Second: "y"}))
}

func TestSlot_NotWhereAndMustMeet(t *testing.T) {
	m := Maker2[int, string]{}
	negative := m.First().NotWhere(func(v int) bool { return v < 0 })
	even := m.First().MustMeet(func(v int) bool { return v%2 == 0 })

	assert.True(t, negative.Rejects(pair{First: -1}))
	assert.False(t, negative.Rejects(pair{First: 1}))
	assert.Equal(t, Require, even.Kind())
	assert.True(t, even.Rejects(pair{First: 3}))
	assert.False(t, even.Rejects(pair{First: 4}))
}

func TestSlot_MustBe(t *testing.T) {
	m := Maker2[int, string]{}
	c := m.Second().MustBe("fixed")

	assert.Equal(t, ReplaceConst, c.Kind())
	for _, p := range c.Transform(baseGen()).Generate(gen.NewRand(1), 50) {
		assert.Equal(t, "fixed", p.Second)
		assert.False(t, c.Rejects(p))
	}
	assert.True(t, c.Conforms(pair{Second: "fixed"}))
	assert.False(t, c.Conforms(pair{Second: "other"}))
}

func TestMustBeIn(t *testing.T) {
	m := Maker2[int, string]{}
	c := MustBeIn(m.First(), -3, 3)

	assert.Equal(t, Replace, c.Kind())
	for _, p := range c.Transform(baseGen()).Generate(gen.NewRand(2), 100) {
		assert.GreaterOrEqual(t, p.First, -3)
		assert.LessOrEqual(t, p.First, 3)
	}
	assert.False(t, c.Conforms(pair{First: 4}))
	assert.Panics(t, func() { MustBeIn(m.First(), 3, -3) })
}

func TestSlot_ProducedBy(t *testing.T) {
	m := Maker2[int, string]{}
	c := m.Second().ProducedBy(gen.FromSlice([]string{"a", "b"}))

	for _, p := range c.Transform(baseGen()).Generate(gen.NewRand(3), 50) {
		assert.Contains(t, []string{"a", "b"}, p.Second)
	}
	assert.True(t, c.Conforms(pair{Second: "zzz"}), "ProducedBy has no conformance check")
}

func TestJoint(t *testing.T) {
	all := Maker2[int, string]{}.All()

	not := all.Not(pair{First: 1, Second: "a"})
	assert.True(t, not.Rejects(pair{First: 1, Second: "a"}))
	assert.False(t, not.Rejects(pair{First: 1, Second: "b"}))
	assert.Equal(t, AllSlots, not.Slot())

	where := all.NotWhere(func(p pair) bool { return p.First == len(p.Second) })
	assert.True(t, where.Rejects(pair{First: 2, Second: "ab"}))

	must := all.MustMeet(func(p pair) bool { return p.First > 0 })
	assert.True(t, must.Rejects(pair{First: 0}))
}

func TestSet_LastReplacementWins(t *testing.T) {
	m := Maker1[int]{}
	set := Set[args.One[int]]{
		MustBeIn(m.First(), 0, 9),
		MustBeIn(m.First(), 100, 200),
	}

	g := set.Generator(args.NewOne(arbitrary.Int()).Gen())
	for _, v := range g.Generate(gen.NewRand(4), 500) {
		require.GreaterOrEqual(t, v.First, 100)
		require.LessOrEqual(t, v.First, 200)
	}

	assert.True(t, set.Admits(args.One[int]{First: 150}))
	assert.False(t, set.Admits(args.One[int]{First: 5}), "only the last replacement is checked")
}

func TestSet_RejectionReportsFirstLabel(t *testing.T) {
	m := Maker1[int]{}
	set := Set[args.One[int]]{
		m.First().NotWhere(func(v int) bool { return v < 10 }).Labeled("small"),
		m.First().Not(5).Labeled("five"),
	}

	c, rejected := set.Rejection(args.One[int]{First: 5})
	require.True(t, rejected)
	assert.Equal(t, "small", c.Label())

	_, rejected = set.Rejection(args.One[int]{First: 50})
	assert.False(t, rejected)
	assert.True(t, set.Admits(args.One[int]{First: 50}))
	assert.False(t, set.Admits(args.One[int]{First: 1}))
}

func TestConstraint_String(t *testing.T) {
	m := Maker3[int, int, int]{}
	assert.Equal(t, "reject on argument 2", m.Second().Not(1).String())
	assert.Equal(t, "require on all arguments", m.All().MustMeet(func(args.Three[int, int, int]) bool { return true }).String())
	assert.Equal(t, "label", m.Third().Not(1).Labeled("label").String())
	assert.Equal(t, "replace-const", ReplaceConst.String())
}

func TestMaker4_SlotIndices(t *testing.T) {
	m := Maker4[int, int, int, int]{}
	assert.Equal(t, 0, m.First().Not(0).Slot())
	assert.Equal(t, 1, m.Second().Not(0).Slot())
	assert.Equal(t, 2, m.Third().Not(0).Slot())
	assert.Equal(t, 3, m.Fourth().Not(0).Slot())
}
