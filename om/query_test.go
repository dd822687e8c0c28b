package om_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sghaida/omo/om"
)

//
// -----------------------------------------------------------------------------
// Query: base case and ancestry
// -----------------------------------------------------------------------------

// TestQuery_OwnToken verifies querying an instance for its own class token
// returns the instance itself.
func TestQuery_OwnToken(t *testing.T) {
	t.Parallel()

	p := NewParrot("polly").Get()

	got := p.Query(ParrotClass.ID())
	require.NotNil(t, got)
	assert.Same(t, p, got)
}

// TestQuery_AncestorToken verifies every ancestor token up to the universal
// root answers with the same instance.
func TestQuery_AncestorToken(t *testing.T) {
	t.Parallel()

	p := NewParrot("polly").Get()

	for _, cls := range []*om.Class{BirdClass, AnimalClass, om.Root()} {
		got := p.Query(cls.ID())
		require.NotNil(t, got, "ancestor %s", cls.Name())
		assert.Same(t, p, got)
	}
}

// TestQuery_UnrelatedToken verifies a token absent from the class, its
// interfaces, and its ancestry answers nil, as a normal outcome.
func TestQuery_UnrelatedToken(t *testing.T) {
	t.Parallel()

	p := NewParrot("polly").Get()

	assert.Nil(t, p.Query(CatClass.ID()))
	assert.Nil(t, p.Query(FeederIface.ID()))
	assert.Nil(t, p.Query(om.ClassID{}))
}

// TestQuery_UnboundInstance verifies an instance that bypassed New answers
// no queries rather than misreporting identity.
func TestQuery_UnboundInstance(t *testing.T) {
	t.Parallel()

	var stray Parrot

	assert.Nil(t, stray.Query(ParrotClass.ID()))
	assert.True(t, stray.ClassID().IsZero())
	assert.Nil(t, stray.Class())
}

//
// -----------------------------------------------------------------------------
// Query: capability interfaces
// -----------------------------------------------------------------------------

// TestQuery_DeclaredInterface verifies a directly declared interface token
// answers non-nil.
func TestQuery_DeclaredInterface(t *testing.T) {
	t.Parallel()

	b := NewBird("robin", 0.2).Get()

	got := b.Query(SpeakerIface.ID())
	require.NotNil(t, got)
	assert.Same(t, b, got)
}

// TestQuery_InheritedInterface verifies interfaces declared by an ancestor
// are reachable through the parent recursion.
func TestQuery_InheritedInterface(t *testing.T) {
	t.Parallel()

	// Parrot reaches Speaker both via its own table and via Bird; either way
	// the answer is the parrot itself, with the most-derived declarer
	// answering first.
	p := NewParrot("polly").Get()
	require.NotNil(t, p.Query(SpeakerIface.ID()))
	assert.Same(t, p, p.Query(SpeakerIface.ID()))
}

// TestQuery_ExtendedInterface verifies a token is found through an
// interface's extends graph: Parrot declares Mimic, Mimic extends Speaker.
func TestQuery_ExtendedInterface(t *testing.T) {
	t.Parallel()

	p := NewParrot("polly").Get()

	// Mimic itself.
	require.NotNil(t, p.Query(MimicIface.ID()))
	// Speaker through Mimic's extends edge would also answer even if the
	// class had not declared Speaker directly.
	require.NotNil(t, p.Query(SpeakerIface.ID()))
}

// TestQuery_InterfaceNotDeclaredAnywhere verifies an interface that exists
// in the registry but is claimed by no class in the chain answers nil.
func TestQuery_InterfaceNotDeclaredAnywhere(t *testing.T) {
	t.Parallel()

	c := NewCat(9).Get()
	assert.Nil(t, c.Query(SpeakerIface.ID()))
	assert.Nil(t, c.Query(FeederIface.ID()))
}

//
// -----------------------------------------------------------------------------
// As / IsA
// -----------------------------------------------------------------------------

// TestAs_TypedCapability verifies As returns the instance typed as the
// requested capability interface.
func TestAs_TypedCapability(t *testing.T) {
	t.Parallel()

	p := NewParrot("polly").Get()

	sp, ok := om.As[Speaker](p)
	require.True(t, ok)
	assert.Equal(t, "polly: tweet", sp.Speak())

	m, ok := om.As[Mimic](p)
	require.True(t, ok)
	assert.Equal(t, "polly: hello", m.Repeat("hello"))
}

// TestAs_AbsentCapability verifies As reports false for capabilities the
// class does not support, and for interfaces never declared.
func TestAs_AbsentCapability(t *testing.T) {
	t.Parallel()

	c := NewCat(9).Get()

	_, ok := om.As[Speaker](c)
	assert.False(t, ok)

	_, ok = om.As[Feeder](c)
	assert.False(t, ok)

	// Interface type never passed through DeclareInterface.
	type unregistered interface{ Nope() }
	_, ok2 := om.As[unregistered](c)
	assert.False(t, ok2)

	_, ok3 := om.As[Speaker](nil)
	assert.False(t, ok3)
}

// TestIsA verifies ancestry membership for instances.
func TestIsA(t *testing.T) {
	t.Parallel()

	p := NewParrot("polly").Get()
	c := NewCat(9).Get()

	assert.True(t, om.IsA(p, ParrotClass))
	assert.True(t, om.IsA(p, AnimalClass))
	assert.True(t, om.IsA(p, om.Root()))
	assert.True(t, om.IsA(c, om.Root()))
	assert.False(t, om.IsA(p, CatClass))
	assert.False(t, om.IsA(nil, CatClass))
	assert.False(t, om.IsA(p, nil))
}
