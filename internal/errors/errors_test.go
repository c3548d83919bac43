package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	e := New(KindUnknownLayout, "no such layout")
	assert.Equal(t, "unknown_layout: no such layout", e.Error())

	wrapped := Wrap(fmt.Errorf("boom"), KindInternal, "invariant broken")
	assert.Equal(t, "internal: invariant broken: boom", wrapped.Error())
}

func TestUnwrapChain(t *testing.T) {
	root := UnknownItem("/missing.md")
	mid := Compilation("/b.md (rep: default)", root)
	top := Compilation("/a.md (rep: default)", mid)

	var se *Error
	require.True(t, stderrors.As(top, &se))
	assert.Equal(t, KindCompilation, se.Kind)

	assert.True(t, IsKind(top, KindUnknownItem))
	assert.True(t, IsKind(top, KindCompilation))
	assert.False(t, IsKind(top, KindUnknownLayout))
	assert.Same(t, root, RootCause(top).(*Error))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUnknownFilter, KindOf(UnknownFilter("x")))
	assert.Equal(t, KindInternal, KindOf(fmt.Errorf("plain")))
}

func TestTriviality(t *testing.T) {
	assert.True(t, IsTrivial(NoRulesFileFound()))
	assert.True(t, IsTrivial(UnknownLayout("/l.tmpl")))
	assert.False(t, IsTrivial(Internal("bug")))
	assert.False(t, IsTrivial(fmt.Errorf("plain")))

	// A compilation wrapper inherits triviality from its root cause.
	assert.True(t, IsTrivial(Compilation("/a (rep: default)", UnknownLayout("/l.tmpl"))))
	assert.False(t, IsTrivial(Compilation("/a (rep: default)", Internal("bug"))))
}

func TestWithContext(t *testing.T) {
	e := New(KindUnknownFilter, "msg").WithContext("filter", "erb")
	assert.Equal(t, "erb", e.Context["filter"])
}

func TestCycleMessage(t *testing.T) {
	msg := CycleMessage([]string{"/b.md (rep: default)", "/c.md (rep: default)"})
	assert.Equal(t,
		"The site cannot be compiled: a dependency cycle was detected: "+
			"(1) /b.md (rep: default) → (2) /c.md (rep: default) → (1) /b.md (rep: default)",
		msg)
}

func TestDependencyCycleCarriesRing(t *testing.T) {
	ring := []string{"/a (rep: default)", "/b (rep: default)"}
	e := DependencyCycle(ring)
	assert.Equal(t, KindDependencyCycle, e.Kind)
	assert.Equal(t, ring, e.Context["cycle"])
	assert.True(t, IsTrivial(e))
}

func TestCannotDetermineFilterMessages(t *testing.T) {
	zero := CannotDetermineFilter("/default.tmpl", nil)
	assert.Contains(t, zero.Message, "could not be determined")

	multi := CannotDetermineFilter("/default.tmpl", []string{"template", "markdown"})
	assert.Contains(t, multi.Message, "ambiguous")
	assert.Contains(t, multi.Message, "template, markdown")
}
