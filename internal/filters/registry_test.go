package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/errors"
)

func TestDefaultRegistryBuiltins(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t,
		[]string{"binarycopy", "frontmatterstrip", "markdown", "relativize", "template"},
		r.Names())
	assert.True(t, r.Has("markdown"))
	assert.False(t, r.Has("erb"))
}

func TestRegistryGetUnknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("nope")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindUnknownFilter))
	assert.Contains(t, err.Error(), "nope")
}

func TestRegistryDuplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&MarkdownFilter{}))

	err := r.Register(&MarkdownFilter{})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindInternal))
}

func TestRegistryRejectsNil(t *testing.T) {
	r := NewRegistry()
	assert.Error(t, r.Register(nil))
}
