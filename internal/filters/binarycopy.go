package filters

import (
	"context"

	"git.home.luguber.info/inful/sitegen/internal/content"
)

// BinaryCopyFilter is the identity filter for binary content. Binary items
// usually pass through compilation untouched and only get routed; rules that
// want an explicit step use this.
type BinaryCopyFilter struct{}

func (f *BinaryCopyFilter) Name() string           { return "binarycopy" }
func (f *BinaryCopyFilter) Accepts() content.Kind  { return content.KindBinary }
func (f *BinaryCopyFilter) Produces() content.Kind { return content.KindBinary }

func (f *BinaryCopyFilter) Apply(_ context.Context, c content.Content, _ Request) (content.Content, error) {
	return c, nil
}
