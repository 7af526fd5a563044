package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderConnectorsFollowEarlierStage(t *testing.T) {
	r := Result{Created: Done, Attendees: Partial, Orders: Pending, Seated: Done, Fired: Done, Fulfilled: Pending}
	v := Render(r)

	require.Len(t, v.Steps, 6)
	assert.Equal(t, []bool{true, false, false, true, true}, v.Connectors)
	assert.Equal(t, "check", v.Steps[0].Glyph.Mark)
	assert.Equal(t, "dot", v.Steps[1].Glyph.Mark)
	assert.Equal(t, "Attendees", v.Steps[1].Label)
	assert.False(t, v.Dimmed)
}

func TestRenderBlockedIsDimmed(t *testing.T) {
	b := Result{Blocked, Blocked, Blocked, Blocked, Blocked, Blocked}
	v := Render(b)
	assert.True(t, v.Dimmed)
	assert.Equal(t, "x", v.Steps[3].Glyph.Mark)
	assert.Equal(t, "pink", v.Steps[3].Glyph.Fill)
}

func TestBar(t *testing.T) {
	r := Result{Created: Done, Attendees: Done, Orders: Partial, Seated: Pending, Fired: Pending, Fulfilled: Pending}
	assert.Equal(t, "✓━✓━•─○─○─○", Bar(r))
}

func TestGlyphForUnknownState(t *testing.T) {
	assert.Equal(t, GlyphFor(Pending), GlyphFor(State("weird")))
}
