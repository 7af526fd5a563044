package progress

import "strings"

// Glyph is the visual encoding of a stage state.
type Glyph struct {
	Fill   string `json:"fill"`
	Border string `json:"border"`
	Mark   string `json:"mark"`
	Label  string `json:"label_color"`
}

var glyphs = map[State]Glyph{
	Done:    {Fill: "accent", Border: "accent", Mark: "check", Label: "text"},
	Partial: {Fill: "accent", Border: "accent", Mark: "dot", Label: "text"},
	Pending: {Fill: "none", Border: "neutral", Mark: "none", Label: "muted"},
	Blocked: {Fill: "pink", Border: "pink", Mark: "x", Label: "danger"},
}

// GlyphFor returns the encoding of a state. Unknown states render as pending.
func GlyphFor(s State) Glyph {
	if g, ok := glyphs[s]; ok {
		return g
	}
	return glyphs[Pending]
}

// Step is one rendered stage.
type Step struct {
	Stage Stage  `json:"stage"`
	Label string `json:"label"`
	State State  `json:"state"`
	Glyph Glyph  `json:"glyph"`
}

// View is the full indicator: steps in order plus the connector between
// each adjacent pair.
type View struct {
	Steps      []Step `json:"steps"`
	Connectors []bool `json:"connectors"`
	Dimmed     bool   `json:"dimmed"`
}

// Render lays out a result for display. A connector is active only when the
// earlier of its two stages is done.
func Render(r Result) View {
	v := View{
		Steps:      make([]Step, 0, len(Stages)),
		Connectors: make([]bool, 0, len(Stages)-1),
		Dimmed:     r.Created == Blocked,
	}
	for i, s := range Stages {
		st := r.Of(s)
		v.Steps = append(v.Steps, Step{Stage: s, Label: s.Label(), State: st, Glyph: GlyphFor(st)})
		if i < len(Stages)-1 {
			v.Connectors = append(v.Connectors, st == Done)
		}
	}
	return v
}

var marks = map[State]string{Done: "✓", Partial: "•", Pending: "○", Blocked: "✗"}

// Bar renders a compact one-line form, e.g. "✓━✓━•─○─○─○".
func Bar(r Result) string {
	var b strings.Builder
	for i, s := range Stages {
		st := r.Of(s)
		b.WriteString(marks[st])
		if i < len(Stages)-1 {
			if st == Done {
				b.WriteString("━")
			} else {
				b.WriteString("─")
			}
		}
	}
	return b.String()
}
