package recorder

import "strings"

// Transcript folds speech events into the current best-effort text.
// Final segments accumulate in order and always win; until the first final
// arrives, the latest interim segment stands alone.
type Transcript struct {
	finals  []string
	interim string
}

// Apply folds one event into t.
func (t *Transcript) Apply(ev SpeechEvent) {
	for _, seg := range ev.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		if seg.Final {
			t.finals = append(t.finals, text)
		} else {
			t.interim = text
		}
	}
}

func (t *Transcript) String() string {
	if len(t.finals) > 0 {
		return strings.Join(t.finals, " ")
	}
	return t.interim
}
