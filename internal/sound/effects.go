// Package sound plays short effects for game events.
package sound

// Effect names; each maps to <name>.wav or <name>.mp3 in the sound directory.
const (
	Reveal   = "reveal"
	Pass     = "pass"
	Wrong    = "wrong"
	RoundEnd = "round_end"
	Win      = "win"
)
