package core

// KeyEnter is the key name that submits the draft.
const KeyEnter = "Enter"

// KeyEvent is a key press from the input surface.
type KeyEvent struct {
	Key   string
	Shift bool
	Alt   bool
	Ctrl  bool
	Meta  bool
}

func (k KeyEvent) modified() bool {
	return k.Shift || k.Alt || k.Ctrl || k.Meta
}

// OnSubmitKey handles a key press against the draft. A plain Enter submits
// the draft and returns true, telling the caller to suppress the default
// newline insertion. Any other key, including Enter with a modifier, returns
// false and leaves the draft to the caller.
func (s *Session) OnSubmitKey(ev KeyEvent) bool {
	if ev.Key != KeyEnter || ev.modified() {
		return false
	}
	s.Submit(s.draft)
	return true
}
