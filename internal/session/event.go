package session

// KeyCode identifies a key independently of the terminal library.
type KeyCode int

const (
	// KeyRune is a printable character carried in KeyEvent.Rune.
	KeyRune KeyCode = iota
	KeyEnter
	KeyEsc
	KeyBackspace
	KeyTab
	KeyShiftTab
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDown
	KeyCtrlC
	KeyCtrlD
	KeyCtrlU
	KeyCtrlF
	KeyCtrlB
)

// Event is an input applied to the controller by Dispatch.
type Event interface {
	isEvent()
}

// KeyEvent is a single key press.
type KeyEvent struct {
	Code KeyCode
	Rune rune
}

// ResizeEvent reports how many list rows the renderer can show.
type ResizeEvent struct {
	Height int
}

func (KeyEvent) isEvent()    {}
func (ResizeEvent) isEvent() {}

// Rune builds a key event for a printable character.
func Rune(r rune) KeyEvent {
	return KeyEvent{Code: KeyRune, Rune: r}
}

// Key builds a key event for a special key.
func Key(code KeyCode) KeyEvent {
	return KeyEvent{Code: code}
}
