package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/zipfr/internal/session"
)

type keyMap struct {
	Move     key.Binding
	Page     key.Binding
	Ends     key.Binding
	Jump     key.Binding
	Dataset  key.Binding
	Search   key.Binding
	Matches  key.Binding
	Filter   key.Binding
	Clear    key.Binding
	Single   key.Binding
	Stop     key.Binding
	LogScale key.Binding
	Zipf     key.Binding
	Basis    key.Binding
	Ref      key.Binding
	Scope    key.Binding
	Percent  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Move:     key.NewBinding(key.WithKeys("j", "k", "up", "down"), key.WithHelp("j/k", "move")),
		Page:     key.NewBinding(key.WithKeys("ctrl+d", "ctrl+u", "ctrl+f", "ctrl+b", "pgdown", "pgup"), key.WithHelp("^d/^u ^f/^b", "page")),
		Ends:     key.NewBinding(key.WithKeys("g", "G", "home", "end"), key.WithHelp("g/G", "top/bottom")),
		Jump:     key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("N g", "line")),
		Dataset:  key.NewBinding(key.WithKeys("tab", "shift+tab", "[", "]"), key.WithHelp("tab/[]", "dataset")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Matches:  key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n/N", "matches")),
		Filter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		Clear:    key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear filters")),
		Single:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "singletons")),
		Stop:     key.NewBinding(key.WithKeys("W"), key.WithHelp("W", "stop words")),
		LogScale: key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log")),
		Zipf:     key.NewBinding(key.WithKeys("Z"), key.WithHelp("Z", "zipf")),
		Basis:    key.NewBinding(key.WithKeys("B"), key.WithHelp("B", "basis")),
		Ref:      key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reference")),
		Scope:    key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "chart scope")),
		Percent:  key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "raw/%")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Ends, k.Dataset, k.Search, k.Filter, k.Zipf, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Page, k.Ends, k.Jump},
		{k.Dataset, k.Search, k.Matches},
		{k.Filter, k.Clear, k.Single, k.Stop},
		{k.LogScale, k.Zipf, k.Basis, k.Ref},
		{k.Scope, k.Percent, k.Help, k.Quit},
	}
}

var keyCodes = map[tea.KeyType]session.KeyCode{
	tea.KeyEnter:     session.KeyEnter,
	tea.KeyEsc:       session.KeyEsc,
	tea.KeyBackspace: session.KeyBackspace,
	tea.KeyDelete:    session.KeyBackspace,
	tea.KeyTab:       session.KeyTab,
	tea.KeyShiftTab:  session.KeyShiftTab,
	tea.KeyUp:        session.KeyUp,
	tea.KeyDown:      session.KeyDown,
	tea.KeyHome:      session.KeyHome,
	tea.KeyEnd:       session.KeyEnd,
	tea.KeyPgUp:      session.KeyPgUp,
	tea.KeyPgDown:    session.KeyPgDown,
	tea.KeyCtrlC:     session.KeyCtrlC,
	tea.KeyCtrlD:     session.KeyCtrlD,
	tea.KeyCtrlU:     session.KeyCtrlU,
	tea.KeyCtrlF:     session.KeyCtrlF,
	tea.KeyCtrlB:     session.KeyCtrlB,
}

// keyEvents converts a Bubble Tea key message into controller events. A
// paste arrives as one message with many runes.
func keyEvents(msg tea.KeyMsg) []session.Event {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		events := make([]session.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, session.Rune(r))
		}
		return events
	case tea.KeySpace:
		return []session.Event{session.Rune(' ')}
	}
	if code, ok := keyCodes[msg.Type]; ok {
		return []session.Event{session.Key(code)}
	}
	return nil
}
