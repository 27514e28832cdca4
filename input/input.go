package input

import (
	"strings"
	"sync"

	"github.com/ratel-online/assistant/consts"
	"github.com/ratel-online/assistant/rank"
)

// Selector tracks which of the two input modes is active.
type Selector struct {
	lock sync.RWMutex
	mode consts.InputMode
}

func NewSelector() *Selector {
	return &Selector{mode: consts.InputModeText}
}

func ParseMode(s string) (consts.InputMode, error) {
	switch consts.InputMode(strings.ToLower(strings.TrimSpace(s))) {
	case consts.InputModeText:
		return consts.InputModeText, nil
	case consts.InputModeClick:
		return consts.InputModeClick, nil
	}
	return "", consts.ErrorsInputModeInvalid
}

func (s *Selector) Select(mode consts.InputMode) error {
	if mode != consts.InputModeText && mode != consts.InputModeClick {
		return consts.ErrorsInputModeInvalid
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.mode = mode
	return nil
}

func (s *Selector) Mode() consts.InputMode {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.mode
}

// Panels reports which input panel is visible. Exactly one is.
func (s *Selector) Panels() (text, click bool) {
	mode := s.Mode()
	return mode == consts.InputModeText, mode == consts.InputModeClick
}

// Buffer holds the pending input of both modes. Switching mode never clears
// either side.
type Buffer struct {
	*Selector
	Tally *rank.Tally

	lock sync.RWMutex
	text string
}

func NewBuffer() *Buffer {
	return &Buffer{
		Selector: NewSelector(),
		Tally:    rank.NewTally(),
	}
}

func (b *Buffer) SetText(text string) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.text = text
}

func (b *Buffer) Text() string {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.text
}

// Preview is the serialization of the pending tally.
func (b *Buffer) Preview() string {
	return rank.Serialize(b.Tally)
}

// Clear empties the text box and zeroes the tally. The mode is kept.
func (b *Buffer) Clear() {
	b.SetText("")
	b.Tally.Reset()
}
