package game

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// TextOp is one editing operation on a text editor.
type TextOp string

const (
	TextLeft       TextOp = "left"
	TextRight      TextOp = "right"
	TextHome       TextOp = "home"
	TextEnd        TextOp = "end"
	TextKill       TextOp = "kill"
	TextDeleteLeft TextOp = "delete-left"
	TextInsert     TextOp = "insert"
	TextSubmit     TextOp = "submit"
)

// FormOp is one editing operation on a form editor.
type FormOp string

const (
	FormUp         FormOp = "up"
	FormDown       FormOp = "down"
	FormLeft       FormOp = "left"
	FormRight      FormOp = "right"
	FormHome       FormOp = "home"
	FormEnd        FormOp = "end"
	FormKill       FormOp = "kill"
	FormDeleteLeft FormOp = "delete-left"
	FormInsert     FormOp = "insert"
	FormNextField  FormOp = "next-field"
	FormPrevField  FormOp = "prev-field"
	FormEnter      FormOp = "enter"
	FormSave       FormOp = "save"
)

// lineEdit applies a cursor or buffer operation shared by both editors. It
// reports false for operations it does not know.
func lineEdit(text string, cursor int, op string, key rune) (string, int, bool) {
	r := []rune(text)
	cursor = max(0, min(cursor, len(r)))
	switch op {
	case "left":
		return text, max(0, cursor-1), true
	case "right":
		return text, min(len(r), cursor+1), true
	case "home":
		return text, 0, true
	case "end":
		return text, len(r), true
	case "kill":
		return string(r[:cursor]), cursor, true
	case "delete-left":
		if cursor == 0 {
			return text, cursor, true
		}
		return string(r[:cursor-1]) + string(r[cursor:]), cursor - 1, true
	case "insert":
		if key == utf8.RuneError || !unicode.IsPrint(key) {
			return text, cursor, true
		}
		return string(r[:cursor]) + string(key) + string(r[cursor:]), cursor + 1, true
	}
	return text, cursor, false
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func (s *State) editText(a EditText) ([]Action, error) {
	f, ok := s.Top().(*TextEditFrame)
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrWrongFrame, a.Op, s.Top().Kind())
	}
	if a.Op == TextSubmit {
		return []Action{SetLetterText{ID: f.Target, Text: f.Text}, Back{}}, nil
	}
	text, cursor, known := lineEdit(f.Text, f.Cursor, string(a.Op), a.Key)
	if !known {
		return nil, fmt.Errorf("unknown text operation %q", a.Op)
	}
	f.Text, f.Cursor = text, cursor
	return nil, nil
}

func (s *State) editFormField(a EditFormField) ([]Action, error) {
	f, ok := s.Top().(*FormEditFrame)
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrWrongFrame, a.Op, s.Top().Kind())
	}
	positions := len(f.Layout) + 1

	switch a.Op {
	case FormUp, FormPrevField:
		f.Field = (f.Field - 1 + positions) % positions
		f.Cursor = 0
		return nil, nil
	case FormDown, FormNextField:
		f.Field = (f.Field + 1) % positions
		f.Cursor = 0
		return nil, nil
	case FormSave:
		return s.saveFrame(f), nil
	case FormEnter:
		if f.OnSave() {
			return s.saveFrame(f), nil
		}
		f.Field = (f.Field + 1) % positions
		f.Cursor = 0
		return nil, nil
	}

	if f.OnSave() {
		return nil, nil
	}
	text, cursor, known := lineEdit(f.Fields[f.Field], f.Cursor, string(a.Op), a.Key)
	if !known {
		return nil, fmt.Errorf("unknown form operation %q", a.Op)
	}
	f.Fields[f.Field], f.Cursor = text, cursor
	return nil, nil
}

func (s *State) saveFrame(f *FormEditFrame) []Action {
	fields := append([]string(nil), f.Fields...)
	return []Action{SaveForm{ID: f.Target, Fields: fields, Save: f.Save}, Back{}}
}
