package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcreedcmu/paperwork-game/pkg/inventory"
	"github.com/jcreedcmu/paperwork-game/pkg/resource"
)

func typeText(s string) []Action {
	var out []Action
	for _, r := range s {
		out = append(out, EditText{Op: TextInsert, Key: r})
	}
	return out
}

func typeField(s string) []Action {
	var out []Action
	for _, r := range s {
		out = append(out, EditFormField{Op: FormInsert, Key: r})
	}
	return out
}

func TestLineEdit(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		cursor     int
		op         string
		key        rune
		wantText   string
		wantCursor int
	}{
		{"left at start", "abc", 0, "left", 0, "abc", 0},
		{"left", "abc", 2, "left", 0, "abc", 1},
		{"right at end", "abc", 3, "right", 0, "abc", 3},
		{"home", "abc", 2, "home", 0, "abc", 0},
		{"end", "abc", 0, "end", 0, "abc", 3},
		{"kill", "abcdef", 2, "kill", 0, "ab", 2},
		{"delete left", "abc", 2, "delete-left", 0, "ac", 1},
		{"delete left at start", "abc", 0, "delete-left", 0, "abc", 0},
		{"insert middle", "ac", 1, "insert", 'b', "abc", 2},
		{"insert multibyte", "ab", 1, "insert", 'é', "aéb", 2},
		{"insert control ignored", "ab", 1, "insert", '\t', "ab", 1},
		{"cursor clamped", "ab", 9, "left", 0, "ab", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, cursor, ok := lineEdit(tt.text, tt.cursor, tt.op, tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantCursor, cursor)
		})
	}

	_, _, ok := lineEdit("x", 0, "bogus", 0)
	assert.False(t, ok)
}

func TestWriteNewLetter(t *testing.T) {
	s := newTestState(t)
	assert.ErrorIs(t, s.Dispatch(NewLetter{}), ErrInsufficient)

	s = newTestState(t)
	grant(t, s, resource.Paper, 1)
	grant(t, s, resource.Pencil, 1)

	dispatch(t, s, NewLetter{})
	require.Equal(t, FrameTextEdit, s.Top().Kind())
	dispatch(t, s, typeText("hi")...)
	dispatch(t, s, EditText{Op: TextLeft}, EditText{Op: TextInsert, Key: '!'})
	f := s.Top().(*TextEditFrame)
	assert.Equal(t, "h!i", f.Text)

	dispatch(t, s, EditText{Op: TextSubmit})
	assert.Equal(t, []string{"edit-text", "set-letter-text", "back"}, s.Trace())
	assert.Len(t, s.Frames(), 1)
	assert.Zero(t, s.Resource(resource.Paper))
	assert.Equal(t, 1, s.Resource(resource.Pencil), "pencils are reusable")

	ids, err := s.Contents(s.Inbox())
	require.NoError(t, err)
	require.Len(t, ids, 1)
	l, err := s.store.Letter(ids[0])
	require.NoError(t, err)
	assert.Equal(t, "h!i", l.Body)
}

func TestEditExistingLetter(t *testing.T) {
	s := newTestState(t)
	id := putIn(t, s, s.Inbox(), &inventory.Letter{Body: "dear sir"})

	dispatch(t, s, EditLetter{ID: id})
	f := s.Top().(*TextEditFrame)
	assert.Equal(t, 8, f.Cursor, "cursor starts at the end")
	dispatch(t, s, EditText{Op: TextHome}, EditText{Op: TextKill})
	dispatch(t, s, typeText("hello")...)
	dispatch(t, s, EditText{Op: TextSubmit})

	l, err := s.store.Letter(id)
	require.NoError(t, err)
	assert.Equal(t, "hello", l.Body)
}

func TestEditTextOutsideEditor(t *testing.T) {
	s := newTestState(t)
	err := s.Dispatch(EditText{Op: TextInsert, Key: 'x'})
	assert.ErrorIs(t, err, ErrWrongFrame)
	err = s.Dispatch(EditFormField{Op: FormInsert, Key: 'x'})
	assert.ErrorIs(t, err, ErrWrongFrame)
}

func TestFormEditing(t *testing.T) {
	s := newTestState(t)
	id := putIn(t, s, s.Inbox(), &inventory.Form{Form: inventory.FormENV001, Fields: []string{"", ""}})

	dispatch(t, s, EditForm{ID: id, Save: SaveRegularForm})
	f := s.Top().(*FormEditFrame)
	assert.Equal(t, FormLayout(inventory.FormENV001), f.Layout)
	assert.False(t, f.OnSave())

	dispatch(t, s, typeField("4")...)
	dispatch(t, s, EditFormField{Op: FormNextField})
	dispatch(t, s, typeField("8")...)
	dispatch(t, s, EditFormField{Op: FormEnter})
	assert.True(t, f.OnSave())

	form, err := s.store.Form(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"", ""}, form.Fields, "unsaved edits stay in the frame")

	dispatch(t, s, EditFormField{Op: FormEnter})
	assert.Equal(t, []string{"edit-form-field", "save-form", "back"}, s.Trace())
	assert.Equal(t, []string{"4", "8"}, form.Fields)
	assert.Len(t, s.Frames(), 1)
}

func TestFormFieldCycling(t *testing.T) {
	s := newTestState(t)
	id := putIn(t, s, s.Inbox(), &inventory.Form{Form: inventory.FormSTO001})

	dispatch(t, s, EditForm{ID: id, Save: SaveRegularForm})
	f := s.Top().(*FormEditFrame)
	require.Len(t, f.Fields, 3, "missing fields are padded")

	dispatch(t, s, EditFormField{Op: FormUp})
	assert.Equal(t, 3, f.Field)
	assert.True(t, f.OnSave())

	dispatch(t, s, EditFormField{Op: FormInsert, Key: 'x'})
	assert.Equal(t, []string{"", "", ""}, f.Fields, "typing on SAVE does nothing")

	dispatch(t, s, EditFormField{Op: FormDown})
	assert.Equal(t, 0, f.Field)
	dispatch(t, s, typeField("12")...)
	dispatch(t, s, EditFormField{Op: FormPrevField}, EditFormField{Op: FormNextField})
	assert.Equal(t, 0, f.Cursor, "changing field resets the cursor")
	dispatch(t, s, EditFormField{Op: FormEnd}, EditFormField{Op: FormDeleteLeft})
	assert.Equal(t, "1", f.Fields[0])

	dispatch(t, s, EditFormField{Op: FormSave})
	form, err := s.store.Form(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "", ""}, form.Fields)
}

func TestEnvelopeAddress(t *testing.T) {
	s := newTestState(t)
	id := putIn(t, s, s.Inbox(), inventory.NewEnvelope(3))

	dispatch(t, s, EditForm{ID: id, Save: SaveEnvelopeAddress})
	f := s.Top().(*FormEditFrame)
	assert.Equal(t, inventory.FormEnvelopeAddress, f.Form)
	dispatch(t, s, typeField("envelope bureau")...)
	dispatch(t, s, EditFormField{Op: FormSave})

	env, err := s.store.Envelope(id)
	require.NoError(t, err)
	assert.Equal(t, "envelope bureau", env.Address)
}

func TestEditForm_WrongVariant(t *testing.T) {
	s := newTestState(t)
	id := putIn(t, s, s.Inbox(), &inventory.Letter{})
	assert.ErrorIs(t, s.Dispatch(EditForm{ID: id, Save: SaveRegularForm}), inventory.ErrWrongVariant)
	assert.ErrorIs(t, s.Dispatch(EditForm{ID: id, Save: SaveEnvelopeAddress}), inventory.ErrWrongVariant)
}
