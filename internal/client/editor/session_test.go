package editor_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/mdouchement/resourcekit/internal/client/editor"
	"github.com/mdouchement/resourcekit/internal/logger"
	"github.com/mdouchement/resourcekit/pkg/librk"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type remote struct {
	updated []librk.Payload
	deleted []librk.Payload
	err     error
}

func (r *remote) UpdateItem(p librk.Payload) (librk.Item, error) {
	r.updated = append(r.updated, p)
	return p.Item, r.err
}

func (r *remote) DeleteItem(p librk.Payload) error {
	r.deleted = append(r.deleted, p)
	return r.err
}

type locator struct {
	position editor.Position
	err      error
	wait     chan struct{}
}

func (l *locator) CurrentPosition() (editor.Position, error) {
	if l.wait != nil {
		<-l.wait
	}
	return l.position, l.err
}

type alert struct{ title, message string }

type view struct {
	alerts  []alert
	confirm bool
	asked   int
	back    int
}

func (v *view) Alert(title, message string) {
	v.alerts = append(v.alerts, alert{title, message})
}

func (v *view) Confirm(title, message, cancel, accept string) bool {
	v.asked++
	return v.confirm
}

func (v *view) Back() {
	v.back++
}

func newSession(t *testing.T, item librk.Item, l editor.Locator) (*editor.Session, *remote, *view, *bytes.Buffer) {
	t.Helper()

	r := &remote{}
	v := &view{}
	logs := new(bytes.Buffer)
	s := editor.NewSession(item, editor.IOC{
		Remote:  r,
		Locator: l,
		View:    v,
		Logger:  logger.New(logs),
	})
	return s, r, v, logs
}

func focus(t *testing.T, s *editor.Session) {
	t.Helper()

	select {
	case <-s.Focus():
	case <-time.After(time.Second):
		t.Fatal("position fetch did not resolve")
	}
}

func TestSession_QuantityAsText(t *testing.T) {
	var item librk.Item
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"abc","type":"Entertainment","name":"Games","quantity":4}`), &item))

	s, r, _, _ := newSession(t, item, nil)
	focus(t, s)

	assert.Equal(t, librk.Quantity("4"), s.Item().Quantity)

	require.NoError(t, s.Set(editor.FieldQuantity, "abc"))
	assert.Equal(t, 1, s.UpdatePayload().Quantity)

	require.NoError(t, s.Update())
	require.Len(t, r.updated, 1)
	assert.Equal(t, 1, r.updated[0].Quantity)
	assert.Equal(t, "abc", r.updated[0].ID)
}

func TestSession_Visible(t *testing.T) {
	for _, typ := range []string{librk.TypeMeals, librk.TypeMedicalSupplies, librk.TypeEntertainment} {
		s, _, _, _ := newSession(t, librk.Item{Type: typ}, nil)

		assert.True(t, s.Visible(editor.FieldQuantity), typ)
		assert.False(t, s.Visible(editor.FieldNumberOfPeople), typ)
		assert.False(t, s.Visible(editor.FieldStart), typ)
		assert.False(t, s.Visible(editor.FieldEnd), typ)
	}

	s, _, _, _ := newSession(t, librk.Item{Type: librk.TypeSleepingQuarters}, nil)
	assert.False(t, s.Visible(editor.FieldQuantity))
	assert.True(t, s.Visible(editor.FieldNumberOfPeople))
	assert.True(t, s.Visible(editor.FieldStart))
	assert.True(t, s.Visible(editor.FieldEnd))

	s, _, _, _ = newSession(t, librk.Item{}, nil)
	assert.False(t, s.Visible(editor.FieldQuantity))
	assert.False(t, s.Visible(editor.FieldStart))

	for _, f := range []editor.Field{editor.FieldName, editor.FieldContactName, editor.FieldContactEmail, editor.FieldDescription, editor.FieldLocation} {
		assert.True(t, s.Visible(f), f)
	}
}

func TestSession_Set(t *testing.T) {
	s, _, _, _ := newSession(t, librk.Item{Type: librk.TypeSleepingQuarters}, nil)

	assert.Equal(t, editor.ErrHiddenField, s.Set(editor.FieldQuantity, "3"))
	assert.Equal(t, editor.ErrUnknownField, s.Set(editor.Field("type"), "Meals"))

	values := map[editor.Field]string{
		editor.FieldName:           "Gym",
		editor.FieldNumberOfPeople: "2",
		editor.FieldStart:          "02-03-2020",
		editor.FieldEnd:            "02-04-2020",
		editor.FieldContactName:    "Tomotatoes",
		editor.FieldContactEmail:   "user@domain.com",
		editor.FieldDescription:    "Mats and blankets",
		editor.FieldLocation:       "Main street",
	}
	for f, v := range values {
		require.NoError(t, s.Set(f, v), f)
	}

	assert.Equal(t, librk.Item{
		Type:           librk.TypeSleepingQuarters,
		Name:           "Gym",
		NumberOfPeople: "2",
		Start:          "02-03-2020",
		End:            "02-04-2020",
		ContactName:    "Tomotatoes",
		ContactEmail:   "user@domain.com",
		Description:    "Mats and blankets",
		Location:       "Main street",
	}, s.Item())
}

func TestSession_Focus_Resets(t *testing.T) {
	s, _, _, _ := newSession(t, librk.Item{Type: librk.TypeMeals, Name: "Soup"}, nil)

	require.NoError(t, s.Set(editor.FieldName, "Stew"))
	assert.Equal(t, "Stew", s.Item().Name)

	focus(t, s)
	assert.Equal(t, "Soup", s.Item().Name)
}

func TestSession_ToggleUseLocation(t *testing.T) {
	l := &locator{position: editor.Position{Latitude: 1, Longitude: 2}}
	s, _, _, _ := newSession(t, librk.Item{Type: librk.TypeMeals, Location: "Main street"}, l)
	focus(t, s)

	position, ok := s.Position()
	require.True(t, ok)
	assert.Equal(t, "1,2", position.String())

	s.ToggleUseLocation()
	assert.True(t, s.UseLocation())
	assert.True(t, s.Disabled(editor.FieldLocation))
	assert.Equal(t, "1,2", s.Item().Location)

	s.ToggleUseLocation()
	assert.False(t, s.UseLocation())
	assert.False(t, s.Disabled(editor.FieldLocation))
	assert.Equal(t, "1,2", s.Item().Location, "turning off keeps the location")
}

func TestSession_ToggleUseLocation_UnknownPosition(t *testing.T) {
	l := &locator{wait: make(chan struct{})}
	defer close(l.wait)

	s, _, _, _ := newSession(t, librk.Item{Type: librk.TypeMeals, Location: "Main street"}, l)
	s.Focus() // never resolves during the test

	s.ToggleUseLocation()
	assert.True(t, s.UseLocation())
	assert.Equal(t, "Main street", s.Item().Location)
}

func TestSession_ToggleUseLocation_PositionError(t *testing.T) {
	l := &locator{err: errors.New("permission denied")}
	s, _, _, _ := newSession(t, librk.Item{Type: librk.TypeMeals, Location: "Main street"}, l)
	focus(t, s)

	_, ok := s.Position()
	assert.False(t, ok)

	s.ToggleUseLocation()
	assert.Equal(t, "Main street", s.Item().Location)
}

func TestPosition_String(t *testing.T) {
	assert.Equal(t, "48.8566,2.3522", editor.Position{Latitude: 48.8566, Longitude: 2.3522}.String())
	assert.Equal(t, "-33.9,18.4", editor.Position{Latitude: -33.9, Longitude: 18.4}.String())
}

func TestSession_CanUpdate(t *testing.T) {
	s, _, _, _ := newSession(t, librk.Item{Type: librk.TypeMeals, Name: "Soup"}, nil)
	assert.True(t, s.CanUpdate())

	require.NoError(t, s.Set(editor.FieldName, "   "))
	assert.False(t, s.CanUpdate())

	s, r, v, _ := newSession(t, librk.Item{Name: "Soup"}, nil)
	assert.False(t, s.CanUpdate())
	assert.Equal(t, editor.ErrUpdateUnavailable, s.Update())
	assert.Empty(t, r.updated)
	assert.Empty(t, v.alerts)
}

func TestSession_Update(t *testing.T) {
	s, r, v, _ := newSession(t, librk.Item{ID: "id", UnderscoreID: "_id", Type: librk.TypeMeals, Name: "Soup", Quantity: "5"}, nil)

	require.NoError(t, s.Update())
	require.Len(t, r.updated, 1)
	assert.Equal(t, "id", r.updated[0].ID, "id takes precedence over _id")
	assert.Equal(t, 5, r.updated[0].Quantity)
	assert.Equal(t, []alert{{"Done", "Your item has been updated."}}, v.alerts)
	assert.Equal(t, 1, v.back)
}

func TestSession_Update_Failure(t *testing.T) {
	s, r, v, logs := newSession(t, librk.Item{UnderscoreID: "abc", Type: librk.TypeMeals, Name: "Soup"}, nil)
	r.err = errors.New("Item not found.")

	err := s.Update()
	assert.EqualError(t, err, "Item not found.")
	assert.Equal(t, []alert{{"ERROR", "Item not found."}}, v.alerts)
	assert.Zero(t, v.back)
	assert.Contains(t, logs.String(), "could not update item")
}

func TestSession_Delete(t *testing.T) {
	s, r, v, _ := newSession(t, librk.Item{UnderscoreID: "abc", Type: librk.TypeMeals, Name: "Soup"}, nil)

	deleted, err := s.Delete()
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 1, v.asked)
	assert.Empty(t, r.deleted, "cancelled")

	v.confirm = true
	deleted, err = s.Delete()
	require.NoError(t, err)
	assert.True(t, deleted)
	require.Len(t, r.deleted, 1)
	assert.Equal(t, "abc", r.deleted[0].ID)
	assert.Equal(t, []alert{{"Done", "Your item has been deleted."}}, v.alerts)
	assert.Equal(t, 1, v.back)
}

func TestSession_Delete_Failure(t *testing.T) {
	s, r, v, logs := newSession(t, librk.Item{UnderscoreID: "abc"}, nil)
	r.err = errors.New("Unexpected error")
	v.confirm = true

	deleted, err := s.Delete()
	assert.True(t, deleted)
	assert.EqualError(t, err, "Unexpected error")
	assert.Equal(t, []alert{{"ERROR", "Unexpected error"}}, v.alerts)
	assert.Zero(t, v.back)
	assert.Contains(t, logs.String(), "could not delete item")
}
