// Package editor implements the item edition form used by the terminal client.
//
// A Session owns one in-memory item for the whole edition. The device position
// is the only state updated from another goroutine.
package editor

import (
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/mdouchement/resourcekit/pkg/librk"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// A Field is an editable field of the form.
type Field string

// Form fields, in display order.
const (
	FieldName           Field = "name"
	FieldQuantity       Field = "quantity"
	FieldNumberOfPeople Field = "numberOfPeople"
	FieldStart          Field = "start"
	FieldEnd            Field = "end"
	FieldContactName    Field = "contactName"
	FieldContactEmail   Field = "contactEmail"
	FieldDescription    Field = "description"
	FieldLocation       Field = "location"
)

// Fields lists all the form fields in display order.
var Fields = []Field{
	FieldName,
	FieldQuantity,
	FieldNumberOfPeople,
	FieldStart,
	FieldEnd,
	FieldContactName,
	FieldContactEmail,
	FieldDescription,
	FieldLocation,
}

var (
	// ErrHiddenField is returned when a field not rendered for the item type is edited.
	ErrHiddenField = errors.New("field is not available for this item type")
	// ErrUnknownField is returned when editing a field that is not part of the form.
	ErrUnknownField = errors.New("unknown field")
	// ErrUpdateUnavailable is returned by Update when the update action is not offered.
	ErrUpdateUnavailable = errors.New("update is not available until the item has a type and a name")
)

type (
	// A Position is a device position.
	Position struct {
		Latitude  float64
		Longitude float64
	}

	// A Remote performs the remote operations on items. librk.Client is a Remote.
	Remote interface {
		UpdateItem(p librk.Payload) (librk.Item, error)
		DeleteItem(p librk.Payload) error
	}

	// A Locator provides the current device position.
	// It may block forever.
	Locator interface {
		CurrentPosition() (Position, error)
	}

	// A View renders the feedback of the session.
	View interface {
		// Alert displays a blocking message.
		Alert(title, message string)
		// Confirm asks the user to choose between cancel and accept.
		// It returns true when accept is chosen.
		Confirm(title, message, cancel, accept string) bool
		// Back leaves the form.
		Back()
	}

	// An IOC is an Iversion Of Control pattern used to init a Session.
	IOC struct {
		Remote  Remote
		Locator Locator // optional
		View    View
		Logger  logrus.FieldLogger // optional
	}

	// A Session is the state of one item edition.
	Session struct {
		mu          sync.Mutex
		initial     librk.Item
		item        librk.Item
		useLocation bool
		position    *Position

		remote  Remote
		locator Locator
		view    View
		log     logrus.FieldLogger
	}
)

// String returns the "latitude,longitude" representation of the position.
func (p Position) String() string {
	return strconv.FormatFloat(p.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(p.Longitude, 'f', -1, 64)
}

// NewSession returns a new Session editing the given item.
func NewSession(item librk.Item, ioc IOC) *Session {
	if ioc.Logger == nil {
		ioc.Logger = logrus.StandardLogger()
	}

	return &Session{
		initial: item,
		item:    item,
		remote:  ioc.Remote,
		locator: ioc.Locator,
		view:    ioc.View,
		log:     ioc.Logger,
	}
}

// Focus resets the form to the edited item and fetches the device position once.
// The returned channel is closed when the position fetch resolves.
func (s *Session) Focus() <-chan struct{} {
	s.mu.Lock()
	s.item = s.initial
	s.mu.Unlock()

	done := make(chan struct{})
	if s.locator == nil {
		close(done)
		return done
	}

	go func() {
		defer close(done)

		position, err := s.locator.CurrentPosition()
		if err != nil {
			s.log.WithError(err).Debug("could not get current position")
			return
		}

		s.mu.Lock()
		s.position = &position
		s.mu.Unlock()
	}()

	return done
}

// Item returns the current state of the edited item.
func (s *Session) Item() librk.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.item
}

// UseLocation returns true when the current position is used as location.
func (s *Session) UseLocation() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.useLocation
}

// Position returns the last known device position.
func (s *Session) Position() (Position, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.position == nil {
		return Position{}, false
	}
	return *s.position, true
}

// Visible returns true when the field is rendered for the current item type.
func (s *Session) Visible(f Field) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return visible(s.item.Type, f)
}

// Disabled returns true when the field is rendered as disabled.
// Only the location is disabled, while the current position is used.
func (s *Session) Disabled(f Field) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return f == FieldLocation && s.useLocation
}

func visible(t string, f Field) bool {
	switch f {
	case FieldQuantity:
		return t == librk.TypeMedicalSupplies || t == librk.TypeEntertainment || t == librk.TypeMeals
	case FieldNumberOfPeople, FieldStart, FieldEnd:
		return t == librk.TypeSleepingQuarters
	}
	return true
}

// Set edits the given field.
func (s *Session) Set(f Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !visible(s.item.Type, f) {
		return ErrHiddenField
	}

	switch f {
	case FieldName:
		s.item.Name = value
	case FieldQuantity:
		s.item.Quantity = librk.Quantity(value)
	case FieldNumberOfPeople:
		s.item.NumberOfPeople = value
	case FieldStart:
		s.item.Start = value
	case FieldEnd:
		s.item.End = value
	case FieldContactName:
		s.item.ContactName = value
	case FieldContactEmail:
		s.item.ContactEmail = value
	case FieldDescription:
		s.item.Description = value
	case FieldLocation:
		s.item.Location = value
	default:
		return ErrUnknownField
	}

	return nil
}

// ToggleUseLocation flips the use of the current position as location.
// Turning it on writes the known position into the location; turning it off keeps the location as is.
func (s *Session) ToggleUseLocation() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.useLocation && s.position != nil {
		s.item.Location = s.position.String()
	}
	s.useLocation = !s.useLocation
}

// CanUpdate returns true when the update action is offered:
// the item has a type and a non-blank name.
func (s *Session) CanUpdate() bool {
	s.mu.Lock()
	g := gate{Type: s.item.Type, Name: s.item.Name}
	s.mu.Unlock()

	return validate.Struct(g) == nil
}

// UpdatePayload returns the payload submitted by Update.
func (s *Session) UpdatePayload() librk.Payload {
	s.mu.Lock()
	defer s.mu.Unlock()

	return librk.NewPayload(s.item)
}

// DeletePayload returns the payload submitted by Delete.
// Only its identifier is meaningful to the server.
func (s *Session) DeletePayload() librk.Payload {
	return s.UpdatePayload()
}

// Update submits the edited item.
// The outcome is reported through the view and the returned error.
func (s *Session) Update() error {
	if !s.CanUpdate() {
		return ErrUpdateUnavailable
	}

	if _, err := s.remote.UpdateItem(s.UpdatePayload()); err != nil {
		s.fail(err, "could not update item")
		return err
	}

	s.view.Alert("Done", "Your item has been updated.")
	s.view.Back()
	return nil
}

// Delete asks for a confirmation then removes the edited item.
// It returns false when the user cancelled.
func (s *Session) Delete() (bool, error) {
	if !s.view.Confirm("Delete", "Are you sure you want to delete this item?", "Cancel", "Delete") {
		return false, nil
	}

	if err := s.remote.DeleteItem(s.DeletePayload()); err != nil {
		s.fail(err, "could not delete item")
		return true, err
	}

	s.view.Alert("Done", "Your item has been deleted.")
	s.view.Back()
	return true, nil
}

func (s *Session) fail(err error, message string) {
	s.log.WithError(err).Error(message)
	s.view.Alert("ERROR", err.Error())
}

////////////////////
//                //
// Update gate    //
//                //
////////////////////

type gate struct {
	Type string `validate:"required"`
	Name string `validate:"notblank"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}
