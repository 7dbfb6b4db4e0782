package model

import (
	"encoding/json"
	"time"

	"github.com/mdouchement/resourcekit/pkg/librk"
)

// An ItemType is the discriminant selecting which attribute set an Item carries.
type ItemType string

const (
	// TypeNone is the empty type accepted by the normalizer.
	TypeNone ItemType = ""
	// TypeMeals is a lot of donated meals.
	TypeMeals ItemType = "Meals"
	// TypeMedicalSupplies is a lot of medical supplies.
	TypeMedicalSupplies ItemType = "Medical Supplies"
	// TypeEntertainment is a lot of entertainment goods.
	TypeEntertainment ItemType = "Entertainment"
	// TypeSleepingQuarters is a sleeping quarters listing with a schedule.
	TypeSleepingQuarters ItemType = "Sleeping Quarters"
)

// Types lists the known item types.
var Types = []ItemType{TypeMeals, TypeMedicalSupplies, TypeEntertainment, TypeSleepingQuarters}

// Known returns true when t is the empty type or one of Types.
func (t ItemType) Known() bool {
	if t == TypeNone {
		return true
	}
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// HasSchedule returns true when items of this type carry a Schedule instead of a Stock.
func (t ItemType) HasSchedule() bool {
	return t == TypeSleepingQuarters
}

type (
	// Attributes is the type-dependent part of an Item.
	// It is either a Stock or a Schedule.
	Attributes interface {
		attributes()
	}

	// A Stock holds the attributes of quantity-bearing items.
	Stock struct {
		Quantity string
	}

	// A Schedule holds the attributes of sleeping quarters.
	Schedule struct {
		NumberOfPeople string
		Start          string
		End            string
	}
)

func (Stock) attributes()    {}
func (Schedule) attributes() {}

// An Item represents a database record and the rendered API response.
type Item struct {
	ID           string     `storm:"id"`
	WhenCreated  *time.Time // nil until the record is created
	Type         ItemType   `storm:"index"`
	Name         string     `storm:"index"`
	Description  string
	UserID       string `storm:"index"`
	Location     string
	ContactEmail string
	ContactName  string
	Available    bool `storm:"index"`
	Attributes   Attributes
}

// wire is the persisted and rendered shape of an Item.
// Optional fields are pointers so an absent attribute set is omitted instead of rendered empty.
type wire struct {
	ItemID         string   `json:"itemId"`
	ID             string   `json:"_id"`
	WhenCreated    *int64   `json:"whenCreated,omitempty"`
	Type           ItemType `json:"type"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	UserID         string   `json:"userID"`
	Location       string   `json:"location"`
	ContactEmail   string   `json:"contactEmail"`
	ContactName    string   `json:"contactName"`
	Available      bool     `json:"available"`
	Quantity       *string  `json:"quantity,omitempty"`
	NumberOfPeople *string  `json:"numberOfPeople,omitempty"`
	Start          *string  `json:"start,omitempty"`
	End            *string  `json:"end,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (m Item) MarshalJSON() ([]byte, error) {
	w := wire{
		ItemID:       m.ID,
		ID:           m.ID,
		Type:         m.Type,
		Name:         m.Name,
		Description:  m.Description,
		UserID:       m.UserID,
		Location:     m.Location,
		ContactEmail: m.ContactEmail,
		ContactName:  m.ContactName,
		Available:    m.Available,
	}

	if m.WhenCreated != nil {
		ms := librk.UnixMillisecond(*m.WhenCreated)
		w.WhenCreated = &ms
	}

	switch a := m.Attributes.(type) {
	case Stock:
		w.Quantity = &a.Quantity
	case Schedule:
		w.NumberOfPeople = &a.NumberOfPeople
		w.Start = &a.Start
		w.End = &a.End
	}

	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler.
// The attribute set is chosen from the type, keys of the other set are ignored.
func (m *Item) UnmarshalJSON(data []byte) error {
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*m = Item{
		ID:           w.ItemID,
		Type:         w.Type,
		Name:         w.Name,
		Description:  w.Description,
		UserID:       w.UserID,
		Location:     w.Location,
		ContactEmail: w.ContactEmail,
		ContactName:  w.ContactName,
		Available:    w.Available,
	}
	if m.ID == "" {
		m.ID = w.ID
	}

	if w.WhenCreated != nil {
		t := librk.FromUnixMillisecond(*w.WhenCreated).UTC()
		m.WhenCreated = &t
	}

	if m.Type.HasSchedule() {
		m.Attributes = Schedule{
			NumberOfPeople: deref(w.NumberOfPeople),
			Start:          deref(w.Start),
			End:            deref(w.End),
		}
	} else {
		m.Attributes = Stock{Quantity: deref(w.Quantity)}
	}

	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
