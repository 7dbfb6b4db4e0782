package librk

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Known item types.
const (
	TypeMeals            = "Meals"
	TypeMedicalSupplies  = "Medical Supplies"
	TypeEntertainment    = "Entertainment"
	TypeSleepingQuarters = "Sleeping Quarters"
)

type (
	// An Item is the client view of a resource item.
	// Both attribute sets are kept so a form can switch between them.
	Item struct {
		ID             string   `json:"id,omitempty"`
		ItemID         string   `json:"itemId,omitempty"`
		UnderscoreID   string   `json:"_id,omitempty"`
		WhenCreated    int64    `json:"whenCreated,omitempty"`
		UserID         string   `json:"userID"`
		Type           string   `json:"type"`
		Name           string   `json:"name"`
		Description    string   `json:"description"`
		Location       string   `json:"location"`
		ContactName    string   `json:"contactName"`
		ContactEmail   string   `json:"contactEmail"`
		Available      *bool    `json:"available,omitempty"`
		Quantity       Quantity `json:"quantity"`
		NumberOfPeople string   `json:"numberOfPeople"`
		Start          string   `json:"start"`
		End            string   `json:"end"`
	}

	// A Quantity is the editable text of an item quantity.
	// It is decoded from either a JSON string or a JSON number.
	Quantity string

	// A Payload is the submitted shape of an Item.
	// The quantity is sent as an integer and the identifier is resolved.
	Payload struct {
		Item
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
	}

	// A Filter restricts the listed items.
	Filter struct {
		Type   string
		Name   string
		UserID string
	}
)

// Identifier returns the item identifier: `id` when set, `_id` otherwise.
func (i Item) Identifier() string {
	if i.ID != "" {
		return i.ID
	}
	return i.UnderscoreID
}

// NewPayload builds the payload submitted for the given item.
func NewPayload(item Item) Payload {
	return Payload{
		Item:     item,
		ID:       item.Identifier(),
		Quantity: item.Quantity.Int(),
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*q = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = Quantity(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*q = Quantity(n.String())
	return nil
}

// Int returns the quantity as an integer.
// A numeric text is read up to its first non digit (`2.7` and `1e3` give 2 and 1,
// `0x10` gives 16). Anything else, or a value out of the int range, falls back to 1.
func (q Quantity) Int() int {
	s := strings.TrimSpace(string(q))
	if !numeric(s) {
		return 1
	}

	base := 10
	sign := ""
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		base = 16
		s = s[2:]
	case strings.HasPrefix(s, "-"), strings.HasPrefix(s, "+"):
		sign, s = s[:1], s[1:]
	}

	end := 0
	for end < len(s) && digit(s[end], base) {
		end++
	}
	if end == 0 {
		return 1
	}

	n, err := strconv.ParseInt(sign+s[:end], base, strconv.IntSize)
	if err != nil {
		return 1
	}
	return int(n)
}

// numeric reports whether s is a finite decimal number or an unsigned hexadecimal integer.
func numeric(s string) bool {
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		_, err := strconv.ParseUint(s[2:], 16, 64)
		return err == nil || errors.Is(err, strconv.ErrRange)
	}
	if strings.ContainsAny(s, "xXpP_") {
		return false
	}

	_, err := strconv.ParseFloat(s, 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}

func digit(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16:
		return c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
	}
	return false
}
