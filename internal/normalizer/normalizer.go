// Package normalizer converts untyped request bodies into canonical items.
package normalizer

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/gofrs/uuid"
	"github.com/mdouchement/resourcekit/internal/model"
)

// A Body is a request body decoded without any schema.
type Body map[string]any

// A Normalizer builds items from request bodies.
// The zero value is ready to use and relies on random UUIDs and the wall clock.
type Normalizer struct {
	// NewID returns a new globally-unique identifier.
	NewID func() string
	// Now returns the current time.
	Now func() time.Time
}

// Create normalizes a body for a new item.
// It assigns a fresh identifier and stamps the creation time.
func (n Normalizer) Create(body Body) *model.Item {
	item := normalize(body, n.newID())

	now := n.now()
	item.WhenCreated = &now
	return item
}

// Update normalizes a body for an existing item identified by id.
// The creation time is left unset; it belongs to the stored record.
func (n Normalizer) Update(body Body, id string) *model.Item {
	return normalize(body, id)
}

func normalize(body Body, id string) *model.Item {
	item := &model.Item{
		ID:           id,
		Type:         model.ItemType(body.String("type")),
		Name:         body.String("name"),
		Description:  body.String("description"),
		UserID:       body.String("userID"),
		Location:     body.String("location"),
		ContactEmail: body.String("contactEmail"),
		ContactName:  body.String("contactName"),
		Available:    body.Bool("available", true),
	}

	if item.Type.HasSchedule() {
		item.Attributes = model.Schedule{
			Start:          body.String("start"),
			End:            body.String("end"),
			NumberOfPeople: body.String("numberOfPeople"),
		}
	} else {
		item.Attributes = model.Stock{Quantity: body.String("quantity")}
	}

	return item
}

func (n Normalizer) newID() string {
	if n.NewID != nil {
		return n.NewID()
	}
	return uuid.Must(uuid.NewV4()).String()
}

func (n Normalizer) now() time.Time {
	if n.Now != nil {
		return n.Now()
	}
	return time.Now().UTC()
}

// String returns the value of key as a string, or an empty string when the value is absent or falsy.
// Truthy values that are not strings are rendered as JSON text.
func (b Body) String(key string) string {
	v, ok := b[key]
	if !ok || !truthy(v) {
		return ""
	}

	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(payload)
}

// Bool returns the value of key as a boolean, or fallback when the value is absent or null.
// An explicit false is kept; other values are converted by truthiness.
func (b Body) Bool(key string, fallback bool) bool {
	v, ok := b[key]
	if !ok || v == nil {
		return fallback
	}
	if v, ok := v.(bool); ok {
		return v
	}
	return truthy(v)
}

func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0 && !math.IsNaN(v)
	case int:
		return v != 0
	case int64:
		return v != 0
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	}
	return true
}
