package database

import (
	"github.com/mdouchement/resourcekit/internal/model"
)

type (
	// A Client can interacts with the database.
	Client interface {
		// Save inserts or updates the entry in database with the given item.
		Save(item *model.Item) error
		// Close the database.
		Close() error
		// IsNotFound returns true if err is a not found error.
		IsNotFound(err error) bool

		ItemInteraction
	}

	// An ItemInteraction defines all the methods used to interact with a item record(s).
	ItemInteraction interface {
		// FindItem returns the item for the given id (UUID).
		FindItem(id string) (*model.Item, error)
		// FindItems returns all the matching records for the given parameters, newest first.
		FindItems(params ItemParams) ([]*model.Item, error)
		// DeleteItem deletes the item matching the given id.
		DeleteItem(id string) error
	}

	// ItemParams filters the items returned by FindItems.
	// Zero values do not filter.
	ItemParams struct {
		Type   model.ItemType
		Name   string // case-insensitive substring
		UserID string
	}
)
