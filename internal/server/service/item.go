package service

import (
	"net/http"

	"github.com/mdouchement/resourcekit/internal/apierror"
	"github.com/mdouchement/resourcekit/internal/database"
	"github.com/mdouchement/resourcekit/internal/model"
	"github.com/mdouchement/resourcekit/internal/normalizer"
	"github.com/pkg/errors"
)

// ErrItemNotFound is returned when the requested item does not exist.
var ErrItemNotFound = apierror.NewWithTagCode(http.StatusNotFound, "not-found", "Item not found.")

// An ItemService is a service used for managing resource items.
type ItemService struct {
	db         database.Client
	normalizer normalizer.Normalizer
}

// NewItem instantiates a new Item service.
func NewItem(db database.Client, n normalizer.Normalizer) *ItemService {
	return &ItemService{
		db:         db,
		normalizer: n,
	}
}

// Find returns the item for the given id.
func (s *ItemService) Find(id string) (*model.Item, error) {
	item, err := s.db.FindItem(id)
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, ErrItemNotFound
		}
		return nil, errors.Wrap(err, "could not find item")
	}
	return item, nil
}

// List returns the items matching the given parameters.
func (s *ItemService) List(params database.ItemParams) ([]*model.Item, error) {
	items, err := s.db.FindItems(params)
	return items, errors.Wrap(err, "could not list items")
}

// Create normalizes the body into a new item and stores it.
func (s *ItemService) Create(body normalizer.Body) (*model.Item, error) {
	item := s.normalizer.Create(body)

	if err := s.db.Save(item); err != nil {
		return nil, errors.Wrap(err, "could not create item")
	}
	return item, nil
}

// Update re-normalizes the body over the existing item identified by id.
// The stored creation time is kept.
func (s *ItemService) Update(id string, body normalizer.Body) (*model.Item, error) {
	existing, err := s.Find(id)
	if err != nil {
		return nil, err
	}

	item := s.normalizer.Update(body, existing.ID)
	item.WhenCreated = existing.WhenCreated

	if err = s.db.Save(item); err != nil {
		return nil, errors.Wrap(err, "could not update item")
	}
	return item, nil
}

// Delete removes the item identified by id.
func (s *ItemService) Delete(id string) error {
	err := s.db.DeleteItem(id)
	if s.db.IsNotFound(err) {
		return ErrItemNotFound
	}
	return errors.Wrap(err, "could not delete item")
}
