package database

import (
	"regexp"
	"sort"

	"github.com/asdine/storm/v3"
	stormjson "github.com/asdine/storm/v3/codec/json"
	"github.com/asdine/storm/v3/q"
	"github.com/mdouchement/resourcekit/internal/model"
	"github.com/pkg/errors"
)

type strm struct {
	db *storm.DB
}

// StormCodec is the format used to store data in the database.
// Records are stored with the same JSON shape the API renders.
var StormCodec = storm.Codec(stormjson.Codec)

// StormInit initializes Storm database.
func StormInit(database string) error {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	err = db.Init(&model.Item{})
	return errors.Wrap(err, "could not init item index")
}

// StormReIndex reindex Storm database.
func StormReIndex(database string) error {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	err = db.ReIndex(&model.Item{})
	return errors.Wrap(err, "could not ReIndex items")
}

// StormOpen returns a new Storm database connection.
func StormOpen(database string) (Client, error) {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return nil, errors.Wrap(err, "could not get database connection")
	}

	return &strm{
		db: db,
	}, nil
}

// Save inserts or updates the entry in database with the given item.
func (c *strm) Save(item *model.Item) error {
	return errors.Wrap(c.db.Save(item), "could not save the item")
}

// Close the database.
func (c *strm) Close() error {
	return c.db.Close()
}

// IsNotFound returns true if err is a not found error.
func (c *strm) IsNotFound(err error) bool {
	return errors.Cause(err) == storm.ErrNotFound
}

// FindItem returns the item for the given id (UUID).
func (c *strm) FindItem(id string) (*model.Item, error) {
	var item model.Item
	if err := c.db.One("ID", id, &item); err != nil {
		return nil, errors.Wrap(err, "could not find item")
	}
	return &item, nil
}

// FindItems returns all the matching records for the given parameters, newest first.
func (c *strm) FindItems(params ItemParams) ([]*model.Item, error) {
	query := []q.Matcher{}

	if params.Type != model.TypeNone {
		query = append(query, q.Eq("Type", params.Type))
	}

	if params.Name != "" {
		query = append(query, q.Re("Name", "(?i)"+regexp.QuoteMeta(params.Name)))
	}

	if params.UserID != "" {
		query = append(query, q.Eq("UserID", params.UserID))
	}

	items := make([]*model.Item, 0)
	err := c.db.Select(query...).Find(&items)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find items")
	}

	sort.SliceStable(items, func(i, j int) bool {
		return createdAfter(items[i], items[j])
	})

	return items, nil
}

// DeleteItem deletes the item matching the given id.
func (c *strm) DeleteItem(id string) error {
	err := c.db.DeleteStruct(&model.Item{ID: id})
	return errors.Wrap(err, "could not delete item")
}

func createdAfter(a, b *model.Item) bool {
	switch {
	case a.WhenCreated == nil:
		return false
	case b.WhenCreated == nil:
		return true
	}
	return a.WhenCreated.After(*b.WhenCreated)
}
