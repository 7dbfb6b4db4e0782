package librk_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/mdouchement/resourcekit/internal/database"
	"github.com/mdouchement/resourcekit/internal/logger"
	"github.com/mdouchement/resourcekit/internal/normalizer"
	"github.com/mdouchement/resourcekit/internal/server"
	"github.com/mdouchement/resourcekit/pkg/librk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) librk.Client {
	t.Helper()

	filename := filepath.Join(t.TempDir(), "resourcekit.db")
	db, err := database.StormOpen(filename)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var sequence int
	engine := server.EchoEngine(server.IOC{
		Version:  "test",
		Database: db,
		Normalizer: normalizer.Normalizer{
			NewID: func() string {
				sequence++
				return fmt.Sprintf("item-%d", sequence)
			},
			Now: func() time.Time { return time.Date(2020, time.February, 3, 0, 0, 0, 0, time.UTC) },
		},
		Logger: logger.New(new(bytes.Buffer)),
	})

	ts := httptest.NewServer(engine)
	t.Cleanup(ts.Close)

	client, err := librk.NewClient(ts.Client(), ts.URL)
	require.NoError(t, err)
	return client
}

func TestClient_Lifecycle(t *testing.T) {
	client := setup(t)

	created, err := client.CreateItem(librk.Item{
		Type:     librk.TypeEntertainment,
		Name:     "Board games",
		UserID:   "u1",
		Quantity: "4",
	})
	require.NoError(t, err)
	assert.Equal(t, "item-1", created.ItemID)
	assert.Equal(t, "item-1", created.UnderscoreID)
	assert.Equal(t, int64(1580688000000), created.WhenCreated)
	assert.Equal(t, librk.Quantity("4"), created.Quantity, "integer quantity is normalized to text")
	require.NotNil(t, created.Available)
	assert.True(t, *created.Available)

	item, err := client.GetItem("item-1")
	require.NoError(t, err)
	assert.Equal(t, "Board games", item.Name)

	item.Name = "Puzzles"
	item.Quantity = "abc"
	updated, err := client.UpdateItem(librk.NewPayload(item))
	require.NoError(t, err)
	assert.Equal(t, "Puzzles", updated.Name)
	assert.Equal(t, librk.Quantity("1"), updated.Quantity)
	assert.Equal(t, int64(1580688000000), updated.WhenCreated)

	items, err := client.ListItems(librk.Filter{UserID: "u1", Name: "puzz"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "item-1", items[0].UnderscoreID)

	err = client.DeleteItem(librk.NewPayload(item))
	require.NoError(t, err)

	items, err = client.ListItems(librk.Filter{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClient_Errors(t *testing.T) {
	client := setup(t)

	_, err := client.GetItem("unknown")
	require.Error(t, err)
	assert.Equal(t, "Item not found.", err.Error())

	apierr, ok := err.(*librk.APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apierr.StatusCode)
	assert.Equal(t, "not-found", apierr.Err.Tag)

	err = client.DeleteItem(librk.Payload{ID: "unknown"})
	assert.EqualError(t, err, "Item not found.")

	_, err = client.UpdateItem(librk.Payload{})
	assert.Equal(t, librk.ErrNoIdentifier, err)

	err = client.DeleteItem(librk.Payload{})
	assert.Equal(t, librk.ErrNoIdentifier, err)
}
