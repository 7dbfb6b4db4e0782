package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mdouchement/resourcekit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fastjson"
)

func TestItemType_HasSchedule(t *testing.T) {
	assert.True(t, model.TypeSleepingQuarters.HasSchedule())
	assert.False(t, model.TypeMeals.HasSchedule())
	assert.False(t, model.TypeNone.HasSchedule())
	assert.False(t, model.ItemType("Boats").HasSchedule())
}

func TestItemType_Known(t *testing.T) {
	for _, typ := range model.Types {
		assert.True(t, typ.Known(), typ)
	}
	assert.True(t, model.TypeNone.Known())
	assert.False(t, model.ItemType("Boats").Known())
	assert.False(t, model.ItemType("meals").Known())
}

func TestItem_MarshalJSON_Stock(t *testing.T) {
	at := time.Date(2020, time.February, 3, 0, 0, 0, 0, time.UTC)
	item := model.Item{
		ID:          "d989ccc9-15c6-475e-839b-1690bd07d073",
		WhenCreated: &at,
		Type:        model.TypeMeals,
		Name:        "Soup",
		Available:   true,
		Attributes:  model.Stock{Quantity: "5"},
	}

	payload, err := json.Marshal(item)
	require.NoError(t, err)

	v, err := fastjson.ParseBytes(payload)
	require.NoError(t, err)

	assert.Equal(t, item.ID, string(v.GetStringBytes("itemId")))
	assert.Equal(t, item.ID, string(v.GetStringBytes("_id")))
	assert.Equal(t, int64(1580688000000), v.GetInt64("whenCreated"))
	assert.Equal(t, "5", string(v.GetStringBytes("quantity")))
	assert.True(t, v.GetBool("available"))
	assert.False(t, v.Exists("start"))
	assert.False(t, v.Exists("end"))
	assert.False(t, v.Exists("numberOfPeople"))
}

func TestItem_MarshalJSON_Schedule(t *testing.T) {
	item := model.Item{
		ID:         "abc",
		Type:       model.TypeSleepingQuarters,
		Attributes: model.Schedule{Start: "02-03-2020", End: "02-04-2020", NumberOfPeople: "2"},
	}

	payload, err := json.Marshal(item)
	require.NoError(t, err)

	v, err := fastjson.ParseBytes(payload)
	require.NoError(t, err)

	assert.False(t, v.Exists("whenCreated"))
	assert.False(t, v.Exists("quantity"))
	assert.Equal(t, "02-03-2020", string(v.GetStringBytes("start")))
	assert.Equal(t, "02-04-2020", string(v.GetStringBytes("end")))
	assert.Equal(t, "2", string(v.GetStringBytes("numberOfPeople")))
	// Empty strings are still rendered for the selected set.
	assert.True(t, v.Exists("description"))
	assert.True(t, v.Exists("contactName"))
}

func TestItem_UnmarshalJSON(t *testing.T) {
	var item model.Item
	err := json.Unmarshal([]byte(`{
		"_id": "abc",
		"type": "Sleeping Quarters",
		"name": "Gym",
		"whenCreated": 1580688000000,
		"quantity": "12",
		"start": "02-03-2020"
	}`), &item)
	require.NoError(t, err)

	assert.Equal(t, "abc", item.ID, "_id is used when itemId is missing")
	assert.Equal(t, "Gym", item.Name)
	require.NotNil(t, item.WhenCreated)
	assert.Equal(t, time.Date(2020, time.February, 3, 0, 0, 0, 0, time.UTC), *item.WhenCreated)

	assert.Equal(t, model.Schedule{Start: "02-03-2020"}, item.Attributes)
}

func TestItem_UnmarshalJSON_PrefersItemID(t *testing.T) {
	var item model.Item
	err := json.Unmarshal([]byte(`{"itemId":"first","_id":"second","type":"Meals"}`), &item)
	require.NoError(t, err)

	assert.Equal(t, "first", item.ID)
	assert.Equal(t, model.Stock{}, item.Attributes)
}
