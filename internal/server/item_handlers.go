package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/resourcekit/internal/apierror"
	"github.com/mdouchement/resourcekit/internal/database"
	"github.com/mdouchement/resourcekit/internal/model"
	"github.com/mdouchement/resourcekit/internal/normalizer"
	"github.com/mdouchement/resourcekit/internal/server/service"
)

// item contains all item handlers.
type item struct {
	service *service.ItemService
	metrics *metrics
}

///// List
////
//

// List returns the items matching the `type`, `name` and `userID` query parameters.
func (h *item) List(c echo.Context) error {
	items, err := h.service.List(database.ItemParams{
		Type:   model.ItemType(c.QueryParam("type")),
		Name:   c.QueryParam("name"),
		UserID: c.QueryParam("userID"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, items)
}

///// Show
////
//

// Show returns one item.
func (h *item) Show(c echo.Context) error {
	item, err := h.service.Find(c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, item)
}

///// Create
////
//

// Create normalizes and stores a new item.
func (h *item) Create(c echo.Context) error {
	body := normalizer.Body{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.New("Could not get item params."))
	}

	item, err := h.service.Create(body)
	if err != nil {
		return err
	}
	h.metrics.operation("create", item.Type)

	return c.JSON(http.StatusCreated, item)
}

///// Update
////
//

// Update re-normalizes an existing item from the request body.
func (h *item) Update(c echo.Context) error {
	body := normalizer.Body{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.New("Could not get item params."))
	}

	item, err := h.service.Update(c.Param("id"), body)
	if err != nil {
		return err
	}
	h.metrics.operation("update", item.Type)

	return c.JSON(http.StatusOK, item)
}

///// Delete
////
//

// Delete removes an item.
func (h *item) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Param("id")); err != nil {
		return err
	}
	h.metrics.operation("delete", "")

	return c.NoContent(http.StatusNoContent)
}
