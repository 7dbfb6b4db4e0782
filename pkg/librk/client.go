package librk

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"path"

	"github.com/pkg/errors"
)

type (
	// A Client defines all interactions that can be performed on a resource server.
	Client interface {
		// ListItems returns the items matching the given filter.
		ListItems(f Filter) ([]Item, error)
		// GetItem returns the item for the given identifier.
		GetItem(id string) (Item, error)
		// CreateItem submits a new item.
		CreateItem(item Item) (Item, error)
		// UpdateItem submits the new state of an existing item.
		UpdateItem(p Payload) (Item, error)
		// DeleteItem removes an existing item.
		DeleteItem(p Payload) error
	}

	client struct {
		http     *http.Client
		endpoint string
	}
)

// ErrNoIdentifier is returned when a payload without identifier is submitted.
var ErrNoIdentifier = errors.New("item has no identifier")

// NewDefaultClient returns a new Client with default HTTP client.
func NewDefaultClient(endpoint string) (Client, error) {
	return NewClient(http.DefaultClient, endpoint)
}

// NewClient returns a new Client.
func NewClient(c *http.Client, endpoint string) (Client, error) {
	_, err := url.Parse(endpoint)
	return &client{endpoint: endpoint, http: c}, errors.Wrap(err, "could not parse endpoint")
}

func (c *client) ListItems(f Filter) ([]Item, error) {
	query := url.Values{}
	if f.Type != "" {
		query.Set("type", f.Type)
	}
	if f.Name != "" {
		query.Set("name", f.Name)
	}
	if f.UserID != "" {
		query.Set("userID", f.UserID)
	}

	items := []Item{}
	err := c.do(http.MethodGet, "/api/resource", query, nil, &items)
	return items, err
}

func (c *client) GetItem(id string) (Item, error) {
	var item Item
	if id == "" {
		return item, ErrNoIdentifier
	}

	err := c.do(http.MethodGet, path.Join("/api/resource", id), nil, nil, &item)
	return item, err
}

func (c *client) CreateItem(item Item) (Item, error) {
	var created Item
	err := c.do(http.MethodPost, "/api/resource", nil, NewPayload(item), &created)
	return created, err
}

func (c *client) UpdateItem(p Payload) (Item, error) {
	var item Item
	if p.ID == "" {
		return item, ErrNoIdentifier
	}

	err := c.do(http.MethodPatch, path.Join("/api/resource", p.ID), nil, p, &item)
	return item, err
}

func (c *client) DeleteItem(p Payload) error {
	if p.ID == "" {
		return ErrNoIdentifier
	}

	return c.do(http.MethodDelete, path.Join("/api/resource", p.ID), nil, nil, nil)
}

func (c *client) do(method, route string, query url.Values, payload, v any) error {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return errors.Wrap(err, "could not parse endpoint")
	}
	u.Path = path.Join(u.Path, route)
	u.RawPath = ""
	u.RawQuery = query.Encode()

	//
	// Build request
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "could not serialize item")
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, u.String(), body)
	if err != nil {
		return errors.Wrap(err, "could not build request")
	}
	req.Close = true
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")

	//
	// Perform request
	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "could not perform request")
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return parseAPIError(res.Body, res.StatusCode)
	}

	//
	// Process response
	if v == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}

	dec := json.NewDecoder(res.Body)
	return errors.Wrap(dec.Decode(v), "could not parse response")
}
