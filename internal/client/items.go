package client

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mdouchement/resourcekit/internal/client/editor"
	"github.com/mdouchement/resourcekit/internal/logger"
	"github.com/mdouchement/resourcekit/internal/model"
	"github.com/mdouchement/resourcekit/pkg/librk"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// A Command holds what the item commands need to run.
type Command struct {
	Client  librk.Client
	Out     io.Writer
	Logger  logrus.FieldLogger
	Verbose bool
}

// NewCommand builds a Command from the configuration.
func NewCommand(cfg Config, out io.Writer) (*Command, error) {
	client, err := librk.NewDefaultClient(cfg.Endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "could not reach resource endpoint")
	}

	return &Command{
		Client: client,
		Out:    out,
		Logger: logger.NewFile(cfg.LogFile),
	}, nil
}

// ErrUnknownType is returned when an item type is not one of model.Types.
var ErrUnknownType = errors.New("unknown item type")

func checkType(t string) error {
	if !model.ItemType(t).Known() {
		return errors.Wrapf(ErrUnknownType, "%q", t)
	}
	return nil
}

// List prints the items matching the filter.
func (c *Command) List(f librk.Filter) error {
	if err := checkType(f.Type); err != nil {
		return err
	}

	items, err := c.Client.ListItems(f)
	if err != nil {
		return errors.Wrap(err, "could not list items")
	}

	if c.Verbose {
		fmt.Fprintln(c.Out, logger.Dump(items))
		return nil
	}

	w := tabwriter.NewWriter(c.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tNAME\tLOCATION")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.Identifier(), item.Type, item.Name, item.Location)
	}
	return w.Flush()
}

// Show prints one item.
func (c *Command) Show(id string) error {
	item, err := c.Client.GetItem(id)
	if err != nil {
		return errors.Wrap(err, "could not get item")
	}

	if c.Verbose {
		fmt.Fprintln(c.Out, logger.Dump(item))
		return nil
	}

	w := tabwriter.NewWriter(c.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ID\t%s\n", item.Identifier())
	fmt.Fprintf(w, "TYPE\t%s\n", item.Type)
	for _, f := range editor.Fields {
		fmt.Fprintf(w, "%s\t%s\n", f, value(item, f))
	}
	return w.Flush()
}

// Create submits a new item and prints its identifier.
func (c *Command) Create(item librk.Item) error {
	if err := checkType(item.Type); err != nil {
		return err
	}

	created, err := c.Client.CreateItem(item)
	if err != nil {
		c.Logger.WithError(err).Error("could not create item")
		return errors.Wrap(err, "could not create item")
	}

	fmt.Fprintln(c.Out, created.Identifier())
	return nil
}

// An Edition describes the changes requested on an item.
type Edition struct {
	Values      map[editor.Field]string
	UseLocation bool
	Position    *editor.Position
}

// Edit applies the edition on the item identified by id then submits it.
func (c *Command) Edit(id string, e Edition) error {
	item, err := c.Client.GetItem(id)
	if err != nil {
		return errors.Wrap(err, "could not get item")
	}

	s := editor.NewSession(item, editor.IOC{
		Remote:  c.Client,
		Locator: FixedLocator{Position: e.Position},
		View:    &Terminal{Out: c.Out, AssumeYes: true},
		Logger:  c.Logger,
	})
	<-s.Focus() // FixedLocator resolves immediately

	for _, f := range editor.Fields {
		v, ok := e.Values[f]
		if !ok {
			continue
		}
		if err := s.Set(f, v); err != nil {
			return errors.Wrapf(err, "could not set %s", f)
		}
	}

	if e.UseLocation {
		s.ToggleUseLocation()
	}

	return s.Update()
}

// Delete removes the item identified by id after confirmation.
func (c *Command) Delete(id string, assumeYes bool) error {
	item, err := c.Client.GetItem(id)
	if err != nil {
		return errors.Wrap(err, "could not get item")
	}

	s := editor.NewSession(item, editor.IOC{
		Remote: c.Client,
		View:   &Terminal{Out: c.Out, AssumeYes: assumeYes},
		Logger: c.Logger,
	})

	deleted, err := s.Delete()
	if err == nil && !deleted {
		fmt.Fprintln(c.Out, "Cancelled")
	}
	return err
}

func value(item librk.Item, f editor.Field) string {
	switch f {
	case editor.FieldName:
		return item.Name
	case editor.FieldQuantity:
		return string(item.Quantity)
	case editor.FieldNumberOfPeople:
		return item.NumberOfPeople
	case editor.FieldStart:
		return item.Start
	case editor.FieldEnd:
		return item.End
	case editor.FieldContactName:
		return item.ContactName
	case editor.FieldContactEmail:
		return item.ContactEmail
	case editor.FieldDescription:
		return item.Description
	case editor.FieldLocation:
		return item.Location
	}
	return ""
}
