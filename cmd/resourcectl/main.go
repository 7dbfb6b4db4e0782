package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mdouchement/resourcekit/internal/client"
	"github.com/mdouchement/resourcekit/internal/client/editor"
	"github.com/mdouchement/resourcekit/internal/model"
	"github.com/mdouchement/resourcekit/pkg/librk"
	"github.com/spf13/cobra"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	cfg       string
	verbose   bool
	assumeYes bool
	filter    librk.Filter
	item      librk.Item
	latitude  float64
	longitude float64
	located   bool
	values    = map[editor.Field]*string{}
)

func main() {
	c := &cobra.Command{
		Use:     "resourcectl",
		Short:   "Terminal client for the resource server",
		Version: fmt.Sprintf("%s - build %.7s @ %s", version, revision, date),
		Args:    cobra.NoArgs,
	}
	c.PersistentFlags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Dump full items")

	listCmd.Flags().StringVar(&filter.Type, "type", "", "Filter by type ("+types()+")")
	listCmd.Flags().StringVar(&filter.Name, "name", "", "Filter by name (case-insensitive substring)")
	listCmd.Flags().StringVar(&filter.UserID, "user", "", "Filter by owner")
	c.AddCommand(listCmd)

	c.AddCommand(showCmd)

	createCmd.Flags().StringVar(&item.Type, "type", "", "Item type ("+types()+")")
	createCmd.Flags().StringVar(&item.Name, "name", "", "Item name")
	createCmd.Flags().StringVar(&item.UserID, "user", "", "Owner")
	createCmd.Flags().StringVar(&item.Description, "description", "", "Description")
	createCmd.Flags().StringVar(&item.Location, "location", "", "Location")
	createCmd.Flags().StringVar(&item.ContactName, "contact-name", "", "Contact name")
	createCmd.Flags().StringVar(&item.ContactEmail, "contact-email", "", "Contact email")
	createCmd.Flags().StringVar((*string)(&item.Quantity), "quantity", "", "Quantity")
	createCmd.Flags().StringVar(&item.NumberOfPeople, "number-of-people", "", "Number of people")
	createCmd.Flags().StringVar(&item.Start, "start", "", "Start date")
	createCmd.Flags().StringVar(&item.End, "end", "", "End date")
	c.AddCommand(createCmd)

	for _, f := range editor.Fields {
		values[f] = editCmd.Flags().String(string(f), "", fmt.Sprintf("New %s", f))
	}
	editCmd.Flags().Float64Var(&latitude, "latitude", 0, "Current latitude")
	editCmd.Flags().Float64Var(&longitude, "longitude", 0, "Current longitude")
	editCmd.Flags().BoolVar(&located, "use-location", false, "Use the current position as location")
	c.AddCommand(editCmd)

	deleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
	c.AddCommand(deleteCmd)

	if err := c.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func types() string {
	names := make([]string, len(model.Types))
	for i, t := range model.Types {
		names[i] = strconv.Quote(string(t))
	}
	return strings.Join(names, ", ")
}

func command() (*client.Command, error) {
	config, err := client.LoadConfig(cfg)
	if err != nil {
		return nil, err
	}

	cmd, err := client.NewCommand(config, os.Stdout)
	if err != nil {
		return nil, err
	}
	cmd.Verbose = verbose
	return cmd, nil
}

var (
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List items",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cmd, err := command()
			if err != nil {
				return err
			}
			return cmd.List(filter)
		},
	}

	showCmd = &cobra.Command{
		Use:   "show ID",
		Short: "Show an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cmd, err := command()
			if err != nil {
				return err
			}
			return cmd.Show(args[0])
		},
	}

	createCmd = &cobra.Command{
		Use:   "create",
		Short: "Create an item",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cmd, err := command()
			if err != nil {
				return err
			}
			return cmd.Create(item)
		},
	}

	editCmd = &cobra.Command{
		Use:   "edit ID",
		Short: "Edit an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cmd, err := command()
			if err != nil {
				return err
			}

			e := client.Edition{
				Values:      map[editor.Field]string{},
				UseLocation: located,
			}
			for f, v := range values {
				if c.Flags().Changed(string(f)) {
					e.Values[f] = *v
				}
			}
			if c.Flags().Changed("latitude") || c.Flags().Changed("longitude") {
				e.Position = &editor.Position{Latitude: latitude, Longitude: longitude}
			}

			return cmd.Edit(args[0], e)
		},
	}

	deleteCmd = &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cmd, err := command()
			if err != nil {
				return err
			}
			return cmd.Delete(args[0], assumeYes)
		},
	}
)
