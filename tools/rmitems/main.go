package main

import (
	"fmt"
	"log"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/q"
	"github.com/mdouchement/resourcekit/internal/database"
	"github.com/mdouchement/resourcekit/internal/model"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func main() {
	c := &cobra.Command{
		Use:   "rmitems DATABASE USERID",
		Short: "Remove all the items of a user from the database",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			//
			//
			fmt.Println("Opening", args[0])
			db, err := storm.Open(args[0], database.StormCodec)
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			query := db.Select(q.Eq("UserID", args[1]))

			n, err := query.Count(&model.Item{})
			if err != nil {
				return errors.Wrap(err, "count items")
			}
			if n == 0 {
				fmt.Println("No item for this user")
				return nil
			}
			fmt.Println("Items found:", n)

			err = query.Delete(&model.Item{})
			if err != nil && err != storm.ErrNotFound {
				return errors.Wrap(err, "delete items")
			}
			fmt.Println("Items removed")

			return nil
		},
	}

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}
