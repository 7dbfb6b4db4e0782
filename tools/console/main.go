package main

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/asdine/storm/v3"
	"github.com/mdouchement/resourcekit/internal/database"
	"github.com/mdouchement/resourcekit/internal/model"
	"github.com/mdouchement/resourcekit/pkg/stormsql"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// go run tools/console/main.go resourcekit.db " SELECT count(*) FROM items WHERE Type = 'Meals' AND WhenCreated > '2020-02-03 10:04:05';  "

func main() {
	c := &cobra.Command{
		Use:   "console",
		Short: "SQL console for resourcekit database",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			//
			//
			sc, err := stormsql.ParseSelect(args[1])
			if err != nil {
				return err
			}
			if sc.Tablename != "items" {
				return errors.Errorf("unknown tablename: %s", sc.Tablename)
			}

			//
			//
			fmt.Println("Opening", args[0])
			db, err := storm.Open(args[0], database.StormCodec)
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			query := sc.Query(db)

			// Execute

			if sc.Count {
				n, err := query.Count(&model.Item{})
				if err != nil {
					return errors.Wrap(err, "could not perform query")
				}

				fmt.Println("Count:", n)
				return nil
			}

			var items []*model.Item
			err = query.Find(&items)
			if err == storm.ErrNotFound {
				fmt.Println("[]")
				return nil
			}
			if err != nil {
				return errors.Wrap(err, "could not perform query")
			}

			return jsondump(project(sc.SelectedFields, items))
		},
	}

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

// project keeps only the selected fields of each item, matched case-insensitively on JSON keys.
func project(fields []string, items []*model.Item) any {
	if len(fields) == 0 {
		return items
	}

	rows := make([]map[string]json.RawMessage, 0, len(items))
	for _, item := range items {
		payload, err := json.Marshal(item)
		if err != nil {
			continue
		}

		var all map[string]json.RawMessage
		if err = json.Unmarshal(payload, &all); err != nil {
			continue
		}

		row := map[string]json.RawMessage{}
		for _, f := range fields {
			for k, v := range all {
				if strings.EqualFold(k, f) {
					row[k] = v
				}
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func jsondump(v any) error {
	d, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not serialize result")
	}
	fmt.Println(string(d))
	return nil
}
