package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	// search subcommand
	var serial, classification, notes string
	var fieldPairs []string
	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Search records by serial, classification, notes or field values",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := buildSearchPayload(serial, classification, notes, fieldPairs)
			if err != nil {
				return err
			}
			data, err := doPostJSON("/api/search", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	searchCmd.Flags().StringVarP(&serial, "serial", "s", "", "Serial number, with or without leading #")
	searchCmd.Flags().StringVarP(&classification, "classification", "c", "", "Exact classification")
	searchCmd.Flags().StringVarP(&notes, "notes", "n", "", "Notes substring (case-insensitive)")
	searchCmd.Flags().StringArrayVarP(&fieldPairs, "field", "f", nil, "Field criterion as key=value (repeatable)")
	rootCmd.AddCommand(searchCmd)

	// duplicates subcommand
	duplicatesCmd := &cobra.Command{Use: "duplicates", Short: "Duplicate reports"}
	for _, group := range []string{"conflicting", "consistent"} {
		g := group
		duplicatesCmd.AddCommand(&cobra.Command{
			Use:   g,
			Short: fmt.Sprintf("List %s duplicate records", g),
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := doGet("/api/duplicates/" + g)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(os.Stdout, string(data))
				return nil
			},
		})
	}
	rootCmd.AddCommand(duplicatesCmd)
}

// buildSearchPayload assembles the /api/search request body. Keys must match
// the server's search.Criteria JSON tags.
func buildSearchPayload(serial, classification, notes string, fieldPairs []string) (map[string]interface{}, error) {
	fields := map[string]string{}
	for _, p := range fieldPairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("--field wants key=value, got %q", p)
		}
		fields[k] = v
	}
	payload := map[string]interface{}{}
	if serial != "" {
		payload["serialNumber"] = serial
	}
	if classification != "" {
		payload["classification"] = classification
	}
	if notes != "" {
		payload["notesSubstring"] = notes
	}
	if len(fields) > 0 {
		payload["fields"] = fields
	}
	return payload, nil
}
