package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	recordsCmd := &cobra.Command{Use: "records", Short: "Record operations"}

	// list
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all records, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/records")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	recordsCmd.AddCommand(listCmd)

	// create
	var kind, body string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a record from a JSON payload",
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload map[string]interface{}
			if err := json.Unmarshal([]byte(body), &payload); err != nil {
				return fmt.Errorf("invalid --json payload: %w", err)
			}
			var path string
			switch kind {
			case "part1":
				path = "/api/records/part1"
			case "part2":
				path = "/api/records/part2"
			case "common":
				path = "/api/records/common"
			default:
				return fmt.Errorf("--kind must be part1, part2 or common")
			}
			data, err := doPostJSON(path, payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&kind, "kind", "k", "common", "Entry kind: part1, part2 or common")
	createCmd.Flags().StringVarP(&body, "json", "j", "", "Record payload as JSON (required)")
	_ = createCmd.MarkFlagRequired("json")
	recordsCmd.AddCommand(createCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get RECORD_ID",
		Short: "Get record by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/records/" + args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	recordsCmd.AddCommand(getCmd)

	// update
	var updateBody string
	updateCmd := &cobra.Command{
		Use:   "update RECORD_ID",
		Short: "Update a record from a JSON payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload map[string]interface{}
			if err := json.Unmarshal([]byte(updateBody), &payload); err != nil {
				return fmt.Errorf("invalid --json payload: %w", err)
			}
			data, err := doPutJSON("/api/records/"+args[0], payload)
			if err != nil {
				return err
			}
			if len(data) == 0 {
				_, _ = fmt.Fprintln(os.Stdout, "record no longer exists; nothing updated")
				return nil
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	updateCmd.Flags().StringVarP(&updateBody, "json", "j", "", "Record payload as JSON (required)")
	_ = updateCmd.MarkFlagRequired("json")
	recordsCmd.AddCommand(updateCmd)

	// delete
	deleteCmd := &cobra.Command{
		Use:   "delete RECORD_ID",
		Short: "Delete record by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := doDelete("/api/records/" + args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, "deleted")
			return nil
		},
	}
	recordsCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(recordsCmd)
}
