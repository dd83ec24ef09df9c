package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	backupCmd := &cobra.Command{Use: "backup", Short: "Backup operations"}

	// export
	var outFile string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export all records as a JSON backup document",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/backup")
			if err != nil {
				return err
			}
			if outFile == "" {
				_, _ = fmt.Fprintln(os.Stdout, string(data))
				return nil
			}
			if err := os.WriteFile(outFile, data, 0o644); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(os.Stdout, "wrote %d bytes to %s\n", len(data), outFile)
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "Write the document to a file instead of stdout")
	backupCmd.AddCommand(exportCmd)

	// import
	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import records from a JSON backup document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			data, err := checkStatus(newClient().R().SetBody(doc).Post("/api/backup"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	backupCmd.AddCommand(importCmd)

	rootCmd.AddCommand(backupCmd)

	// migrate is top level; it targets legacy single-blob exports
	migrateCmd := &cobra.Command{
		Use:   "migrate FILE",
		Short: "Migrate a legacy export into the record store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			data, err := checkStatus(newClient().R().SetBody(doc).Post("/api/migrate"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	rootCmd.AddCommand(migrateCmd)
}
