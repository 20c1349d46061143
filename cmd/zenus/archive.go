package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var archiveCmd = &cobra.Command{
	Use:   "archive [id]",
	Short: "Move a note to the archive",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service := openService()
		if err := service.ArchiveNote(context.Background(), args[0]); err != nil {
			fatal("Failed to archive note", err)
		}
		fmt.Printf("Note archived: %s\n", args[0])
	},
}

var unarchiveCmd = &cobra.Command{
	Use:   "unarchive [id]",
	Short: "Restore a note from the archive",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service := openService()
		if err := service.UnarchiveNote(context.Background(), args[0]); err != nil {
			fatal("Failed to unarchive note", err)
		}
		fmt.Printf("Note restored: %s\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(unarchiveCmd)
}
