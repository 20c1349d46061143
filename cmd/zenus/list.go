package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/aretw0/zenus/pkg/core"
)

var (
	listArchived bool
	listJSON     bool
	filterTag    string
	filterMatch  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes in display order",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service := openService()

		partition := core.Active
		if listArchived {
			partition = core.Archived
		}

		notes, err := service.ListNotes(context.Background(), partition)
		if err != nil {
			fatal("Failed to list notes", err)
		}

		filtered, err := filterNotes(notes, filterTag, filterMatch)
		if err != nil {
			fatal("Invalid filter", err)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(filtered); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, note := range filtered {
			marker := " "
			if note.IsCollapsed {
				marker = "+"
			}
			fmt.Printf("%4d %s %s - %s\n", note.Order, marker, note.ID, note.Title)
		}
	},
}

// filterNotes keeps notes carrying tag (if set) whose id matches the glob (if set).
// The result is never nil so JSON output is always an array.
func filterNotes(notes []core.NoteBlock, tag, match string) ([]core.NoteBlock, error) {
	if match != "" && !doublestar.ValidatePattern(match) {
		return nil, fmt.Errorf("invalid pattern %q", match)
	}

	filtered := make([]core.NoteBlock, 0, len(notes))
	for _, note := range notes {
		if tag != "" && !note.HasTag(tag) {
			continue
		}
		if match != "" {
			ok, err := doublestar.Match(match, note.ID)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		filtered = append(filtered, note)
	}
	return filtered, nil
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listArchived, "archived", false, "List the archive instead of active notes")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&filterTag, "tag", "", "Filter notes by tag")
	listCmd.Flags().StringVar(&filterMatch, "match", "", "Filter note ids by glob (e.g. 'work-*')")
}
