package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/aretw0/zenus/pkg/core"
)

var (
	putID        string
	putTitle     string
	putContent   string
	putFile      string
	putCollapsed bool
	putOrder     int
	putTags      []string
)

// putCmd represents the put command
var putCmd = &cobra.Command{
	Use:   "put",
	Short: "Create or overwrite a note",
	Long: `Create or update the note with the given ID. Without --id a new
time-ordered id is generated and printed. --file - reads the content from stdin.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		content, err := readContent(putContent, putFile, os.Stdin)
		if err != nil {
			fatal("Failed to read content", err)
		}

		id := putID
		if id == "" {
			generated, err := uuid.NewV7()
			if err != nil {
				fatal("Failed to generate id", err)
			}
			id = generated.String()
		}

		note := core.NoteBlock{
			ID:          id,
			Title:       putTitle,
			Content:     content,
			IsCollapsed: putCollapsed,
			Order:       putOrder,
			Tags:        putTags,
		}

		service := openService()
		if err := service.SaveNote(context.Background(), note); err != nil {
			fatal("Failed to save note", err)
		}

		fmt.Println(id)
	},
}

// readContent returns inline content, or the file at path ("-" for stdin).
func readContent(inline, path string, stdin io.Reader) (string, error) {
	switch path {
	case "":
		return inline, nil
	case "-":
		data, err := io.ReadAll(stdin)
		return string(data), err
	default:
		data, err := os.ReadFile(path)
		return string(data), err
	}
}

func init() {
	rootCmd.AddCommand(putCmd)
	putCmd.Flags().StringVar(&putID, "id", "", "Note ID (file name without extension)")
	putCmd.Flags().StringVar(&putTitle, "title", "", "Note title")
	putCmd.Flags().StringVar(&putContent, "content", "", "Note content")
	putCmd.Flags().StringVar(&putFile, "file", "", "Read content from a file, or - for stdin")
	putCmd.Flags().BoolVar(&putCollapsed, "collapsed", false, "Store the note collapsed")
	putCmd.Flags().IntVar(&putOrder, "order", 0, "Display order")
	putCmd.Flags().StringSliceVar(&putTags, "tag", nil, "Tag to attach (repeatable)")
	putCmd.MarkFlagRequired("title")
	putCmd.MarkFlagsMutuallyExclusive("content", "file")
}
