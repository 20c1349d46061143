package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/zenus/pkg/adapters/lifecycle"
	"github.com/aretw0/zenus/pkg/core"
)

var (
	watchMatch     string
	watchPartition string
	watchTypes     []string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print note changes as they happen (local mode only)",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service := openService()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, err := service.Watch(ctx, watchMatch)
		if err != nil {
			fatal("Failed to watch notes", err)
		}

		opts := []lifecycle.Option{lifecycle.WithPartition(core.Partition(watchPartition))}
		if len(watchTypes) > 0 {
			types := make([]core.EventType, 0, len(watchTypes))
			for _, t := range watchTypes {
				types = append(types, core.EventType(strings.ToUpper(t)))
			}
			opts = append(opts, lifecycle.WithTypes(types...))
		}

		source := lifecycle.NewSource(events, opts...)
		if err := source.Start(ctx); err != nil {
			fatal("Failed to start watch", err)
		}
		for e := range source.Events() {
			fmt.Println(e.String())
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchMatch, "match", "", "Only report note ids matching this glob")
	watchCmd.Flags().StringVar(&watchPartition, "partition", "", "Only report changes in this partition (active or archived)")
	watchCmd.Flags().StringSliceVar(&watchTypes, "type", nil, "Only report these change types (create, modify, delete)")
}
