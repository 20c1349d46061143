package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/zenus/pkg/core"
)

var reorderCmd = &cobra.Command{
	Use:   "reorder ID=ORDER...",
	Short: "Set the display order of several notes",
	Long: `Reorder applies each ID=ORDER pair in turn. Unknown ids are skipped;
notes already updated keep their new order if a later one fails.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		updates, err := parseOrderUpdates(args)
		if err != nil {
			fatal("Invalid argument", err)
		}

		service := openService()
		if err := service.Reorder(context.Background(), updates); err != nil {
			fatal("Failed to reorder notes", err)
		}

		fmt.Printf("Reordered %d note(s)\n", len(updates))
	},
}

// parseOrderUpdates turns ["a=1", "b=2"] into order updates. The last '=' splits,
// so ids may contain '='.
func parseOrderUpdates(args []string) ([]core.OrderUpdate, error) {
	updates := make([]core.OrderUpdate, 0, len(args))
	for _, arg := range args {
		i := strings.LastIndex(arg, "=")
		if i <= 0 {
			return nil, fmt.Errorf("expected ID=ORDER, got %q", arg)
		}
		order, err := strconv.Atoi(arg[i+1:])
		if err != nil {
			return nil, fmt.Errorf("invalid order in %q: %w", arg, err)
		}
		updates = append(updates, core.OrderUpdate{ID: arg[:i], Order: order})
	}
	return updates, nil
}

func init() {
	rootCmd.AddCommand(reorderCmd)
}
