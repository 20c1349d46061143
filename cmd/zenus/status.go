package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/zenus/pkg/adapters/fs"
	"github.com/aretw0/zenus/pkg/adapters/remote"
	"github.com/aretw0/zenus/pkg/core"
)

var statusDiagram bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show storage mode and state as JSON",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service := openService()

		if statusDiagram {
			config := introspection.DefaultDiagramConfig()
			config.SecondaryID = "store"
			config.SecondaryLabel = "Store Topology"
			fmt.Println(introspection.TreeDiagram(buildStoreTree(service.State().(core.ServiceState)), config))
			return
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(service.State()); err != nil {
			fatal("Failed to encode state", err)
		}
	},
}

type storeNode struct {
	Name     string
	Status   string
	Metadata map[string]string
	Children []storeNode
}

// buildStoreTree maps the service state onto diagram nodes.
// Status values follow introspection.DefaultStyles().
func buildStoreTree(state core.ServiceState) storeNode {
	root := storeNode{
		Name:   "Service",
		Status: "running",
		Metadata: map[string]string{
			"type":     "process",
			"watchers": fmt.Sprintf("%d", state.ActiveWatchers),
		},
	}

	switch s := state.RepositoryState.(type) {
	case fs.RepositoryState:
		watcherStatus := "suspended"
		if s.WatcherActive {
			watcherStatus = "running"
		}
		root.Children = []storeNode{
			{
				Name:     "Active",
				Status:   "running",
				Metadata: map[string]string{"type": "container", "path": s.Path, "notes": fmt.Sprintf("%d", s.ActiveNotes)},
			},
			{
				Name:     "Archive",
				Status:   "running",
				Metadata: map[string]string{"type": "container", "path": s.ArchivePath, "notes": fmt.Sprintf("%d", s.ArchivedNotes)},
			},
			{
				Name:     "Watcher",
				Status:   watcherStatus,
				Metadata: map[string]string{"type": "goroutine"},
			},
		}
	case remote.ClientState:
		root.Children = []storeNode{
			{
				Name:   "Remote",
				Status: "running",
				Metadata: map[string]string{
					"type":     "process",
					"url":      s.BaseURL,
					"requests": fmt.Sprintf("%d", s.Requests),
					"failures": fmt.Sprintf("%d", s.Failures),
				},
			},
		}
	}
	return root
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusDiagram, "diagram", false, "Print a Mermaid diagram instead of JSON")
}
