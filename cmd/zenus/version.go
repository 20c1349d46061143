package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/zenus"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of zenus",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("zenus version %s\n", strings.TrimSpace(zenus.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
