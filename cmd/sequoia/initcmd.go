package main

import (
	"github.com/ojrosten/sequoia-sub007/harness"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init <copyright> <path>",
	Short: "bootstrap a new project (external scaffolder)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return harness.ErrScaffoldingUnavailable
	},
}
