package main

import "github.com/spf13/cobra"

var updateMaterialsHard bool

var updateMaterialsCmd = &cobra.Command{
	Use:   "update-materials",
	Short: "overwrite predictive materials with the working copy's obtained results",
	RunE: func(cmd *cobra.Command, args []string) error {
		updateMaterials = true
		return runSelected()
	},
}

func init() {
	updateMaterialsCmd.Flags().BoolVar(&updateMaterialsHard, "hard", false, "also overwrite materials for tests that passed")
}
