/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/meshforge/meshkit/manifest"
)

// assembleCmd represents the assemble command
var assembleCmd = &cobra.Command{
	Use:   "assemble <manifest.yaml>",
	Short: "Build a multi-block collection from a YAML manifest",
	Long: `
Reads a YAML manifest mapping block names to dataset files, loads every
file and writes the assembled collection. Example manifest:

  Title: wind tunnel
  Blocks:
    body: body.stl
    wake: wake.vtm`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		ascii, _ := cmd.Flags().GetBool("ascii")

		m, err := manifest.Load(args[0])
		if err != nil {
			return err
		}
		return m.Save(out, writeBinary(ascii))
	},
}

func init() {
	rootCmd.AddCommand(assembleCmd)
	assembleCmd.Flags().StringP("output", "o", "assembled.vtm", "output file (.vtm or .vtmb)")
	assembleCmd.Flags().Bool("ascii", false, "write ASCII arrays instead of binary")
}
