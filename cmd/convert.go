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

	"github.com/meshforge/meshkit/multiblock"
	"github.com/meshforge/meshkit/readfiles"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <in>",
	Short: "Convert any supported file to a multi-block collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		ascii, _ := cmd.Flags().GetBool("ascii")

		obj, err := readfiles.Read(args[0])
		if err != nil {
			return err
		}
		m, ok := obj.(*multiblock.MultiBlock)
		if !ok {
			m = multiblock.New()
			m.Append(obj)
		}
		return m.Save(out, writeBinary(ascii))
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringP("output", "o", "converted.vtm", "output file (.vtm or .vtmb)")
	convertCmd.Flags().Bool("ascii", false, "write ASCII arrays instead of binary")
}
