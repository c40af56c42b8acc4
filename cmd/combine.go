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
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/meshforge/meshkit/multiblock"
)

// combineCmd represents the combine command
var combineCmd = &cobra.Command{
	Use:   "combine <in.vtm>",
	Short: "Concatenate all blocks into one unstructured grid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		merge, _ := cmd.Flags().GetBool("merge-points")
		ascii, _ := cmd.Flags().GetBool("ascii")

		m, err := multiblock.Load(args[0])
		if err != nil {
			return err
		}
		grid := m.Combine(merge)
		log.Infof("combined %d blocks into %d points, %d cells",
			m.Len(), grid.NumPoints(), grid.NumCells())

		single := multiblock.New()
		single.Append(grid, "combined")
		return single.Save(out, writeBinary(ascii))
	},
}

func init() {
	rootCmd.AddCommand(combineCmd)
	combineCmd.Flags().StringP("output", "o", "combined.vtm", "output file (.vtm or .vtmb)")
	combineCmd.Flags().BoolP("merge-points", "m", false, "merge coincident points")
	combineCmd.Flags().Bool("ascii", false, "write ASCII arrays instead of binary")
}
