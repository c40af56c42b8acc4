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
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/meshforge/meshkit/multiblock"
	"github.com/meshforge/meshkit/readfiles"
)

// surfaceCmd represents the surface command
var surfaceCmd = &cobra.Command{
	Use:   "surface <in.vtm>",
	Short: "Extract the combined surface geometry of all blocks",
	Long: `
Extracts the surface of every block and appends the results into a single
polygonal dataset. The output extension picks the writer: .stl for a binary
STL surface, .vtm/.vtmb for a one-block collection.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		ascii, _ := cmd.Flags().GetBool("ascii")

		m, err := multiblock.Load(args[0])
		if err != nil {
			return err
		}
		surf := m.ExtractGeometry()
		log.Infof("extracted surface: %d points, %d polygons",
			surf.NumPoints(), len(surf.Polys))

		if strings.ToLower(filepath.Ext(out)) == ".stl" {
			return readfiles.WriteSTL(surf, out)
		}
		single := multiblock.New()
		single.Append(surf, "surface")
		return single.Save(out, writeBinary(ascii))
	},
}

func init() {
	rootCmd.AddCommand(surfaceCmd)
	surfaceCmd.Flags().StringP("output", "o", "surface.vtm", "output file (.vtm, .vtmb or .stl)")
	surfaceCmd.Flags().Bool("ascii", false, "write ASCII arrays instead of binary")
}
