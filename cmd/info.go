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
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/meshforge/meshkit/dataset"
	"github.com/meshforge/meshkit/multiblock"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <file.vtm>",
	Short: "Print a summary of a multi-block collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := multiblock.Load(args[0])
		if err != nil {
			return err
		}
		printInfo(m)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func printInfo(m *multiblock.MultiBlock) {
	head := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.FgWhite)

	head.Println("MultiBlock")
	b := m.Bounds()
	dim.Printf("  N Blocks: %d\n", m.Len())
	dim.Printf("  X Bounds: %.3f, %.3f\n", b[0], b[1])
	dim.Printf("  Y Bounds: %.3f, %.3f\n", b[2], b[3])
	dim.Printf("  Z Bounds: %.3f, %.3f\n", b[4], b[5])

	head.Println("Blocks")
	fmt.Printf("  %-6s %-20s %-18s %8s %8s\n", "Index", "Name", "Type", "Points", "Cells")
	for i, obj := range m.All() {
		name := m.BlockName(i)
		if ds, ok := obj.(dataset.DataSet); ok {
			fmt.Printf("  %-6d %-20s %-18s %8d %8d\n",
				i, name, ds.TypeName(), ds.NumPoints(), ds.NumCells())
		} else if obj == nil {
			fmt.Printf("  %-6d %-20s %-18s\n", i, name, "None")
		} else {
			fmt.Printf("  %-6d %-20s %-18T\n", i, name, obj)
		}
	}
}
