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
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	verbose  bool
	profMode string
	profStop interface{ Stop() }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "meshkit",
	Short: "Inspect and transform multi-block mesh collections",
	Long: `
meshkit works with multi-block dataset collections: ordered, named lists of
meshes, grids and point clouds. It prints collection summaries, merges
blocks, extracts surface geometry and assembles collections from YAML
manifests.

meshkit info model.vtm`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
		switch profMode {
		case "":
		case "cpu":
			profStop = profile.Start(profile.CPUProfile, profile.ProfilePath("."))
		case "mem":
			profStop = profile.Start(profile.MemProfile, profile.ProfilePath("."))
		default:
			log.Warnf("unknown profile mode %q, expected cpu or mem", profMode)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profStop != nil {
			profStop.Stop()
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.meshkit.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&profMode, "profile", "", "write a cpu or mem profile to the working directory")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		// Search config in home directory with name ".meshkit"
		viper.AddConfigPath(home)
		viper.SetConfigName(".meshkit")
	}

	viper.SetDefault("ascii", false)
	viper.SetEnvPrefix("meshkit")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.Debugf("using config file: %s", viper.ConfigFileUsed())
	}
}

// writeBinary resolves the output encoding: the --ascii flag wins, then the
// "ascii" config key.
func writeBinary(asciiFlag bool) bool {
	if asciiFlag {
		return false
	}
	return !viper.GetBool("ascii")
}
