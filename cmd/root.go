// Root of command-line argument parsing.
// This file was based off the standard cobra template, see
// https://github.com/spf13/cobra
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rootstorage/roots3/pkg/rootsmgr"
)

var rootCmdConfig struct {
	cfgFile string
	url     string
	project int
	apiKey  string
}

var rootsMgr *rootsmgr.Manager

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "roots3",
	Short: "Project-scoped CLI for the Root storage gateway",
	Long: `Bucket and object operations against an S3-compatible Root storage
gateway, authenticated with an API key and scoped to a single project.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		mgrArgs := map[string]interface{}{}
		if rootCmdConfig.cfgFile != "" {
			mgrArgs["config-file"] = rootCmdConfig.cfgFile
		}
		if cmd.Flags().Changed("url") {
			mgrArgs["url"] = rootCmdConfig.url
		}
		if cmd.Flags().Changed("project") {
			mgrArgs["project"] = rootCmdConfig.project
		}
		if cmd.Flags().Changed("api-key") {
			mgrArgs["api-key"] = rootCmdConfig.apiKey
		}

		var err error
		rootsMgr, err = rootsmgr.NewManager(mgrArgs)
		if err != nil {
			fmt.Printf("Failed to initialize roots3: %v\n", err)
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by roots3.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if rootsMgr == nil || rootsMgr.Logger == nil {
			fmt.Printf("%v\n", err)
		} else {
			rootsMgr.Logger.Error(err)
		}
		os.Exit(1)
	}
}

// parseKeyValue turns "k1=v1,k2=v2" into a map, for --metadata.
func parseKeyValue(s string) map[string]string {

	if s == "" {
		return nil
	}

	result := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		keyValue := strings.Split(pair, "=")
		if len(keyValue) == 2 {
			result[keyValue[0]] = keyValue[1]
		}
	}

	return result
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootCmdConfig.cfgFile, "config", "", "config file (default is ~/.roots3.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootCmdConfig.url, "url", "u", "http://localhost:9000", "base URL of the storage gateway")
	rootCmd.PersistentFlags().IntVarP(&rootCmdConfig.project, "project", "p", 0, "project id scoping all operations")
	rootCmd.PersistentFlags().StringVar(&rootCmdConfig.apiKey, "api-key", "", "gateway API key (or ROOTS3_API_KEY)")
}
