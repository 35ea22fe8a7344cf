// Handles the "roots3 create-bucket" command
package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var createBucketCmdConfig struct {
	name string
}

var createBucketCmd = &cobra.Command{
	Use:   "create-bucket",
	Short: "Create a bucket in the configured project",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := rootsMgr.Client.CreateBucket(cmd.Context(), createBucketCmdConfig.name); err != nil {
			return errors.Wrap(err, "Create bucket failed")
		}
		rootsMgr.Logger.Info("Created bucket: " + createBucketCmdConfig.name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createBucketCmd)

	createBucketCmd.Flags().StringVarP(&createBucketCmdConfig.name, "name", "n", "", "name of the bucket to create")
	createBucketCmd.MarkFlagRequired("name")
}
