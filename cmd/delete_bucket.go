// Handles the "roots3 delete-bucket" command
package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var deleteBucketCmdConfig struct {
	name string
}

var deleteBucketCmd = &cobra.Command{
	Use:   "delete-bucket",
	Short: "Delete an empty bucket from the configured project",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := rootsMgr.Client.DeleteBucket(cmd.Context(), deleteBucketCmdConfig.name); err != nil {
			return errors.Wrap(err, "Delete bucket failed")
		}
		rootsMgr.Logger.Info("Deleted bucket: " + deleteBucketCmdConfig.name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteBucketCmd)

	deleteBucketCmd.Flags().StringVarP(&deleteBucketCmdConfig.name, "name", "n", "", "name of the bucket to delete")
	deleteBucketCmd.MarkFlagRequired("name")
}
