// Handles the "roots3 copy-object" command
package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var copyObjectCmdConfig struct {
	sourceBucket string
	sourceKey    string
	bucket       string
	key          string
}

var copyObjectCmd = &cobra.Command{
	Use:   "copy-object",
	Short: "Copy an object server-side within the project",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := rootsMgr.Client.CopyObject(cmd.Context(),
			copyObjectCmdConfig.sourceBucket, copyObjectCmdConfig.sourceKey,
			copyObjectCmdConfig.bucket, copyObjectCmdConfig.key); err != nil {
			return errors.Wrap(err, "Copy object failed")
		}
		rootsMgr.Logger.Info("Copied " + copyObjectCmdConfig.sourceBucket + "/" + copyObjectCmdConfig.sourceKey +
			" to " + copyObjectCmdConfig.bucket + "/" + copyObjectCmdConfig.key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(copyObjectCmd)

	copyObjectCmd.Flags().StringVar(&copyObjectCmdConfig.sourceBucket, "source-bucket", "", "bucket to copy from")
	copyObjectCmd.Flags().StringVar(&copyObjectCmdConfig.sourceKey, "source-key", "", "key to copy from")
	copyObjectCmd.Flags().StringVarP(&copyObjectCmdConfig.bucket, "bucket", "b", "", "destination bucket")
	copyObjectCmd.Flags().StringVarP(&copyObjectCmdConfig.key, "key", "k", "", "destination key")
	copyObjectCmd.MarkFlagRequired("source-bucket")
	copyObjectCmd.MarkFlagRequired("source-key")
	copyObjectCmd.MarkFlagRequired("bucket")
	copyObjectCmd.MarkFlagRequired("key")
}
