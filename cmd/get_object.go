// Handles the "roots3 get-object" command
package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var getObjectCmdConfig struct {
	bucket string
	key    string
	output string
}

var getObjectCmd = &cobra.Command{
	Use:   "get-object",
	Short: "Download an object to a local file",
	RunE: func(cmd *cobra.Command, args []string) error {
		written, err := rootsMgr.Client.DownloadFile(cmd.Context(),
			getObjectCmdConfig.bucket, getObjectCmdConfig.key, getObjectCmdConfig.output)
		if err != nil {
			return errors.Wrap(err, "Get object failed")
		}
		rootsMgr.Logger.Info(fmt.Sprintf("Downloaded %s to %s (%d bytes)",
			getObjectCmdConfig.key, getObjectCmdConfig.output, written))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getObjectCmd)

	getObjectCmd.Flags().StringVarP(&getObjectCmdConfig.bucket, "bucket", "b", "", "source bucket")
	getObjectCmd.Flags().StringVarP(&getObjectCmdConfig.key, "key", "k", "", "object key")
	getObjectCmd.Flags().StringVarP(&getObjectCmdConfig.output, "output", "o", "", "local file to write")
	getObjectCmd.MarkFlagRequired("bucket")
	getObjectCmd.MarkFlagRequired("key")
	getObjectCmd.MarkFlagRequired("output")
}
