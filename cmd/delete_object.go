// Handles the "roots3 delete-object" command
package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var deleteObjectCmdConfig struct {
	bucket string
	key    string
}

var deleteObjectCmd = &cobra.Command{
	Use:   "delete-object",
	Short: "Delete an object (succeeds even if the key is absent)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := rootsMgr.Client.DeleteObject(cmd.Context(),
			deleteObjectCmdConfig.bucket, deleteObjectCmdConfig.key); err != nil {
			return errors.Wrap(err, "Delete object failed")
		}
		rootsMgr.Logger.Info("Deleted object: " + deleteObjectCmdConfig.key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteObjectCmd)

	deleteObjectCmd.Flags().StringVarP(&deleteObjectCmdConfig.bucket, "bucket", "b", "", "target bucket")
	deleteObjectCmd.Flags().StringVarP(&deleteObjectCmdConfig.key, "key", "k", "", "object key")
	deleteObjectCmd.MarkFlagRequired("bucket")
	deleteObjectCmd.MarkFlagRequired("key")
}
