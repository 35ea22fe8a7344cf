// Handles the "roots3 head-object" command
package cmd

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var headObjectCmdConfig struct {
	bucket string
	key    string
}

var headObjectCmd = &cobra.Command{
	Use:   "head-object",
	Short: "Show object metadata without downloading the body",
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := rootsMgr.Client.HeadObject(cmd.Context(),
			headObjectCmdConfig.bucket, headObjectCmdConfig.key)
		if err != nil {
			return errors.Wrap(err, "Head object failed")
		}

		fmt.Printf("key:           %s\n", info.Key)
		fmt.Printf("size:          %d bytes\n", info.Size)
		fmt.Printf("content-type:  %s\n", info.ContentType)
		fmt.Printf("last-modified: %s\n", info.LastModified.Format(time.RFC3339))
		fmt.Printf("etag:          %s\n", info.ETag)
		for k, v := range info.Metadata {
			fmt.Printf("meta %s: %s\n", k, v)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(headObjectCmd)

	headObjectCmd.Flags().StringVarP(&headObjectCmdConfig.bucket, "bucket", "b", "", "target bucket")
	headObjectCmd.Flags().StringVarP(&headObjectCmdConfig.key, "key", "k", "", "object key")
	headObjectCmd.MarkFlagRequired("bucket")
	headObjectCmd.MarkFlagRequired("key")
}
