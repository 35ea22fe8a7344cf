// Handles the "roots3 put-object" command
package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/rootstorage/roots3/pkg/roots3"
)

var putObjectCmdConfig struct {
	bucket      string
	key         string
	filePath    string
	contentType string
	metadata    string
}

var putObjectCmd = &cobra.Command{
	Use:   "put-object",
	Short: "Upload a local file as an object",
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts []roots3.PutOption
		if putObjectCmdConfig.contentType != "" {
			opts = append(opts, roots3.WithContentType(putObjectCmdConfig.contentType))
		}
		if metadata := parseKeyValue(putObjectCmdConfig.metadata); metadata != nil {
			opts = append(opts, roots3.WithMetadata(metadata))
		}

		res, err := rootsMgr.Client.UploadFile(cmd.Context(),
			putObjectCmdConfig.bucket, putObjectCmdConfig.key, putObjectCmdConfig.filePath, opts...)
		if err != nil {
			return errors.Wrap(err, "Put object failed")
		}
		rootsMgr.Logger.Info("Created object " + putObjectCmdConfig.key +
			" in bucket " + putObjectCmdConfig.bucket + " (etag " + res.ETag + ")")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(putObjectCmd)

	putObjectCmd.Flags().StringVarP(&putObjectCmdConfig.bucket, "bucket", "b", "", "target bucket")
	putObjectCmd.Flags().StringVarP(&putObjectCmdConfig.key, "key", "k", "", "object key")
	putObjectCmd.Flags().StringVarP(&putObjectCmdConfig.filePath, "file-path", "f", "", "local file to upload")
	putObjectCmd.Flags().StringVar(&putObjectCmdConfig.contentType, "content-type", "", "content type of the object")
	putObjectCmd.Flags().StringVarP(&putObjectCmdConfig.metadata, "metadata", "m", "", "object metadata: k1=v1,k2=v2")
	putObjectCmd.MarkFlagRequired("bucket")
	putObjectCmd.MarkFlagRequired("key")
	putObjectCmd.MarkFlagRequired("file-path")
}
