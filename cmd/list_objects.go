// Handles the "roots3 list-objects" command
package cmd

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/rootstorage/roots3/pkg/roots3"
)

var listObjectsCmdConfig struct {
	bucket string
	prefix string
}

var listObjectsCmd = &cobra.Command{
	Use:   "list-objects",
	Short: "List the object keys in a bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts []roots3.ListOption
		if listObjectsCmdConfig.prefix != "" {
			opts = append(opts, roots3.WithPrefix(listObjectsCmdConfig.prefix))
		}

		objects, err := rootsMgr.Client.ListObjects(cmd.Context(), listObjectsCmdConfig.bucket, opts...)
		if err != nil {
			return errors.Wrap(err, "List objects failed")
		}

		if len(objects) == 0 {
			fmt.Printf("No objects in bucket %s\n", listObjectsCmdConfig.bucket)
			return nil
		}
		for _, obj := range objects {
			fmt.Printf("%s\t%d\t%s\n", obj.Key, obj.Size, obj.LastModified.Format(time.RFC3339))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listObjectsCmd)

	listObjectsCmd.Flags().StringVarP(&listObjectsCmdConfig.bucket, "bucket", "b", "", "bucket to list")
	listObjectsCmd.Flags().StringVar(&listObjectsCmdConfig.prefix, "prefix", "", "only list keys with this prefix")
	listObjectsCmd.MarkFlagRequired("bucket")
}
