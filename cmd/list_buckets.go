// Handles the "roots3 list-buckets" command
package cmd

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var listBucketsCmd = &cobra.Command{
	Use:   "list-buckets",
	Short: "List the buckets in the configured project",
	RunE: func(cmd *cobra.Command, args []string) error {
		buckets, err := rootsMgr.Client.ListBuckets(cmd.Context())
		if err != nil {
			return errors.Wrap(err, "List buckets failed")
		}

		if len(buckets) == 0 {
			fmt.Println("No buckets")
			return nil
		}
		for _, b := range buckets {
			fmt.Printf("%s\t%s\n", b.Name, b.CreatedAt.Format(time.RFC3339))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listBucketsCmd)
}
