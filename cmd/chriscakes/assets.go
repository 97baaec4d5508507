package main

import (
	"errors"

	"github.com/spf13/cobra"
)

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Manage site images in object storage",
}

var assetsUploadCmd = &cobra.Command{
	Use:   "upload <dir>",
	Short: "Upload every file in dir to the public bucket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bucket, err := openStorage(cfg)
		if err != nil {
			return err
		}
		if bucket == nil {
			return errors.New("storage not configured: set S3_ENDPOINT, S3_ACCESS_KEY and S3_SECRET_KEY")
		}
		_, err = bucket.UploadDir(cmd.Context(), args[0])
		return err
	},
}

func init() {
	assetsCmd.AddCommand(assetsUploadCmd)
	rootCmd.AddCommand(assetsCmd)
}
