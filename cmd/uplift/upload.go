package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"uplift/internal/storage"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/urfave/cli/v2"
)

var uploadCommand = &cli.Command{
	Name:      "upload",
	Usage:     "Upload an image to the uploads bucket and print its public URL",
	ArgsUsage: "<file>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "kind",
			Aliases: []string{"k"},
			Usage:   "Storage prefix (image, avatar)",
			Value:   "image",
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("expected exactly one file argument")
		}
		path := c.Args().First()

		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg.UploadsBucket == "" {
			return fmt.Errorf("set UPLOADS_BUCKET")
		}

		ctx := context.Background()

		awsConfig, err := loadAWSConfig(ctx)
		if err != nil {
			return err
		}

		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer file.Close()

		uploads := storage.NewUploads(s3.NewFromConfig(awsConfig), cfg.UploadsBucket, cfg.UploadsBaseURL)
		url, err := uploads.Upload(ctx, c.String("kind"), file, mime.TypeByExtension(filepath.Ext(path)))
		if err != nil {
			return err
		}

		fmt.Println(url)
		return nil
	},
}
