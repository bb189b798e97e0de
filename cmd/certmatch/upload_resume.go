package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/cert-roadmap/internal/document"
	"github.com/jonathan/cert-roadmap/internal/storage"
	"github.com/spf13/cobra"
)

var uploadResumeCmd = &cobra.Command{
	Use:   "upload-resume",
	Short: "Store a résumé file in the résumé bucket",
	Long:  "Upload a .txt, .pdf or .docx résumé so analyze and roadmap can refer to it with --resume-key.",
	RunE:  runUploadResume,
}

var (
	uploadFile string
	uploadKey  string
)

func init() {
	uploadResumeCmd.Flags().StringVarP(&uploadFile, "file", "f", "", "Path to résumé file (required)")
	uploadResumeCmd.Flags().StringVar(&uploadKey, "key", "", "Object key (defaults to the file name)")
	_ = uploadResumeCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(uploadResumeCmd)
}

func runUploadResume(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.ResumeBucket == "" {
		return fmt.Errorf("RESUME_BUCKET is required for upload-resume")
	}

	store, err := storage.NewS3Store(cmd.Context(), storage.S3Config{
		Bucket:       cfg.ResumeBucket,
		Region:       cfg.S3Region,
		Endpoint:     cfg.S3Endpoint,
		AccessKey:    cfg.S3AccessKey,
		SecretKey:    cfg.S3SecretKey,
		UsePathStyle: cfg.S3PathStyle,
	})
	if err != nil {
		return fmt.Errorf("failed to create résumé store: %w", err)
	}

	obj, err := uploadResume(cmd.Context(), store, uploadFile, uploadKey)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), map[string]any{
		"resume_key":   obj.Key,
		"content_type": obj.ContentType,
		"bytes":        len(obj.Data),
	})
}

// uploadResume stores the file at path under key. The file must contain extractable text.
func uploadResume(ctx context.Context, store storage.ObjectStore, path, key string) (*storage.Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read résumé: %w", err)
	}
	if key == "" {
		key = filepath.Base(path)
	}
	obj := &storage.Object{Key: key, ContentType: document.MIMEFromName(path), Data: data}

	if _, err := document.ExtractText(obj.ContentType, data); err != nil {
		return nil, err
	}
	if err := store.Put(ctx, obj); err != nil {
		return nil, err
	}
	return obj, nil
}
