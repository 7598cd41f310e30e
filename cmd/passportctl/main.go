// passportctl runs a single passport extraction from the command line and
// writes the result as csv, json, or the raw vendor response.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"passport-extractor/internal/config"
	"passport-extractor/internal/extend"
	"passport-extractor/internal/format"
	"passport-extractor/internal/intake"
)

var (
	flagFile      string
	flagFormat    string
	flagToken     string
	flagProcessor string
	flagBaseURL   string
	flagOutput    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "passportctl",
		Short:        "Extract structured passport data from an image or PDF",
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVarP(&flagFile, "file", "f", "", "passport image or PDF to extract (required)")
	rootCmd.Flags().StringVar(&flagFormat, "format", "json", "output format: csv, json, or raw")
	rootCmd.Flags().StringVar(&flagToken, "token", "", "Extend API token (overrides config/env)")
	rootCmd.Flags().StringVar(&flagProcessor, "processor", "", "Extend processor id (overrides config/env)")
	rootCmd.Flags().StringVar(&flagBaseURL, "base-url", "", "Extend API base URL (overrides config/env)")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write the result to a file instead of stdout")
	_ = rootCmd.MarkFlagRequired("file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	vendor := extend.Config{
		BaseURL:     cfg.Extend.BaseURL,
		APIToken:    cfg.Extend.APIToken,
		ProcessorID: cfg.Extend.ProcessorID,
	}
	if flagBaseURL != "" {
		vendor.BaseURL = flagBaseURL
	}
	if flagToken != "" {
		vendor.APIToken = flagToken
	}
	if flagProcessor != "" {
		vendor.ProcessorID = flagProcessor
	}

	src, err := os.Open(flagFile)
	if err != nil {
		return err
	}
	defer src.Close()
	info, err := src.Stat()
	if err != nil {
		return err
	}

	spooled, err := intake.Spool(intake.Options{
		MaxSizeBytes:      cfg.MaxUploadBytes(),
		AllowedExtensions: cfg.Upload.AllowedExtensions,
	}, filepath.Base(flagFile), info.Size(), src)
	if err != nil {
		return err
	}
	defer spooled.Cleanup()

	f, err := spooled.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	client := extend.NewClient(time.Duration(cfg.Extend.TimeoutSeconds) * time.Second)
	result, err := client.Extract(cmd.Context(), vendor, spooled.Meta.Filename, f)
	if err != nil {
		return err
	}

	value, _ := result.OutputValue()
	fields, order := format.Flatten(value)

	var body string
	switch flagFormat {
	case "csv":
		body = format.CSV(fields, order)
	case "json":
		body = format.JSON(fields, order)
	case "raw":
		body = format.Raw(result.Raw)
	default:
		return fmt.Errorf("unsupported format %q (want csv, json, or raw)", flagFormat)
	}

	if flagOutput != "" {
		return os.WriteFile(flagOutput, []byte(body), 0o644)
	}
	fmt.Fprintln(cmd.OutOrStdout(), body)
	return nil
}
