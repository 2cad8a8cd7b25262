package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/pdfclient"
)

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Render a bundle through a remote generate-pdf endpoint",
	RunE:  runRemote,
}

var (
	remoteInput  string
	remoteOutput string
	remoteURL    string
)

func init() {
	remoteCmd.Flags().StringVarP(&remoteInput, "in", "i", "", "Path to bundle JSON file, or - for stdin (required)")
	remoteCmd.Flags().StringVarP(&remoteOutput, "out", "o", "resume.pdf", "Path to output PDF file")
	remoteCmd.Flags().StringVar(&remoteURL, "url", "", "Server base URL (default PDF_SERVER_URL or http://localhost:8000)")

	if err := remoteCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(remoteCmd)
}

func runRemote(cmd *cobra.Command, _ []string) error {
	bundle, err := readBundle(cmd, remoteInput)
	if err != nil {
		return err
	}

	base := remoteURL
	if base == "" {
		base = settings.RemoteURL
	}
	client := pdfclient.New(base)

	pdf, err := client.Generate(cmd.Context(), bundle)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd, remoteOutput, pdf); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d bytes)\n", remoteOutput, len(pdf))
	return nil
}
