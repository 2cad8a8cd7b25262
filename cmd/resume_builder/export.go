package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/exchange"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Normalise a resume file into resume.json or a bundle",
	Long: `Reads a resume export (bare or wrapped under resume_data), checks it against
the resume schema and writes it back in the canonical indented form.

With --bundle the section order and layout are included, filled with defaults
where the input omitted them.`,
	RunE: runExport,
}

var (
	exportInput  string
	exportOutput string
	exportBundle bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportInput, "in", "i", "", "Path to resume JSON file, or - for stdin (required)")
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "Path to output file (default stdout)")
	exportCmd.Flags().BoolVar(&exportBundle, "bundle", false, "Include section order and layout")

	if err := exportCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	data, err := readInput(cmd, exportInput)
	if err != nil {
		return err
	}
	imported, err := exchange.Import(data)
	if err != nil {
		return err
	}

	var out []byte
	if exportBundle {
		out, err = exchange.ExportBundle(imported.Bundle(types.DefaultOrder(), layout.Defaults()))
	} else {
		out, err = exchange.Export(imported.Resume)
	}
	if err != nil {
		return err
	}

	return writeOutput(cmd, exportOutput, append(out, '\n'))
}
