package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/rendering"
)

var renderLaTeXCmd = &cobra.Command{
	Use:   "render-latex",
	Short: "Render a LaTeX resume from a bundle",
	Long:  "Generates LaTeX source from a resume bundle (resume_data, section_order and layout fields) or a bare resume.json.",
	RunE:  runRenderLaTeX,
}

var (
	renderLaTeXInput    string
	renderLaTeXOutput   string
	renderLaTeXTemplate string
)

func init() {
	renderLaTeXCmd.Flags().StringVarP(&renderLaTeXInput, "in", "i", "", "Path to bundle JSON file, or - for stdin (required)")
	renderLaTeXCmd.Flags().StringVarP(&renderLaTeXOutput, "out", "o", "", "Path to output .tex file (default stdout)")
	renderLaTeXCmd.Flags().StringVarP(&renderLaTeXTemplate, "template", "t", "", "Path to a LaTeX template override")

	if err := renderLaTeXCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(renderLaTeXCmd)
}

func runRenderLaTeX(cmd *cobra.Command, _ []string) error {
	bundle, err := readBundle(cmd, renderLaTeXInput)
	if err != nil {
		return err
	}

	templatePath := renderLaTeXTemplate
	if templatePath == "" {
		templatePath = settings.Template
	}

	var tex string
	if templatePath != "" {
		tex, err = rendering.RenderLaTeXWithTemplate(bundle, templatePath)
	} else {
		tex, err = rendering.RenderLaTeX(bundle)
	}
	if err != nil {
		return fmt.Errorf("failed to render LaTeX: %w", err)
	}

	return writeOutput(cmd, renderLaTeXOutput, []byte(tex))
}
