package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jonathan/resume-builder/internal/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print a text preview of a bundle",
	Long:  "Prints the resume as wrapped plain text, or as the HTML preview page with --html. Text wraps to the terminal width unless --width is set.",
	RunE:  runPreview,
}

var (
	previewInput string
	previewWidth int
	previewHTML  bool
)

func init() {
	previewCmd.Flags().StringVarP(&previewInput, "in", "i", "-", "Path to bundle JSON file, or - for stdin")
	previewCmd.Flags().IntVarP(&previewWidth, "width", "w", 0, "Wrap width in columns (default terminal width)")
	previewCmd.Flags().BoolVar(&previewHTML, "html", false, "Print the HTML preview page instead of text")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	bundle, err := readBundle(cmd, previewInput)
	if err != nil {
		return err
	}

	if previewHTML {
		html, err := preview.HTML(bundle)
		if err != nil {
			return err
		}
		return writeOutput(cmd, "", []byte(html))
	}

	width := previewWidth
	if width <= 0 {
		width = terminalWidth()
	}
	return writeOutput(cmd, "", []byte(preview.Text(bundle, width)))
}

// terminalWidth returns the width of stdout, or 0 when it is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	return 0
}
