package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgrid/pkg/errors"
	"github.com/matzehuels/roomgrid/pkg/layout"
	"github.com/matzehuels/roomgrid/pkg/render"
)

// Export formats.
const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// exportOpts holds the flags of the export command.
type exportOpts struct {
	output   string // output file, "-" for stdout
	format   string // dot, svg or png; inferred from output when empty
	detailed bool   // add cell positions to labels
}

// exportCommand renders a saved snapshot as a diagram.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export [snapshot.json|-]",
		Short: "Export a layout snapshot as DOT, SVG or PNG",
		Example: `  roomgrid edit --snapshot room.json
  roomgrid export room.json -o room.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := exportFormat(opts.format, opts.output)
			if err != nil {
				return err
			}
			sn, err := readSnapshot(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			data, err := renderSnapshot(cmd.Context(), sn, format, opts.detailed)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), opts.output, data)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "-", "output file, - for stdout")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg, png (default from output extension, else dot)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label placements with their cell and size")

	return cmd
}

// exportFormat resolves the format flag, falling back to the output file
// extension and then to DOT.
func exportFormat(format, output string) (string, error) {
	if format == "" && output != "-" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
		if format == "gv" {
			format = formatDOT
		}
	}
	switch format {
	case "":
		return formatDOT, nil
	case formatDOT, formatSVG, formatPNG:
		return format, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "unknown export format %q (want dot, svg or png)", format)
	}
}

func renderSnapshot(ctx context.Context, sn layout.Snapshot, format string, detailed bool) ([]byte, error) {
	dot := render.ToDOT(sn, render.Options{Detailed: detailed})
	switch format {
	case formatSVG:
		return render.RenderSVG(ctx, dot)
	case formatPNG:
		return render.RenderPNG(ctx, dot)
	default:
		return []byte(dot), nil
	}
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printSuccess("Exported layout")
	printFile(path)
	return nil
}
