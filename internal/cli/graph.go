package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/pikov/internal/render"
)

// GraphOptions holds flags for the graph command.
type GraphOptions struct {
	*RootOptions
	Output string
	As     string
}

// graphFormats are the supported graph output formats.
var graphFormats = []string{"dot", "svg", "png"}

// NewGraphCommand creates the graph command.
func NewGraphCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GraphOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "graph [file]",
		Short: "Export the frame graph",
		Long: `Export the transition graph as DOT text or a rendered image.

Without --output the DOT text goes to stdout. With --output the format
follows the file extension (.dot, .svg, .png) unless --as overrides it.
The start frame is drawn with a heavy outline and absorbing frames with
a double border.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output path (stdout DOT when omitted)")
	cmd.Flags().StringVar(&opts.As, "as", "", "output format: dot, svg, or png")

	return cmd
}

func runGraph(opts *GraphOptions, args []string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	formatter := newFormatter(opts.RootOptions, cmd)

	format, err := resolveGraphFormat(opts.Output, opts.As)
	if err != nil {
		return fail(formatter, "graph", err)
	}

	r, err := openRepository(opts.RootOptions, args)
	if err != nil {
		return fail(formatter, "graph", err)
	}
	defer r.Close()

	g, err := r.Graph(ctx)
	if err != nil {
		return fail(formatter, "graph", err)
	}
	dot := render.ToDOT(g)

	out, err := renderGraph(ctx, dot, format)
	if err != nil {
		return fail(formatter, "graph", err)
	}

	if opts.Output == "" {
		if formatter.Format == "json" {
			return formatter.Success(map[string]string{"format": "dot", "dot": dot})
		}
		fmt.Fprint(formatter.Writer, dot)
		return nil
	}

	if err := os.WriteFile(opts.Output, out, 0o644); err != nil {
		return fail(formatter, "graph", err)
	}
	loggerFromContext(ctx).Debugf("%d node(s), %d edge(s)", len(g.Nodes), len(g.Edges))

	if formatter.Format == "json" {
		return formatter.Success(map[string]interface{}{
			"path":   opts.Output,
			"format": format,
			"bytes":  len(out),
		})
	}
	fmt.Fprintf(formatter.Writer, "✓ Wrote %s graph to %s\n", format, opts.Output)
	return nil
}

// resolveGraphFormat picks the output format from --as or the output file
// extension. Binary formats need an output file.
func resolveGraphFormat(output, as string) (string, error) {
	format := as
	if format == "" {
		switch strings.ToLower(filepath.Ext(output)) {
		case "", ".dot", ".gv":
			format = "dot"
		case ".svg":
			format = "svg"
		case ".png":
			format = "png"
		default:
			return "", fmt.Errorf("cannot infer graph format from %q: use --as", output)
		}
	}

	valid := false
	for _, f := range graphFormats {
		if f == format {
			valid = true
		}
	}
	if !valid {
		return "", fmt.Errorf("invalid graph format %q: must be one of %v", format, graphFormats)
	}

	if format != "dot" && output == "" {
		return "", errors.New("svg and png output need --output")
	}
	return format, nil
}

func renderGraph(ctx context.Context, dot, format string) ([]byte, error) {
	switch format {
	case "svg":
		return render.RenderSVG(ctx, dot)
	case "png":
		return render.RenderPNG(ctx, dot)
	default:
		return []byte(dot), nil
	}
}
