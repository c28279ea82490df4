package cli

import (
	"bytes"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/pikov"
)

// PreviewOptions holds flags for the preview command.
type PreviewOptions struct {
	*RootOptions
	Output    string
	Start     int64
	Min       string
	Max       string
	Scale     int
	Seed      int64
	LoopCount int
}

// NewPreviewCommand creates the preview command.
func NewPreviewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PreviewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Render a random-walk preview GIF",
		Long: `Walk the transition graph from the start frame and write the visited
frames as an animated GIF.

The walk runs until at least --min of animation has accumulated and it
is back at the start frame, never exceeding --max. The GIF is encoded
in full before the output file is touched.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "preview.gif", "output GIF path")
	cmd.Flags().Int64Var(&opts.Start, "start", 0, "start frame id (default the repository's start frame)")
	cmd.Flags().StringVar(&opts.Min, "min", "", "minimum animation length, e.g. 10s")
	cmd.Flags().StringVar(&opts.Max, "max", "", "maximum animation length, e.g. 30s")
	cmd.Flags().IntVar(&opts.Scale, "scale", 0, "integer pixel scale factor")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed for a reproducible walk")
	cmd.Flags().IntVar(&opts.LoopCount, "loop-count", 0, "GIF loop count (0 loops forever)")

	return cmd
}

func runPreview(opts *PreviewOptions, args []string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := loggerFromContext(ctx)

	r, err := openRepository(opts.RootOptions, args)
	if err != nil {
		return fail(formatter, "preview", err)
	}
	defer r.Close()

	walkOpts := pikov.PreviewOptions{
		MinDuration: opts.Config.Preview.Min,
		MaxDuration: opts.Config.Preview.Max,
	}
	if opts.Min != "" {
		walkOpts.MinDuration, err = time.ParseDuration(opts.Min)
		if err != nil {
			return fail(formatter, "preview", fmt.Errorf("invalid --min: %w", err))
		}
	}
	if opts.Max != "" {
		walkOpts.MaxDuration, err = time.ParseDuration(opts.Max)
		if err != nil {
			return fail(formatter, "preview", fmt.Errorf("invalid --max: %w", err))
		}
	}
	if opts.Start != 0 {
		start, err := r.Frame(ctx, opts.Start)
		if err != nil {
			return fail(formatter, "preview", err)
		}
		walkOpts.Start = start
	}
	if opts.Seed != 0 {
		walkOpts.Rand = rand.New(rand.NewSource(opts.Seed))
	}

	scale := opts.Scale
	if !cmd.Flags().Changed("scale") {
		scale = opts.Config.Preview.Scale
	}

	p := newProgress(logger)

	clip, err := r.Preview(ctx, walkOpts)
	if err != nil {
		return fail(formatter, "preview", err)
	}
	logger.Debugf("walk visited %d frame(s), %s of animation", clip.Len(), clip.Duration())

	// Encode fully before touching the output file.
	var buf bytes.Buffer
	if err := clip.SaveGIF(ctx, &buf, pikov.GIFOptions{Scale: scale, LoopCount: opts.LoopCount}); err != nil {
		return fail(formatter, "preview", err)
	}
	if err := os.WriteFile(opts.Output, buf.Bytes(), 0o644); err != nil {
		return fail(formatter, "preview", err)
	}
	p.done(fmt.Sprintf("Rendered %d frame(s) to %s", clip.Len(), opts.Output))

	if formatter.Format == "json" {
		return formatter.Success(map[string]interface{}{
			"path":     opts.Output,
			"frames":   clip.Len(),
			"duration": clip.Duration().String(),
			"bytes":    buf.Len(),
		})
	}
	fmt.Fprintf(formatter.Writer, "✓ Wrote %s (%d frames, %s)\n", opts.Output, clip.Len(), clip.Duration())
	return nil
}
