package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/pikov"
	"github.com/roach88/pikov/props"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Manifest    string
	Sheet       string
	ClipID      string
	FrameWidth  int
	FrameHeight int
	FPS         int
	Frames      string
	FlipX       bool
	Loop        bool
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import sprite-sheet clips",
		Long: `Import one clip from a sprite sheet, or many from a YAML manifest.

A single clip needs --sheet plus the cell geometry flags. A manifest
declares several clips at once; it is validated in full before any
frame is written.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "YAML manifest declaring clips to import")
	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "sprite sheet PNG")
	cmd.Flags().StringVar(&opts.ClipID, "id", "", "clip id (default a random UUID)")
	cmd.Flags().IntVar(&opts.FrameWidth, "frame-width", 0, "cell width in pixels")
	cmd.Flags().IntVar(&opts.FrameHeight, "frame-height", 0, "cell height in pixels")
	cmd.Flags().IntVar(&opts.FPS, "fps", 0, "playback rate; each frame lasts 1s/fps")
	cmd.Flags().StringVar(&opts.Frames, "frames", "", "comma-separated cell indices, e.g. 0,1,2")
	cmd.Flags().BoolVar(&opts.FlipX, "flip-x", false, "mirror the sheet horizontally before slicing")
	cmd.Flags().BoolVar(&opts.Loop, "loop", false, "add a transition from the last frame back to the first")
	cmd.MarkFlagsMutuallyExclusive("manifest", "sheet")

	return cmd
}

// clipSummary reports one imported clip.
type clipSummary struct {
	ID       string  `json:"id"`
	Frames   int     `json:"frames"`
	FrameIDs []int64 `json:"frameIds"`
}

func runImport(opts *ImportOptions, args []string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := loggerFromContext(ctx)

	if opts.Manifest == "" && opts.Sheet == "" {
		return fail(formatter, "import",
			errors.New("nothing to import: pass --manifest or --sheet"))
	}

	r, err := openRepository(opts.RootOptions, args)
	if err != nil {
		return fail(formatter, "import", err)
	}
	defer r.Close()

	p := newProgress(logger)

	var clips []*pikov.Clip
	if opts.Manifest != "" {
		clips, err = r.ImportManifest(ctx, opts.Manifest)
	} else {
		clips, err = importSingleClip(ctx, r, opts)
	}
	if err != nil {
		return fail(formatter, "import", err)
	}

	summaries := make([]clipSummary, len(clips))
	total := 0
	for i, clip := range clips {
		summary, err := summarizeClip(ctx, clip)
		if err != nil {
			return fail(formatter, "import", err)
		}
		summaries[i] = summary
		total += summary.Frames
	}
	p.done(fmt.Sprintf("Imported %d clip(s), %d frame(s)", len(clips), total))

	if formatter.Format == "json" {
		return formatter.Success(summaries)
	}

	fmt.Fprintf(formatter.Writer, "✓ Imported %d clip(s), %d frame(s)\n", len(clips), total)
	for _, s := range summaries {
		fmt.Fprintf(formatter.Writer, "  %s: %d frame(s)\n", s.ID, s.Frames)
	}
	return nil
}

func importSingleClip(ctx context.Context, r *pikov.Repository, opts *ImportOptions) ([]*pikov.Clip, error) {
	frames, err := parseFrameList(opts.Frames)
	if err != nil {
		return nil, err
	}

	clip, err := r.ImportClip(ctx, pikov.ClipImport{
		ClipID:      opts.ClipID,
		SheetPath:   opts.Sheet,
		FrameWidth:  opts.FrameWidth,
		FrameHeight: opts.FrameHeight,
		FPS:         opts.FPS,
		Frames:      frames,
		FlipX:       opts.FlipX,
		Loop:        opts.Loop,
	})
	if err != nil {
		return nil, err
	}
	return []*pikov.Clip{clip}, nil
}

// parseFrameList parses a comma-separated index list like "0,1,2".
func parseFrameList(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New("no frames given: pass --frames, e.g. --frames 0,1,2")
	}

	parts := strings.Split(s, ",")
	frames := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid frame list %q: %w", s, err)
		}
		frames = append(frames, n)
	}
	return frames, nil
}

// summarizeClip reads the clip id back from the first frame's properties,
// covering generated UUIDs the caller never saw.
func summarizeClip(ctx context.Context, clip *pikov.Clip) (clipSummary, error) {
	summary := clipSummary{Frames: clip.Len()}
	for _, f := range clip.Frames() {
		summary.FrameIDs = append(summary.FrameIDs, f.ID())
	}

	if clip.Len() > 0 {
		v, err := clip.Frames()[0].Property(ctx, "clipId")
		if err != nil {
			return clipSummary{}, err
		}
		if id, ok := v.(props.String); ok {
			summary.ID = string(id)
		}
	}
	return summary, nil
}
