package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// InfoOptions holds flags for the info command.
type InfoOptions struct {
	*RootOptions
}

// repositoryInfo is the info command's payload.
type repositoryInfo struct {
	Path         string  `json:"path"`
	Images       int64   `json:"images"`
	Frames       int64   `json:"frames"`
	Transitions  int64   `json:"transitions"`
	StartFrameID *int64  `json:"startFrameId"`
	Absorbing    []int64 `json:"absorbing"`
}

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InfoOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "info [file]",
		Short: "Show repository contents",
		Long: `Show entity counts, the start frame, and absorbing frames.

Absorbing frames trap the preview walk: once entered, the animation
repeats them until the duration ceiling. They usually mean a clip was
imported without --loop and never wired back into the graph.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(opts, args, cmd)
		},
	}

	return cmd
}

func runInfo(opts *InfoOptions, args []string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	formatter := newFormatter(opts.RootOptions, cmd)

	r, err := openRepository(opts.RootOptions, args)
	if err != nil {
		return fail(formatter, "info", err)
	}
	defer r.Close()

	stats, err := r.Stats(ctx)
	if err != nil {
		return fail(formatter, "info", err)
	}
	absorbing, err := r.AbsorbingFrames(ctx)
	if err != nil {
		return fail(formatter, "info", err)
	}

	info := repositoryInfo{
		Path:        r.Path(),
		Images:      stats.Images,
		Frames:      stats.Frames,
		Transitions: stats.Transitions,
		Absorbing:   make([]int64, 0, len(absorbing)),
	}
	if stats.HasStart {
		id := stats.StartFrameID
		info.StartFrameID = &id
	}
	for _, f := range absorbing {
		info.Absorbing = append(info.Absorbing, f.ID())
	}

	if formatter.Format == "json" {
		return formatter.Success(info)
	}

	fmt.Fprintf(formatter.Writer, "Repository:  %s\n", info.Path)
	fmt.Fprintf(formatter.Writer, "Images:      %d\n", info.Images)
	fmt.Fprintf(formatter.Writer, "Frames:      %d\n", info.Frames)
	fmt.Fprintf(formatter.Writer, "Transitions: %d\n", info.Transitions)
	if info.StartFrameID != nil {
		fmt.Fprintf(formatter.Writer, "Start frame: %d\n", *info.StartFrameID)
	} else {
		fmt.Fprintln(formatter.Writer, "Start frame: none")
	}
	fmt.Fprintf(formatter.Writer, "Absorbing:   %s\n", formatIDList(info.Absorbing))
	return nil
}

func formatIDList(ids []int64) string {
	if len(ids) == 0 {
		return "none"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ", ")
}
