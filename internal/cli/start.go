package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// StartOptions holds flags for the start command.
type StartOptions struct {
	*RootOptions
	Set   int64
	Clear bool
}

// NewStartCommand creates the start command.
func NewStartCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StartOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "start [file]",
		Short: "Show or change the start frame",
		Long: `Show the start frame, designate a new one with --set, or clear the
designation with --clear. After a clear, the next frame added claims
the designation again.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStart(opts, args, cmd)
		},
	}

	cmd.Flags().Int64Var(&opts.Set, "set", 0, "frame id to designate as start")
	cmd.Flags().BoolVar(&opts.Clear, "clear", false, "clear the start designation")
	cmd.MarkFlagsMutuallyExclusive("set", "clear")

	return cmd
}

func runStart(opts *StartOptions, args []string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	formatter := newFormatter(opts.RootOptions, cmd)

	r, err := openRepository(opts.RootOptions, args)
	if err != nil {
		return fail(formatter, "start", err)
	}
	defer r.Close()

	switch {
	case opts.Clear:
		if err := r.SetStartFrame(ctx, nil); err != nil {
			return fail(formatter, "start", err)
		}
		if formatter.Format == "json" {
			return formatter.Success(map[string]interface{}{"startFrameId": nil})
		}
		fmt.Fprintln(formatter.Writer, "✓ Start frame cleared")
		return nil

	case opts.Set != 0:
		f, err := r.Frame(ctx, opts.Set)
		if err != nil {
			return fail(formatter, "start", err)
		}
		if err := r.SetStartFrame(ctx, f); err != nil {
			return fail(formatter, "start", err)
		}
		if formatter.Format == "json" {
			return formatter.Success(map[string]interface{}{"startFrameId": f.ID()})
		}
		fmt.Fprintf(formatter.Writer, "✓ Start frame set to %d\n", f.ID())
		return nil

	default:
		start, err := r.StartFrame(ctx)
		if err != nil {
			return fail(formatter, "start", err)
		}
		if formatter.Format == "json" {
			data := map[string]interface{}{"startFrameId": nil}
			if start != nil {
				data["startFrameId"] = start.ID()
			}
			return formatter.Success(data)
		}
		if start != nil {
			fmt.Fprintf(formatter.Writer, "Start frame: %d\n", start.ID())
		} else {
			fmt.Fprintln(formatter.Writer, "Start frame: none")
		}
		return nil
	}
}
