package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/pikov"
)

// CreateOptions holds flags for the create command.
type CreateOptions struct {
	*RootOptions
}

// NewCreateCommand creates the create command.
func NewCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CreateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create [file]",
		Short: "Create a new repository file",
		Long: `Create an empty repository file.

The path comes from the argument or from the repository entry of the
config file. Creation fails if the file already exists.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(opts, args, cmd)
		},
	}

	return cmd
}

func runCreate(opts *CreateOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	path := repositoryPath(opts.RootOptions, args)
	if path == "" {
		return fail(formatter, "create repository",
			errors.New("no path given: pass one or set repository in pikov.toml"))
	}

	r, err := pikov.Create(path)
	if err != nil {
		return fail(formatter, "create repository", err)
	}
	defer r.Close()

	loggerFromContext(cmd.Context()).Debugf("initialized schema in %s", path)

	if formatter.Format == "json" {
		return formatter.Success(map[string]string{"path": path})
	}
	fmt.Fprintf(formatter.Writer, "✓ Created repository %s\n", path)
	return nil
}
