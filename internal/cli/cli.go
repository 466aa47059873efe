package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/kino-6/q-deck-launcher-sub002/internal/app"
	"github.com/kino-6/q-deck-launcher-sub002/internal/config"
	"github.com/kino-6/q-deck-launcher-sub002/internal/core"
	"github.com/kino-6/q-deck-launcher-sub002/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	isTerminalFn = term.IsTerminal
	runAppFn     = func(ctx context.Context, dir string, newBackend app.BackendFactory) error {
		return app.Run(ctx, dir, ui.NewTerminal(dir), newBackend)
	}
	configDirFn = config.GetConfigDir
)

var errNoTerminal = errors.New("the overlay needs an interactive terminal; use a subcommand for scripted use")

// options are the flags shared by every command.
type options struct {
	configDir string
	logFile   *os.File
}

func (o *options) dir() (string, error) {
	if strings.TrimSpace(o.configDir) != "" {
		return o.configDir, nil
	}
	return configDirFn()
}

// NewRootCommand builds the qdeck command tree. Without a subcommand it runs the
// overlay, taking global hotkeys from newBackend. Subcommands never touch the OS hotkeys.
func NewRootCommand(newBackend app.BackendFactory) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "qdeck",
		Short:         config.AppName + ": a hotkey summoned launcher grid",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       config.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// The overlay opens its own log in app.Run.
			if !cmd.HasParent() {
				return nil
			}
			dir, err := opts.dir()
			if err != nil {
				return err
			}
			f, err := core.OpenLog(dir, config.LogFilename)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not open log file: %v\n", err)
				return nil
			}
			opts.logFile = f
			log.Printf("Running %s", cmd.CommandPath())
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if opts.logFile != nil {
				log.SetOutput(io.Discard)
				opts.logFile.Close()
				opts.logFile = nil
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminalFn(int(os.Stdin.Fd())) || !isTerminalFn(int(os.Stdout.Fd())) {
				return errNoTerminal
			}
			dir, err := opts.dir()
			if err != nil {
				return fmt.Errorf("could not get config dir: %w", err)
			}
			return runAppFn(cmd.Context(), dir, newBackend)
		},
	}
	root.PersistentFlags().StringVar(&opts.configDir, "config-dir", "",
		"directory holding config.yaml and navigation.toml (default $"+config.ConfigDirEnv+" or the user config dir)")

	root.AddCommand(
		newValidateCommand(opts),
		newHotkeysCommand(opts),
		newStateCommand(opts),
		newEditCommand(opts),
		newPurgeCommand(opts),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, newBackend app.BackendFactory) int {
	root := NewRootCommand(newBackend)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		log.Printf("%s failed: %v", root.Name(), err)
		return 1
	}
	return 0
}

// ConfirmAction asks a yes/no question on out and reads the answer from in.
func ConfirmAction(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
