package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/kino-6/q-deck-launcher-sub002/internal/config"
	"github.com/spf13/cobra"
)

var nowFn = time.Now

// PurgeOptions selects what purge moves to the trash.
type PurgeOptions struct {
	Config bool // config.yaml; the defaults are written on next start
	State  bool // navigation.toml
	Logs   bool // qdeck.log and its rotated copy
}

func (o PurgeOptions) targets() []string {
	var names []string
	if o.Config {
		names = append(names, config.ConfigFilename)
	}
	if o.State {
		names = append(names, config.NavigationFilename)
	}
	if o.Logs {
		names = append(names, config.LogFilename, config.LogFilename+".old")
	}
	return names
}

var errNoPurgeTarget = errors.New("no target specified; use --config, --state, --logs or --all")

// PurgeConfig moves the selected files from configDir into a timestamped folder
// under configDir/trash. Missing files are skipped. It returns the trash folder.
func PurgeConfig(configDir string, opts PurgeOptions) (string, error) {
	names := opts.targets()
	if len(names) == 0 {
		return "", errNoPurgeTarget
	}
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return "", fmt.Errorf("config directory does not exist: %s", configDir)
	}

	trash := filepath.Join(configDir, "trash", nowFn().Format("20060102-150405"))
	moved, failed := 0, 0
	for _, name := range names {
		src := filepath.Join(configDir, name)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if err := os.MkdirAll(trash, 0o755); err != nil {
			return "", fmt.Errorf("create trash: %w", err)
		}
		if err := os.Rename(src, filepath.Join(trash, name)); err != nil {
			log.Printf("Failed to move %s to trash: %v", src, err)
			failed++
			continue
		}
		moved++
	}

	log.Printf("Purge completed: %d moved, %d failed", moved, failed)
	if failed > 0 {
		return trash, fmt.Errorf("purge completed with %d failures", failed)
	}
	if moved == 0 {
		return "", nil
	}
	return trash, nil
}

func newPurgeCommand(opts *options) *cobra.Command {
	var (
		p   PurgeOptions
		all bool
		yes bool
	)
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Move config, navigation state or logs to the trash folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if all {
				p = PurgeOptions{Config: true, State: true, Logs: true}
			}
			if len(p.targets()) == 0 {
				return errNoPurgeTarget
			}
			dir, err := opts.dir()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !yes {
				prompt := fmt.Sprintf("⚠️  Move %v from %s to the trash?", p.targets(), dir)
				if !ConfirmAction(cmd.InOrStdin(), out, prompt) {
					log.Printf("Purge cancelled by user")
					fmt.Fprintln(out, "Cancelled")
					return nil
				}
			}
			if p.Logs && opts.logFile != nil {
				// The running command holds the log open.
				log.SetOutput(io.Discard)
				opts.logFile.Close()
				opts.logFile = nil
			}
			trash, err := PurgeConfig(dir, p)
			if err != nil {
				return err
			}
			if trash == "" {
				fmt.Fprintln(out, "✓ Nothing to purge")
				return nil
			}
			fmt.Fprintf(out, "✓ Purge completed, items moved to %s\n", trash)
			return nil
		},
	}
	f := cmd.Flags()
	f.BoolVarP(&p.Config, "config", "c", false, "reset config.yaml to the defaults")
	f.BoolVarP(&p.State, "state", "s", false, "forget the current profile and page")
	f.BoolVar(&p.Logs, "logs", false, "remove the log files")
	f.BoolVar(&all, "all", false, "all of the above")
	f.BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
