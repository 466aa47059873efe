package cli

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/kino-6/q-deck-launcher-sub002/internal/config"
	"github.com/kino-6/q-deck-launcher-sub002/internal/core"
	"github.com/kino-6/q-deck-launcher-sub002/internal/hotkey"
	"github.com/kino-6/q-deck-launcher-sub002/internal/navigation"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
)

var openFn = open.Run

func (o *options) store(path string) (*config.Store, error) {
	if path != "" {
		return config.NewStoreAt(path), nil
	}
	dir, err := o.dir()
	if err != nil {
		return nil, fmt.Errorf("could not get config dir: %w", err)
	}
	return config.NewStore(dir), nil
}

// loadValid reads the config without creating it and validates it.
func (o *options) loadValid(path string) (config.Config, *config.Store, error) {
	store, err := o.store(path)
	if err != nil {
		return config.Config{}, nil, err
	}
	cfg, err := store.Load()
	if err != nil {
		return config.Config{}, store, fmt.Errorf("load %s: %w", store.Path(), err)
	}
	if err := config.Validate(cfg); err != nil {
		return cfg, store, fmt.Errorf("%s is invalid:\n%w", store.Path(), err)
	}
	return cfg, store, nil
}

func newValidateCommand(opts *options) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check config.yaml and report every problem",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, store, err := opts.loadValid(path)
			if err != nil {
				return err
			}
			pages, buttons := 0, 0
			for _, p := range cfg.Profiles {
				pages += len(p.Pages)
				for _, pg := range p.Pages {
					buttons += core.CountPopulated(config.BuildGrid(pg))
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid: %d profile(s), %d page(s), %d button(s)\n",
				store.Path(), len(cfg.Profiles), pages, buttons)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "config", "", "validate this file instead of the one in the config dir")
	return cmd
}

func newHotkeysCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "hotkeys",
		Short: "Parse every configured hotkey and report duplicates without registering them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := opts.store("")
			if err != nil {
				return err
			}
			cfg, err := store.Load()
			if err != nil {
				return fmt.Errorf("load %s: %w", store.Path(), err)
			}

			mgr := hotkey.NewManager(hotkey.NopBackend{}, nil)
			defer mgr.Close()
			bindings, regErr := mgr.RegisterAll(cfg.HotkeyRequests(), nil)

			out := cmd.OutOrStdout()
			for _, b := range bindings {
				fmt.Fprintf(out, "  %-20s %s\n", b.Combination.Display(), describePurpose(cfg, b.Purpose))
			}
			if regErr != nil {
				log.Printf("Hotkey check failed: %v", regErr)
				return fmt.Errorf("hotkey problems:\n%w", regErr)
			}
			fmt.Fprintf(out, "✓ %d hotkey(s), no conflicts\n", len(bindings))
			return nil
		},
	}
}

func describePurpose(cfg config.Config, p hotkey.Purpose) string {
	if p.Kind == hotkey.PurposeProfile && p.ProfileIndex >= 0 && p.ProfileIndex < len(cfg.Profiles) {
		return fmt.Sprintf("switch to profile %q", cfg.Profiles[p.ProfileIndex].Name)
	}
	return p.String()
}

func (o *options) navigationManager() (*navigation.Manager, config.Config, error) {
	cfg, store, err := o.loadValid("")
	if err != nil {
		return nil, cfg, err
	}
	state := navigation.NewFileStore(filepath.Join(store.Dir(), config.NavigationFilename))
	return navigation.NewManager(state, store), cfg, nil
}

func newStateCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Show the persisted profile and page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, cfg, err := opts.navigationManager()
			if err != nil {
				return err
			}
			ctx := mgr.Initialize(cfg)
			out := cmd.OutOrStdout()
			if lerr := mgr.LoadError(); lerr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", lerr)
			}
			printContext(cmd, ctx)
			for _, p := range mgr.Profiles() {
				marker := " "
				if p.Active {
					marker = "*"
				}
				hk := ""
				if p.Hotkey != "" {
					hk = "  [" + p.Hotkey + "]"
				}
				fmt.Fprintf(out, " %s %d. %s (%d page(s))%s\n", marker, p.Index+1, p.Name, p.Pages, hk)
			}
			return nil
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Return to the first profile and page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, cfg, err := opts.navigationManager()
			if err != nil {
				return err
			}
			mgr.Initialize(cfg)
			ctx := mgr.Reset()
			if err := mgr.Flush(); err != nil {
				return fmt.Errorf("save navigation state: %w", err)
			}
			printContext(cmd, ctx)
			return nil
		},
	}
	cmd.AddCommand(reset)
	return cmd
}

func printContext(cmd *cobra.Command, ctx navigation.Context) {
	fmt.Fprintf(cmd.OutOrStdout(), "Profile %d/%d %q, page %d/%d %q\n",
		ctx.ProfileIndex+1, ctx.TotalProfiles, ctx.ProfileName,
		ctx.PageIndex+1, ctx.TotalPages, ctx.PageName)
}

func newEditCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open config.yaml with the default application, creating it if needed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := opts.store("")
			if err != nil {
				return err
			}
			if _, err := store.LoadOrCreate(); err != nil {
				return err
			}
			if err := openFn(store.Path()); err != nil {
				return fmt.Errorf("failed to open '%s': %w", store.Path(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", store.Path())
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", config.AppName, config.Version)
		},
	}
}
