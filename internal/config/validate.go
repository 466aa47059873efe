package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kino-6/q-deck-launcher-sub002/internal/hotkey"
)

// Validate reports every structural problem in cfg, joined into one error.
func Validate(cfg Config) error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if strings.TrimSpace(cfg.Version) == "" {
		add("version must not be empty")
	}
	w := cfg.UI.Window
	if w.WidthPx <= 0 || w.HeightPx <= 0 {
		add("window size must be positive, got %dx%d", w.WidthPx, w.HeightPx)
	}
	if w.CellSizePx <= 0 {
		add("cell_size_px must be positive, got %d", w.CellSizePx)
	}
	if w.GapPx < 0 {
		add("gap_px must not be negative, got %d", w.GapPx)
	}
	if w.Opacity < 0 || w.Opacity > 1 {
		add("opacity must be within 0..1, got %g", w.Opacity)
	}
	for _, hk := range cfg.UI.Summon.Hotkeys {
		if _, err := hotkey.Parse(hk); err != nil {
			add("summon hotkey: %w", err)
		}
	}

	if len(cfg.Profiles) == 0 {
		add("at least one profile is required")
	}
	for i, p := range cfg.Profiles {
		where := fmt.Sprintf("profile %d", i)
		if strings.TrimSpace(p.Name) == "" {
			add("%s: name must not be empty", where)
		} else {
			where = fmt.Sprintf("profile %q", p.Name)
		}
		if p.Hotkey != "" {
			if _, err := hotkey.Parse(p.Hotkey); err != nil {
				add("%s: hotkey: %w", where, err)
			}
		}
		if len(p.Pages) == 0 {
			add("%s: at least one page is required", where)
		}
		for j, pg := range p.Pages {
			errs = append(errs, validatePage(where, j, pg)...)
		}
	}
	return errors.Join(errs...)
}

func validatePage(profile string, index int, pg Page) []error {
	var errs []error
	where := fmt.Sprintf("%s page %d", profile, index)
	if strings.TrimSpace(pg.Name) == "" {
		errs = append(errs, fmt.Errorf("%s: name must not be empty", where))
	} else {
		where = fmt.Sprintf("%s page %q", profile, pg.Name)
	}
	if pg.Rows < 1 || pg.Cols < 1 {
		errs = append(errs, fmt.Errorf("%s: rows and cols must be at least 1, got %dx%d", where, pg.Rows, pg.Cols))
	}

	seen := make(map[Position]string, len(pg.Buttons))
	for _, b := range pg.Buttons {
		if !pg.InBounds(b.Position) {
			errs = append(errs, fmt.Errorf("%s: button %q at %s is outside the %dx%d grid", where, b.Label, b.Position, pg.Rows, pg.Cols))
		}
		if other, dup := seen[b.Position]; dup {
			errs = append(errs, fmt.Errorf("%s: buttons %q and %q share cell %s", where, other, b.Label, b.Position))
		}
		seen[b.Position] = b.Label
		if strings.TrimSpace(b.Label) == "" {
			errs = append(errs, fmt.Errorf("%s: button at %s has an empty label", where, b.Position))
		}
		if !b.ActionType.Valid() {
			errs = append(errs, fmt.Errorf("%s: button %q has unknown action_type %q", where, b.Label, b.ActionType))
		}
	}
	return errs
}

// HotkeyRequests lists the summon hotkeys followed by each profile's hotkey.
func (c Config) HotkeyRequests() []hotkey.Request {
	var reqs []hotkey.Request
	for _, hk := range c.UI.Summon.Hotkeys {
		reqs = append(reqs, hotkey.Request{Combination: hk, Purpose: hotkey.Summon()})
	}
	for i, p := range c.Profiles {
		if strings.TrimSpace(p.Hotkey) == "" {
			continue
		}
		reqs = append(reqs, hotkey.Request{Combination: p.Hotkey, Purpose: hotkey.ProfileSwitch(i)})
	}
	return reqs
}
