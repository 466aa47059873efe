package navigation

import "github.com/kino-6/q-deck-launcher-sub002/internal/config"

// Context is the derived, read-only view of where navigation stands.
type Context struct {
	ProfileIndex    int
	PageIndex       int
	ProfileName     string
	PageName        string
	TotalProfiles   int
	TotalPages      int
	HasPreviousPage bool
	HasNextPage     bool
}

// Derive computes the context for (profile, page) in cfg. Indices must already be valid.
func Derive(cfg config.Config, profile, page int) Context {
	ctx := Context{
		ProfileIndex:  profile,
		PageIndex:     page,
		TotalProfiles: len(cfg.Profiles),
	}
	if profile < 0 || profile >= len(cfg.Profiles) {
		return ctx
	}
	p := cfg.Profiles[profile]
	ctx.ProfileName = p.Name
	ctx.TotalPages = len(p.Pages)
	if page >= 0 && page < len(p.Pages) {
		ctx.PageName = p.Pages[page].Name
	}
	ctx.HasPreviousPage = page > 0
	ctx.HasNextPage = page < len(p.Pages)-1
	return ctx
}

// ProfileSummary describes one profile for listings.
type ProfileSummary struct {
	Index  int
	Name   string
	Hotkey string
	Pages  int
	Active bool
}

// PageSummary describes one page of the active profile.
type PageSummary struct {
	Index   int
	Name    string
	Rows    int
	Cols    int
	Buttons int
	Active  bool
}
