package game

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/etherwall/internal/config"
	"github.com/iburimskiy/etherwall/internal/palette"
)

const dialogTitle = "Etherwall"

// Dialogs block, so each runs on its own goroutine and posts its result
// back to the frame goroutine. Only one dialog is open at a time.

func (g *Game) openThemeDialog() {
	if !g.dialogOpen.CompareAndSwap(false, true) {
		return
	}
	names := make([]string, len(palette.Themes))
	for i, t := range palette.Themes {
		names[i] = t.Name
	}
	current := names[g.engine.Settings().ColorTheme]

	go func() {
		defer g.dialogOpen.Store(false)

		choice, err := zenity.List("Color theme", names,
			zenity.Title(dialogTitle),
			zenity.DefaultItems(current),
		)
		if err != nil {
			g.dialogFailed(err)
			return
		}
		idx := slices.Index(names, choice)
		if idx < 0 {
			return
		}
		g.post(func() { g.flash(g.controls.ApplyPatch(config.WithColorTheme(idx))) })
	}()
}

func (g *Game) openOrbCountDialog() {
	if !g.dialogOpen.CompareAndSwap(false, true) {
		return
	}
	current := g.engine.Settings().OrbCount

	go func() {
		defer g.dialogOpen.Store(false)

		text, err := zenity.Entry(fmt.Sprintf("Number of orbs (0-%d)", config.MaxOrbCount),
			zenity.Title(dialogTitle),
			zenity.EntryText(strconv.Itoa(current)),
		)
		if err != nil {
			g.dialogFailed(err)
			return
		}
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			g.post(func() { g.fail(fmt.Errorf("invalid orb count %q", text)) })
			return
		}
		g.post(func() { g.flash(g.controls.ApplyPatch(config.WithOrbCount(n))) })
	}()
}

func (g *Game) openAmbienceDialog() {
	if !g.dialogOpen.CompareAndSwap(false, true) {
		return
	}

	go func() {
		defer g.dialogOpen.Store(false)

		filename, err := zenity.SelectFile(
			zenity.Title("Open Ambience"),
			zenity.FileFilters{{
				Name:     "Audio",
				Patterns: []string{"*.wav", "*.mp3", "*.flac"},
			}},
		)
		if err != nil {
			g.dialogFailed(err)
			return
		}
		g.post(func() {
			msg, err := g.controls.SetAmbience(filename)
			if err != nil {
				g.fail(err)
				return
			}
			g.flash(msg)
		})
	}()
}

func (g *Game) dialogFailed(err error) {
	if errors.Is(err, zenity.ErrCanceled) {
		return
	}
	g.post(func() { g.fail(fmt.Errorf("dialog: %w", err)) })
}

// ShowError reports a fatal error in a native dialog.
func ShowError(err error) {
	_ = zenity.Error(err.Error(), zenity.Title(dialogTitle), zenity.ErrorIcon)
}
