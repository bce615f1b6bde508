// Package browse implements the cfbrowse browse command.
package browse

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/steviee/cfbrowse/internal/cli/common"
	"github.com/steviee/cfbrowse/internal/state"
	"github.com/steviee/cfbrowse/internal/tui"
)

// Exit is the output of browse in JSON mode.
type Exit struct {
	Route string `json:"route"`
}

// NewCommand creates the browse command
func NewCommand() *cobra.Command {
	var theme string

	cmd := &cobra.Command{
		Use:   "browse [route]",
		Short: "Browse the catalog interactively",
		Long: `Open the interactive catalog browser.

A route opens the browser at a location. The route of the last screen is
printed on exit, so passing it back resumes where you left off:

  /                                   games list
  /games/432?q=jei&sort=6&order=desc  mod search of a game
  /mods/238222                        mod detail
  /mods/238222/files?index=20         files of a mod

Without an API key the browser asks for one and stores it.`,
		Example: `  # Start at the games list
  cfbrowse browse

  # Search Minecraft mods for "jei"
  cfbrowse browse '/games/432?q=jei'

  # Monochrome theme
  cfbrowse browse --theme mono`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode := common.IsJSON(cmd)
			w := cmd.OutOrStdout()

			env, err := common.Load(cmd)
			if err != nil {
				return common.OutputError(w, jsonMode, err)
			}

			raw := ""
			if len(args) == 1 {
				raw = args[0]
			}

			ctx := contextOf(cmd)
			model, err := newModel(ctx, env, raw, theme)
			if err != nil {
				return common.OutputError(w, jsonMode, err)
			}

			program := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(w))

			final, err := program.Run()
			if err != nil {
				return common.OutputError(w, jsonMode, fmt.Errorf("run browser: %w", err))
			}

			return printExit(w, final.(tui.Model).Route(), jsonMode)
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "color theme: default or mono (overrides tui.theme)")

	return cmd
}

// newModel builds the browser at route raw. An empty theme uses the
// configured one.
func newModel(ctx context.Context, env *common.Env, raw, theme string) (tui.Model, error) {
	if theme == "" {
		theme = env.Config.TUI.Theme
	}
	if err := state.ValidateTheme(theme); err != nil {
		return tui.Model{}, err
	}

	route, err := tui.ParseRoute(raw, env.Catalog.Defaults())
	if err != nil {
		return tui.Model{}, err
	}

	return tui.NewModel(ctx, env.Catalog, env.Credentials, tui.Options{
		Route: &route,
		Theme: theme,
	}), nil
}

func printExit(w io.Writer, route tui.Route, jsonMode bool) error {
	if jsonMode {
		return common.WriteJSON(w, Exit{Route: route.String()})
	}

	_, err := fmt.Fprintf(w, "Resume with: cfbrowse browse '%s'\n", route)
	return err
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
