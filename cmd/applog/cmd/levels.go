package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/applog/internal/config"
	"github.com/Aman-CERP/applog/internal/severity"
)

type levelInfo struct {
	Name   string `json:"name"`
	Rank   int    `json:"rank"`
	Letter string `json:"letter"`
	Slog   string `json:"slog"`
}

func newLevelsCmd() *cobra.Command {
	var (
		jsonOutput bool
		noColor    bool
	)

	cmd := &cobra.Command{
		Use:   "levels",
		Short: "List log levels and their ranks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			levels := make([]levelInfo, 0, len(severity.All()))
			for _, l := range severity.All() {
				levels = append(levels, levelInfo{
					Name:   l.String(),
					Rank:   int(l),
					Letter: l.Letter(),
					Slog:   l.ToSlog().String(),
				})
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(levels)
			}

			mode := config.ColorAuto
			if noColor {
				mode = config.ColorNever
			}
			styles := stylesFor(mode, out)

			_, _ = fmt.Fprintln(out, styles.Header.Render(fmt.Sprintf("%-4s %-7s %-6s %s", "RANK", "NAME", "LETTER", "SLOG")))
			for i, info := range levels {
				name := styles.Level(severity.All()[i]).Render(fmt.Sprintf("%-7s", info.Name))
				_, _ = fmt.Fprintf(out, "%-4d %s %-6s %s\n", info.Rank, name, info.Letter, info.Slog)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}
