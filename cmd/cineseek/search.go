package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"cineseek/pkg/movie"
)

func newSearchCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "search <release name>",
		Short: "Resolve a release name once and print the matches",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Unquoted shell input arrives as separate args
			query := strings.Join(args, " ")
			return runSearch(cmd, *configPath, query)
		},
	}
}

func runSearch(cmd *cobra.Command, configPath, query string) error {
	// One-shot mode logs warnings only; results go to stdout.
	slog.SetLogLoggerLevel(slog.LevelWarn)

	app, cleanup, err := buildApp(configPath)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	results, err := app.service.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matches found.")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderResults(results))
	return nil
}

// renderResults formats the ranked matches as a terminal table, best
// match first.
func renderResults(results []movie.Result) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Title", "Year", "Genres", "Countries", "QID"})

	for i, res := range results {
		year := ""
		if res.Year > 0 {
			year = strconv.Itoa(res.Year)
		}
		tw.AppendRow(table.Row{
			i + 1,
			res.DisplayTitle,
			year,
			strings.Join(res.Genres, ", "),
			strings.Join(res.Countries, ", "),
			res.WikidataID,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, WidthMax: 60},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, WidthMax: 30},
		{Number: 5, WidthMax: 30},
	})

	return tw.Render()
}
