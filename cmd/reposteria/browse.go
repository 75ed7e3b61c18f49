// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"reposteria/internal/catalog"
	"reposteria/internal/config"
	"reposteria/internal/searchclient"
	"reposteria/internal/tui"
)

type browseOptions struct {
	baseURL string
	filters string
	logFile string
}

func newBrowseCmd() *cobra.Command {
	var opts browseOptions
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog in the terminal",
		Long: `Opens an interactive catalog filter against a running storefront.

Initial filters use the same query string as the /productos page, e.g.
  reposteria browse --filters 'q=chocolate&mode=max&price=5000&inStock=1'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.baseURL, "url", "", "storefront base URL (default API_BASE_URL)")
	cmd.Flags().StringVar(&opts.filters, "filters", "", "initial filters as a query string")
	cmd.Flags().StringVar(&opts.logFile, "log", "", "write logs to this file")
	return cmd
}

func runBrowse(ctx context.Context, opts browseOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The terminal belongs to the program; logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug})))

	baseURL := opts.baseURL
	if baseURL == "" {
		baseURL = cfg.APIBaseURL
	}

	initial, err := parseFilters(opts.filters)
	if err != nil {
		return err
	}

	client := searchclient.New(baseURL)
	if ctx == nil {
		ctx = context.Background()
	}
	loadCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	categories, err := client.Categories(loadCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("loading categories from %s: %w", baseURL, err)
	}
	slog.Info("catalog browser starting", "url", baseURL, "categories", len(categories))

	m := tui.New(client, categories, initial, tui.Options{Debounce: cfg.SearchDebounce, BaseURL: baseURL})
	defer m.Close()

	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("running catalog browser: %w", err)
	}
	return nil
}

// parseFilters reads initial filters from a query string, with or
// without a leading "?".
func parseFilters(raw string) (catalog.InitialFilters, error) {
	if raw == "" {
		return catalog.InitialFilters{}, nil
	}
	if raw[0] == '?' {
		raw = raw[1:]
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return catalog.InitialFilters{}, fmt.Errorf("parsing --filters: %w", err)
	}
	return catalog.InitialFiltersFromValues(values), nil
}
