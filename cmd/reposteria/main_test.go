// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"reposteria/internal/catalog"
	"reposteria/internal/config"
)

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	require.Subset(t, names, []string{"serve", "migrate", "seed", "browse"})

	migrate, _, err := root.Find([]string{"migrate"})
	require.NoError(t, err)
	require.NotNil(t, migrate.Flags().Lookup("status"))

	browse, _, err := root.Find([]string{"browse"})
	require.NoError(t, err)
	for _, flag := range []string{"url", "filters", "log"} {
		require.NotNil(t, browse.Flags().Lookup(flag), flag)
	}
}

func TestServeRejectsArgs(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"serve", "extra"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	require.Error(t, root.Execute())
}

func TestParseFilters(t *testing.T) {
	in, err := parseFilters("?q=chocolate&mode=max&price=5000&inStock=1")
	require.NoError(t, err)
	require.Equal(t, "chocolate", in.Query)
	require.Equal(t, "max", in.PriceMode)
	require.NotNil(t, in.Price)
	require.Equal(t, 5000.0, *in.Price)
	require.True(t, in.InStock)

	in, err = parseFilters("")
	require.NoError(t, err)
	require.Equal(t, catalog.InitialFilters{}, in)

	_, err = parseFilters("q=%zz")
	require.Error(t, err)
}

func TestNewLoggerFormat(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "log")
	require.NoError(t, err)
	defer f.Close()

	newLogger(&config.Config{Env: "production"}, f).Info("hello", "k", "v")
	newLogger(&config.Config{Env: "development"}, f).Info("hello", "k", "v")

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 2)
	require.True(t, bytes.HasPrefix(lines[0], []byte("{")), "production logs are JSON")
	require.Contains(t, string(lines[1]), "msg=hello")
}
