// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pdiddy/tradedesk/pkg/types"
)

func TestWatch_RescansOnChange(t *testing.T) {
	root := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan types.CatalogKind, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, []Target{{Kind: types.CatalogConfig, Root: root}}, 50*time.Millisecond, nil,
			func(tg Target) { changed <- tg.Kind })
	}()

	// Give the watcher time to register the root before writing.
	time.Sleep(200 * time.Millisecond)
	writeFile(t, root, "new.sql", "-- @type: fresh")

	select {
	case kind := <-changed:
		require.Equal(t, types.CatalogConfig, kind)
	case <-time.After(5 * time.Second):
		t.Fatal("no rescan after writing a config file")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatch_NoRoots(t *testing.T) {
	err := Watch(context.Background(),
		[]Target{{Kind: types.CatalogCode, Root: filepath.Join(t.TempDir(), "missing")}},
		time.Millisecond, nil, func(Target) {})
	require.Error(t, err)
}
