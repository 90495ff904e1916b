// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package lib

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWatchConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "spell:\n  languages: en_US\n")

	reloaded := make(chan *Config, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	watcher, err := WatchConfig(ctx, path, zap.NewNop(), func(config *Config) {
		reloaded <- config
	})
	require.NoError(t, err)
	defer watcher.Close()

	// a broken edit is skipped
	require.NoError(t, os.WriteFile(path, []byte("display: ["), 0644))
	time.Sleep(2 * reloadDebounce)
	require.NoError(t, os.WriteFile(path, []byte("spell:\n  languages: de_DE\n"), 0644))

	select {
	case config := <-reloaded:
		assert.Equal(t, "de_DE", config.Spell.Languages)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}
}
