package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/mushroom/inference"
)

func writeDataset(t *testing.T, dir string) string {
	t.Helper()
	var b strings.Builder
	odors := []string{"a", "l", "n", "f", "y", "s"}
	for i := 0; i < 120; i++ {
		odor := odors[i%len(odors)]
		label := "p"
		if i%len(odors) < 3 {
			label = "e"
		}
		fmt.Fprintf(&b, "%s,%s,%s,p\n", label, odor, []string{"w", "g", "b"}[i%3])
	}
	path := filepath.Join(dir, "raw_data")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func TestTrainCommand(t *testing.T) {
	dir := t.TempDir()
	data := writeDataset(t, dir)
	model := filepath.Join(dir, "mushroom.model")
	plot := filepath.Join(dir, "errors.png")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{data, "--epochs=3", "--seed=5", "--dstmodel=" + model, "--plot=" + plot, "--log-level=error"})
	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3, "one progress line per epoch")
	for i, line := range lines {
		assert.True(t, strings.HasPrefix(line, fmt.Sprintf("epoch: %4d ", i+1)), line)
	}

	m, err := inference.LoadFile(model)
	require.NoError(t, err)
	assert.NoError(t, m.Check())
	assert.FileExists(t, plot)

	cmd = newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{data, "--epochs=1", "--dstmodel=" + model, "--resume", "--log-level=error"})
	assert.NoError(t, cmd.Execute())
}

func TestTrainCommandErrors(t *testing.T) {
	dir := t.TempDir()
	for name, args := range map[string][]string{
		"missing data": {filepath.Join(dir, "missing")},
		"bad rate":     {writeDataset(t, dir), "--learning-rate=0"},
		"bad policy":   {writeDataset(t, dir), "--unknown=guess"},
		"resume":       {writeDataset(t, dir), "--resume"},
	} {
		t.Run(name, func(t *testing.T) {
			cmd := newRootCmd()
			cmd.SetArgs(append(args, "--log-level=error"))
			assert.Error(t, cmd.Execute())
		})
	}
}
