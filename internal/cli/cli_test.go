package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"boardscan/internal/config"
	"boardscan/internal/pipeline"
	"boardscan/internal/schematic"
	"boardscan/internal/shape"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with fresh flag values and returns what it
// wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	verbose, configPath = false, ""
	analyzeJSON, analyzeOut = false, ""
	exportFormat, exportOut, exportScale = "svg", "", 1
	configInitForce, watchExport = false, ""

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// writeBoard writes an opaque black PNG and a fixed-threshold config.
func writeBoard(t *testing.T, dir string) (imgPath, cfgPath string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 48, 32))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	imgPath = filepath.Join(dir, "board.png")
	f, err := os.Create(imgPath)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	p := config.Default()
	p.Extract.Mode = shape.ThresholdFixed
	cfgPath = filepath.Join(dir, "params.toml")
	require.NoError(t, p.Save(cfgPath))
	return imgPath, cfgPath
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "boardscan version 0.1.0")
}

func TestTemplatesCmd(t *testing.T) {
	out, err := execute(t, "templates")
	require.NoError(t, err)
	assert.Contains(t, out, "Resistor")
	assert.Contains(t, out, "200 - 2000")
	assert.Contains(t, out, "Connector")
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boardscan.toml")

	_, err := execute(t, "config", "init", path)
	require.NoError(t, err)

	got, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), got)

	_, err = execute(t, "config", "init", path)
	assert.ErrorIs(t, err, os.ErrExist)

	out, err := execute(t, "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "[connectivity]")
	assert.Contains(t, out, "[layout]")
}

func TestAnalyzeCmd_JSON(t *testing.T) {
	imgPath, cfgPath := writeBoard(t, t.TempDir())

	out, err := execute(t, "analyze", imgPath, "--json", "--config", cfgPath)
	require.NoError(t, err)

	var res pipeline.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.NotEmpty(t, res.RunID)
	assert.Empty(t, res.Components)
	assert.Equal(t, "General Purpose", res.Summary.CircuitType)
}

func TestAnalyzeCmd_Summary(t *testing.T) {
	imgPath, cfgPath := writeBoard(t, t.TempDir())
	resultPath := filepath.Join(t.TempDir(), "result.json")

	out, err := execute(t, "analyze", imgPath, "--config", cfgPath, "-o", resultPath)
	require.NoError(t, err)
	assert.Contains(t, out, "board.png")
	assert.Contains(t, out, "Unknown Function")
	assert.Contains(t, out, "not computed")
	assert.FileExists(t, resultPath)
}

func TestAnalyzeCmd_Errors(t *testing.T) {
	_, err := execute(t, "analyze", filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))
	_, err = execute(t, "analyze", bad)
	assert.ErrorContains(t, err, "decode image")
}

func TestExportCmd(t *testing.T) {
	dir := t.TempDir()
	imgPath, cfgPath := writeBoard(t, dir)

	_, err := execute(t, "export", imgPath, "--config", cfgPath)
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(dir, "board.schematic.svg"))
	require.NoError(t, err)
	defer f.Close()
	sheet, err := schematic.ParseSVG(f)
	require.NoError(t, err)
	assert.Equal(t, schematic.DefaultTitle, sheet.Title)

	// The default PNG name must not collide with the PNG input.
	_, err = execute(t, "export", imgPath, "--config", cfgPath, "--format", "png")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "board.schematic.png"))
	src, err := os.Open(imgPath)
	require.NoError(t, err)
	defer src.Close()
	cfg, err := png.DecodeConfig(src)
	require.NoError(t, err)
	assert.Equal(t, 48, cfg.Width)
	assert.Equal(t, 32, cfg.Height)

	_, err = execute(t, "export", imgPath, "--config", cfgPath, "--format", "png", "-o", imgPath)
	assert.ErrorContains(t, err, "overwrite the input")

	pngPath := filepath.Join(dir, "out.png")
	_, err = execute(t, "export", imgPath, "--config", cfgPath, "--format", "png", "-o", pngPath)
	require.NoError(t, err)
	assert.FileExists(t, pngPath)

	_, err = execute(t, "export", imgPath, "--format", "pdf")
	assert.ErrorContains(t, err, "unknown format")
}

func TestWatchDir(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const settle = 200 * time.Millisecond
	seen := make(chan string, 8)
	done := make(chan error, 1)
	go func() {
		done <- watchDir(ctx, dir, settle, func(path string) { seen <- path })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "board.schematic.png"), []byte("x"), 0o644))
	target := filepath.Join(dir, "scan.png")
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(target, []byte("xyz"[:i+1]), 0o644))
	}

	select {
	case got := <-seen:
		assert.Equal(t, target, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no watch event for new image")
	}

	// Repeated writes of one file collapse into a single call.
	select {
	case got := <-seen:
		t.Fatalf("unexpected second call for %s", got)
	case <-time.After(4 * settle):
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watchDir did not stop")
	}
}

func TestPathHelpers(t *testing.T) {
	assert.True(t, isImageFile("a/b/board.TIFF"))
	assert.False(t, isImageFile("board.svg"))
	assert.True(t, isExported("board.schematic.png"))
	assert.False(t, isExported("board.png"))
	assert.Equal(t, "dir/board.svg", replaceExt("dir/board.png", ".svg"))
}
