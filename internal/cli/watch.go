package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"boardscan/internal/config"
	"boardscan/internal/logger"
	"boardscan/internal/pipeline"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var watchExport string

// watchSettle is how long a file must stay quiet before it is analyzed.
// One save usually produces several write events.
const watchSettle = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Analyze board images as they appear in a directory",
	Long: `Watches a directory and analyzes every image file that is created or
rewritten there, printing a summary for each. With --export, the schematic
is written next to the image.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchExport, "export", "", "also write the schematic: svg or png")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	if info, err := os.Stat(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	} else if !info.IsDir() {
		return fmt.Errorf("watch %s: not a directory", dir)
	}
	if watchExport != "" && watchExport != "svg" && watchExport != "png" {
		return fmt.Errorf("unknown export format %q (want svg or png)", watchExport)
	}

	params, err := loadParams()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "watching %s (Ctrl-C to stop)\n", dir)
	return watchDir(ctx, dir, watchSettle, func(path string) {
		handleWatched(cmd, path, params)
	})
}

// watchDir calls handle once for every image created or written in dir,
// after the file has seen no events for settle, until ctx is cancelled.
func watchDir(ctx context.Context, dir string, settle time.Duration, handle func(path string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	type quiet struct {
		path string
		gen  int
	}
	var (
		timers = make(map[string]*time.Timer)
		gens   = make(map[string]int)
		ready  = make(chan quiet)
	)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case q := <-ready:
			// A later event restarted the wait; that timer will deliver.
			if gens[q.path] != q.gen {
				continue
			}
			delete(timers, q.path)
			delete(gens, q.path)
			handle(q.path)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !isImageFile(event.Name) || isExported(event.Name) {
				continue
			}
			logger.Debug("watch: %s %s", event.Op, event.Name)

			if t := timers[event.Name]; t != nil {
				t.Stop()
			}
			gens[event.Name]++
			q := quiet{path: event.Name, gen: gens[event.Name]}
			timers[event.Name] = time.AfterFunc(settle, func() {
				select {
				case ready <- q:
				case <-ctx.Done():
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)
		}
	}
}

// isExported reports whether path is a schematic written by watch itself.
func isExported(path string) bool {
	return strings.HasSuffix(strings.TrimSuffix(path, filepath.Ext(path)), schematicSuffix)
}

const schematicSuffix = ".schematic"

func handleWatched(cmd *cobra.Command, path string, params config.Params) {
	img, err := loadImage(path)
	if err != nil {
		// Partially written files fail to decode; the next write event retries.
		logger.Warn("watch: %v", err)
		return
	}

	out := <-pipeline.Go(img, params)
	if out.Err != nil {
		cmd.PrintErrf("%s: %v\n", filepath.Base(path), out.Err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(filepath.Base(path), out.Result))

	if watchExport != "" {
		dst := replaceExt(path, schematicSuffix+"."+watchExport)
		if err := writeSchematic(dst, watchExport, out.Result.Schematic, 1); err != nil {
			cmd.PrintErrf("%s: %v\n", filepath.Base(path), err)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("wrote "+dst))
	}
}
