package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/3nids/CadInput/internal/config"
	"github.com/3nids/CadInput/internal/replay"
	"github.com/3nids/CadInput/internal/session"
	"github.com/3nids/CadInput/pkg/layer"
	"github.com/3nids/CadInput/pkg/layer/sqlite"
	"github.com/3nids/CadInput/pkg/snapping"
	"github.com/3nids/CadInput/pkg/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	replayWatch bool
	replayStore string
	replayJSON  bool
	replayLayer string
)

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>",
	Short: "Replay a scripted digitizing session",
	Long: `Replay pointer events and lock commands from a YAML script and print the
committed points.

With --store the digitized points are saved as one feature of the current
layer. With --watch the script is replayed every time it, or its layer file,
changes; nothing is stored in watch mode.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().BoolVarP(&replayWatch, "watch", "w", false, "replay again when the script changes")
	replayCmd.Flags().StringVar(&replayStore, "store", "", "sqlite database receiving the digitized feature (default layers.database from config)")
	replayCmd.Flags().BoolVar(&replayJSON, "json", false, "print the transcript as JSON")
	replayCmd.Flags().StringVar(&replayLayer, "layer", "", "layer receiving the digitized feature (default current_layer of the script)")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := cmd.Context()
	scriptPath := args[0]

	if !replayWatch {
		var store layer.Store
		dbPath := replayStore
		if dbPath == "" {
			dbPath = cfg.Layers.Database
		}
		if dbPath != "" {
			s, err := sqlite.New(dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			store = s
		}
		return replayOnce(ctx, cfg, log, scriptPath, store)
	}

	if replayStore != "" {
		log.Warn("--store is ignored in watch mode", zap.String("db", replayStore))
	}
	if err := replayOnce(ctx, cfg, log, scriptPath, nil); err != nil {
		log.Error("replay failed", zap.Error(err))
	}
	return watchReplay(ctx, cfg, log, scriptPath)
}

// watchReplay replays the script on every change until ctx is cancelled
func watchReplay(ctx context.Context, cfg config.Config, log *zap.Logger, scriptPath string) error {
	fw, err := watcher.NewFileWatcher(cfg.Watch.Debounce, log)
	if err != nil {
		return err
	}
	defer fw.Close()

	files := []string{scriptPath}
	if script, err := replay.Load(scriptPath); err == nil && script.LayerFile() != "" {
		files = append(files, script.LayerFile())
	}

	changes := make(chan string, 1)
	if err := fw.Watch(files, func(path string) {
		select {
		case changes <- path:
		default:
		}
	}); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return fw.Run(gctx)
	})
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case path := <-changes:
				log.Debug("replaying", zap.String("trigger", path))
				if err := replayOnce(gctx, cfg, log, scriptPath, nil); err != nil {
					log.Error("replay failed", zap.Error(err))
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func replayOnce(ctx context.Context, cfg config.Config, log *zap.Logger, scriptPath string, store layer.Store) error {
	script, err := replay.Load(scriptPath)
	if err != nil {
		return err
	}

	layers, err := script.LoadLayers()
	if err != nil {
		return err
	}
	if store != nil {
		stored, err := store.Layers(ctx)
		if err != nil {
			return err
		}
		layers = layer.Merge(append(layers, stored...)...)
	}

	current := replayLayer
	if current == "" {
		current = script.CurrentLayer
	}
	if current == "" {
		current = cfg.Layers.Current
	}

	opts := snapping.Options{
		Tolerance: cfg.Snapping.TolerancePx * cfg.Canvas.UnitsPerPixel,
		Vertex:    cfg.Snapping.Vertex,
		Segment:   cfg.Snapping.Segment,
	}
	if script.Tolerance != nil {
		opts.Tolerance = *script.Tolerance
	}
	index := snapping.NewIndex(layers, current, opts)
	sess := session.New(session.WithSnapper(index), session.WithLogger(log))

	runOpts := []replay.Option{replay.WithLogger(log), replay.WithLayer(current)}
	if store != nil {
		runOpts = append(runOpts, replay.WithStore(store))
	}

	tr, err := replay.Run(ctx, script, sess, runOpts...)
	if err != nil {
		return err
	}

	if replayJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tr)
	}
	printTranscript(tr, current)
	return nil
}

func printTranscript(tr replay.Transcript, current string) {
	fmt.Println("Replay Transcript")
	fmt.Println("=================")
	fmt.Printf("\nSteps: %d\n", len(tr.Steps))
	for _, s := range tr.Steps {
		if !s.Aligned {
			continue
		}
		fmt.Printf("  step %d aligned angle to %.6f degrees\n", s.Index, s.AlignAngle)
	}

	fmt.Printf("\nCommitted points: %d\n", len(tr.Committed))
	for i, p := range tr.Committed {
		fmt.Printf("  %d: %s\n", i+1, formatPoint(p))
	}
	if len(tr.Construction) > 0 {
		fmt.Printf("\nConstruction points: %d\n", len(tr.Construction))
		for i, p := range tr.Construction {
			fmt.Printf("  %d: %s\n", i+1, formatPoint(p))
		}
	}
	if tr.FeatureID != "" {
		fmt.Printf("\nStored feature %s in layer %s\n", tr.FeatureID, current)
	}
}
