package main

import (
	"fmt"
	"os"

	"github.com/3nids/CadInput/pkg/layer"
	"github.com/3nids/CadInput/pkg/layer/sqlite"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var layerDB string

var layerCmd = &cobra.Command{
	Use:   "layer",
	Short: "Manage the layer store",
	Long:  `Import, list and export the vector layers kept in the sqlite layer store.`,
}

var layerImportCmd = &cobra.Command{
	Use:   "import <layers.yaml>",
	Short: "Import a YAML layer file into the store",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayerImport,
}

var layerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stored layers",
	Args:  cobra.NoArgs,
	RunE:  runLayerList,
}

var layerExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the stored layers as YAML to stdout",
	Args:  cobra.NoArgs,
	RunE:  runLayerExport,
}

func init() {
	rootCmd.AddCommand(layerCmd)
	layerCmd.AddCommand(layerImportCmd, layerListCmd, layerExportCmd)

	layerCmd.PersistentFlags().StringVar(&layerDB, "db", "", "sqlite database (default layers.database from config)")
}

func openLayerStore() (*sqlite.Store, *zap.Logger, error) {
	cfg, log, err := setup()
	if err != nil {
		return nil, nil, err
	}
	path := layerDB
	if path == "" {
		path = cfg.Layers.Database
	}
	if path == "" {
		return nil, nil, fmt.Errorf("no layer database: pass --db or set layers.database")
	}

	store, err := sqlite.New(path)
	if err != nil {
		return nil, nil, err
	}
	return store, log.With(zap.String("db", path)), nil
}

func runLayerImport(cmd *cobra.Command, args []string) error {
	layers, err := layer.LoadFile(args[0])
	if err != nil {
		return err
	}

	store, log, err := openLayerStore()
	if err != nil {
		return err
	}
	defer store.Close()
	defer log.Sync()

	n, err := store.Import(cmd.Context(), layers)
	if err != nil {
		return fmt.Errorf("imported %d features before failing: %w", n, err)
	}
	log.Info("layers imported", zap.Int("layers", len(layers)), zap.Int("features", n))
	fmt.Printf("Imported %d features in %d layers\n", n, len(layers))
	return nil
}

func runLayerList(cmd *cobra.Command, args []string) error {
	store, log, err := openLayerStore()
	if err != nil {
		return err
	}
	defer store.Close()
	defer log.Sync()

	layers, err := store.Layers(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println("Layers")
	fmt.Println("======")
	for _, l := range layers {
		fmt.Printf("\n%s\n", l.Name)
		fmt.Printf("  Features: %d\n", l.FeatureCount())
		fmt.Printf("  Segments: %d\n", len(l.Segments()))
		if bbox := l.BoundingBox(); !bbox.IsEmpty() {
			fmt.Printf("  Extent:   %s - %s\n", formatPoint(bbox.Min), formatPoint(bbox.Max))
		}
	}
	return nil
}

func runLayerExport(cmd *cobra.Command, args []string) error {
	store, log, err := openLayerStore()
	if err != nil {
		return err
	}
	defer store.Close()
	defer log.Sync()

	layers, err := store.Layers(cmd.Context())
	if err != nil {
		return err
	}
	return layer.WriteYAML(os.Stdout, layers)
}
