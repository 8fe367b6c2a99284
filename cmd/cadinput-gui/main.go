package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/3nids/CadInput/internal/config"
	"github.com/3nids/CadInput/internal/logging"
	"github.com/3nids/CadInput/internal/session"
	"github.com/3nids/CadInput/pkg/constraint"
	"github.com/3nids/CadInput/pkg/geometry"
	"github.com/3nids/CadInput/pkg/layer"
	"github.com/3nids/CadInput/pkg/layer/sqlite"
	"github.com/3nids/CadInput/pkg/snapping"
	"github.com/3nids/CadInput/pkg/viewer"
	"github.com/3nids/CadInput/pkg/watcher"
	"github.com/3nids/CadInput/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	window  fyne.Window
	log     *zap.Logger
	cfg     config.Config
	store   layer.Store
	session *session.Session
	index   *snapping.Index
	canvas  *viewer.MapCanvas
	panel   *LockPanel
	status  *widget.Label

	mu      sync.Mutex
	pending []geometry.Point // committed points of the feature being digitized
}

// AxisControls are the widgets of one lockable axis
type AxisControls struct {
	axis     constraint.Axis
	value    *widget.Entry
	locked   *widget.Check
	relative *widget.Check
}

// LockPanel shows and edits the locks of the session
type LockPanel struct {
	axes         []*AxisControls
	construction *widget.Check
	updating     bool
}

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:     "cadinput-gui [layers.yaml]",
		Short:   "Digitize points with X, Y, angle and distance locks",
		Version: version.GetFullVersion(),
		Args:    cobra.MaximumNArgs(1),
		RunE:    runGUI,
	}
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default $"+config.EnvPath+" or "+config.DefaultPath+")")
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.Path(configPath))
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel, format)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	a := app.New()
	w := a.NewWindow("CadInput " + version.GetVersion())

	appInstance := &App{
		window: w,
		log:    log,
		cfg:    cfg,
		status: widget.NewLabel(""),
	}

	if cfg.Layers.Database != "" {
		store, err := sqlite.New(cfg.Layers.Database)
		if err != nil {
			return err
		}
		defer store.Close()
		appInstance.store = store
	}

	appInstance.setupMainUI()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if len(args) > 0 {
		appInstance.loadFile(args[0])
		appInstance.watchFile(ctx, args[0])
	} else {
		appInstance.loadStore()
	}

	w.Resize(fyne.NewSize(float32(cfg.Canvas.Width), float32(cfg.Canvas.Height)))
	w.ShowAndRun()
	return nil
}

func (a *App) setupMainUI() {
	opts := snapping.Options{
		Tolerance: a.cfg.Snapping.TolerancePx * a.cfg.Canvas.UnitsPerPixel,
		Vertex:    a.cfg.Snapping.Vertex,
		Segment:   a.cfg.Snapping.Segment,
	}
	a.index = snapping.NewIndex(nil, a.cfg.Layers.Current, opts)
	a.session = session.New(
		session.WithSnapper(a.index),
		session.WithLogger(a.log),
		session.WithTool(session.ToolFunc(a.handleToolEvent)),
	)

	transform := viewer.NewMapToPixel(geometry.Point{}, a.cfg.Canvas.UnitsPerPixel,
		float64(a.cfg.Canvas.Width), float64(a.cfg.Canvas.Height))
	a.canvas = viewer.NewMapCanvas(a.session, a.index, transform, a.cfg.Snapping.TolerancePx)
	a.canvas.SetOnOutcome(a.updatePanel)

	a.panel = a.newLockPanel()

	openButton := widget.NewButton("Open Layer File", func() {
		a.showFileDialog()
	})
	fitButton := widget.NewButton("Zoom to Layers", func() {
		a.canvas.FitLayers()
	})
	finishButton := widget.NewButton("Finish Feature", func() {
		a.finishFeature()
	})
	parallelButton := widget.NewButton("Parallel", func() {
		a.session.RequestParallel()
		a.status.SetText("Click a segment to align parallel")
	})
	perpendicularButton := widget.NewButton("Perpendicular", func() {
		a.session.RequestPerpendicular()
		a.status.SetText("Click a segment to align perpendicular")
	})
	cancelButton := widget.NewButton("Cancel Alignment", func() {
		a.session.CancelAlign()
		a.status.SetText("")
	})
	activeCheck := widget.NewCheck("Constrain input", func(checked bool) {
		a.session.SetActive(checked)
		a.canvas.Refresh()
	})
	activeCheck.SetChecked(true)

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Type a value and press Enter to lock an axis\n" +
			"• Click to add a point, locks are released afterwards\n" +
			"• Drag with the right button to pan\n" +
			"• Scroll to zoom in/out",
	)
	instructions.Wrapping = fyne.TextWrapWord

	lockGrid := container.NewGridWithColumns(4,
		widget.NewLabel("Axis"), widget.NewLabel("Value"), widget.NewLabel("Lock"), widget.NewLabel("Rel."),
	)
	for _, c := range a.panel.axes {
		lockGrid.Add(widget.NewLabel(c.axis.String()))
		lockGrid.Add(c.value)
		lockGrid.Add(c.locked)
		lockGrid.Add(c.relative)
	}

	infoPanel := container.NewVBox(
		widget.NewLabel("Locks:"),
		widget.NewSeparator(),
		lockGrid,
		widget.NewSeparator(),
		widget.NewLabel("Alignment:"),
		container.NewGridWithColumns(2, parallelButton, perpendicularButton),
		cancelButton,
		widget.NewSeparator(),
		a.panel.construction,
		activeCheck,
		widget.NewSeparator(),
		finishButton,
		fitButton,
		openButton,
		widget.NewSeparator(),
		instructions,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(320, 0))

	content := container.NewBorder(
		nil,
		a.status,
		nil,
		infoScroll,
		a.canvas,
	)

	a.window.SetContent(content)
}

func (a *App) newLockPanel() *LockPanel {
	p := &LockPanel{}
	for _, axis := range constraint.ResolutionOrder {
		c := &AxisControls{axis: axis, value: widget.NewEntry()}
		c.value.SetPlaceHolder("0")
		c.value.OnSubmitted = func(text string) {
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				a.status.SetText(fmt.Sprintf("Invalid %s value: %q", c.axis, text))
				return
			}
			a.session.Lock(c.axis, v)
			a.syncPanel(a.session.Locks())
		}
		c.locked = widget.NewCheck("", func(checked bool) {
			if p.updating {
				return
			}
			if !checked {
				a.session.Unlock(c.axis)
				a.canvas.Refresh()
				return
			}
			v, err := strconv.ParseFloat(c.value.Text, 64)
			if err != nil {
				v = a.session.Locks().Axes[c.axis].Value
			}
			a.session.Lock(c.axis, v)
			a.canvas.Refresh()
		})
		c.relative = widget.NewCheck("", func(checked bool) {
			if p.updating {
				return
			}
			a.session.SetRelative(c.axis, checked)
			a.canvas.Refresh()
		})
		if axis == constraint.AxisDistance {
			c.relative.Disable()
		}
		p.axes = append(p.axes, c)
	}
	p.construction = widget.NewCheck("Construction mode", func(checked bool) {
		if p.updating {
			return
		}
		a.session.SetConstruction(checked)
		a.canvas.Refresh()
	})
	return p
}

// updatePanel refreshes the read-outs after a pointer event
func (a *App) updatePanel(out session.Outcome) {
	a.syncPanel(out.Locks)
	switch {
	case out.Aligned:
		a.status.SetText(fmt.Sprintf("Angle aligned to %.4f°", out.AlignAngle))
	case out.Committed:
		a.status.SetText(fmt.Sprintf("Point %.4f, %.4f", out.Point.X, out.Point.Y))
	}
}

func (a *App) syncPanel(locks constraint.LockState) {
	p := a.panel
	p.updating = true
	defer func() { p.updating = false }()

	for _, c := range p.axes {
		axis := locks.Axes[c.axis]
		if !axis.Locked || c.value.Text == "" {
			c.value.SetText(strconv.FormatFloat(axis.Value, 'f', 4, 64))
		}
		c.locked.SetChecked(axis.Locked)
		c.relative.SetChecked(axis.Relative)
	}
	p.construction.SetChecked(locks.ConstructionMode)
	a.canvas.Refresh()
}

// handleToolEvent is the digitizing tool: every forwarded release adds a vertex
func (a *App) handleToolEvent(ev session.Event) {
	if ev.Kind != session.EventRelease {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = append(a.pending, ev.Pos)
}

func (a *App) finishFeature() {
	a.mu.Lock()
	points := a.pending
	a.pending = nil
	a.mu.Unlock()

	if len(points) == 0 {
		return
	}
	kind := layer.KindLine
	if len(points) == 1 {
		kind = layer.KindPoint
	}
	f := layer.NewFeature(a.index.Current(), kind, points...)

	if a.store != nil {
		if err := a.store.AddFeature(context.Background(), f); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
	}
	a.canvas.AddFeature(f)
	a.session.Reset()
	a.status.SetText(fmt.Sprintf("Stored %s feature with %d points in %s", kind, len(points), f.Layer))
	a.log.Info("feature digitized", zap.String("id", f.ID), zap.String("layer", f.Layer), zap.Int("points", len(points)))
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.loadFile(reader.URI().Path())
	}, a.window)
}

func (a *App) loadFile(filename string) {
	layers, err := layer.LoadFile(filename)
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to load layer file: %w", err), a.window)
		return
	}
	a.setLayers(layers)
}

func (a *App) loadStore() {
	if a.store != nil {
		a.setLayers(nil)
	}
}

// setLayers shows the given layers together with the stored ones
func (a *App) setLayers(layers []layer.Layer) {
	if a.store != nil {
		stored, err := a.store.Layers(context.Background())
		if err != nil {
			dialog.ShowError(err, a.window)
		} else {
			layers = layer.Merge(append(layers, stored...)...)
		}
	}
	a.canvas.SetLayers(layers)
	a.canvas.FitLayers()
}

// watchFile reloads the layer file whenever it changes on disk
func (a *App) watchFile(ctx context.Context, filename string) {
	fw, err := watcher.NewFileWatcher(a.cfg.Watch.Debounce, a.log)
	if err != nil {
		a.log.Warn("file watching disabled", zap.Error(err))
		return
	}
	err = fw.Watch([]string{filename}, func(path string) {
		layers, err := layer.LoadFile(path)
		if err != nil {
			a.log.Error("reloading layers", zap.String("path", path), zap.Error(err))
			return
		}
		fyne.Do(func() { a.setLayers(layers) })
	})
	if err != nil {
		a.log.Warn("file watching disabled", zap.Error(err))
		fw.Close()
		return
	}

	go func() {
		defer fw.Close()
		_ = fw.Run(ctx)
	}()
}
