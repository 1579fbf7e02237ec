// Package app validates a layout request, dispatches it to the layout
// generator and delivers the result.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/rorycl/tdlayout/address"
	"github.com/rorycl/tdlayout/config"
	"github.com/rorycl/tdlayout/internal/mounts"
	"github.com/rorycl/tdlayout/layout"
	"github.com/rorycl/tdlayout/output"
	"github.com/rorycl/tdlayout/watch"
)

// templatesMount is the directory of layout.TemplatesFS holding the
// default templates.
const templatesMount = "templates"

// Request is a single layout invocation as given on the command line.
type Request struct {
	ConfigPath   string
	Mode         ConfigMode
	Base         string  // accepted if it parses, otherwise unused
	FwTop        *string // nil when not supplied
	Output       string  // no file is written when empty
	Print        bool
	TemplatesDir string // overrides the embedded templates when set
}

// App runs layout requests.
type App struct {
	logger   *log.Logger
	sink     *output.Sink
	layouter Layouter // set in tests to bypass template loading
}

// New creates an App logging to logger and delivering through sink.
func New(logger *log.Logger, sink *output.Sink) *App {
	return &App{logger: logger, sink: sink}
}

// invocation is a Request whose arguments have all been validated.
type invocation struct {
	req      Request
	fwTop    uint64
	layouter Layouter
}

// Generate runs req once. Every argument is validated before the
// configuration file is read; the first failure is returned.
func (a *App) Generate(ctx context.Context, req Request) error {
	inv, err := a.prepare(req)
	if err != nil {
		return err
	}
	return a.run(inv)
}

// Watch runs req once and then again each time the configuration file is
// written, until ctx is cancelled. Failures of the first run are returned;
// later failures are logged.
func (a *App) Watch(ctx context.Context, req Request) error {
	inv, err := a.prepare(req)
	if err != nil {
		return err
	}
	if err := a.run(inv); err != nil {
		return err
	}

	notifier, err := watch.New(req.ConfigPath)
	if err != nil {
		return fmt.Errorf("cannot watch configuration file: %w", err)
	}
	a.logger.Info("watching for changes", "config", req.ConfigPath)

	watchErr := make(chan error, 1)
	go func() {
		watchErr <- notifier.Watch(ctx)
	}()
	for range notifier.Update() {
		if err := a.run(inv); err != nil {
			a.logger.Error("regeneration failed", "err", err)
		}
	}

	if err := <-watchErr; err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}

// ExportTemplates writes the embedded templates to dir so they can be
// edited and passed back with Request.TemplatesDir.
func (a *App) ExportTemplates(ctx context.Context, dir string) error {
	fm, err := mounts.NewFileMount(templatesMount, layout.TemplatesFS, "")
	if err != nil {
		return err
	}
	if err := fm.Materialize(dir); err != nil {
		return &UsageError{Msg: "cannot export templates", Err: err}
	}
	a.logger.Info("templates exported", "dir", dir)
	return nil
}

// prepare validates the arguments of req: base, firmware top and the
// template mount.
func (a *App) prepare(req Request) (*invocation, error) {
	if req.ConfigPath == "" {
		return nil, &UsageError{Msg: "a configuration file must be provided"}
	}
	base, err := address.Parse(req.Base)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("base address accepted", "base", address.Hex(base))

	fwTop, err := FirmwareTop(req.Mode, req.FwTop)
	if err != nil {
		return nil, err
	}

	layouter, err := a.layouterFor(req.TemplatesDir)
	if err != nil {
		return nil, err
	}
	return &invocation{req: req, fwTop: fwTop, layouter: layouter}, nil
}

// layouterFor returns a layout generator using the templates in dir, or the
// embedded templates if dir is empty.
func (a *App) layouterFor(dir string) (Layouter, error) {
	if a.layouter != nil {
		return a.layouter, nil
	}
	fm, err := mounts.NewFileMount(templatesMount, layout.TemplatesFS, dir)
	if err != nil {
		return nil, &UsageError{Msg: "invalid templates directory", Err: err}
	}
	g, err := layout.NewGenerator(fm)
	if err != nil {
		return nil, &UsageError{Msg: "invalid templates", Err: err}
	}
	return g, nil
}

// run reads the configuration, computes the layout and delivers it.
func (a *App) run(inv *invocation) error {
	req := inv.req
	src, err := config.Load(req.ConfigPath)
	if err != nil {
		return err
	}
	a.logger.Debug("configuration loaded", "config", src.Path, "format", src.Format, "mode", req.Mode)

	artifact, err := Dispatch(inv.layouter, req.Mode, *src, inv.fwTop)
	if err != nil {
		return err
	}

	if err := a.sink.Deliver(artifact, req.Print, req.Output); err != nil {
		return err
	}
	if req.Output != "" {
		a.logger.Info("layout written", "mode", req.Mode, "output", req.Output)
	}
	return nil
}
