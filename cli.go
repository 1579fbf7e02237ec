package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/rorycl/tdlayout/app"
	"github.com/urfave/cli/v3"
)

// Applicator defines the interface for the core application logic.
// This allows the CLI to be tested independently of the main app implementation.
type Applicator interface {
	Generate(ctx context.Context, req app.Request) error
	Watch(ctx context.Context, req app.Request) error
	ExportTemplates(ctx context.Context, dir string) error
}

// BuildCLI creates the CLI command structure for the application, injecting
// the core application logic (the Applicator) into the command actions.
func BuildCLI(a Applicator, logger *log.Logger) *cli.Command {

	exportCmd := &cli.Command{
		Name:      "export-templates",
		Usage:     "Write the built-in layout templates to a directory for editing",
		ArgsUsage: "<dir>",
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return &app.UsageError{Msg: "export-templates takes exactly one directory"}
			}
			return a.ExportTemplates(ctx, c.Args().First())
		},
	}

	rootCmd := &cli.Command{
		Name:      "tdlayout",
		Usage:     "Generate memory and firmware image layouts from a region configuration",
		Version:   version,
		ArgsUsage: "<config>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config_type",
				Aliases: []string{"t"},
				Usage:   "configuration type, memory or image",
			},
			&cli.StringFlag{
				Name:    "base",
				Aliases: []string{"b"},
				Value:   "0x0",
				Usage:   "memory base address",
			},
			&cli.StringFlag{
				Name:    "fw_top",
				Aliases: []string{"f"},
				Usage:   "top of firmware address, 4KB-aligned and at most 4GB (only valid with -t image)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write the layout to this file",
			},
			&cli.BoolFlag{
				Name:    "print",
				Aliases: []string{"p"},
				Usage:   "write the layout to stdout",
			},
			&cli.StringFlag{
				Name:  "templates",
				Usage: "directory of layout templates replacing the built-in set",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "regenerate the layout whenever the configuration file changes",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log debug information to stderr",
			},
		},
		Commands: []*cli.Command{exportCmd},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Bool("verbose") {
				logger.SetLevel(log.DebugLevel)
			}
			req, err := parseRequest(c)
			if err != nil {
				return err
			}
			if c.Bool("watch") {
				return a.Watch(ctx, req)
			}
			return a.Generate(ctx, req)
		},
	}

	return rootCmd
}

// parseRequest builds an app.Request from the flags and the single
// positional configuration path.
func parseRequest(c *cli.Command) (app.Request, error) {
	switch n := c.Args().Len(); {
	case n == 0:
		return app.Request{}, &app.UsageError{Msg: "a configuration file must be provided"}
	case n > 1:
		return app.Request{}, &app.UsageError{Msg: fmt.Sprintf("unexpected arguments %v", c.Args().Tail())}
	}

	if !c.IsSet("config_type") {
		return app.Request{}, &app.UsageError{Msg: "--config_type (-t) is required"}
	}
	mode, err := app.ParseMode(c.String("config_type"))
	if err != nil {
		return app.Request{}, err
	}

	req := app.Request{
		ConfigPath:   c.Args().First(),
		Mode:         mode,
		Base:         c.String("base"),
		Output:       c.String("output"),
		Print:        c.Bool("print"),
		TemplatesDir: c.String("templates"),
	}
	if c.IsSet("fw_top") {
		fwTop := c.String("fw_top")
		req.FwTop = &fwTop
	}
	return req, nil
}
