package main

import (
	"log"
	"os"
	"runtime"

	"github.com/bodgit/sneptile"
	"github.com/bodgit/sneptile/internal/logger"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

// splitArgs separates the flags handled by the app from the directives,
// which start at the first recognised directive or after a "--".
func splitArgs(args []string) ([]string, []string) {
	for i := 1; i < len(args); i++ {
		switch {
		case args[i] == "--":
			return args[:i:i], args[i+1:]
		case sneptile.IsDirective(args[i]):
			return args[:i:i], args[i:]
		}
	}
	return args, nil
}

func main() {
	args, directives := splitArgs(os.Args)

	app := cli.NewApp()

	app.Name = "sneptile"
	app.Usage = "Convert images into TMS9918 and Master System VDP patterns"
	app.ArgsUsage = "[DIRECTIVE...] FILE..."
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "output-dir",
			Aliases: []string{"o"},
			EnvVars: []string{"SNEPTILE_OUTPUT_DIR"},
			Value:   ".",
			Usage:   "directory to write the generated headers to",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML manifest describing the run",
		},
		&cli.IntFlag{
			Name:  "workers",
			Value: runtime.NumCPU(),
			Usage: "number of images to decode concurrently",
		},
		&cli.IntFlag{
			Name:  "reduce",
			Usage: "reduce each image to at most this many colours before encoding",
		},
		&cli.BoolFlag{
			Name:  "binary",
			Usage: "also write raw binary pattern and palette data",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Value: "warn",
			Usage: "log level (debug, info, warn, error)",
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "also log to this file, rotating it as it grows",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = func(c *cli.Context) error {
		level := c.String("log-level")
		if c.Bool("verbose") {
			level = "debug"
		}

		cfg := logger.Config{Level: level, Console: os.Stderr}
		if file := c.String("log-file"); file != "" {
			cfg.File = logger.DefaultFileConfig(file)
		}
		zl := logger.New(cfg)
		defer zl.Sync()

		dir := c.String("output-dir")

		var list []sneptile.Directive
		if file := c.String("config"); file != "" {
			m, err := sneptile.LoadManifest(file)
			if err != nil {
				return cli.Exit(err, 1)
			}
			if list, err = m.Directives(); err != nil {
				return cli.Exit(err, 1)
			}
			if m.OutputDir != "" && !c.IsSet("output-dir") {
				dir = m.OutputDir
			}
		}

		more, err := sneptile.ParseArgs(append(c.Args().Slice(), directives...))
		if err != nil {
			return cli.Exit(err, 1)
		}
		list = append(list, more...)

		if len(sneptile.Files(list)) == 0 {
			cli.ShowAppHelpAndExit(c, 1)
		}

		s := sneptile.New(zl)
		if err := sneptile.Run(c.Context, s, list, sneptile.NewOpener(c.Int("reduce")), c.Int("workers")); err != nil {
			return cli.Exit(err, 1)
		}

		tables, err := s.Finalize()
		if err != nil {
			return cli.Exit(err, 1)
		}

		if err := tables.WriteDir(dir); err != nil {
			return cli.Exit(err, 1)
		}

		if c.Bool("binary") {
			if err := tables.WriteBinaryDir(dir); err != nil {
				return cli.Exit(err, 1)
			}
		}

		zl.Info("wrote tables", zap.String("dir", dir), zap.Stringer("mode", s.Mode()), zap.Int("patterns", s.PatternIndex()))

		return nil
	}

	if err := app.Run(args); err != nil {
		log.Fatal(err)
	}
}
