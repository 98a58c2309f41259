package main

import (
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/Strange-Account/go-modpack-loader/archive"
	"github.com/Strange-Account/go-modpack-loader/config"
	"github.com/Strange-Account/go-modpack-loader/state"
)

// readConfig returns the defaults when no config file was given.
func readConfig(path string) (*config.ConfigFile, error) {
	if path == "" {
		return config.Default(), nil
	}
	log.Infof("ConfigFile: %s", path)
	return config.Read(path)
}

func loadCmd() *cli.Command {
	var (
		configFile string
		reportDir  string
		jobs       int
		timeout    time.Duration
		verbose    bool
	)

	return &cli.Command{
		Name:      "load",
		Usage:     "Load modpack archives and print their installation plans",
		ArgsUsage: "<modpack.zip>...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to loader config yaml file", Destination: &configFile},
			&cli.StringFlag{Name: "report-dir", Usage: "write a plan report per modpack into this directory", Destination: &reportDir},
			&cli.IntFlag{Name: "jobs", Aliases: []string{"j"}, Usage: "modpacks loaded at once (overrides config)", Destination: &jobs},
			&cli.DurationFlag{Name: "timeout", Usage: "deadline for the whole batch (overrides config)", Destination: &timeout},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log every archive", Destination: &verbose},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}

			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return fmt.Errorf("no modpack given")
			}

			c, err := readConfig(configFile)
			if err != nil {
				return err
			}
			if jobs > 0 {
				c.Load.Jobs = jobs
			}
			if reportDir != "" {
				c.Report.Dir = reportDir
			}

			if timeout == 0 {
				if timeout, err = c.LoadTimeout(); err != nil {
					return err
				}
			}
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			m, err := NewPackManager(c, archive.ZipOpener{}, state.NewStore())
			if err != nil {
				return err
			}
			_, err = m.loadAll(ctx, paths)
			return err
		},
	}
}

func conventionsCmd() *cli.Command {
	var configFile string

	return &cli.Command{
		Name:  "conventions",
		Usage: "Print the effective modpack path conventions",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to loader config yaml file", Destination: &configFile},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c, err := readConfig(configFile)
			if err != nil {
				return err
			}

			out, err := yaml.Marshal(c.Conventions)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(out)
			return err
		},
	}
}

// Main function
func main() {
	app := &cli.Command{
		Name:  "modpack-loader",
		Usage: "Turn modpack archives into installation plans",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			loadCmd(),
			conventionsCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
