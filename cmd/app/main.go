package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/ondrel/curio/internal"
	pkgconfig "github.com/ondrel/curio/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if _, err := pkgconfig.LoadIfExists(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func main() {
	configFlag := &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("APP_CONFIG_FILE"),
	}

	cmd := &cli.Command{
		Name:   "curio",
		Usage:  "Catalog and organizer for awesome lists with collections, import/export and search",
		Action: serve,
		Flags:  []cli.Flag{configFlag},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP server (default)",
				Action: serve,
				Flags:  []cli.Flag{configFlag},
			},
			{
				Name:  "export",
				Usage: "Export collections or a full backup to a file",
				Flags: []cli.Flag{
					configFlag,
					&cli.StringFlag{Name: "id", Usage: "Collection id (empty exports all collections)"},
					&cli.StringFlag{Name: "format", Usage: "Export format: json, markdown, html, csv", Value: "json"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output path (default: derived filename)"},
					&cli.BoolFlag{Name: "backup", Usage: "Export the full dataset as a JSON backup"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := loadConfig(cmd)
					if err != nil {
						return err
					}
					return internal.RunExport(ctx, cfg,
						cmd.String("id"), cmd.String("format"), cmd.String("out"), cmd.Bool("backup"))
				},
			},
			{
				Name:      "import",
				Usage:     "Import a JSON, CSV or Markdown file, or restore a backup",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					configFlag,
					&cli.BoolFlag{Name: "backup", Usage: "Treat the file as a backup envelope and restore it"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return fmt.Errorf("expected exactly one file argument")
					}
					cfg, err := loadConfig(cmd)
					if err != nil {
						return err
					}
					return internal.RunImport(ctx, cfg, cmd.Args().First(), cmd.Bool("backup"))
				},
			},
			{
				Name:  "mcp",
				Usage: "Start the MCP server on stdin/stdout",
				Flags: []cli.Flag{configFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := loadConfig(cmd)
					if err != nil {
						return err
					}
					return internal.RunMCP(ctx, cfg)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
