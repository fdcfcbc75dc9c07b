// Package main is the entry point for the Tabwise CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	tabcli "github.com/tabwise/tabwise/internal/cli"
	"github.com/tabwise/tabwise/pkg/version"
)

func main() {
	app := &cli.Command{
		Name:                  "tabwise",
		Usage:                 "Context-aware completion and history ranking for interactive shells",
		Version:               version.Version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Config file path (default: search the user config directory)",
				Sources: cli.EnvVars("TABWISE_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("TABWISE_LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "complete",
				Usage: "Resolve completions for a line and cursor position",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "line",
						Usage: "The command line being completed",
					},
					&cli.IntFlag{
						Name:  "cursor",
						Value: -1,
						Usage: "Cursor offset in the line (default: end of line)",
					},
					&cli.StringFlag{
						Name:  "cwd",
						Usage: "Working directory (default: current directory)",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Render a styled list instead of the plain protocol",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					line := cmd.String("line")
					cursor := int(cmd.Int("cursor"))
					if line == "" && cmd.Args().Len() > 0 {
						line = strings.Join(cmd.Args().Slice(), " ")
					}
					// Bash invokes -C completers with the line in the
					// environment instead of arguments.
					if line == "" {
						line = os.Getenv("COMP_LINE")
						if point, err := strconv.Atoi(os.Getenv("COMP_POINT")); err == nil {
							cursor = point
						}
					}
					return tabcli.Complete(os.Stdout, tabcli.CompleteParams{
						ConfigPath: cmd.String("config"),
						LogLevel:   cmd.String("log-level"),
						Line:       line,
						Cursor:     cursor,
						WorkDir:    cmd.String("cwd"),
						Pretty:     cmd.Bool("pretty"),
					})
				},
			},
			{
				Name:  "history",
				Usage: "Inspect and record command history",
				Commands: []*cli.Command{
					{
						Name:  "list",
						Usage: "Show the most recent commands across sources",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "limit", Value: 20, Usage: "Maximum entries shown"},
						},
						Action: func(_ context.Context, cmd *cli.Command) error {
							return tabcli.HistoryList(os.Stdout, tabcli.HistoryParams{
								ConfigPath: cmd.String("config"),
								LogLevel:   cmd.String("log-level"),
								Limit:      int(cmd.Int("limit")),
							})
						},
					},
					{
						Name:      "search",
						Usage:     "Search history for commands containing a query",
						ArgsUsage: "<query>",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "limit", Value: 20, Usage: "Maximum entries shown"},
						},
						Action: func(_ context.Context, cmd *cli.Command) error {
							if cmd.Args().Len() == 0 {
								return fmt.Errorf("missing query argument")
							}
							return tabcli.HistorySearch(os.Stdout, tabcli.HistoryParams{
								ConfigPath: cmd.String("config"),
								LogLevel:   cmd.String("log-level"),
								Limit:      int(cmd.Int("limit")),
								Query:      cmd.Args().Get(0),
							})
						},
					},
					{
						Name:      "add",
						Usage:     "Record a command in the owned history store",
						ArgsUsage: "<command>",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "exit-code", Value: -1, Usage: "Exit code of the command"},
							&cli.StringFlag{Name: "cwd", Usage: "Directory the command ran in"},
						},
						Action: func(_ context.Context, cmd *cli.Command) error {
							var exitCode *int
							if code := int(cmd.Int("exit-code")); code >= 0 {
								exitCode = &code
							}
							return tabcli.HistoryAdd(tabcli.HistoryAddParams{
								ConfigPath: cmd.String("config"),
								LogLevel:   cmd.String("log-level"),
								Command:    strings.Join(cmd.Args().Slice(), " "),
								ExitCode:   exitCode,
								WorkDir:    cmd.String("cwd"),
							})
						},
					},
					{
						Name:  "stats",
						Usage: "Show command frequency statistics",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "top", Value: 10, Usage: "Number of top commands shown"},
						},
						Action: func(_ context.Context, cmd *cli.Command) error {
							return tabcli.HistoryStats(os.Stdout, tabcli.HistoryParams{
								ConfigPath: cmd.String("config"),
								LogLevel:   cmd.String("log-level"),
								Limit:      int(cmd.Int("top")),
							})
						},
					},
				},
			},
			{
				Name:      "setup",
				Usage:     "Install the shell hook (completion binding + history recording)",
				ArgsUsage: "[bash|zsh]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "rc-file",
						Usage: "RC file to modify (default: the shell's standard file)",
					},
					&cli.BoolFlag{
						Name:  "remove",
						Usage: "Remove the hook instead of installing it",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return tabcli.Setup(os.Stdout, tabcli.SetupParams{
						Shell:  cmd.Args().Get(0),
						RCFile: cmd.String("rc-file"),
						Remove: cmd.Bool("remove"),
					})
				},
			},
			{
				Name:  "status",
				Usage: "Show engine configuration and history source health",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return tabcli.Status(os.Stdout, tabcli.StatusParams{
						ConfigPath: cmd.String("config"),
						LogLevel:   cmd.String("log-level"),
					})
				},
			},
			{
				Name:  "config",
				Usage: "Manage the Tabwise configuration",
				Commands: []*cli.Command{
					{
						Name:      "validate",
						Usage:     "Validate a configuration file",
						ArgsUsage: "[path]",
						Action: func(_ context.Context, cmd *cli.Command) error {
							path := cmd.String("config")
							if cmd.Args().Len() > 0 {
								path = cmd.Args().Get(0)
							}
							return tabcli.Validate(os.Stdout, path)
						},
					},
					{
						Name:      "init",
						Usage:     "Write a starter configuration file",
						ArgsUsage: "[dir]",
						Action: func(_ context.Context, cmd *cli.Command) error {
							return tabcli.InitConfig(os.Stdout, cmd.Args().Get(0))
						},
					},
					{
						Name:  "schema",
						Usage: "Print the configuration JSON Schema",
						Action: func(_ context.Context, _ *cli.Command) error {
							return tabcli.Schema(os.Stdout)
						},
					},
				},
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
