package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	dpcli "github.com/database-playground/sqlquest/cli"
	"github.com/urfave/cli/v3"
)

func newLessonsCommand(clictx *dpcli.Context) *cli.Command {
	return &cli.Command{
		Name:  "lessons",
		Usage: "List the available lessons",
		Action: func(ctx context.Context, c *cli.Command) error {
			return clictx.ListLessons(ctx, os.Stdout)
		},
	}
}

func newLessonCommand(clictx *dpcli.Context) *cli.Command {
	return &cli.Command{
		Name:  "lesson",
		Usage: "Show a lesson with its theory and examples",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     "id",
				Usage:    "The ID of the lesson to show.",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return clictx.ShowLesson(ctx, os.Stdout, c.Int("id"))
		},
	}
}

func newRunCommand(clictx *dpcli.Context) *cli.Command {
	return &cli.Command{
		Name:        "run",
		Usage:       "Execute SQL and print the results",
		Description: "Execute SQL against the playground database. The query comes from --query, from --file (\"-\" reads stdin), or from an example of a lesson with --lesson and --example.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "The SQL to execute. Statements are separated by semicolons.",
			},
			&cli.StringFlag{
				Name:  "file",
				Usage: "Read the SQL to execute from a file.",
			},
			&cli.IntFlag{
				Name:  "lesson",
				Usage: "The lesson whose example to execute.",
			},
			&cli.IntFlag{
				Name:  "example",
				Usage: "The 1-based number of the example to execute.",
				Value: 1,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			var err error

			switch {
			case c.IsSet("lesson"):
				err = clictx.RunExample(ctx, os.Stdout, c.Int("lesson"), c.Int("example")-1)
			case c.IsSet("file"):
				query, readErr := readQueryFile(c.String("file"))
				if readErr != nil {
					return readErr
				}
				err = clictx.RunQuery(ctx, os.Stdout, query)
			default:
				err = clictx.RunQuery(ctx, os.Stdout, c.String("query"))
			}

			if errors.Is(err, dpcli.ErrExecutionFailed) {
				return cli.Exit("", 1)
			}

			return err
		},
	}
}

func readQueryFile(path string) (string, error) {
	if path == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}

		return string(content), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}

	return string(content), nil
}

func newTUICommand(clictx *dpcli.Context) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Start the interactive playground",
		Action: func(ctx context.Context, c *cli.Command) error {
			return clictx.RunTUI(ctx)
		},
	}
}

func newRootCommand(subcommands ...*cli.Command) *cli.Command {
	return &cli.Command{
		Name:     "sqlquest-cli",
		Usage:    "Learn SQL from the terminal with SQL Quest.",
		Commands: subcommands,
	}
}
