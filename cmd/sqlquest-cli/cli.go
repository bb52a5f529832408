package main

import (
	"context"
	"log"
	"os"

	dpcli "github.com/database-playground/sqlquest/cli"
	"github.com/database-playground/sqlquest/internal/apiclient"
	"github.com/database-playground/sqlquest/internal/deps"
)

func main() {
	cfg, err := deps.CLIConfig()
	if err != nil {
		log.Fatal(err)
	}

	c := dpcli.NewContext(apiclient.New(cfg.ResolvedAPI()))

	lessonsCommand := newLessonsCommand(c)
	lessonCommand := newLessonCommand(c)
	runCommand := newRunCommand(c)
	tuiCommand := newTUICommand(c)

	rootCommand := newRootCommand(lessonsCommand, lessonCommand, runCommand, tuiCommand)

	if err := rootCommand.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
