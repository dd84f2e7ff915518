package main

import (
	"context"
	"flag"
	"time"

	"plotter/pkg/executor"
	"plotter/pkg/factory"
	"plotter/pkg/log"
	"plotter/pkg/usecase"
)

func main() {
	configPath := flag.String("config", "plotter.yaml", "Config file path")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if *debug {
		log.SetDebugMode()
	}

	cfg, err := factory.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config", *configPath).Msg("Failed to load config")
	}

	f, err := factory.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to assemble persistence stack")
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close persistence stack")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := f.Connect(ctx); err != nil {
		log.Fatal().Err(err).Msg("No source connected")
	}

	for _, sh := range f.ProjectRouter().CheckAllHealth(ctx) {
		log.Info().
			Str("source", sh.Name).
			Str("status", sh.Result.Status.String()).
			Str("message", sh.Result.Message).
			Msg("Source health")
	}

	uc := usecase.New(f.Projects(), f.Folders(), f.Notes(), executor.DefaultConfig())
	runDemo(ctx, uc)
}

// runDemo exercises a create/read sequence across the configured backends.
func runDemo(ctx context.Context, uc *usecase.UseCases) {
	project := uc.CreateProject(ctx, usecase.CreateProjectRequest{
		Name:        "Research",
		Description: "Reading list and notes",
	})
	if !project.OK {
		log.Fatal().Str("message", project.Message).Msg("Failed to create project")
	}
	log.Info().Str("id", project.Value.ID).Msg("Project created")

	folder := uc.CreateFolder(ctx, usecase.CreateFolderRequest{
		Name:            "Papers",
		ParentProjectID: project.Value.ID,
	})
	if !folder.OK {
		log.Fatal().Str("message", folder.Message).Msg("Failed to create folder")
	}
	log.Info().Str("id", folder.Value.ID).Msg("Folder created")

	note := uc.CreateNote(ctx, usecase.CreateNoteRequest{
		Name:           "Attention is All You Need",
		Content:        "# Notes\n\nTransformer architecture, self-attention.",
		ParentFolderID: folder.Value.ID,
	})
	if !note.OK {
		log.Fatal().Str("message", note.Message).Msg("Failed to create note")
	}
	log.Info().Str("id", note.Value.ID).Str("path", note.Value.Path).Msg("Note created")

	got := uc.GetProject(ctx, usecase.GetProjectRequest{ID: project.Value.ID})
	if !got.OK {
		log.Fatal().Str("message", got.Message).Msg("Failed to read project back")
	}
	log.Info().
		Str("project", got.Value.Project.Name).
		Int("folders", len(got.Value.Folders)).
		Dur("elapsed", got.Elapsed).
		Msg("Project read back")

	content := uc.GetNoteContent(ctx, usecase.GetNoteContentRequest{NoteID: note.Value.ID})
	if !content.OK {
		log.Fatal().Str("message", content.Message).Msg("Failed to read note content")
	}
	log.Info().Int("bytes", len(content.Value)).Msg("Note content read back")
}
