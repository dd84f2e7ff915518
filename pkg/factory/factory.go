// Package factory assembles the persistence stack from configuration:
// strategies, backend sources, routers and repositories. It is the only
// place backend parameters are interpreted.
package factory

import (
	"context"
	"fmt"

	"plotter/pkg/backend/fs"
	"plotter/pkg/backend/memory"
	"plotter/pkg/backend/sqlite"
	"plotter/pkg/datasource"
	"plotter/pkg/log"
	"plotter/pkg/repository"
	"plotter/pkg/router"
	"plotter/pkg/routing"
)

// Factory owns the assembled routers and repositories plus the shared
// database handles behind the Database sources.
type Factory struct {
	projectRouter *router.Router[datasource.ProjectSource]
	folderRouter  *router.Router[datasource.FolderSource]
	noteRouter    *router.Router[datasource.NoteSource]

	projects *repository.ProjectRepository
	folders  *repository.FolderRepository
	notes    *repository.NoteRepository

	dbs map[string]*sqlite.DB
}

// New builds the stack described by cfg. Sources are registered but not
// connected; call Connect before use.
func New(cfg Config) (*Factory, error) {
	f := &Factory{
		projectRouter: router.New[datasource.ProjectSource](),
		folderRouter:  router.New[datasource.FolderSource](),
		noteRouter:    router.New[datasource.NoteSource](),
		dbs:           make(map[string]*sqlite.DB),
	}

	// Each router gets its own strategy instance so adaptive state, like
	// failover stickiness or round-robin counters, stays per-router.
	for _, apply := range []func(routing.Strategy){
		f.projectRouter.SetStrategy,
		f.folderRouter.SetStrategy,
		f.noteRouter.SetStrategy,
	} {
		strategy, err := buildStrategy(cfg.Routing)
		if err != nil {
			return nil, err
		}
		apply(strategy)
	}

	for _, sc := range cfg.Sources {
		if err := f.addSource(sc); err != nil {
			return nil, err
		}
	}

	f.projects = repository.NewProjectRepository(f.projectRouter)
	f.folders = repository.NewFolderRepository(f.folderRouter)
	f.notes = repository.NewNoteRepository(f.noteRouter)

	log.Info().
		Int("sources", len(cfg.Sources)).
		Str("strategy", cfg.Routing.Strategy).
		Msg("Persistence stack assembled")
	return f, nil
}

func buildStrategy(rc RoutingConfig) (routing.Strategy, error) {
	switch rc.Strategy {
	case "", routing.PriorityBased.String():
		return routing.NewPriority(), nil

	case routing.CacheFirst.String():
		s := routing.NewCacheFirst(rc.CacheTypes...)
		if len(rc.CacheTypes) == 0 {
			s.SetCacheTypes([]string{memory.SourceType})
		}
		if rc.WriteThrough != nil {
			s.SetWriteThrough(*rc.WriteThrough)
		}
		return s, nil

	case routing.Failover.String():
		primary := rc.PrimaryType
		if primary == "" {
			primary = sqlite.SourceType
		}
		s := routing.NewFailover(primary)
		if rc.AutoFailback != nil {
			s.SetAutoFailback(*rc.AutoFailback)
		}
		return s, nil

	case routing.LoadBalanced.String():
		s := routing.NewLoadBalanced()
		if rc.Algorithm != "" {
			s.SetAlgorithm(rc.Algorithm)
		}
		return s, nil

	case routing.PerformanceBased.String():
		s := routing.NewPerformance()
		if rc.ResponseTimeWeight != nil {
			s.SetResponseTimeWeight(*rc.ResponseTimeWeight)
		}
		if rc.SuccessRateWeight != nil {
			s.SetSuccessRateWeight(*rc.SuccessRateWeight)
		}
		return s, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, rc.Strategy)
	}
}

// addSource builds the three entity sources one config entry describes and
// registers them on their routers.
func (f *Factory) addSource(sc SourceConfig) error {
	switch sc.Type {
	case memory.SourceType:
		return f.register(
			memory.NewProjectSource(sc.Name, sc.Priority),
			memory.NewFolderSource(sc.Name, sc.Priority),
			memory.NewNoteSource(sc.Name, sc.Priority),
		)

	case sqlite.SourceType:
		path, ok := sc.Params["path"]
		if !ok || path == "" {
			return fmt.Errorf("%w: source %q needs params.path", ErrMissingParam, sc.Name)
		}
		db, ok := f.dbs[path]
		if !ok {
			db = sqlite.NewDB(path)
			f.dbs[path] = db
		}
		return f.register(
			sqlite.NewProjectSource(sc.Name, sc.Priority, db),
			sqlite.NewFolderSource(sc.Name, sc.Priority, db),
			sqlite.NewNoteSource(sc.Name, sc.Priority, db),
		)

	case fs.SourceType:
		root, ok := sc.Params["root"]
		if !ok || root == "" {
			return fmt.Errorf("%w: source %q needs params.root", ErrMissingParam, sc.Name)
		}
		return f.register(
			fs.NewProjectSource(sc.Name, sc.Priority, root),
			fs.NewFolderSource(sc.Name, sc.Priority, root),
			fs.NewNoteSource(sc.Name, sc.Priority, root),
		)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownSourceType, sc.Type)
	}
}

func (f *Factory) register(p datasource.ProjectSource, fo datasource.FolderSource, n datasource.NoteSource) error {
	if err := f.projectRouter.Add(p); err != nil {
		return err
	}
	if err := f.folderRouter.Add(fo); err != nil {
		return err
	}
	return f.noteRouter.Add(n)
}

// Connect connects every registered source. A source that fails to connect
// is logged and skipped; the router treats it as unavailable.
func (f *Factory) Connect(ctx context.Context) error {
	var connected int
	for _, ds := range f.allSources() {
		if err := ds.Connect(ctx); err != nil {
			log.Warn().Err(err).Str("source", ds.Name()).Msg("Source failed to connect")
			continue
		}
		connected++
	}
	if connected == 0 {
		return router.ErrNoSourcesAvailable
	}
	return nil
}

// Close disconnects every source and closes the shared database handles.
func (f *Factory) Close() error {
	var firstErr error
	for _, ds := range f.allSources() {
		if err := ds.Disconnect(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, db := range f.dbs {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f *Factory) allSources() []datasource.DataSource {
	var all []datasource.DataSource
	for _, ds := range f.projectRouter.All() {
		all = append(all, ds)
	}
	for _, ds := range f.folderRouter.All() {
		all = append(all, ds)
	}
	for _, ds := range f.noteRouter.All() {
		all = append(all, ds)
	}
	return all
}

// Projects returns the project repository.
func (f *Factory) Projects() *repository.ProjectRepository { return f.projects }

// Folders returns the folder repository.
func (f *Factory) Folders() *repository.FolderRepository { return f.folders }

// Notes returns the note repository.
func (f *Factory) Notes() *repository.NoteRepository { return f.notes }

// ProjectRouter returns the project router, mainly for health reporting.
func (f *Factory) ProjectRouter() *router.Router[datasource.ProjectSource] { return f.projectRouter }

// FolderRouter returns the folder router.
func (f *Factory) FolderRouter() *router.Router[datasource.FolderSource] { return f.folderRouter }

// NoteRouter returns the note router.
func (f *Factory) NoteRouter() *router.Router[datasource.NoteSource] { return f.noteRouter }
