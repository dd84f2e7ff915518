package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"plotter/pkg/backend/memory"
	"plotter/pkg/datasource"
	"plotter/pkg/entity"
	"plotter/pkg/router"
	"plotter/pkg/routing"
)

// RepositoryTestSuite tests the multi-source repository semantics over two
// in-memory sources
type RepositoryTestSuite struct {
	suite.Suite
	ctx     context.Context
	cache   *memory.ProjectSource
	primary *memory.ProjectSource
	repo    *ProjectRepository
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.cache = memory.NewProjectSource("cache", 200)
	s.primary = memory.NewProjectSource("primary", 100)
	s.Require().NoError(s.cache.Connect(s.ctx))
	s.Require().NoError(s.primary.Connect(s.ctx))

	rt := router.New[datasource.ProjectSource]()
	s.Require().NoError(rt.Add(s.cache))
	s.Require().NoError(rt.Add(s.primary))

	s.repo = NewProjectRepository(rt)
}

// TestSaveWritesAllSources tests write fan-out and the returned ID
func (s *RepositoryTestSuite) TestSaveWritesAllSources() {
	p := entity.NewProject("p1", "Research", "")

	id, err := s.repo.Save(s.ctx, p)
	s.Require().NoError(err)
	s.Equal("p1", id)
	s.True(s.cache.Exists(s.ctx, "p1"))
	s.True(s.primary.Exists(s.ctx, "p1"))
}

// TestSaveSurvivesPartialFailure tests that one landed write is enough and
// that the ID comes from the surviving source
func (s *RepositoryTestSuite) TestSaveSurvivesPartialFailure() {
	s.Require().NoError(s.cache.Disconnect())

	id, err := s.repo.Save(s.ctx, entity.NewProject("p1", "Research", ""))
	s.Require().NoError(err)
	s.Equal("p1", id)
	s.False(s.cache.Exists(s.ctx, "p1"))
	s.True(s.primary.Exists(s.ctx, "p1"))
}

// TestFindByIDFallsBack tests the read fallback when the first source fails
func (s *RepositoryTestSuite) TestFindByIDFallsBack() {
	_, err := s.repo.Save(s.ctx, entity.NewProject("p1", "Research", "notes"))
	s.Require().NoError(err)
	s.Require().NoError(s.cache.Disconnect())

	p, ok, err := s.repo.FindByID(s.ctx, "p1")
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal("Research", p.Name)
}

// TestFindByIDCleanMiss tests that a record in no source is not an error
func (s *RepositoryTestSuite) TestFindByIDCleanMiss() {
	p, ok, err := s.repo.FindByID(s.ctx, "nope")
	s.NoError(err)
	s.False(ok)
	s.Nil(p)
}

// TestFindByIDMissAfterFailure tests that a miss is not trusted when a source
// failed, since the record may live there
func (s *RepositoryTestSuite) TestFindByIDMissAfterFailure() {
	s.Require().NoError(s.cache.Disconnect())

	_, ok, err := s.repo.FindByID(s.ctx, "nope")
	s.Error(err)
	s.False(ok)
}

// TestUpdate tests the update outcome taxonomy
func (s *RepositoryTestSuite) TestUpdate() {
	p := entity.NewProject("p1", "Research", "")
	_, err := s.repo.Save(s.ctx, p)
	s.Require().NoError(err)

	p.Name = "Archive"
	s.Require().NoError(s.repo.Update(s.ctx, p))

	got, ok, err := s.repo.FindByID(s.ctx, "p1")
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal("Archive", got.Name)
}

// TestUpdateNotFoundAnywhere tests updating a record no source holds
func (s *RepositoryTestSuite) TestUpdateNotFoundAnywhere() {
	err := s.repo.Update(s.ctx, entity.NewProject("ghost", "x", ""))
	s.ErrorIs(err, ErrNotFoundAnywhere)
}

// TestUpdateNoSources tests updating with every source down
func (s *RepositoryTestSuite) TestUpdateNoSources() {
	s.Require().NoError(s.cache.Disconnect())
	s.Require().NoError(s.primary.Disconnect())

	err := s.repo.Update(s.ctx, entity.NewProject("p1", "x", ""))
	s.ErrorIs(err, ErrNoSources)
}

// TestDeleteByID tests deletion across sources
func (s *RepositoryTestSuite) TestDeleteByID() {
	_, err := s.repo.Save(s.ctx, entity.NewProject("p1", "Research", ""))
	s.Require().NoError(err)

	deleted, err := s.repo.DeleteByID(s.ctx, "p1")
	s.Require().NoError(err)
	s.True(deleted)
	s.False(s.cache.Exists(s.ctx, "p1"))
	s.False(s.primary.Exists(s.ctx, "p1"))

	deleted, err = s.repo.DeleteByID(s.ctx, "p1")
	s.Require().NoError(err)
	s.False(deleted)
}

// TestExistsSwallowsFailures tests that existence checks never error
func (s *RepositoryTestSuite) TestExistsSwallowsFailures() {
	s.Require().NoError(s.cache.Disconnect())
	s.Require().NoError(s.primary.Disconnect())

	s.False(s.repo.Exists(s.ctx, "p1"))
}

// TestClearSumsCounts tests that Clear reports the total across sources
func (s *RepositoryTestSuite) TestClearSumsCounts() {
	_, err := s.repo.Save(s.ctx, entity.NewProject("p1", "a", ""))
	s.Require().NoError(err)
	_, err = s.repo.Save(s.ctx, entity.NewProject("p2", "b", ""))
	s.Require().NoError(err)

	n, err := s.repo.Clear(s.ctx)
	s.Require().NoError(err)
	s.Equal(4, n)
}

// TestFindAll tests listing from the first source that answers
func (s *RepositoryTestSuite) TestFindAll() {
	_, err := s.repo.Save(s.ctx, entity.NewProject("p1", "a", ""))
	s.Require().NoError(err)
	_, err = s.repo.Save(s.ctx, entity.NewProject("p2", "b", ""))
	s.Require().NoError(err)

	all, err := s.repo.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 2)
}

// TestFolderRelationshipQueries tests the folder-specific finders
func (s *RepositoryTestSuite) TestFolderRelationshipQueries() {
	ctx := context.Background()
	src := memory.NewFolderSource("mem", 100)
	s.Require().NoError(src.Connect(ctx))

	rt := router.New[datasource.FolderSource]()
	s.Require().NoError(rt.Add(src))
	rt.SetStrategy(routing.NewPriority())
	repo := NewFolderRepository(rt)

	top := entity.NewFolder("f1", "Papers", "", "p1", "")
	nested := entity.NewFolder("f2", "Drafts", "", "", "f1")
	other := entity.NewFolder("f3", "Misc", "", "p2", "")
	for _, f := range []*entity.Folder{top, nested, other} {
		_, err := repo.Save(ctx, f)
		s.Require().NoError(err)
	}

	byProject, err := repo.FindByProjectID(ctx, "p1")
	s.Require().NoError(err)
	s.Require().Len(byProject, 1)
	s.Equal("f1", byProject[0].ID)

	byParent, err := repo.FindByParentFolderID(ctx, "f1")
	s.Require().NoError(err)
	s.Require().Len(byParent, 1)
	s.Equal("f2", byParent[0].ID)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
