package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"plotter/pkg/datasource"
	"plotter/pkg/record"
)

// MemorySourceTestSuite tests the in-memory backend
type MemorySourceTestSuite struct {
	suite.Suite
	ctx    context.Context
	source *ProjectSource
}

func (s *MemorySourceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.source = NewProjectSource("cache", 200)
	s.Require().NoError(s.source.Connect(s.ctx))
}

// TestIdentity tests the datasource identity surface
func (s *MemorySourceTestSuite) TestIdentity() {
	s.Equal("cache", s.source.Name())
	s.Equal(SourceType, s.source.Type())
	s.Equal(200, s.source.Priority())
	s.True(s.source.IsAvailable())
}

// TestCRUD tests the full save/find/update/delete cycle
func (s *MemorySourceTestSuite) TestCRUD() {
	rec := record.ProjectRecord{ID: "p1", Name: "Research"}

	id, err := s.source.Save(s.ctx, rec)
	s.Require().NoError(err)
	s.Equal("p1", id)

	got, ok, err := s.source.FindByID(s.ctx, "p1")
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal("Research", got.Name)

	rec.Name = "Archive"
	updated, err := s.source.Update(s.ctx, rec)
	s.Require().NoError(err)
	s.True(updated)

	deleted, err := s.source.DeleteByID(s.ctx, "p1")
	s.Require().NoError(err)
	s.True(deleted)

	_, ok, err = s.source.FindByID(s.ctx, "p1")
	s.Require().NoError(err)
	s.False(ok)
}

// TestSaveReplacesExisting tests that saving an existing ID overwrites it
func (s *MemorySourceTestSuite) TestSaveReplacesExisting() {
	_, err := s.source.Save(s.ctx, record.ProjectRecord{ID: "p1", Name: "old"})
	s.Require().NoError(err)
	_, err = s.source.Save(s.ctx, record.ProjectRecord{ID: "p1", Name: "new"})
	s.Require().NoError(err)

	got, ok, err := s.source.FindByID(s.ctx, "p1")
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal("new", got.Name)
}

// TestUpdateMissing tests updating an absent record
func (s *MemorySourceTestSuite) TestUpdateMissing() {
	updated, err := s.source.Update(s.ctx, record.ProjectRecord{ID: "ghost"})
	s.Require().NoError(err)
	s.False(updated)
}

// TestDisconnectedOperations tests that operations on a disconnected source
// fail with ErrNotConnected
func (s *MemorySourceTestSuite) TestDisconnectedOperations() {
	s.Require().NoError(s.source.Disconnect())

	_, err := s.source.Save(s.ctx, record.ProjectRecord{ID: "p1"})
	s.ErrorIs(err, datasource.ErrNotConnected)
	s.ErrorIs(err, datasource.ErrSourceFailure)

	_, _, err = s.source.FindByID(s.ctx, "p1")
	s.ErrorIs(err, datasource.ErrNotConnected)

	s.False(s.source.Exists(s.ctx, "p1"))
}

// TestReconnectKeepsRecords tests the warm-cache reconnect behavior
func (s *MemorySourceTestSuite) TestReconnectKeepsRecords() {
	_, err := s.source.Save(s.ctx, record.ProjectRecord{ID: "p1", Name: "kept"})
	s.Require().NoError(err)

	s.Require().NoError(s.source.Disconnect())
	s.Require().NoError(s.source.Connect(s.ctx))

	got, ok, err := s.source.FindByID(s.ctx, "p1")
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal("kept", got.Name)
}

// TestClear tests dropping all records
func (s *MemorySourceTestSuite) TestClear() {
	for _, id := range []string{"p1", "p2", "p3"} {
		_, err := s.source.Save(s.ctx, record.ProjectRecord{ID: id})
		s.Require().NoError(err)
	}

	n, err := s.source.Clear(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, n)

	all, err := s.source.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)
}

// TestHealthAndMetrics tests the health probe and request counters
func (s *MemorySourceTestSuite) TestHealthAndMetrics() {
	result := s.source.CheckHealth(s.ctx)
	s.Equal(datasource.StatusHealthy, result.Status)

	_, err := s.source.Save(s.ctx, record.ProjectRecord{ID: "p1"})
	s.Require().NoError(err)
	s.Require().NoError(s.source.Disconnect())
	_, err = s.source.Save(s.ctx, record.ProjectRecord{ID: "p2"})
	s.Error(err)

	m := s.source.Metrics()
	s.Equal(int64(2), m.TotalRequests)
	s.Equal(int64(1), m.SuccessfulRequests)
	s.Equal(int64(1), m.FailedRequests)

	result = s.source.CheckHealth(s.ctx)
	s.Equal(datasource.StatusUnhealthy, result.Status)
	s.Equal("not connected", result.Message)
}

// TestFolderQueries tests the folder relationship finders
func (s *MemorySourceTestSuite) TestFolderQueries() {
	src := NewFolderSource("cache", 200)
	s.Require().NoError(src.Connect(s.ctx))

	records := []record.FolderRecord{
		{ID: "f1", Name: "Papers", ParentProjectID: "p1"},
		{ID: "f2", Name: "Drafts", ParentFolderID: "f1"},
		{ID: "f3", Name: "Misc", ParentProjectID: "p2"},
	}
	for _, rec := range records {
		_, err := src.Save(s.ctx, rec)
		s.Require().NoError(err)
	}

	byProject, err := src.FindByProjectID(s.ctx, "p1")
	s.Require().NoError(err)
	s.Require().Len(byProject, 1)
	s.Equal("f1", byProject[0].ID)

	byParent, err := src.FindByParentFolderID(s.ctx, "f1")
	s.Require().NoError(err)
	s.Require().Len(byParent, 1)
	s.Equal("f2", byParent[0].ID)
}

// TestNoteQueries tests the note relationship finder
func (s *MemorySourceTestSuite) TestNoteQueries() {
	src := NewNoteSource("cache", 200)
	s.Require().NoError(src.Connect(s.ctx))

	for _, rec := range []record.NoteRecord{
		{ID: "n1", Name: "a", ParentFolderID: "f1"},
		{ID: "n2", Name: "b", ParentFolderID: "f2"},
	} {
		_, err := src.Save(s.ctx, rec)
		s.Require().NoError(err)
	}

	notes, err := src.FindByParentFolderID(s.ctx, "f1")
	s.Require().NoError(err)
	s.Require().Len(notes, 1)
	s.Equal("n1", notes[0].ID)
}

func TestMemorySourceTestSuite(t *testing.T) {
	suite.Run(t, new(MemorySourceTestSuite))
}
