package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"plotter/pkg/backend/memory"
	"plotter/pkg/datasource"
	"plotter/pkg/entity"
	"plotter/pkg/executor"
	"plotter/pkg/repository"
	"plotter/pkg/router"
)

// UseCaseTestSuite tests the application operations over in-memory storage
type UseCaseTestSuite struct {
	suite.Suite
	ctx context.Context
	uc  *UseCases
}

func (s *UseCaseTestSuite) SetupTest() {
	s.ctx = context.Background()

	projects := memory.NewProjectSource("mem", 100)
	folders := memory.NewFolderSource("mem", 100)
	notes := memory.NewNoteSource("mem", 100)
	for _, src := range []interface {
		Connect(context.Context) error
	}{projects, folders, notes} {
		s.Require().NoError(src.Connect(s.ctx))
	}

	projectRouter := router.New[datasource.ProjectSource]()
	s.Require().NoError(projectRouter.Add(projects))
	folderRouter := router.New[datasource.FolderSource]()
	s.Require().NoError(folderRouter.Add(folders))
	noteRouter := router.New[datasource.NoteSource]()
	s.Require().NoError(noteRouter.Add(notes))

	cfg := executor.Config{
		Timeout:    5 * time.Second,
		MaxRetries: 1,
		RetryDelay: time.Millisecond,
	}
	s.uc = New(
		repository.NewProjectRepository(projectRouter),
		repository.NewFolderRepository(folderRouter),
		repository.NewNoteRepository(noteRouter),
		cfg,
	)
}

func (s *UseCaseTestSuite) createProject(name string) *entity.Project {
	resp := s.uc.CreateProject(s.ctx, CreateProjectRequest{Name: name})
	s.Require().True(resp.OK, resp.Message)
	return resp.Value
}

func (s *UseCaseTestSuite) createFolder(req CreateFolderRequest) *entity.Folder {
	resp := s.uc.CreateFolder(s.ctx, req)
	s.Require().True(resp.OK, resp.Message)
	return resp.Value
}

// TestCreateProject tests project creation and ID minting
func (s *UseCaseTestSuite) TestCreateProject() {
	resp := s.uc.CreateProject(s.ctx, CreateProjectRequest{
		Name:        "Research",
		Description: "Reading list",
	})
	s.Require().True(resp.OK, resp.Message)
	s.NotEmpty(resp.Value.ID)
	s.Equal("Research", resp.Value.Name)

	got := s.uc.GetProject(s.ctx, GetProjectRequest{ID: resp.Value.ID})
	s.Require().True(got.OK, got.Message)
	s.Equal("Research", got.Value.Project.Name)
}

// TestCreateProjectValidation tests that a missing name is a validation
// failure with zero retries
func (s *UseCaseTestSuite) TestCreateProjectValidation() {
	resp := s.uc.CreateProject(s.ctx, CreateProjectRequest{})
	s.False(resp.OK)
	s.Equal(executor.CategoryValidation, resp.Category)
	s.Equal(0, resp.RetryAttempt)
}

// TestGetProjectMissing tests that an unknown ID is a business rule failure
func (s *UseCaseTestSuite) TestGetProjectMissing() {
	resp := s.uc.GetProject(s.ctx, GetProjectRequest{ID: "ghost"})
	s.False(resp.OK)
	s.Equal(executor.CategoryBusinessRule, resp.Category)
	s.Contains(resp.Message, "not found")
}

// TestGetProjectWithFolders tests that top-level folders are resolved
func (s *UseCaseTestSuite) TestGetProjectWithFolders() {
	p := s.createProject("Research")
	s.createFolder(CreateFolderRequest{Name: "Papers", ParentProjectID: p.ID})

	resp := s.uc.GetProject(s.ctx, GetProjectRequest{ID: p.ID})
	s.Require().True(resp.OK, resp.Message)
	s.Require().Len(resp.Value.Folders, 1)
	s.Equal("Papers", resp.Value.Folders[0].Name)
}

// TestListProjects tests the listing operation
func (s *UseCaseTestSuite) TestListProjects() {
	s.createProject("a")
	s.createProject("b")

	resp := s.uc.ListProjects(s.ctx)
	s.Require().True(resp.OK, resp.Message)
	s.Len(resp.Value, 2)
}

// TestCreateFolderParentExclusivity tests the exactly-one-parent rule
func (s *UseCaseTestSuite) TestCreateFolderParentExclusivity() {
	resp := s.uc.CreateFolder(s.ctx, CreateFolderRequest{Name: "orphan"})
	s.False(resp.OK)
	s.Equal(executor.CategoryBusinessRule, resp.Category)

	resp = s.uc.CreateFolder(s.ctx, CreateFolderRequest{
		Name:            "torn",
		ParentProjectID: "p1",
		ParentFolderID:  "f1",
	})
	s.False(resp.OK)
	s.Equal(executor.CategoryBusinessRule, resp.Category)
}

// TestCreateFolderLinksParent tests that the parent picks up the new child
func (s *UseCaseTestSuite) TestCreateFolderLinksParent() {
	p := s.createProject("Research")
	f := s.createFolder(CreateFolderRequest{Name: "Papers", ParentProjectID: p.ID})

	got := s.uc.GetProject(s.ctx, GetProjectRequest{ID: p.ID})
	s.Require().True(got.OK, got.Message)
	s.Contains(got.Value.Project.FolderIDs, f.ID)

	nested := s.createFolder(CreateFolderRequest{Name: "Drafts", ParentFolderID: f.ID})
	s.Equal(f.ID, nested.ParentFolderID)
}

// TestCreateFolderMissingParent tests the unknown-parent rule
func (s *UseCaseTestSuite) TestCreateFolderMissingParent() {
	resp := s.uc.CreateFolder(s.ctx, CreateFolderRequest{
		Name:            "Papers",
		ParentProjectID: "ghost",
	})
	s.False(resp.OK)
	s.Equal(executor.CategoryBusinessRule, resp.Category)
}

// TestDeleteProjectRefusesNonEmpty tests the non-empty guard and Force
func (s *UseCaseTestSuite) TestDeleteProjectRefusesNonEmpty() {
	p := s.createProject("Research")
	f := s.createFolder(CreateFolderRequest{Name: "Papers", ParentProjectID: p.ID})
	note := s.uc.CreateNote(s.ctx, CreateNoteRequest{
		Name: "BERT", Content: "notes", ParentFolderID: f.ID,
	})
	s.Require().True(note.OK, note.Message)

	resp := s.uc.DeleteProject(s.ctx, DeleteProjectRequest{ID: p.ID})
	s.False(resp.OK)
	s.Equal(executor.CategoryBusinessRule, resp.Category)

	resp = s.uc.DeleteProject(s.ctx, DeleteProjectRequest{ID: p.ID, Force: true})
	s.Require().True(resp.OK, resp.Message)
	s.True(resp.Value)

	// The whole tree is gone.
	s.False(s.uc.GetProject(s.ctx, GetProjectRequest{ID: p.ID}).OK)
	s.False(s.uc.GetNoteContent(s.ctx, GetNoteContentRequest{NoteID: note.Value.ID}).OK)
}

// TestMoveFolderCycle tests that moving a folder under its descendant is
// refused
func (s *UseCaseTestSuite) TestMoveFolderCycle() {
	p := s.createProject("Research")
	f1 := s.createFolder(CreateFolderRequest{Name: "Papers", ParentProjectID: p.ID})
	f2 := s.createFolder(CreateFolderRequest{Name: "Drafts", ParentFolderID: f1.ID})

	resp := s.uc.MoveFolder(s.ctx, MoveFolderRequest{FolderID: f1.ID, TargetFolderID: f2.ID})
	s.False(resp.OK)
	s.Equal(executor.CategoryBusinessRule, resp.Category)
	s.Contains(resp.Message, "cycle")

	resp = s.uc.MoveFolder(s.ctx, MoveFolderRequest{FolderID: f1.ID, TargetFolderID: f1.ID})
	s.False(resp.OK)
	s.Equal(executor.CategoryBusinessRule, resp.Category)
}

// TestMoveFolder tests a legal reparenting
func (s *UseCaseTestSuite) TestMoveFolder() {
	p := s.createProject("Research")
	f1 := s.createFolder(CreateFolderRequest{Name: "Papers", ParentProjectID: p.ID})
	f2 := s.createFolder(CreateFolderRequest{Name: "Drafts", ParentFolderID: f1.ID})

	resp := s.uc.MoveFolder(s.ctx, MoveFolderRequest{
		FolderID:        f2.ID,
		TargetProjectID: p.ID,
	})
	s.Require().True(resp.OK, resp.Message)
	s.Equal(p.ID, resp.Value.ParentProjectID)
	s.Empty(resp.Value.ParentFolderID)

	got := s.uc.GetProject(s.ctx, GetProjectRequest{ID: p.ID})
	s.Require().True(got.OK, got.Message)
	s.Len(got.Value.Folders, 2)
}

// TestCreateNote tests note creation, path derivation and folder linking
func (s *UseCaseTestSuite) TestCreateNote() {
	p := s.createProject("Research")
	f := s.createFolder(CreateFolderRequest{Name: "Papers", ParentProjectID: p.ID})

	resp := s.uc.CreateNote(s.ctx, CreateNoteRequest{
		Name:           "BERT Paper",
		Content:        "# Notes",
		ParentFolderID: f.ID,
	})
	s.Require().True(resp.OK, resp.Message)
	s.Equal("notes/"+resp.Value.ID+".md", resp.Value.Path)

	missing := s.uc.CreateNote(s.ctx, CreateNoteRequest{
		Name: "lost", ParentFolderID: "ghost",
	})
	s.False(missing.OK)
	s.Equal(executor.CategoryBusinessRule, missing.Category)
}

// TestMoveNoteAndContent tests note reparenting and content retrieval
func (s *UseCaseTestSuite) TestMoveNoteAndContent() {
	p := s.createProject("Research")
	f1 := s.createFolder(CreateFolderRequest{Name: "Papers", ParentProjectID: p.ID})
	f2 := s.createFolder(CreateFolderRequest{Name: "Archive", ParentProjectID: p.ID})

	note := s.uc.CreateNote(s.ctx, CreateNoteRequest{
		Name: "BERT", Content: "# Notes", ParentFolderID: f1.ID,
	})
	s.Require().True(note.OK, note.Message)

	moved := s.uc.MoveNote(s.ctx, MoveNoteRequest{
		NoteID:         note.Value.ID,
		TargetFolderID: f2.ID,
	})
	s.Require().True(moved.OK, moved.Message)
	s.Equal(f2.ID, moved.Value.ParentFolderID)

	content := s.uc.GetNoteContent(s.ctx, GetNoteContentRequest{NoteID: note.Value.ID})
	s.Require().True(content.OK, content.Message)
	s.Equal("# Notes", content.Value)
}

func TestUseCaseTestSuite(t *testing.T) {
	suite.Run(t, new(UseCaseTestSuite))
}
