package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plotter/pkg/entity"
)

// TestFolderMapperRoundTrip tests that mapping to a record and back preserves
// the folder
func TestFolderMapperRoundTrip(t *testing.T) {
	f := entity.NewFolder("f1", "Papers", "reading list", "p1", "")
	f.AddNoteID("n1")
	f.AddSubfolderID("f2")

	m := FolderMapper{}
	got := m.ToEntity(m.ToRecord(f))

	assert.Equal(t, f, got)
}

// TestMapperCopiesSlices tests that record and entity do not share ID slices
func TestMapperCopiesSlices(t *testing.T) {
	f := entity.NewFolder("f1", "Papers", "", "p1", "")
	f.AddNoteID("n1")

	m := FolderMapper{}
	rec := m.ToRecord(f)
	rec.NoteIDs[0] = "mutated"

	require.Len(t, f.NoteIDs, 1)
	assert.Equal(t, "n1", f.NoteIDs[0])
}

// TestNoteMapperRoundTrip tests note mapping including content
func TestNoteMapperRoundTrip(t *testing.T) {
	n := entity.NewNote("n1", "BERT Paper", "ml/bert.md", "f1")
	n.SetContent("# Notes")

	m := NoteMapper{}
	got := m.ToEntity(m.ToRecord(n))

	assert.Equal(t, n, got)
}
