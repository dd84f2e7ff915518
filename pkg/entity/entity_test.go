package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestProjectFolderLinks tests folder ID linking and deduplication
func TestProjectFolderLinks(t *testing.T) {
	p := NewProject("p1", "Research", "")

	p.AddFolderID("f1")
	p.AddFolderID("f1")
	p.AddFolderID("f2")
	assert.Equal(t, []string{"f1", "f2"}, p.FolderIDs)

	assert.True(t, p.RemoveFolderID("f1"))
	assert.False(t, p.RemoveFolderID("f1"))
	assert.Equal(t, []string{"f2"}, p.FolderIDs)
}

// TestFolderParentExclusivity tests the parent validity predicate
func TestFolderParentExclusivity(t *testing.T) {
	assert.True(t, NewFolder("f1", "a", "", "p1", "").HasValidParent())
	assert.True(t, NewFolder("f2", "b", "", "", "f1").HasValidParent())
	assert.True(t, NewFolder("f3", "c", "", "", "").HasValidParent())

	torn := NewFolder("f4", "d", "", "p1", "f1")
	assert.False(t, torn.HasValidParent())
}

// TestNoteMoveBumpsTimestamp tests that mutations touch UpdatedAt
func TestNoteMoveBumpsTimestamp(t *testing.T) {
	n := NewNote("n1", "BERT", "ml/bert.md", "f1")
	before := n.UpdatedAt

	n.Move("f2")
	assert.Equal(t, "f2", n.ParentFolderID)
	assert.False(t, n.UpdatedAt.Before(before))

	n.SetContent("# Notes")
	assert.Equal(t, "# Notes", n.Content)
}
