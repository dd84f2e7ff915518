package entity

import "time"

// Note is a leaf document. Path points at where the content lives in storage;
// Content carries the text itself.
type Note struct {
	ID             string
	Name           string
	Path           string
	Content        string
	ParentFolderID string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewNote creates a note in the given folder.
func NewNote(id, name, path, parentFolderID string) *Note {
	now := time.Now()
	return &Note{
		ID:             id,
		Name:           name,
		Path:           path,
		ParentFolderID: parentFolderID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// SetContent replaces the note body and bumps the modification time.
func (n *Note) SetContent(content string) {
	n.Content = content
	n.UpdatedAt = time.Now()
}

// Move reparents the note into another folder.
func (n *Note) Move(folderID string) {
	n.ParentFolderID = folderID
	n.UpdatedAt = time.Now()
}
