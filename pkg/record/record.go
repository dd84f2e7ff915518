// Package record defines the wire-level representation of domain entities
// shared by every storage backend. Each backend persists these records in its
// own format (SQL rows, JSON dotfiles, in-memory maps) but produces and
// consumes the same value types, so no backend-specific casting exists
// anywhere above the backend itself. Records are plain values: a record
// returned by a backend belongs to the caller.
package record

import "time"

// ProjectRecord is the stored form of a project, including the IDs of its
// top-level folders.
type ProjectRecord struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	FolderIDs   []string  `json:"folder_ids,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FolderRecord is the stored form of a folder, including parent links and
// child ID lists.
type FolderRecord struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	ParentProjectID string    `json:"parent_project_id,omitempty"`
	ParentFolderID  string    `json:"parent_folder_id,omitempty"`
	NoteIDs         []string  `json:"note_ids,omitempty"`
	SubfolderIDs    []string  `json:"subfolder_ids,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NoteRecord is the stored form of a note.
type NoteRecord struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Path           string    `json:"path,omitempty"`
	Content        string    `json:"content,omitempty"`
	ParentFolderID string    `json:"parent_folder_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
