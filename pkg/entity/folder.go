package entity

import "time"

// Folder groups notes and subfolders. A folder hangs either directly off a
// project or off another folder, never both at once.
type Folder struct {
	ID              string
	Name            string
	Description     string
	ParentProjectID string
	ParentFolderID  string
	NoteIDs         []string
	SubfolderIDs    []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewFolder creates a folder under the given parent. Exactly one of
// parentProjectID and parentFolderID should be set; both empty means the
// folder is detached.
func NewFolder(id, name, description, parentProjectID, parentFolderID string) *Folder {
	now := time.Now()
	return &Folder{
		ID:              id,
		Name:            name,
		Description:     description,
		ParentProjectID: parentProjectID,
		ParentFolderID:  parentFolderID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// HasValidParent reports whether the folder respects the parent exclusivity
// rule: at most one of parent project and parent folder is set.
func (f *Folder) HasValidParent() bool {
	return f.ParentProjectID == "" || f.ParentFolderID == ""
}

// AddNoteID links a note to this folder. Duplicate IDs are ignored.
func (f *Folder) AddNoteID(noteID string) {
	for _, id := range f.NoteIDs {
		if id == noteID {
			return
		}
	}
	f.NoteIDs = append(f.NoteIDs, noteID)
	f.UpdatedAt = time.Now()
}

// RemoveNoteID unlinks a note. It returns true if the note was linked.
func (f *Folder) RemoveNoteID(noteID string) bool {
	for i, id := range f.NoteIDs {
		if id == noteID {
			f.NoteIDs = append(f.NoteIDs[:i], f.NoteIDs[i+1:]...)
			f.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// AddSubfolderID links a subfolder. Duplicate IDs are ignored.
func (f *Folder) AddSubfolderID(folderID string) {
	for _, id := range f.SubfolderIDs {
		if id == folderID {
			return
		}
	}
	f.SubfolderIDs = append(f.SubfolderIDs, folderID)
	f.UpdatedAt = time.Now()
}

// RemoveSubfolderID unlinks a subfolder. It returns true if it was linked.
func (f *Folder) RemoveSubfolderID(folderID string) bool {
	for i, id := range f.SubfolderIDs {
		if id == folderID {
			f.SubfolderIDs = append(f.SubfolderIDs[:i], f.SubfolderIDs[i+1:]...)
			f.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}
