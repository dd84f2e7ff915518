package entity

import "time"

// Project is the top level of the document hierarchy. It references its
// top-level folders by ID rather than embedding them.
type Project struct {
	ID          string
	Name        string
	Description string
	FolderIDs   []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProject creates a project with the given identity and description.
func NewProject(id, name, description string) *Project {
	now := time.Now()
	return &Project{
		ID:          id,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// AddFolderID links a top-level folder to this project. Duplicate IDs are
// ignored.
func (p *Project) AddFolderID(folderID string) {
	for _, id := range p.FolderIDs {
		if id == folderID {
			return
		}
	}
	p.FolderIDs = append(p.FolderIDs, folderID)
	p.UpdatedAt = time.Now()
}

// RemoveFolderID unlinks a folder from this project. It returns true if the
// folder was linked.
func (p *Project) RemoveFolderID(folderID string) bool {
	for i, id := range p.FolderIDs {
		if id == folderID {
			p.FolderIDs = append(p.FolderIDs[:i], p.FolderIDs[i+1:]...)
			p.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}
