package sqlite

// Schema creates the document tables. Folder IDs under a project and
// note/subfolder IDs under a folder are not stored inline; they are
// reconstructed from the parent-link columns when a record is read.
const Schema = `
CREATE TABLE IF NOT EXISTS projects (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT,
    created_at  INTEGER NOT NULL,
    updated_at  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS folders (
    id                TEXT PRIMARY KEY,
    name              TEXT NOT NULL,
    description       TEXT,
    parent_project_id TEXT,
    parent_folder_id  TEXT,
    created_at        INTEGER NOT NULL,
    updated_at        INTEGER NOT NULL,
    FOREIGN KEY (parent_project_id) REFERENCES projects(id) ON DELETE CASCADE,
    FOREIGN KEY (parent_folder_id) REFERENCES folders(id) ON DELETE CASCADE,
    CHECK (parent_project_id IS NULL OR parent_folder_id IS NULL)
);

CREATE TABLE IF NOT EXISTS notes (
    id               TEXT PRIMARY KEY,
    name             TEXT NOT NULL,
    path             TEXT,
    content          TEXT,
    parent_folder_id TEXT,
    created_at       INTEGER NOT NULL,
    updated_at       INTEGER NOT NULL,
    FOREIGN KEY (parent_folder_id) REFERENCES folders(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_folders_parent_project ON folders(parent_project_id);
CREATE INDEX IF NOT EXISTS idx_folders_parent_folder ON folders(parent_folder_id);
CREATE INDEX IF NOT EXISTS idx_notes_parent_folder ON notes(parent_folder_id);
`
