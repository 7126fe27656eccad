package meta

// Schema contains the SQL statements to create the metadata schema.
const Schema = `
-- Categories table: admin-defined tags for files and folders
CREATE TABLE IF NOT EXISTS categories (
    slug       TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    is_system  BOOLEAN DEFAULT FALSE,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Path metadata table: category assignment and uploader attribution,
-- keyed by sandbox root tag plus normalized relative path
CREATE TABLE IF NOT EXISTS path_meta (
    root          TEXT NOT NULL,
    path          TEXT NOT NULL,
    category      TEXT,
    uploader_id   INTEGER DEFAULT 0,
    uploader_name TEXT DEFAULT '',
    created_at    DATETIME DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (root, path)
);

-- Settings table: singleton JSON document
CREATE TABLE IF NOT EXISTS settings (
    id         INTEGER PRIMARY KEY CHECK (id = 1),
    data       TEXT NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Indexes for performance
CREATE INDEX IF NOT EXISTS idx_path_meta_root ON path_meta(root);
CREATE INDEX IF NOT EXISTS idx_path_meta_category ON path_meta(category);
`

// SystemCategories are seeded on store initialization and mirror the
// protected top-level folders of the global sandbox.
var SystemCategories = map[string]string{
	"themes":       "Themes",
	"plugins":      "Plugins",
	"assets":       "Assets",
	"fonts":        "Fonts",
	"dl-manager":   "Downloads",
	"form-uploads": "Form Uploads",
}
