package meta

import "mediafs/pkg/models"

// Store defines the metadata operations the media engine depends on:
// category definitions, the per-path metadata overlay, and the engine-wide
// settings document. The backing store provides its own synchronization;
// the engine treats every call as atomic.
type Store interface {
	// Categories returns all category definitions ordered by name.
	Categories() ([]models.Category, error)

	// AddCategory creates a category. Fails with ErrCategoryExists when the
	// slug is already taken.
	AddCategory(name, slug string) (models.Category, error)

	// DeleteCategory removes a category definition and clears every
	// assignment referencing it. Files are never touched. Fails with
	// ErrCategoryProtected for system categories and ErrCategoryNotFound
	// when the slug is unknown.
	DeleteCategory(slug string) error

	// CategoryExists reports whether a category with the slug is defined.
	CategoryExists(slug string) (bool, error)

	// PathMeta returns the metadata overlay rows for the given root tag,
	// keyed by normalized relative path. Paths without a row are absent.
	PathMeta(root string, paths []string) (map[string]models.PathMeta, error)

	// SetCategory upserts the category assignment for one path. An empty
	// slug clears the assignment.
	SetCategory(root, path, slug string) error

	// RecordUpload stores uploader attribution (and an optional implicit
	// category) for a freshly created path.
	RecordUpload(root, path, category string, uploader models.Identity) error

	// DeletePaths removes the overlay rows for a path and all of its
	// descendants.
	DeletePaths(root, path string) error

	// MovePaths rewrites the overlay rows for a path and all of its
	// descendants to a new prefix, keeping metadata attached across renames.
	MovePaths(root, oldPath, newPath string) error

	// Settings loads the engine settings document, falling back to defaults
	// when none has been saved yet.
	Settings() (models.Settings, error)

	// SaveSettings persists the settings document.
	SaveSettings(models.Settings) error

	// Close releases the underlying store.
	Close() error
}
