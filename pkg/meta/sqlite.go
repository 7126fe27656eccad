package meta

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"mediafs/pkg/models"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens (or creates) the database at dbPath, applies the
// schema and seeds the system categories.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	database, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", ErrDatabase, err)
	}

	ctx := context.Background()

	// Enable foreign keys
	if _, err := database.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("%w: failed to enable foreign keys: %w", ErrDatabase, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := database.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("%w: failed to enable WAL mode: %w", ErrDatabase, err)
	}

	store := &SQLiteStore{db: database}
	if err := store.initialize(); err != nil {
		_ = database.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("%w: failed to initialize schema: %w", ErrDatabase, err)
	}

	// Seed system categories; existing rows are left untouched.
	for slug, name := range SystemCategories {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO categories (slug, name, is_system) VALUES (?, ?, TRUE)
			 ON CONFLICT(slug) DO NOTHING`,
			slug, name,
		)
		if err != nil {
			return fmt.Errorf("%w: failed to seed system categories: %w", ErrDatabase, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Categories returns all category definitions ordered by name.
func (s *SQLiteStore) Categories() ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(context.Background(),
		`SELECT slug, name, is_system FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	defer func() { _ = rows.Close() }()

	var categories []models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.Slug, &cat.Name, &cat.System); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDatabase, err)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	return categories, nil
}

// AddCategory creates a category. The held write lock makes the
// existence check and the insert one atomic step, so duplicate detection
// never depends on parsing driver error text.
func (s *SQLiteStore) AddCategory(name, slug string) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()

	var exists bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE slug = ?)`, slug).Scan(&exists); err != nil {
		return models.Category{}, fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	if exists {
		return models.Category{}, ErrCategoryExists
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (slug, name, is_system) VALUES (?, ?, FALSE)`,
		slug, name,
	); err != nil {
		return models.Category{}, fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	return models.Category{Slug: slug, Name: name}, nil
}

// DeleteCategory removes a category and clears assignments referencing it.
func (s *SQLiteStore) DeleteCategory(slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()

	var isSystem bool
	err := s.db.QueryRowContext(ctx,
		`SELECT is_system FROM categories WHERE slug = ?`, slug).Scan(&isSystem)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCategoryNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	if isSystem {
		return ErrCategoryProtected
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE slug = ?`, slug); err != nil {
		return fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	// Assignments resolve to "uncategorized", never to a dangling slug.
	if _, err := tx.ExecContext(ctx, `UPDATE path_meta SET category = NULL WHERE category = ?`, slug); err != nil {
		return fmt.Errorf("%w: %w", ErrDatabase, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	return nil
}

// CategoryExists reports whether a category with the slug is defined.
func (s *SQLiteStore) CategoryExists(slug string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRowContext(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM categories WHERE slug = ?)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	return exists, nil
}

// PathMeta returns the overlay rows for the given paths under one root tag.
func (s *SQLiteStore) PathMeta(root string, paths []string) (map[string]models.PathMeta, error) {
	result := make(map[string]models.PathMeta, len(paths))
	if len(paths) == 0 {
		return result, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	placeholders := strings.Repeat("?,", len(paths))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]interface{}, 0, len(paths)+1)
	args = append(args, root)
	for _, p := range paths {
		args = append(args, p)
	}

	//nolint:gosec // placeholders contains only "?" characters
	query := `SELECT path, category, uploader_id, uploader_name FROM path_meta
	          WHERE root = ? AND path IN (` + placeholders + `)`

	rows, err := s.db.QueryContext(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			path     string
			category sql.NullString
			pm       models.PathMeta
		)
		if err := rows.Scan(&path, &category, &pm.UploaderID, &pm.UploaderName); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDatabase, err)
		}
		if category.Valid {
			pm.Category = category.String
		}
		result[path] = pm
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	return result, nil
}

// SetCategory upserts the category assignment for one path.
func (s *SQLiteStore) SetCategory(root, path, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()

	var category interface{}
	if slug != "" {
		category = slug
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO path_meta (root, path, category) VALUES (?, ?, ?)
		 ON CONFLICT(root, path) DO UPDATE SET category = excluded.category`,
		root, path, category,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	return nil
}

// RecordUpload stores uploader attribution for a freshly created path.
func (s *SQLiteStore) RecordUpload(root, path, category string, uploader models.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cat interface{}
	if category != "" {
		cat = category
	}

	_, err := s.db.ExecContext(context.Background(),
		`INSERT INTO path_meta (root, path, category, uploader_id, uploader_name)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(root, path) DO UPDATE SET
		 category = excluded.category,
		 uploader_id = excluded.uploader_id,
		 uploader_name = excluded.uploader_name`,
		root, path, cat, uploader.ID, uploader.Name,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	return nil
}

// DeletePaths removes the overlay rows for a path and all descendants.
func (s *SQLiteStore) DeletePaths(root, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// substr comparison instead of LIKE: sanitized names routinely contain
	// underscores, which LIKE would treat as wildcards and match siblings.
	_, err := s.db.ExecContext(context.Background(),
		`DELETE FROM path_meta
		 WHERE root = ? AND (path = ? OR substr(path, 1, length(?) + 1) = ? || '/')`,
		root, path, path, path,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	return nil
}

// MovePaths rewrites the overlay rows for a path and all descendants.
func (s *SQLiteStore) MovePaths(root, oldPath, newPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`UPDATE path_meta SET path = ? WHERE root = ? AND path = ?`,
		newPath, root, oldPath,
	); err != nil {
		return fmt.Errorf("%w: %w", ErrDatabase, err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE path_meta SET path = ? || substr(path, length(?) + 1)
		 WHERE root = ? AND substr(path, 1, length(?) + 1) = ? || '/'`,
		newPath, oldPath, root, oldPath, oldPath,
	); err != nil {
		return fmt.Errorf("%w: %w", ErrDatabase, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	return nil
}

// Settings loads the settings document, falling back to defaults.
func (s *SQLiteStore) Settings() (models.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data string
	err := s.db.QueryRowContext(context.Background(),
		`SELECT data FROM settings WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("%w: %w", ErrDatabase, err)
	}

	settings := models.DefaultSettings()
	if err := json.Unmarshal([]byte(data), &settings); err != nil {
		return models.Settings{}, fmt.Errorf("%w: failed to parse settings: %w", ErrDatabase, err)
	}
	// A saved empty allow-list means "nothing permitted" and must survive
	// the round-trip; only a missing field keeps the default.
	sort.Strings(settings.AllowedTypes)
	return settings, nil
}

// SaveSettings persists the settings document.
func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("%w: failed to serialize settings: %w", ErrDatabase, err)
	}

	_, err = s.db.ExecContext(context.Background(),
		`INSERT INTO settings (id, data, updated_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		string(data),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	return nil
}
