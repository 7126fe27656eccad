package media

import (
	"errors"
	"os"

	"mediafs/pkg/meta"
	"mediafs/pkg/models"
	"mediafs/pkg/vpath"
)

// Categories returns all category definitions.
func (s *Service) Categories() ([]models.Category, error) {
	categories, err := s.store.Categories()
	if err != nil {
		s.logger.Error().Err(err).Msg("Category listing failed")
		return nil, StorageError{Op: "list categories", Err: err}
	}
	return categories, nil
}

// AddCategory creates a category from a display name; the slug is derived
// by lowercasing and collapsing separator runs to hyphens.
func (s *Service) AddCategory(name string) (models.Category, error) {
	if err := s.checkMutate("add_category"); err != nil {
		return models.Category{}, err
	}

	slug := vpath.Slugify(name)
	if slug == "" {
		return models.Category{}, ValidationError{Reason: "category name is required"}
	}

	cat, err := s.store.AddCategory(name, slug)
	if err != nil {
		if errors.Is(err, meta.ErrCategoryExists) {
			return models.Category{}, ConflictError{Path: slug}
		}
		s.logger.Error().Err(err).Str("slug", slug).Msg("Category creation failed")
		return models.Category{}, StorageError{Op: "add category", Err: err}
	}
	return cat, nil
}

// DeleteCategory removes a category definition. Assignments referencing it
// are cleared, never the files themselves; system categories refuse
// deletion.
func (s *Service) DeleteCategory(slug string) error {
	if err := s.checkMutate("delete_category"); err != nil {
		return err
	}
	if slug == "" {
		return ValidationError{Reason: "category slug is required"}
	}

	err := s.store.DeleteCategory(slug)
	switch {
	case errors.Is(err, meta.ErrCategoryNotFound):
		return NotFoundError{Path: slug}
	case errors.Is(err, meta.ErrCategoryProtected):
		return ProtectedPathError{Path: slug}
	case err != nil:
		s.logger.Error().Err(err).Str("slug", slug).Msg("Category deletion failed")
		return StorageError{Op: "delete category", Err: err}
	}
	return nil
}

// AssignCategory upserts the category assignment for the entry at path; an
// empty slug removes the assignment. The path must exist; the slug, when
// non-empty, must name a defined category. No filesystem mutation happens.
func (s *Service) AssignCategory(path, slug string) error {
	if err := s.checkMutate("assign_category"); err != nil {
		return err
	}

	abs, rel, err := s.resolve(path)
	if err != nil {
		return err
	}
	if rel == "" {
		return ValidationError{Reason: "file path is required"}
	}
	if _, err := os.Lstat(abs); err != nil {
		if os.IsNotExist(err) {
			return NotFoundError{Path: rel}
		}
		return StorageError{Op: "assign category", Err: err}
	}

	if slug != "" {
		exists, err := s.store.CategoryExists(slug)
		if err != nil {
			s.logger.Error().Err(err).Str("slug", slug).Msg("Category lookup failed")
			return StorageError{Op: "assign category", Err: err}
		}
		if !exists {
			return NotFoundError{Path: slug}
		}
	}

	if err := s.store.SetCategory(s.root.Tag, rel, slug); err != nil {
		s.logger.Error().Err(err).Str("path", rel).Msg("Category assignment failed")
		return StorageError{Op: "assign category", Err: err}
	}
	return nil
}
