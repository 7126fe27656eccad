package meta

import "errors"

var (
	// ErrCategoryExists is returned when adding a category whose slug is taken.
	ErrCategoryExists = errors.New("category already exists")

	// ErrCategoryNotFound is returned when the requested category does not exist.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryProtected is returned when deleting a system category.
	ErrCategoryProtected = errors.New("system category cannot be deleted")

	// ErrDatabase is returned when a database operation fails.
	ErrDatabase = errors.New("database error")
)
