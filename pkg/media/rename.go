package media

import (
	"os"
	"path/filepath"

	"mediafs/pkg/vpath"
)

// RenameItem renames the entry at oldPath to newName within the same parent
// directory, then migrates the metadata overlay for the path and all of its
// descendants so assignments never silently detach.
func (s *Service) RenameItem(oldPath, newName string) error {
	if err := s.checkMutate("rename_item"); err != nil {
		return err
	}

	oldAbs, oldRel, err := s.resolve(oldPath)
	if err != nil {
		return err
	}
	if s.root.IsProtected(oldRel) {
		return ProtectedPathError{Path: oldRel}
	}

	newName = vpath.SanitizeName(newName)
	if newName == "" {
		return ValidationError{Reason: "new name is required"}
	}

	if _, err := os.Lstat(oldAbs); err != nil {
		if os.IsNotExist(err) {
			return NotFoundError{Path: oldRel}
		}
		s.logger.Error().Err(err).Str("path", oldRel).Msg("Stat failed")
		return StorageError{Op: "rename", Err: err}
	}

	parentRel := ""
	if idx := len(oldRel) - len(filepath.Base(oldRel)) - 1; idx > 0 {
		parentRel = oldRel[:idx]
	}
	newRel := joinRel(parentRel, newName)

	newAbs := filepath.Join(filepath.Dir(oldAbs), newName)
	if _, err := os.Lstat(newAbs); err == nil {
		return ConflictError{Path: newRel}
	} else if !os.IsNotExist(err) {
		return StorageError{Op: "rename", Err: err}
	}

	if err := os.Rename(oldAbs, newAbs); err != nil {
		s.logger.Error().Err(err).Str("path", oldRel).Msg("Rename failed")
		return StorageError{Op: "rename", Err: err}
	}

	if err := s.store.MovePaths(s.root.Tag, oldRel, newRel); err != nil {
		s.logger.Error().Err(err).Str("path", oldRel).Str("new_path", newRel).Msg("Metadata migration failed")
		return StorageError{Op: "rename metadata", Err: err}
	}

	s.logger.Info().Str("path", oldRel).Str("new_path", newRel).Msg("Item renamed")
	return nil
}
