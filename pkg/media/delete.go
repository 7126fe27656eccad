package media

import "os"

// DeleteItem removes a file or, recursively, a folder, then cascades the
// removal to the metadata overlay so no assignment outlives its path.
// System paths refuse deletion regardless of caller privilege.
func (s *Service) DeleteItem(path string) error {
	if err := s.checkMutate("delete_item"); err != nil {
		return err
	}

	abs, rel, err := s.resolve(path)
	if err != nil {
		return err
	}
	if s.root.IsProtected(rel) {
		return ProtectedPathError{Path: rel}
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return NotFoundError{Path: rel}
		}
		s.logger.Error().Err(err).Str("path", rel).Msg("Stat failed")
		return StorageError{Op: "delete", Err: err}
	}

	if info.IsDir() {
		err = os.RemoveAll(abs)
	} else {
		err = os.Remove(abs)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("path", rel).Msg("Delete failed")
		return StorageError{Op: "delete", Err: err}
	}

	if err := s.store.DeletePaths(s.root.Tag, rel); err != nil {
		s.logger.Error().Err(err).Str("path", rel).Msg("Metadata cascade failed")
		return StorageError{Op: "delete metadata", Err: err}
	}

	s.logger.Info().Str("path", rel).Msg("Item deleted")
	return nil
}
