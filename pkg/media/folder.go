package media

import (
	"os"
	"path/filepath"

	"mediafs/pkg/models"
	"mediafs/pkg/vpath"
)

// CreateFolder creates a directory named name under parentPath. The name is
// a single segment; anything resembling a path is flattened by
// sanitization. Creation is atomic: two concurrent callers racing on the
// same name see one success and one ConflictError, never two entries.
func (s *Service) CreateFolder(name, parentPath string, identity models.Identity) error {
	if err := s.checkMutate("create_folder"); err != nil {
		return err
	}

	name = vpath.SanitizeName(name)
	if name == "" {
		return ValidationError{Reason: "folder name is required"}
	}

	parentAbs, parentRel, err := s.resolve(parentPath)
	if err != nil {
		return err
	}

	if err := os.Mkdir(filepath.Join(parentAbs, name), dirPerm); err != nil {
		if os.IsExist(err) {
			return ConflictError{Path: joinRel(parentRel, name)}
		}
		if os.IsNotExist(err) {
			return NotFoundError{Path: parentRel}
		}
		s.logger.Error().Err(err).Str("name", name).Msg("Folder creation failed")
		return StorageError{Op: "create folder", Err: err}
	}

	rel := joinRel(parentRel, name)
	if err := s.store.RecordUpload(s.root.Tag, rel, s.implicitCategory(rel), identity); err != nil {
		// The folder exists; surface the bookkeeping failure instead of
		// pretending full success.
		s.logger.Error().Err(err).Str("path", rel).Msg("Folder metadata write failed")
		return StorageError{Op: "record folder metadata", Err: err}
	}

	s.logger.Info().Str("path", rel).Msg("Folder created")
	return nil
}
