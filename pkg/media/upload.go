package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"mediafs/pkg/media/pipeline"
	"mediafs/pkg/models"
)

// Upload ingests a file stream into targetPath through the upload pipeline.
// When targetPath is empty and month/year organization is enabled, the
// destination becomes <year>/<month> under the sandbox root. Intermediate
// folders are created as needed. Returns the stored filename.
func (s *Service) Upload(reader io.Reader, declaredName, targetPath string, identity models.Identity) (string, error) {
	if err := s.checkMutate("upload_file"); err != nil {
		return "", err
	}

	if targetPath == "" && s.settings.OrganizeMonthYear {
		now := time.Now()
		targetPath = fmt.Sprintf("%d/%02d", now.Year(), int(now.Month()))
	}

	destAbs, destRel, err := s.resolve(targetPath)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(destAbs, dirPerm); err != nil {
		s.logger.Error().Err(err).Str("path", destRel).Msg("Destination creation failed")
		return "", StorageError{Op: "create destination", Err: err}
	}

	stored, err := s.pipe.Ingest(reader, declaredName, destAbs)
	if err != nil {
		if isPolicyError(err) {
			return "", err
		}
		// Anything else is an unexpected I/O failure, not a caller mistake.
		s.logger.Error().Err(err).Str("path", destRel).Msg("Upload ingestion failed")
		return "", StorageError{Op: "ingest upload", Err: err}
	}

	rel := joinRel(destRel, stored)
	if err := s.store.RecordUpload(s.root.Tag, rel, s.implicitCategory(rel), identity); err != nil {
		s.logger.Error().Err(err).Str("path", rel).Msg("Upload metadata write failed")
		return "", StorageError{Op: "record upload metadata", Err: err}
	}

	s.logger.Info().Str("path", rel).Int64("uploader", identity.ID).Msg("File uploaded")
	return stored, nil
}

// isPolicyError reports whether a pipeline error carries a verdict the
// caller should see as-is rather than a wrapped storage failure.
func isPolicyError(err error) bool {
	var (
		badType    pipeline.UnsupportedTypeError
		tooLarge   pipeline.FileTooLargeError
		badContent pipeline.InvalidContentError
	)
	return errors.As(err, &badType) || errors.As(err, &tooLarge) || errors.As(err, &badContent)
}
