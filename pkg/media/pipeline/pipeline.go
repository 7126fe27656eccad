// Package pipeline validates and ingests uploaded file streams: policy
// checks first, then optional image transformation, then atomic placement
// into the destination directory. A failed ingest leaves no partial file
// behind, in the temp directory or the destination.
package pipeline

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"mediafs/pkg/log"
	"mediafs/pkg/media/filetype"
	"mediafs/pkg/models"
	"mediafs/pkg/vpath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const filePerm = 0640

// Pipeline ingests upload streams under one settings snapshot.
type Pipeline struct {
	tempDir  string
	settings models.Settings
	logger   zerolog.Logger
}

// New returns a Pipeline writing temporary files to tempDir. The temp
// directory must live on the same filesystem as the sandbox roots so that
// final placement can hard-link instead of copying.
func New(tempDir string, settings models.Settings) *Pipeline {
	return &Pipeline{
		tempDir:  tempDir,
		settings: settings,
		logger:   log.With("pipeline"),
	}
}

// Ingest validates reader against the upload policy and commits it into
// destDir, returning the stored (possibly renamed or re-encoded) filename.
// The declared name supplies the extension for the policy check; the actual
// byte count is enforced while copying, never trusted from the caller.
func (p *Pipeline) Ingest(reader io.Reader, declaredName, destDir string) (string, error) {
	name := vpath.SanitizeName(declaredName)
	if name == "" {
		return "", InvalidContentError{Name: declaredName}
	}

	ext := filetype.Extension(name)
	if err := p.checkType(ext); err != nil {
		return "", err
	}

	tempPath, err := p.spool(reader)
	if err != nil {
		return "", err
	}
	defer p.discard(tempPath)

	if filetype.Classify(ext) == filetype.TypeImage {
		newExt, err := p.transformImage(tempPath, ext)
		if err != nil {
			return "", err
		}
		if newExt != ext {
			name = strings.TrimSuffix(name, "."+ext) + "." + newExt
		}
	}

	stored, err := p.place(tempPath, destDir, name)
	if err != nil {
		return "", err
	}

	p.logger.Info().Str("filename", stored).Str("dest", filepath.Base(destDir)).Msg("File ingested")
	return stored, nil
}

// checkType rejects extensions whose type groups are all outside the
// allow-list. An empty allow-list permits nothing.
func (p *Pipeline) checkType(ext string) error {
	if ext == "" {
		return UnsupportedTypeError{Extension: ext}
	}
	for _, group := range filetype.GroupsFor(ext) {
		if p.settings.TypeAllowed(group) {
			return nil
		}
	}
	return UnsupportedTypeError{Extension: ext}
}

// spool copies the stream into a temporary file, enforcing the size ceiling
// incrementally. On any failure the temporary file is removed.
func (p *Pipeline) spool(reader io.Reader) (string, error) {
	tempPath := filepath.Join(p.tempDir, "upload-"+uuid.NewString())

	temp, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		p.logger.Error().Err(err).Msg("Failed to create temporary file")
		return "", err
	}

	limit := p.settings.MaxUploadSize
	// Read one byte past the ceiling so a stream exactly at the limit passes
	// and anything beyond it fails regardless of the declared size.
	written, err := io.Copy(temp, io.LimitReader(reader, limit+1))
	closeErr := temp.Close()

	switch {
	case err != nil:
		p.discard(tempPath)
		p.logger.Error().Err(err).Msg("Failed to spool upload")
		return "", err
	case closeErr != nil:
		p.discard(tempPath)
		return "", closeErr
	case written > limit:
		p.discard(tempPath)
		return "", FileTooLargeError{Limit: limit}
	}

	return tempPath, nil
}

// place links the temporary file into destDir under a collision-free name.
// os.Link fails atomically when the target exists, so concurrent uploads of
// the same name can never overwrite each other; the loser retries with the
// next numeric suffix.
func (p *Pipeline) place(tempPath, destDir, name string) (string, error) {
	ext := filetype.Extension(name)
	base := strings.TrimSuffix(name, "."+ext)

	candidate := name
	for counter := 1; ; counter++ {
		target := filepath.Join(destDir, candidate)
		err := os.Link(tempPath, target)
		if err == nil {
			return candidate, nil
		}
		if !os.IsExist(err) {
			p.logger.Error().Err(err).Str("filename", candidate).Msg("Failed to place uploaded file")
			return "", err
		}
		candidate = base + "-" + strconv.Itoa(counter)
		if ext != "" {
			candidate += "." + ext
		}
	}
}

// discard removes a temporary file, tolerating it being gone already.
func (p *Pipeline) discard(tempPath string) {
	if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
		p.logger.Error().Err(err).Str("temp_file", tempPath).Msg("Failed to remove temporary file")
	}
}
