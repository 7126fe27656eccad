package media

import (
	"io/fs"
	"path/filepath"

	"mediafs/pkg/models"

	"github.com/dustin/go-humanize"
)

// DiskUsage walks the sandbox root and reports total bytes and file count.
func (s *Service) DiskUsage() (models.DiskUsage, error) {
	if err := s.checkList(); err != nil {
		return models.DiskUsage{}, err
	}

	var usage models.DiskUsage
	err := filepath.WalkDir(s.root.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Entries removed mid-walk are not an error for accounting.
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		usage.Bytes += info.Size()
		usage.Files++
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("Disk usage walk failed")
		return models.DiskUsage{}, StorageError{Op: "disk usage", Err: err}
	}

	usage.Formatted = humanize.IBytes(uint64(usage.Bytes))
	return usage, nil
}
