package media

import (
	"mime"
	"os"
	"sort"

	"mediafs/pkg/media/filetype"
	"mediafs/pkg/models"
)

// ListItems returns the immediate children of path, classified by extension
// and merged with the metadata overlay (category assignment and uploader
// attribution). Folders and files come back as separate name-ordered
// collections.
func (s *Service) ListItems(path string) (*models.Listing, error) {
	if err := s.checkList(); err != nil {
		return nil, err
	}

	abs, rel, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NotFoundError{Path: rel}
		}
		s.logger.Error().Err(err).Str("path", rel).Msg("Stat failed")
		return nil, StorageError{Op: "list", Err: err}
	}
	if !stat.IsDir() {
		return nil, NotFoundError{Path: rel}
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		s.logger.Error().Err(err).Str("path", rel).Msg("Directory scan failed")
		return nil, StorageError{Op: "list", Err: err}
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		paths = append(paths, joinRel(rel, entry.Name()))
	}
	overlay, err := s.store.PathMeta(s.root.Tag, paths)
	if err != nil {
		s.logger.Error().Err(err).Str("path", rel).Msg("Metadata lookup failed")
		return nil, StorageError{Op: "list metadata", Err: err}
	}

	listing := &models.Listing{Folders: []models.Node{}, Files: []models.Node{}}
	for _, entry := range entries {
		childRel := joinRel(rel, entry.Name())

		info, err := entry.Info()
		if err != nil {
			// Entry vanished between scan and stat; a concurrent delete is
			// not an error for the lister.
			continue
		}

		node := models.Node{
			Name:     entry.Name(),
			Path:     childRel,
			Modified: info.ModTime().Unix(),
			IsSystem: s.root.IsProtected(childRel),
		}
		if pm, ok := overlay[childRel]; ok {
			node.Category = pm.Category
			node.UploaderID = pm.UploaderID
			node.UploaderName = pm.UploaderName
		}
		if node.Category == "" {
			node.Category = s.implicitCategory(childRel)
		}

		if entry.IsDir() {
			node.Kind = models.KindFolder
			node.ItemCount = countChildren(abs, entry.Name())
			listing.Folders = append(listing.Folders, node)
		} else {
			ext := filetype.Extension(entry.Name())
			node.Kind = models.KindFile
			node.Size = info.Size()
			node.Extension = ext
			node.MimeType = mime.TypeByExtension("." + ext)
			listing.Files = append(listing.Files, node)
		}
	}

	sort.Slice(listing.Folders, func(i, j int) bool { return listing.Folders[i].Name < listing.Folders[j].Name })
	sort.Slice(listing.Files, func(i, j int) bool { return listing.Files[i].Name < listing.Files[j].Name })

	return listing, nil
}

func countChildren(parentAbs, name string) int {
	children, err := os.ReadDir(parentAbs + string(os.PathSeparator) + name)
	if err != nil {
		return 0
	}
	return len(children)
}
