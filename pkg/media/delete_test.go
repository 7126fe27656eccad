package media

import (
	"os"
	"path/filepath"
)

// TestDeleteFile tests single-file removal
func (s *MediaServiceTestSuite) TestDeleteFile() {
	s.uploadText(s.svc, "x", "f.txt", "docs", s.admin)

	s.NoError(s.svc.DeleteItem("docs/f.txt"))

	_, err := os.Stat(filepath.Join(s.storageDir, "docs", "f.txt"))
	s.True(os.IsNotExist(err))
}

// TestDeleteFolderCascadesMetadata tests recursive removal and overlay
// cleanup
func (s *MediaServiceTestSuite) TestDeleteFolderCascadesMetadata() {
	s.uploadText(s.svc, "a", "a.txt", "docs/sub", s.admin)
	cat, err := s.svc.AddCategory("Temp")
	s.Require().NoError(err)
	s.Require().NoError(s.svc.AssignCategory("docs/sub/a.txt", cat.Slug))

	s.NoError(s.svc.DeleteItem("docs"))

	_, statErr := os.Stat(filepath.Join(s.storageDir, "docs"))
	s.True(os.IsNotExist(statErr))

	overlay, err := s.store.PathMeta(GlobalTag, []string{"docs/sub", "docs/sub/a.txt"})
	s.NoError(err)
	s.Empty(overlay)
}

// TestDeleteProtectedPaths tests that system paths and the root refuse
// deletion even for the administrator
func (s *MediaServiceTestSuite) TestDeleteProtectedPaths() {
	var protected ProtectedPathError

	s.ErrorAs(s.svc.DeleteItem("themes"), &protected)
	s.ErrorAs(s.svc.DeleteItem(""), &protected)

	// Contents of a system folder are fair game
	s.uploadText(s.svc, "x", "inside.txt", "themes", s.admin)
	s.NoError(s.svc.DeleteItem("themes/inside.txt"))
}

// TestDeleteMissing tests the not-found path
func (s *MediaServiceTestSuite) TestDeleteMissing() {
	var notFound NotFoundError
	s.ErrorAs(s.svc.DeleteItem("ghost.txt"), &notFound)
}
