package media

import (
	"os"
	"path/filepath"
)

// TestRenameFile tests a plain rename within a folder
func (s *MediaServiceTestSuite) TestRenameFile() {
	s.uploadText(s.svc, "x", "draft.txt", "docs", s.admin)

	s.NoError(s.svc.RenameItem("docs/draft.txt", "final.txt"))

	_, err := os.Stat(filepath.Join(s.storageDir, "docs", "final.txt"))
	s.NoError(err)
	_, err = os.Stat(filepath.Join(s.storageDir, "docs", "draft.txt"))
	s.True(os.IsNotExist(err))
}

// TestRenameFolderMigratesMetadata tests that assignments follow the
// renamed subtree
func (s *MediaServiceTestSuite) TestRenameFolderMigratesMetadata() {
	s.uploadText(s.svc, "x", "a.txt", "old/sub", s.admin)
	cat, err := s.svc.AddCategory("Keep")
	s.Require().NoError(err)
	s.Require().NoError(s.svc.AssignCategory("old/sub/a.txt", cat.Slug))

	s.NoError(s.svc.RenameItem("old", "new"))

	listing, err := s.svc.ListItems("new/sub")
	s.Require().NoError(err)
	s.Require().Len(listing.Files, 1)
	s.Equal("keep", listing.Files[0].Category)

	overlay, err := s.store.PathMeta(GlobalTag, []string{"old/sub/a.txt"})
	s.NoError(err)
	s.Empty(overlay)
}

// TestRenameConflict tests that an existing target name refuses the rename
func (s *MediaServiceTestSuite) TestRenameConflict() {
	s.uploadText(s.svc, "1", "a.txt", "docs", s.admin)
	s.uploadText(s.svc, "2", "b.txt", "docs", s.admin)

	err := s.svc.RenameItem("docs/a.txt", "b.txt")
	var conflict ConflictError
	s.ErrorAs(err, &conflict)
	s.Equal("docs/b.txt", conflict.Path)

	// Both originals intact
	data, readErr := os.ReadFile(filepath.Join(s.storageDir, "docs", "b.txt"))
	s.NoError(readErr)
	s.Equal("2", string(data))
}

// TestRenameProtected tests system path immunity
func (s *MediaServiceTestSuite) TestRenameProtected() {
	var protected ProtectedPathError
	s.ErrorAs(s.svc.RenameItem("fonts", "typefaces"), &protected)
	s.ErrorAs(s.svc.RenameItem("", "anything"), &protected)
}

// TestRenameSanitizesName tests that the new name is flattened to one
// safe segment
func (s *MediaServiceTestSuite) TestRenameSanitizesName() {
	s.Require().NoError(s.svc.CreateFolder("docs", "", s.admin))

	s.NoError(s.svc.RenameItem("docs", "my docs/evil"))

	_, err := os.Stat(filepath.Join(s.storageDir, "my_docs_evil"))
	s.NoError(err)
}

// TestRenameMissing tests the not-found path
func (s *MediaServiceTestSuite) TestRenameMissing() {
	var notFound NotFoundError
	s.ErrorAs(s.svc.RenameItem("ghost.txt", "real.txt"), &notFound)
}
