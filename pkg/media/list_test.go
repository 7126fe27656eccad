package media

import "mediafs/pkg/models"

// TestListSeparatesKinds tests kind classification and ordering
func (s *MediaServiceTestSuite) TestListSeparatesKinds() {
	s.Require().NoError(s.svc.CreateFolder("beta", "", s.admin))
	s.Require().NoError(s.svc.CreateFolder("alpha", "", s.admin))
	s.uploadText(s.svc, "hello", "notes.txt", "", s.admin)

	listing, err := s.svc.ListItems("")
	s.Require().NoError(err)

	var custom []models.Node
	for _, folder := range listing.Folders {
		if !folder.IsSystem {
			custom = append(custom, folder)
		}
	}
	s.Require().Len(custom, 2)
	s.Equal("alpha", custom[0].Name)
	s.Equal("beta", custom[1].Name)

	for _, folder := range listing.Folders {
		s.Equal(models.KindFolder, folder.Kind)
	}
}

// TestListFileNode tests the merged node fields for an uploaded file
func (s *MediaServiceTestSuite) TestListFileNode() {
	stored := s.uploadText(s.svc, "hello world", "notes.txt", "docs", s.admin)
	s.Equal("notes.txt", stored)

	listing, err := s.svc.ListItems("docs")
	s.Require().NoError(err)
	s.Require().Len(listing.Files, 1)

	file := listing.Files[0]
	s.Equal(models.KindFile, file.Kind)
	s.Equal("notes.txt", file.Name)
	s.Equal("docs/notes.txt", file.Path)
	s.Equal(int64(11), file.Size)
	s.Equal("txt", file.Extension)
	s.Contains(file.MimeType, "text/plain")
	s.False(file.IsSystem)
	s.Equal(int64(1), file.UploaderID)
	s.Equal("Admin", file.UploaderName)
	s.NotZero(file.Modified)
}

// TestListSystemFolderNodes tests the protected flag and implicit category
func (s *MediaServiceTestSuite) TestListSystemFolderNodes() {
	listing, err := s.svc.ListItems("")
	s.Require().NoError(err)

	byName := make(map[string]models.Node)
	for _, folder := range listing.Folders {
		byName[folder.Name] = folder
	}
	themes, ok := byName["themes"]
	s.Require().True(ok)
	s.True(themes.IsSystem)
	s.Equal("themes", themes.Category)
}

// TestListImplicitCategoryInherited tests that files under a system folder
// inherit its category without an explicit assignment
func (s *MediaServiceTestSuite) TestListImplicitCategoryInherited() {
	s.uploadText(s.svc, "body{}", "style.txt", "themes", s.admin)

	listing, err := s.svc.ListItems("themes")
	s.Require().NoError(err)
	s.Require().Len(listing.Files, 1)
	s.Equal("themes", listing.Files[0].Category)
}

// TestListExplicitCategoryWins tests that an assignment overrides inheritance
func (s *MediaServiceTestSuite) TestListExplicitCategoryWins() {
	cat, err := s.svc.AddCategory("Special")
	s.Require().NoError(err)

	s.uploadText(s.svc, "x", "a.txt", "themes", s.admin)
	s.Require().NoError(s.svc.AssignCategory("themes/a.txt", cat.Slug))

	listing, err := s.svc.ListItems("themes")
	s.Require().NoError(err)
	s.Require().Len(listing.Files, 1)
	s.Equal("special", listing.Files[0].Category)
}

// TestListItemCount tests child counting on folders
func (s *MediaServiceTestSuite) TestListItemCount() {
	s.uploadText(s.svc, "1", "a.txt", "docs", s.admin)
	s.uploadText(s.svc, "2", "b.txt", "docs", s.admin)

	listing, err := s.svc.ListItems("")
	s.Require().NoError(err)
	for _, folder := range listing.Folders {
		if folder.Name == "docs" {
			s.Equal(2, folder.ItemCount)
			return
		}
	}
	s.Fail("docs folder missing from listing")
}

// TestListMissingPath tests the not-found paths
func (s *MediaServiceTestSuite) TestListMissingPath() {
	var notFound NotFoundError

	_, err := s.svc.ListItems("nope")
	s.ErrorAs(err, &notFound)

	// A file path is not listable either
	s.uploadText(s.svc, "x", "f.txt", "docs", s.admin)
	_, err = s.svc.ListItems("docs/f.txt")
	s.ErrorAs(err, &notFound)
}
