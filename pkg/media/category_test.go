package media

// TestAddCategorySlugDerivation tests slug generation from display names
func (s *MediaServiceTestSuite) TestAddCategorySlugDerivation() {
	cat, err := s.svc.AddCategory("Holiday Photos 2026")
	s.NoError(err)
	s.Equal("holiday-photos-2026", cat.Slug)
	s.Equal("Holiday Photos 2026", cat.Name)
	s.False(cat.System)

	categories, err := s.svc.Categories()
	s.NoError(err)
	slugs := make([]string, 0, len(categories))
	for _, c := range categories {
		slugs = append(slugs, c.Slug)
	}
	s.Contains(slugs, "holiday-photos-2026")
	s.Contains(slugs, "themes")
}

// TestAddCategoryDuplicate tests slug collision detection
func (s *MediaServiceTestSuite) TestAddCategoryDuplicate() {
	_, err := s.svc.AddCategory("Reports")
	s.Require().NoError(err)

	_, err = s.svc.AddCategory("reports")
	var conflict ConflictError
	s.ErrorAs(err, &conflict)
}

// TestAddCategoryInvalidName tests names that slugify to nothing
func (s *MediaServiceTestSuite) TestAddCategoryInvalidName() {
	var validation ValidationError
	_, err := s.svc.AddCategory("!!!")
	s.ErrorAs(err, &validation)
}

// TestDeleteCategory tests removal of custom categories and refusal for
// system ones
func (s *MediaServiceTestSuite) TestDeleteCategory() {
	cat, err := s.svc.AddCategory("Temp")
	s.Require().NoError(err)

	s.NoError(s.svc.DeleteCategory(cat.Slug))

	var notFound NotFoundError
	s.ErrorAs(s.svc.DeleteCategory(cat.Slug), &notFound)

	var protected ProtectedPathError
	s.ErrorAs(s.svc.DeleteCategory("dl-manager"), &protected)
}

// TestAssignCategory tests assignment, clearing and validation
func (s *MediaServiceTestSuite) TestAssignCategory() {
	s.uploadText(s.svc, "x", "a.txt", "docs", s.admin)
	cat, err := s.svc.AddCategory("Reports")
	s.Require().NoError(err)

	s.NoError(s.svc.AssignCategory("docs/a.txt", cat.Slug))

	listing, err := s.svc.ListItems("docs")
	s.Require().NoError(err)
	s.Require().Len(listing.Files, 1)
	s.Equal("reports", listing.Files[0].Category)

	// Clearing with an empty slug
	s.NoError(s.svc.AssignCategory("docs/a.txt", ""))
	listing, err = s.svc.ListItems("docs")
	s.Require().NoError(err)
	s.Empty(listing.Files[0].Category)
}

// TestAssignCategoryValidation tests the failure modes
func (s *MediaServiceTestSuite) TestAssignCategoryValidation() {
	s.uploadText(s.svc, "x", "a.txt", "docs", s.admin)

	var notFound NotFoundError
	// Missing path
	s.ErrorAs(s.svc.AssignCategory("ghost.txt", "themes"), &notFound)
	// Undefined category
	s.ErrorAs(s.svc.AssignCategory("docs/a.txt", "undefined"), &notFound)

	// The root itself is not assignable
	var validation ValidationError
	s.ErrorAs(s.svc.AssignCategory("", "themes"), &validation)
}
