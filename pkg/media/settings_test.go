package media

import "mediafs/pkg/models"

// TestSettingsDefaults tests the out-of-the-box policy
func (s *MediaServiceTestSuite) TestSettingsDefaults() {
	settings, err := s.svc.GetSettings()
	s.NoError(err)
	s.Equal(int64(64<<20), settings.MaxUploadSize)
	s.Equal(2560, settings.MaxWidth)
	s.Equal(2560, settings.MaxHeight)
	s.True(settings.AutoWebp)
	s.True(settings.StripExif)
	s.True(settings.OrganizeMonthYear)
	s.False(settings.MemberUploadsEnabled)
	s.ElementsMatch([]string{"image", "document", "video", "audio", "archive"}, settings.AllowedTypes)
}

// TestSaveSettingsRoundTrip tests persistence through the service
func (s *MediaServiceTestSuite) TestSaveSettingsRoundTrip() {
	settings := s.svc.Settings()
	settings.MaxUploadSize = 8 << 20
	settings.AutoWebp = false
	settings.AllowedTypes = []string{"image", "svg"}

	s.NoError(s.svc.SaveSettings(settings))

	loaded, err := s.svc.GetSettings()
	s.NoError(err)
	s.Equal(int64(8<<20), loaded.MaxUploadSize)
	s.False(loaded.AutoWebp)
	s.ElementsMatch([]string{"image", "svg"}, loaded.AllowedTypes)
}

// TestSaveSettingsValidation tests rejection of malformed documents
func (s *MediaServiceTestSuite) TestSaveSettingsValidation() {
	tests := []struct {
		name   string
		mutate func(*models.Settings)
	}{
		{"zero size", func(st *models.Settings) { st.MaxUploadSize = 0 }},
		{"negative size", func(st *models.Settings) { st.MaxUploadSize = -1 }},
		{"zero width", func(st *models.Settings) { st.MaxWidth = 0 }},
		{"zero height", func(st *models.Settings) { st.MaxHeight = 0 }},
		{"unknown group", func(st *models.Settings) { st.AllowedTypes = []string{"executable"} }},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			settings := models.DefaultSettings()
			tt.mutate(&settings)

			var validation ValidationError
			s.ErrorAs(s.svc.SaveSettings(settings), &validation)
		})
	}
}

// TestSaveSettingsEmptyAllowListLegal tests that locking uploads down to
// nothing is a valid configuration
func (s *MediaServiceTestSuite) TestSaveSettingsEmptyAllowListLegal() {
	settings := models.DefaultSettings()
	settings.AllowedTypes = []string{}

	s.NoError(s.svc.SaveSettings(settings))

	loaded, err := s.svc.GetSettings()
	s.NoError(err)
	s.Empty(loaded.AllowedTypes)
	s.False(loaded.TypeAllowed("image"))
}

// TestSaveSettingsRequiresPrivilege tests that a member service cannot
// change policy even when member uploads are on
func (s *MediaServiceTestSuite) TestSaveSettingsRequiresPrivilege() {
	settings := models.DefaultSettings()
	settings.MemberUploadsEnabled = true
	s.Require().NoError(s.svc.SaveSettings(settings))

	member := s.memberService(models.Identity{ID: 7, Username: "bob", Name: "Bob"}, Options{})

	var permission PermissionError
	s.ErrorAs(member.SaveSettings(settings), &permission)
}
