package media

// TestDiskUsage tests byte and file accounting over the sandbox
func (s *MediaServiceTestSuite) TestDiskUsage() {
	empty, err := s.svc.DiskUsage()
	s.NoError(err)
	s.Zero(empty.Bytes)
	s.Zero(empty.Files)

	s.uploadText(s.svc, "12345", "a.txt", "docs", s.admin)
	s.uploadText(s.svc, "123", "b.txt", "docs/sub", s.admin)

	usage, err := s.svc.DiskUsage()
	s.NoError(err)
	s.Equal(int64(8), usage.Bytes)
	s.Equal(int64(2), usage.Files)
	s.Equal("8 B", usage.Formatted)
}
