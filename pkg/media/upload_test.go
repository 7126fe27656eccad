package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mediafs/pkg/media/pipeline"
)

// TestUploadMonthYearDefault tests that an empty target path lands the file
// in the year/month folder
func (s *MediaServiceTestSuite) TestUploadMonthYearDefault() {
	stored := s.uploadText(s.svc, "hello", "notes.txt", "", s.admin)
	s.Equal("notes.txt", stored)

	now := time.Now()
	bucket := fmt.Sprintf("%d/%02d", now.Year(), int(now.Month()))

	_, err := os.Stat(filepath.Join(s.storageDir, bucket, "notes.txt"))
	s.NoError(err)

	listing, err := s.svc.ListItems(bucket)
	s.Require().NoError(err)
	s.Require().Len(listing.Files, 1)
	s.Equal(bucket+"/notes.txt", listing.Files[0].Path)
}

// TestUploadExplicitTarget tests that a target path overrides organization
func (s *MediaServiceTestSuite) TestUploadExplicitTarget() {
	s.uploadText(s.svc, "x", "f.txt", "docs/reports", s.admin)

	_, err := os.Stat(filepath.Join(s.storageDir, "docs", "reports", "f.txt"))
	s.NoError(err)
}

// TestUploadCollisionRenamed tests the numeric suffix on name collisions
func (s *MediaServiceTestSuite) TestUploadCollisionRenamed() {
	first := s.uploadText(s.svc, "one", "report.txt", "docs", s.admin)
	second := s.uploadText(s.svc, "two", "report.txt", "docs", s.admin)

	s.Equal("report.txt", first)
	s.Equal("report-1.txt", second)

	data, err := os.ReadFile(filepath.Join(s.storageDir, "docs", "report.txt"))
	s.NoError(err)
	s.Equal("one", string(data))
}

// TestUploadPolicyRejection tests that pipeline errors surface unchanged
func (s *MediaServiceTestSuite) TestUploadPolicyRejection() {
	_, err := s.svc.Upload(strings.NewReader("MZ"), "tool.exe", "docs", s.admin)
	var typeErr pipeline.UnsupportedTypeError
	s.ErrorAs(err, &typeErr)

	_, statErr := os.Stat(filepath.Join(s.storageDir, "docs", "tool.exe"))
	s.True(os.IsNotExist(statErr))
}

// TestUploadSpoolFailureWrapped tests that low-level I/O failures surface
// as storage errors, not raw OS errors
func (s *MediaServiceTestSuite) TestUploadSpoolFailureWrapped() {
	svc, err := NewService(s.storageDir, filepath.Join(s.baseDir, "missing-tmp"), s.store)
	s.Require().NoError(err)

	_, err = svc.Upload(strings.NewReader("x"), "f.txt", "docs", s.admin)
	var storageErr StorageError
	s.ErrorAs(err, &storageErr)
	s.NotNil(storageErr.Unwrap())
}

// TestUploadSizeLimitFromSettings tests that the persisted ceiling is
// enforced for services built after the change
func (s *MediaServiceTestSuite) TestUploadSizeLimitFromSettings() {
	settings := s.svc.Settings()
	settings.MaxUploadSize = 4
	s.Require().NoError(s.svc.SaveSettings(settings))

	svc, err := NewService(s.storageDir, s.tempDir, s.store)
	s.Require().NoError(err)

	_, err = svc.Upload(strings.NewReader("too big"), "f.txt", "docs", s.admin)
	var sizeErr pipeline.FileTooLargeError
	s.ErrorAs(err, &sizeErr)
	s.Equal(int64(4), sizeErr.Limit)
}
