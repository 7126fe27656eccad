package media

import (
	"mediafs/pkg/media/filetype"
	"mediafs/pkg/models"
)

// GetSettings returns the persisted settings document.
func (s *Service) GetSettings() (models.Settings, error) {
	settings, err := s.store.Settings()
	if err != nil {
		s.logger.Error().Err(err).Msg("Settings load failed")
		return models.Settings{}, StorageError{Op: "load settings", Err: err}
	}
	return settings, nil
}

// SaveSettings validates and persists the settings document. Only a
// privileged service may save; an empty allow-list is legal and means
// nothing is permitted.
func (s *Service) SaveSettings(settings models.Settings) error {
	if !s.privileged {
		return PermissionError{Operation: "save_settings"}
	}

	if settings.MaxUploadSize <= 0 {
		return ValidationError{Reason: "max upload size must be positive"}
	}
	if settings.MaxWidth <= 0 || settings.MaxHeight <= 0 {
		return ValidationError{Reason: "image dimensions must be positive"}
	}
	known := make(map[string]bool)
	for _, group := range filetype.KnownTypeGroups() {
		known[group] = true
	}
	for _, group := range settings.AllowedTypes {
		if !known[group] {
			return ValidationError{Reason: "unknown type group: " + group}
		}
	}

	if err := s.store.SaveSettings(settings); err != nil {
		s.logger.Error().Err(err).Msg("Settings save failed")
		return StorageError{Op: "save settings", Err: err}
	}

	s.logger.Info().Msg("Settings saved")
	return nil
}
