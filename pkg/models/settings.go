package models

const defaultMaxUploadSize = 64 << 20 // 64 MiB

// Settings is the engine-wide media configuration. A single row persists in
// the metadata store; it is read once per service construction and mutated
// only through an explicit save.
type Settings struct {
	MaxUploadSize        int64    `json:"max_upload_size"`
	AllowedTypes         []string `json:"allowed_types"`
	AutoWebp             bool     `json:"auto_webp"`
	StripExif            bool     `json:"strip_exif"`
	MaxWidth             int      `json:"max_width"`
	MaxHeight            int      `json:"max_height"`
	OrganizeMonthYear    bool     `json:"organize_month_year"`
	MemberUploadsEnabled bool     `json:"member_uploads_enabled"`
}

// DefaultSettings returns the configuration used until an administrator
// saves one explicitly.
func DefaultSettings() Settings {
	return Settings{
		MaxUploadSize:        defaultMaxUploadSize,
		AllowedTypes:         []string{"image", "document", "video", "audio", "archive"},
		AutoWebp:             true,
		StripExif:            true,
		MaxWidth:             2560,
		MaxHeight:            2560,
		OrganizeMonthYear:    true,
		MemberUploadsEnabled: false,
	}
}

// TypeAllowed reports whether the given type group is in the allow-list.
// An empty allow-list permits nothing.
func (s Settings) TypeAllowed(group string) bool {
	for _, t := range s.AllowedTypes {
		if t == group {
			return true
		}
	}
	return false
}
