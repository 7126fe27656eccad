package filetype

import "strings"

// Type groups recognized by the upload policy and the listing classifier.
const (
	TypeImage    = "image"
	TypeVideo    = "video"
	TypeAudio    = "audio"
	TypeDocument = "document"
	TypeArchive  = "archive"
	TypeSvg      = "svg"
	TypeFont     = "font"
	TypePlugin   = "plugin"
	TypeTheme    = "theme"
	TypeOther    = "other"
)

// typeGroups maps each policy group to its extensions.
var typeGroups = map[string][]string{
	TypeImage:    {"jpg", "jpeg", "png", "gif", "webp", "bmp", "ico"},
	TypeVideo:    {"mp4", "webm", "ogg", "mov", "avi", "mkv"},
	TypeAudio:    {"mp3", "wav", "aac", "flac", "m4a"},
	TypeDocument: {"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "txt", "rtf", "csv"},
	TypeArchive:  {"zip", "rar", "7z", "tar", "gz"},
	TypeSvg:      {"svg"},
	TypeFont:     {"ttf", "otf", "woff", "woff2", "eot"},
	TypePlugin:   {"zip"},
	TypeTheme:    {"zip"},
}

// classifyOrder fixes which group wins for listings when an extension
// belongs to several groups (zip is archive first).
var classifyOrder = []string{
	TypeImage, TypeVideo, TypeAudio, TypeDocument, TypeArchive,
	TypeSvg, TypeFont, TypePlugin, TypeTheme,
}

// KnownTypeGroups returns the group names accepted in a settings allow-list.
func KnownTypeGroups() []string {
	groups := make([]string, 0, len(classifyOrder))
	groups = append(groups, classifyOrder...)
	return groups
}

// Extension returns the lowercase extension of a filename, without the dot.
func Extension(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}

// Classify maps an extension to its listing type group.
func Classify(ext string) string {
	for _, group := range classifyOrder {
		for _, e := range typeGroups[group] {
			if e == ext {
				return group
			}
		}
	}
	return TypeOther
}

// GroupsFor returns every policy group an extension belongs to.
func GroupsFor(ext string) []string {
	var groups []string
	for _, group := range classifyOrder {
		for _, e := range typeGroups[group] {
			if e == ext {
				groups = append(groups, group)
			}
		}
	}
	return groups
}
