package models

// Category is an admin-defined tag applicable to files and folders, stored
// independently of the filesystem. System categories mirror the protected
// top-level folders and cannot be deleted.
type Category struct {
	Slug   string `json:"slug"`
	Name   string `json:"name"`
	System bool   `json:"is_system"`
}

// PathMeta is the metadata overlay row for one normalized relative path
// within a sandbox root.
type PathMeta struct {
	Category     string `json:"category,omitempty"`
	UploaderID   int64  `json:"uploader_id,omitempty"`
	UploaderName string `json:"uploaded_by,omitempty"`
}
