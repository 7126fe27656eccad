package models

// NodeKind distinguishes folders from files in a listing.
type NodeKind string

const (
	KindFolder NodeKind = "folder"
	KindFile   NodeKind = "file"
)

// Node represents one filesystem entry returned in a listing. Nodes are
// computed per request by merging a directory scan with the metadata overlay;
// they are never persisted.
type Node struct {
	Name         string   `json:"name"`
	Path         string   `json:"path"`
	Kind         NodeKind `json:"kind"`
	Size         int64    `json:"size,omitempty"`
	Extension    string   `json:"extension,omitempty"`
	MimeType     string   `json:"mime_type,omitempty"`
	Modified     int64    `json:"modified"`
	Category     string   `json:"category,omitempty"`
	UploaderID   int64    `json:"uploader_id,omitempty"`
	UploaderName string   `json:"uploaded_by,omitempty"`
	IsSystem     bool     `json:"is_system"`
	ItemCount    int      `json:"items_count,omitempty"`
}

// Listing is the result of a list operation: immediate children only,
// folders and files kept in separate ordered collections.
type Listing struct {
	Folders []Node `json:"folders"`
	Files   []Node `json:"files"`
}

// DiskUsage summarizes the space consumed under one sandbox root.
type DiskUsage struct {
	Bytes     int64  `json:"size"`
	Files     int64  `json:"count"`
	Formatted string `json:"formatted"`
}
