package media

// NotFoundError is returned when the requested path does not exist.
type NotFoundError struct {
	Path string
}

func (e NotFoundError) Error() string {
	return "item not found"
}

// ConflictError is returned when a name collides with an existing entry.
type ConflictError struct {
	Path string
}

func (e ConflictError) Error() string {
	return "an entry with this name already exists"
}

// ProtectedPathError is returned for delete/rename attempts on system paths.
type ProtectedPathError struct {
	Path string
}

func (e ProtectedPathError) Error() string {
	return "system path cannot be modified"
}

// ValidationError is returned for malformed input.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

// PermissionError is returned when sandbox policy denies the operation.
type PermissionError struct {
	Operation string
}

func (e PermissionError) Error() string {
	return "operation not permitted"
}

// StorageError wraps unexpected low-level failures. The underlying error is
// logged at the point of wrapping; its text never reaches a caller, so raw
// OS messages cannot leak absolute paths.
type StorageError struct {
	Op  string
	Err error
}

func (e StorageError) Error() string {
	return "storage operation failed"
}

func (e StorageError) Unwrap() error {
	return e.Err
}
