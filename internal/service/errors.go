package service

import "fmt"

// NotFoundError reports a folder or file missing from Drive. It aborts the
// run: a missing asset on posting day is an operator error.
type NotFoundError struct {
	Kind string // "folder" or "file"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("drive: %s %q not found", e.Kind, e.Name)
}

// IntegrityError reports a downloaded file whose size or checksum does not
// match the Drive metadata. The partial file has already been removed.
type IntegrityError struct {
	Path   string
	Reason string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("download of %s is corrupt: %s", e.Path, e.Reason)
}
