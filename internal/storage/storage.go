package storage

import "context"

// ObjectStorage is the minimal surface used to archive uploaded
// spreadsheets for audit.
type ObjectStorage interface {
	UploadObject(ctx context.Context, key string, data []byte) error
}

// Noop discards uploads; used when archiving is disabled.
type Noop struct{}

func (Noop) UploadObject(ctx context.Context, key string, data []byte) error {
	return nil
}
