// Package storage provides key-addressed blob storage for uploaded documents.
// It defines a System interface with a filesystem implementation for development
// and single-node deployments and an S3 implementation for shared object stores.
package storage

import "errors"

// Storage errors returned by System implementations.
var (
	// ErrNotFound indicates the requested key does not exist in storage.
	ErrNotFound = errors.New("storage: key not found")

	// ErrPermissionDenied indicates insufficient permissions to access the key.
	ErrPermissionDenied = errors.New("storage: permission denied")

	// ErrInvalidKey indicates the key is empty or attempts path traversal.
	ErrInvalidKey = errors.New("storage: invalid key")
)
