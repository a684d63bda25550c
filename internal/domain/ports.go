package domain

import "context"

// FileSystemPort defines the interface for file and directory operations.
type FileSystemPort interface {
	MkdirAll(path string) error
	WriteFile(path string, data []byte) error
	Exists(path string) bool
}

// RegistryPort looks up the latest published version of a package. Used by
// the dependency collector's best-effort "resolve latest" mode.
type RegistryPort interface {
	LatestVersion(ctx context.Context, pkg string) (string, error)
}

// ContainerPort manages the lifecycle of the local database container.
type ContainerPort interface {
	// WaitReady starts the container and blocks until its healthcheck
	// passes.
	WaitReady(ctx context.Context, composePath string) error
	Stop(ctx context.Context, composePath string) error
}

// ToolPort checks for required command-line tools on the host.
type ToolPort interface {
	Available(tool string) bool
}
