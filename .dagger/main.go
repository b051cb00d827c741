// Memcon CI/CD
//
// Package main provides reproducible builds and tests locally and in GitHub actions.
// It is the main harness for handling nearly all dev operations.
package main

import (
	"context"

	"dagger/memcon/internal/dagger"
)

// Memcon is the main module for the Memcon CI/CD pipeline
type Memcon struct {
	// Project source directory
	//
	// +private
	Source *dagger.Directory
}

// New creates a new Memcon CI/CD module instance
func New(
	// Project source directory.
	//
	// +defaultPath="/"
	// +ignore=[".git", ".direnv", ".devenv", "build", "tmp"]
	source *dagger.Directory,
) *Memcon {
	return &Memcon{
		Source: source,
	}
}

// goContainer returns a Go container with the module caches mounted and the
// project source in place. It is the shared foundation for tests, builds,
// and linting.
func (m *Memcon) goContainer() *dagger.Container {
	return dag.Container().
		From("golang:1.25-alpine").
		WithEnvVariable("CGO_ENABLED", "0").
		WithEnvVariable("PATH", "/go/bin:$PATH", dagger.ContainerWithEnvVariableOpts{Expand: true}).
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("go-mod")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("go-build")).
		WithWorkdir("/src").
		WithDirectory("/src", m.Source)
}

// Test runs the memcon unit tests via "go test"
func (m *Memcon) Test(ctx context.Context) (string, error) {
	return m.goContainer().
		WithExec([]string{"go", "test", "-v", "./..."}).
		Stdout(ctx)
}
