package main

import (
	"fmt"
	"strings"
	"time"

	"context"

	"dagger/inkwell/internal/dagger"
)

// Build and return directory of go binaries.
// The CLI links go-sqlite3, so builds need CGO and a cross gcc per
// architecture rather than the usual CGO_ENABLED=0 matrix.
func (t *Inkwell) Build(
	ctx context.Context,

	// Linker flags for go build
	// +optional
	// +default="-s -w"
	ldflags string,
) *dagger.Directory {
	// define build matrix
	goarches := map[string]string{
		"amd64": "x86-64-linux-gnu-gcc",
		"arm64": "aarch64-linux-gnu-gcc",
	}

	// create empty directory to put build artifacts
	outputs := dag.Directory()

	golang := t.goContainer().
		WithExec([]string{"apt-get", "install", "-y", "gcc-aarch64-linux-gnu", "gcc-x86-64-linux-gnu"})

	for goarch, cc := range goarches {
		// create directory for each architecture
		path := fmt.Sprintf("linux/%s/", goarch)

		// build artifact
		build := golang.
			WithEnvVariable("GOOS", "linux").
			WithEnvVariable("GOARCH", goarch).
			WithEnvVariable("CC", cc).
			WithExec([]string{"go", "build", "-ldflags", ldflags, "-o", path, "./cli/inkwell"})

		// add build to outputs
		outputs = outputs.WithDirectory(path, build.Directory(path))
	}

	// return build directory
	return outputs
}

// BuildRelease compiles versioned release binaries with embedded version info
func (t *Inkwell) BuildRelease(
	ctx context.Context,

	// Version string of build
	version string,

	// Git commit SHA of build
	commit string,
) *dagger.Directory {
	buildtime := time.Now()

	ldflags := []string{
		"-s",
		"-w",
		fmt.Sprintf("-X 'github.com/inkwellhq/inkwell/pkg/utils.Version=%s'", version),
		fmt.Sprintf("-X 'github.com/inkwellhq/inkwell/pkg/utils.Sha=%s'", commit),
		fmt.Sprintf("-X 'github.com/inkwellhq/inkwell/pkg/utils.Buildtime=%s'", buildtime),
	}

	return t.Build(ctx, strings.Join(ldflags, " "))
}
