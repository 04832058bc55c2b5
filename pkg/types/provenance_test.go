package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProvenancePaths(t *testing.T) {
	tests := []struct {
		name     string
		prov     Provenance
		wantKind string
		wantPath string
	}{
		{"file", FileProvenance{FilePath: "src/a.go"}, "file", "src/a.go"},
		{"stdin", StdinProvenance{}, "stdin", "(standard input)"},
		{"git", GitProvenance{Revision: "HEAD", BlobPath: "main.c"}, "git", "HEAD:main.c"},
		{"archive", ArchiveProvenance{ArchivePath: "x.zip", MemberPath: "lib/a.py"}, "archive", "x.zip!lib/a.py"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantKind, tt.prov.Kind())
			assert.Equal(t, tt.wantPath, tt.prov.Path())
		})
	}
}
