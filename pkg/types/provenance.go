package types

// Provenance tracks where searched content came from.
type Provenance interface {
	Kind() string
	// Path returns displayable path (if applicable)
	Path() string
}

// FileProvenance for filesystem files.
type FileProvenance struct {
	FilePath string
}

// Kind returns "file".
func (f FileProvenance) Kind() string {
	return "file"
}

// Path returns the file path.
func (f FileProvenance) Path() string {
	return f.FilePath
}

// StdinProvenance for content read from standard input.
type StdinProvenance struct{}

// Kind returns "stdin".
func (StdinProvenance) Kind() string {
	return "stdin"
}

// Path returns the conventional grep label for standard input.
func (StdinProvenance) Path() string {
	return "(standard input)"
}

// GitProvenance for files read from a git revision.
type GitProvenance struct {
	RepoPath string
	Revision string
	CommitID string
	BlobPath string // path within repo at commit
}

// Kind returns "git".
func (g GitProvenance) Kind() string {
	return "git"
}

// Path returns revision:path, the form git grep prints.
func (g GitProvenance) Path() string {
	return g.Revision + ":" + g.BlobPath
}

// LanguageHint returns the path inside the repository.
func (g GitProvenance) LanguageHint() string {
	return g.BlobPath
}
