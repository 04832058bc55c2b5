package types

import "fmt"

// ArchiveProvenance tracks content extracted from archives and documents.
type ArchiveProvenance struct {
	ArchivePath string // path to the archive file
	MemberPath  string // path within the archive (e.g., "src/main.go")
}

// Kind returns "archive".
func (a ArchiveProvenance) Kind() string {
	return "archive"
}

// Path returns the archive path with member path.
func (a ArchiveProvenance) Path() string {
	return fmt.Sprintf("%s!%s", a.ArchivePath, a.MemberPath)
}

// LanguageHint returns the name used for language resolution.
func (a ArchiveProvenance) LanguageHint() string {
	return a.MemberPath
}
