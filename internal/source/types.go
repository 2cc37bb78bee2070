package source

type (
	// FileID identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes how a file reached the FileSet.
	FileFlags uint8
)

const (
	// FileVirtual marks content that did not come from disk (stdin, tests, `infer` argument).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File holds the content of one .swift file plus its line index.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // смещения всех '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based human readable position.
type LineCol struct {
	Line uint32
	Col  uint32
}
