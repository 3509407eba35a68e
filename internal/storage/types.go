package storage

// Kind distinguishes files from folders in listings and trees.
type Kind string

const (
	KindFile   Kind = "file"
	KindFolder Kind = "folder"
)

// Entry is a file or folder discovered during a listing. Entries are
// ephemeral read projections; relative paths are POSIX-style and always
// relative to the storage root regardless of the listing base.
type Entry struct {
	Name         string `json:"name"`
	Kind         Kind   `json:"type"`
	RelativePath string `json:"relative_path"`
	Size         *int64 `json:"size"`
}

// TreeNode is an Entry with an ordered child sequence. Children is non-nil
// (possibly empty) for folders and nil for files.
type TreeNode struct {
	Entry
	Children []*TreeNode `json:"children"`
}
