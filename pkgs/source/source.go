// Package source loads knave source files into memory for scanning.
package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	knaveerrors "github.com/opal-lang/knave/pkgs/errors"
)

// Extension is the file name suffix of knave source files
const Extension = ".knv"

// Buffer is a whole source file held in memory. Data is never modified after Load.
type Buffer struct {
	Path string
	Data []byte
}

// Len returns the size of the buffer in bytes
func (b *Buffer) Len() int {
	return len(b.Data)
}

// ValidateExtension checks that path names a knave source file. The
// comparison is exact and case-sensitive.
func ValidateExtension(path string) error {
	ext := filepath.Ext(path)
	if ext == Extension {
		return nil
	}

	err := knaveerrors.NewExtensionError(path, Extension)
	if suggestion := suggestPath(path, ext); suggestion != "" {
		err = err.WithHint(fmt.Sprintf("did you mean %s?", suggestion))
	}
	return err
}

// suggestPath proposes path with the knave extension when ext looks like a
// misspelling of it.
func suggestPath(path, ext string) string {
	if len(ext) < 2 {
		return ""
	}
	ranks := fuzzy.RankFindFold(ext, []string{Extension})
	if len(ranks) == 0 {
		// "knv" inside a longer extension such as ".knave" reads the other way round.
		ranks = fuzzy.RankFindFold(Extension, []string{ext})
	}
	if len(ranks) == 0 {
		return ""
	}
	return strings.TrimSuffix(path, ext) + Extension
}

// Load reads the entire file at path in a single read. Files that cannot be
// opened, sized or read, and empty files, are input errors.
func Load(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, knaveerrors.NewInputError(path, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, knaveerrors.NewInputError(path, err)
	}
	if info.IsDir() {
		return nil, knaveerrors.NewInputError(path, fmt.Errorf("is a directory"))
	}

	size := info.Size()
	if size == 0 {
		return nil, knaveerrors.NewEmptyInputError(path)
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, knaveerrors.NewInputError(path, err)
	}

	return &Buffer{Path: path, Data: data}, nil
}
