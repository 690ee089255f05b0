// Package source holds the small amount of file-identity state shared by
// the lexer, parser, and error reporter: a source's display name, its
// content, and its line index.
package source

import (
	"path/filepath"
	"strings"
)

// File represents one unit of input text together with the metadata
// needed to render a diagnostic against it.
type File struct {
	Name    string // display name, e.g. "<stdin>", "main.swift"
	Path    string // full path on disk, empty for non-file sources
	Content string
	lines   []string
}

// New creates a File with an explicit display name.
func New(name, path, content string) *File {
	return &File{Name: name, Path: path, Content: content}
}

// FromFile creates a File from a path on disk.
func FromFile(path, content string) *File {
	return &File{Name: filepath.Base(path), Path: path, Content: content}
}

// FromStdin creates a File using the fixed "<stdin>" name the external
// entry points are required to report in diagnostics.
func FromStdin(content string) *File {
	return &File{Name: "<stdin>", Content: content}
}

// Lines returns the source split into lines, computed lazily and cached.
func (f *File) Lines() []string {
	if f.lines == nil {
		f.lines = strings.Split(f.Content, "\n")
	}
	return f.lines
}

// DisplayPath prefers the on-disk path, falling back to the display name.
func (f *File) DisplayPath() string {
	if f.Path != "" {
		return f.Path
	}
	return f.Name
}
