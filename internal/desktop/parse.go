// Package desktop parses application descriptor files.
//
// Descriptors are line-oriented Key=Value text. Only Name, Exec, Icon,
// Comment and NoDisplay are recognized:
//
//   - Name, Exec and Icon keep their first occurrence.
//   - Comment keeps its last occurrence.
//   - NoDisplay=true anywhere in the file discards the whole file.
//
// Everything else, including lines without '=', is ignored. Section headers
// are not interpreted, so keys from every group in the file are considered.
package desktop

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// maxLineSize bounds a single descriptor line (1 MB).
const maxLineSize = 1 << 20

// ErrNotText is returned for files that are not valid UTF-8.
var ErrNotText = errors.New("not a text file")

// ParseError records a descriptor file that could not be read.
type ParseError struct {
	Op   string
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseFile reads and parses the descriptor at path. ok is false when the
// file yields no entry; err is non-nil only when the file could not be read.
func ParseFile(path string) (entry Entry, ok bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return Entry{}, false, &ParseError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	entry, ok, err = Parse(f)
	if err != nil {
		return Entry{}, false, &ParseError{Op: "read", Path: path, Err: err}
	}
	return entry, ok, nil
}

// Parse reads descriptor content from r and returns the entry it describes.
// ok is false if the content is hidden (NoDisplay=true) or sets none of the
// recognized fields.
func Parse(r io.Reader) (Entry, bool, error) {
	var e Entry

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	for scanner.Scan() {
		line := scanner.Text()
		if !utf8.ValidString(line) {
			return Entry{}, false, ErrNotText
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)

		switch key {
		case "Name":
			e.setOnce(FieldName, &e.Name, value)
		case "Exec":
			e.setOnce(FieldExec, &e.Exec, value)
		case "Icon":
			e.setOnce(FieldIcon, &e.Icon, value)
		case "Comment":
			e.Comment = value
			e.Set |= FieldComment
		case "NoDisplay":
			if value == "true" {
				return Entry{}, false, nil
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Entry{}, false, err
	}

	if e.Empty() {
		return Entry{}, false, nil
	}
	return e, true, nil
}

func (e *Entry) setOnce(f Field, dst *string, value string) {
	if e.Has(f) {
		return
	}
	*dst = value
	e.Set |= f
}
