// Package hmm parses the line-oriented header section of HMMER profile
// files into annotation records.
package hmm

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/tilmweber/antismash-hmm-meta/internal/model"
)

// terminator ends the header section; the numeric model body after it is
// never read.
const terminator = "//"

// versionPrefix is the literal every profile version token must start with.
const versionPrefix = "HMMER"

// FormatError reports a profile file whose header violates the expected
// line format. It aborts the whole run unless skip-errors is configured.
type FormatError struct {
	File   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s", e.File, e.Reason)
}

// Parse reads the header of the profile file name inside dir and returns
// its annotation record. The record always carries the directory and file
// name; the HMMER version token and any allow-listed key/value lines follow
// in file order. Unknown keys are dropped silently. A first line that is
// empty or an immediate terminator is tolerated (truncated or otherwise
// unusual files), but a non-empty first line must carry the version prefix
// and every header line must split into a key and a value.
func Parse(fs afero.Fs, dir, name string) (*model.Record, error) {
	path := filepath.Join(dir, name)
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profile: %w", err)
	}
	defer f.Close()

	rec := model.NewRecord()
	rec.Set(model.KeyDirectory, dir)
	rec.Set(model.KeyFile, name)

	scanner := bufio.NewScanner(f)

	// Version line. Some distributed profile collections contain stray or
	// truncated files, so an empty first line skips detection instead of
	// failing.
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return rec, nil
	}
	line := strings.TrimRight(scanner.Text(), " \t\r")
	switch line {
	case "":
		// no version line, fall through to the key/value section
	case terminator:
		// empty header, nothing to parse
		return rec, nil
	default:
		version, _, ok := splitKeyValue(line)
		if !ok {
			return nil, &FormatError{File: path, Reason: "version line does not split into token and remainder"}
		}
		if !strings.HasPrefix(version, versionPrefix) {
			return nil, &FormatError{File: path, Reason: "does not start with HMMER version header line"}
		}
		rec.Set(model.KeyVersion, version)
	}

	// Key/value lines until the terminator or end of input. Absence of the
	// terminator is not an error: the header simply ends with the file.
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == terminator {
			break
		}
		key, value, ok := splitKeyValue(line)
		if !ok {
			return nil, &FormatError{File: path, Reason: fmt.Sprintf("header line %q does not split into key and value", line)}
		}
		if Allowed(key) {
			rec.Set(key, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return rec, nil
}

// splitKeyValue splits a header line at its first whitespace run into a key
// token and the remainder of the line. The remainder may itself contain
// whitespace (DESC values usually do).
func splitKeyValue(line string) (key, value string, ok bool) {
	line = strings.TrimLeft(line, " \t")
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return "", "", false
	}
	return line[:i], strings.TrimLeft(line[i:], " \t"), true
}
