// Package render writes the per-directory metadata summaries.
package render

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/tilmweber/antismash-hmm-meta/internal/model"
)

// Renderer persists annotation records into a directory's fixed-named
// summary files, overwriting whatever a previously processed file left
// there.
type Renderer struct {
	fs        afero.Fs
	tableName string
	jsonName  string
}

// NewRenderer creates a renderer writing through fs under the given
// output filenames.
func NewRenderer(fs afero.Fs, tableName, jsonName string) *Renderer {
	return &Renderer{
		fs:        fs,
		tableName: tableName,
		jsonName:  jsonName,
	}
}

// RenderTable writes the tabular summary into dir: one line of tab-joined
// keys, one line of tab-joined values, in the record's insertion order.
// Values are written verbatim; an embedded tab would desynchronize the
// columns, which the narrow header format never produces in practice.
func (r *Renderer) RenderTable(dir string, rec *model.Record) error {
	var b strings.Builder
	b.WriteString(strings.Join(rec.Keys(), "\t"))
	b.WriteByte('\n')
	b.WriteString(strings.Join(rec.Values(), "\t"))
	b.WriteByte('\n')

	path := filepath.Join(dir, r.tableName)
	if err := afero.WriteFile(r.fs, path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write table %s: %w", path, err)
	}
	return nil
}

// RenderJSON writes the record into dir as a single JSON object with keys
// in insertion order.
func (r *Renderer) RenderJSON(dir string, rec *model.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	path := filepath.Join(dir, r.jsonName)
	if err := afero.WriteFile(r.fs, path, data, 0644); err != nil {
		return fmt.Errorf("write JSON %s: %w", path, err)
	}
	return nil
}
