package pipeline

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/tilmweber/antismash-hmm-meta/internal/hmm"
	"github.com/tilmweber/antismash-hmm-meta/internal/model"
)

func newTestPipeline(fs afero.Fs, cfg *model.Config) (*Pipeline, *bytes.Buffer, *bytes.Buffer) {
	p := NewPipeline(fs, cfg)
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	p.Out = out
	p.ErrOut = errOut
	return p, out, errOut
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

const profileA = `HMMER3/f [3.1b2 | February 2015]
NAME  ProteinX
ACC   PF00123
//
`

const profileB = `HMMER3/f [3.1b2 | February 2015]
NAME  ProteinY
ACC   TIGR00045
//
`

func TestRun_ProcessesMatchingFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "tree/models/a.hmm", profileA)
	writeFile(t, fs, "tree/models/notes.txt", "not a profile\n")
	writeFile(t, fs, "tree/models/a.HMM", profileA) // glob is case-sensitive

	p, out, _ := newTestPipeline(fs, model.DefaultConfig())
	if err := p.Run("tree"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Exactly one progress line: notes.txt never matches and the glob is
	// case-sensitive, so a.HMM is passed over.
	if n := strings.Count(out.String(), "Directory: tree/models"); n != 1 {
		t.Errorf("Expected one progress line for tree/models, got %d in %q", n, out.String())
	}

	tab, err := afero.ReadFile(fs, "tree/models/hmm-meta-tab.txt")
	if err != nil {
		t.Fatalf("Expected tabular output, got %v", err)
	}
	if !bytes.Contains(tab, []byte("ProteinX")) || !bytes.Contains(tab, []byte("PFAM")) {
		t.Errorf("Unexpected table contents: %q", tab)
	}

	js, err := afero.ReadFile(fs, "tree/models/hmm-meta.json")
	if err != nil {
		t.Fatalf("Expected JSON output, got %v", err)
	}
	if !bytes.Contains(js, []byte(`"SOURCE":"PFAM"`)) {
		t.Errorf("Unexpected JSON contents: %q", js)
	}
}

func TestRun_LastFileWinsPerDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "tree/models/a.hmm", profileA)
	writeFile(t, fs, "tree/models/b.hmm", profileB)

	p, _, _ := newTestPipeline(fs, model.DefaultConfig())
	if err := p.Run("tree"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// The walk yields a.hmm before b.hmm, so b.hmm's metadata overwrites
	// a.hmm's in both fixed-named outputs.
	tab, _ := afero.ReadFile(fs, "tree/models/hmm-meta-tab.txt")
	if !bytes.Contains(tab, []byte("TIGRFAMS")) || bytes.Contains(tab, []byte("ProteinX")) {
		t.Errorf("Expected only b.hmm's data, got %q", tab)
	}
	js, _ := afero.ReadFile(fs, "tree/models/hmm-meta.json")
	if !bytes.Contains(js, []byte(`"ACC":"TIGR00045"`)) {
		t.Errorf("Expected only b.hmm's data, got %q", js)
	}
}

func TestRun_ExcludesDataSubtree(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "tree/models/a.hmm", profileA)
	writeFile(t, fs, "tree/data/skip.hmm", profileA)
	writeFile(t, fs, "tree/models/data/nested/deep.hmm", profileA)

	p, out, _ := newTestPipeline(fs, model.DefaultConfig())
	if err := p.Run("tree"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for _, path := range []string{
		"tree/data/hmm-meta-tab.txt",
		"tree/models/data/nested/hmm-meta-tab.txt",
	} {
		if ok, _ := afero.Exists(fs, path); ok {
			t.Errorf("Expected no output under an excluded data directory: %s", path)
		}
	}
	if strings.Contains(out.String(), "data") {
		t.Errorf("Expected no progress lines for excluded directories, got %q", out.String())
	}
}

func TestRun_HaltsOnFormatError(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "tree/bad/broken.hmm", "FOOBAR 1.0\nNAME  X\n//\n")

	p, _, _ := newTestPipeline(fs, model.DefaultConfig())
	err := p.Run("tree")

	var ferr *hmm.FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("Expected FormatError, got %v", err)
	}
	if ok, _ := afero.Exists(fs, "tree/bad/hmm-meta-tab.txt"); ok {
		t.Error("Expected no output for the failing file's directory")
	}
}

func TestRun_SkipErrorsContinues(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "tree/a/broken.hmm", "FOOBAR 1.0\nNAME  X\n//\n")
	writeFile(t, fs, "tree/b/good.hmm", profileB)

	cfg := model.DefaultConfig()
	cfg.Scan.SkipErrors = true

	p, _, errOut := newTestPipeline(fs, cfg)
	if err := p.Run("tree"); err != nil {
		t.Fatalf("Expected no error with skip-errors, got %v", err)
	}

	if !strings.Contains(errOut.String(), "broken.hmm") {
		t.Errorf("Expected a skip diagnostic naming the file, got %q", errOut.String())
	}
	if ok, _ := afero.Exists(fs, "tree/b/hmm-meta-tab.txt"); !ok {
		t.Error("Expected the walk to continue past the failing file")
	}
}

func TestRun_Idempotent(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "tree/models/a.hmm", profileA)
	writeFile(t, fs, "tree/other/b.hmm", profileB)

	p, _, _ := newTestPipeline(fs, model.DefaultConfig())
	if err := p.Run("tree"); err != nil {
		t.Fatal(err)
	}
	firstTab, _ := afero.ReadFile(fs, "tree/models/hmm-meta-tab.txt")
	firstJSON, _ := afero.ReadFile(fs, "tree/other/hmm-meta.json")

	if err := p.Run("tree"); err != nil {
		t.Fatal(err)
	}
	secondTab, _ := afero.ReadFile(fs, "tree/models/hmm-meta-tab.txt")
	secondJSON, _ := afero.ReadFile(fs, "tree/other/hmm-meta.json")

	if !bytes.Equal(firstTab, secondTab) || !bytes.Equal(firstJSON, secondJSON) {
		t.Error("Expected byte-identical outputs across re-runs on an unchanged tree")
	}
}

func TestRun_CustomOutputNames(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "tree/m/a.hmm", profileA)

	cfg := model.DefaultConfig()
	cfg.Output.TableName = "meta.tsv"
	cfg.Output.JSONName = "meta.json"

	p, _, _ := newTestPipeline(fs, cfg)
	if err := p.Run("tree"); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{"tree/m/meta.tsv", "tree/m/meta.json"} {
		if ok, _ := afero.Exists(fs, path); !ok {
			t.Errorf("Expected output at %s", path)
		}
	}
}
