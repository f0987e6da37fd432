// Package source infers the provenance of a profile from its accession.
package source

import (
	"strings"

	"github.com/tilmweber/antismash-hmm-meta/internal/model"
)

// Provenance labels derived from the accession prefix.
const (
	PFAM     = "PFAM"
	TIGRFAMS = "TIGRFAMS"
	Unknown  = "unknown"
)

// Infer sets the SOURCE entry on rec based on the ACC prefix: PFxxxxx
// accessions come from PFAM, TIGRxxxxx from TIGRFAMS, anything else
// (including a missing ACC) is unknown. Pure function of the accession;
// no other entry is touched.
func Infer(rec *model.Record) {
	acc := rec.GetDefault("ACC", "")
	switch {
	case strings.HasPrefix(acc, "PF"):
		rec.Set(model.KeySource, PFAM)
	case strings.HasPrefix(acc, "TIGR"):
		rec.Set(model.KeySource, TIGRFAMS)
	default:
		rec.Set(model.KeySource, Unknown)
	}
}
