package hmm

// Allow-list of single-line header annotations. Multi-line sections of the
// format (COM, STATS, HMM, COMPO) are deliberately absent: the parser never
// reads past the header terminator and treats everything else as opaque.
var keywords = map[string]struct{}{
	"HMMER": {},
	"NAME":  {},
	"ACC":   {},
	"DESC":  {},
	"LENG":  {},
	"MAXL":  {},
	"ALPH":  {},
	"RF":    {},
	"MM":    {},
	"CONS":  {},
	"CS":    {},
	"MAP":   {},
	"DATE":  {},
	"NSEQ":  {},
	"EFFN":  {},
	"CKSUM": {},
	"GA":    {},
	"TC":    {},
	"NC":    {},
}

// Allowed reports whether key is a recognized header annotation.
func Allowed(key string) bool {
	_, ok := keywords[key]
	return ok
}
