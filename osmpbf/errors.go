package osmpbf

import "errors"

// Structural errors abort the whole parse. Local malformations inside a
// primitive group are reported as Issues on the Result instead.
var (
	ErrTruncated              = errors.New("osmpbf: truncated input")
	ErrVarintOverflow         = errors.New("osmpbf: varint exceeds 10 bytes")
	ErrWireType               = errors.New("osmpbf: unsupported wire type")
	ErrMalformedHeader        = errors.New("osmpbf: malformed blob header")
	ErrUnsupportedCompression = errors.New("osmpbf: unsupported blob compression")
	ErrDecompress             = errors.New("osmpbf: blob decompression failed")
)

// IssueKind classifies a recoverable malformation.
type IssueKind int

const (
	// IssueDenseArrayMismatch means the id/lat/lon arrays of a DenseNodes
	// message had different lengths; the whole dense block was skipped.
	IssueDenseArrayMismatch IssueKind = iota
	// IssueStringIndex means a tag referenced a string-table entry out of
	// bounds; the offending node or way was skipped.
	IssueStringIndex
	// IssueMalformedGroup means a primitive group or block failed to
	// decode; the group was skipped.
	IssueMalformedGroup
)

func (k IssueKind) String() string {
	switch k {
	case IssueDenseArrayMismatch:
		return "dense-array-mismatch"
	case IssueStringIndex:
		return "string-index-out-of-bounds"
	case IssueMalformedGroup:
		return "malformed-group"
	}
	return "unknown"
}

// Issue records one recoverable malformation encountered during a parse.
// Issues never abort the parse; callers may inspect them for diagnostics.
type Issue struct {
	Kind      IssueKind
	BlobIndex int
	Detail    string
}
