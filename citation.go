package faqrag

import "strings"

// DefaultCanonicalBucket is the bucket all citations are reported against.
const DefaultCanonicalBucket = "rag-test2"

const gsScheme = "gs://"

// NormalizeCitation rewrites a stored source URI into its canonical form:
// the bare filename after the last path separator, prefixed with the fixed
// reporting bucket. The filename is taken as-is, without URL decoding or
// re-encoding; a URI with no separator is itself the filename. The function
// is idempotent over already-canonical URIs.
func NormalizeCitation(bucket, rawURI string) string {
	filename := rawURI
	if i := strings.LastIndex(rawURI, "/"); i >= 0 {
		filename = rawURI[i+1:]
	}

	return gsScheme + bucket + "/" + filename
}
