// Package blobref recovers blob names from previously issued signed URLs.
package blobref

import "regexp"

// blobNamePattern matches the path segment sitting right before the query
// string of a signed URL.
var blobNamePattern = regexp.MustCompile(`/([^/]+)\?`)

// Decode returns the blob name embedded in a signed URL produced by this
// service. It is not a general URL parser: only the first segment that is
// followed by a '?' is considered.
func Decode(signedURL string) (string, bool) {
	match := blobNamePattern.FindStringSubmatch(signedURL)
	if match == nil {
		return "", false
	}

	return match[1], true
}
