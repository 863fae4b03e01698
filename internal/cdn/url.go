// Package cdn builds public CloudFront URLs for stored media objects.
//
// Playback and TTS audio are served through the CloudFront distribution in
// front of the media bucket rather than via presigned S3 URLs, so the edge
// cache can absorb repeat requests. URLs are plain string composition over
// the distribution domain; no signing and no existence check against S3.
package cdn

import "strings"

// Edge builds public URLs for a single CloudFront distribution domain.
type Edge struct {
	domain string
}

// NewEdge creates an Edge for the given distribution domain
// (e.g. "d3vid9stream.cloudfront.net", no scheme).
func NewEdge(domain string) Edge {
	return Edge{domain: strings.TrimSuffix(domain, "/")}
}

// Domain returns the configured distribution domain.
func (e Edge) Domain() string {
	return e.domain
}

// URL returns the public URL for an object key.
func (e Edge) URL(key string) string {
	return "https://" + e.domain + "/" + strings.TrimPrefix(key, "/")
}

// MovieURL returns the public URL for a movie's primary MP4 rendition.
func (e Edge) MovieURL(movieID string) string {
	return e.URL(movieID + ".mp4")
}
