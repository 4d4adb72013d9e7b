// Package artwork locates and downloads per-episode artwork.
//
// Artwork lives in a flat directory as <number><ext>. A missing image is never
// an error for the documents: the Store simply reports it absent. The Fetcher
// fills the directory from a URL template with a single attempt per episode.
package artwork
