// Package citation defines the contract between the citation panel and a
// bibliography engine: the supported output styles, the opaque record handle
// returned by resolution, and the sentinel errors for each failure.
//
// Any implementation of Service (the DOI engine in package doi, or a stub in
// tests) can be substituted without changing the panel.
package citation
