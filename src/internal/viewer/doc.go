// Package viewer implements the certificate page slider: a cyclic index into
// a fixed list of page images with timed auto-advance.
//
// Auto-advance starts one second after the page has loaded and then moves to
// the next page every five seconds. The first user gesture (a navigation or a
// click on the image) switches it off for the rest of the session; automatic
// ticks never count as gestures.
package viewer
