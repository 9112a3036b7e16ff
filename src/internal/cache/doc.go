// Package cache persists resolved CSL documents in a SQLite database so a
// certificate page opened again does not hit the DOI resolver.
//
// Entries are keyed by lower-cased DOI (DOIs are case-insensitive) and expire
// after the configured TTL; expired rows are ignored on read and replaced on
// the next write.
package cache
