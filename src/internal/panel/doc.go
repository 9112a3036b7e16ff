// Package panel drives the certificate citation panel: it reads the page
// metadata, resolves the report identifier through a citation.Service, and
// keeps one rendered citation per selected style that can be copied to the
// clipboard.
//
// A Controller is created once per page load. Load runs at most once and
// moves the panel from Idle to Hidden, Error or Ready, passing through Loading
// only while the identifier is resolved; Hidden and Error are terminal. Style changes and copies only act in Ready.
package panel
