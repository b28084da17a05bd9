// Package pagedata recovers embedded application data from web pages and
// searches it. A page is captured as its markup plus the global bindings
// its scripts left behind; extractors turn both into one aggregated
// document of hydration state, JSON-LD, microdata, RDFa, meta tags and
// known framework state; Search then finds substrings anywhere in that
// document and reports the exact path of every match.
//
// This package contains the domain types, interfaces and the pure traversal
// algorithms, following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., goquery/, goja/, rod/).
package pagedata
