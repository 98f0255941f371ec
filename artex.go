// Package artex extracts clean, structured articles from news pages.
// Given the raw markup of an arbitrary news page it resolves the title,
// body, excerpt, featured image, gallery images, and embedded videos,
// stripping ads, trackers, and related-content widgets along the way.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, trafilatura/).
package artex
