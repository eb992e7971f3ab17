// Package pageblocks extracts structured content from fetched HTML pages.
// It walks parsed markup nodes in document order and converts them into
// an ordered sequence of typed content blocks (text, image, link) for
// ingestion into a downstream document pipeline.
//
// This package contains domain types, interfaces, and the pure extraction
// rules, following Ben Johnson's Standard Package Layout. Implementations
// live in subdirectories named after their primary dependency (e.g.,
// goquery/, http/, sqlite/, fs/).
package pageblocks
