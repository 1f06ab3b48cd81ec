// Package osmpbf decodes OpenStreetMap PBF extracts into the nodes and
// ways relevant to hiking and cycling routing.
//
// This package handles:
// - Streaming the length-prefixed blob framing of a .osm.pbf buffer
// - Inflating zlib-compressed primitive blocks
// - Reconstructing delta-encoded dense nodes and way node references
// - Filtering ways through a hiking/cycling routability predicate
// - Pruning nodes that no kept way references
//
// The protobuf wire format is decoded by hand with field dispatch by tag
// number; there is no generated schema code. The decoder is strictly
// forward-only over an in-memory buffer the caller has already read.
//
// Structural damage (bad framing, unsupported compression) aborts a parse
// with a typed error. Malformed individual dense-node or way sub-blocks
// are skipped and reported as Issues on the Result, since real-world OSM
// extracts routinely contain some noise.
package osmpbf
