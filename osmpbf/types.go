package osmpbf

// Node is a decoded OSM node. IDs are globally unique within a dataset but
// a bounding-box-filtered subset may reference IDs outside the box.
type Node struct {
	ID   int64             `json:"id"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags,omitempty"`
}

// Way is a decoded OSM way that passed the routability filter. NodeIDs is
// the ordered node-reference list; the order defines the way's geometry.
type Way struct {
	ID      int64             `json:"id"`
	NodeIDs []int64           `json:"nodeIds"`
	Tags    map[string]string `json:"tags,omitempty"`
}

// BoundingBox is an immutable spatial predicate in degrees.
// North >= South and East >= West; dateline wrap is not handled.
type BoundingBox struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Valid reports whether the box is well-formed.
func (b BoundingBox) Valid() bool {
	return b.North >= b.South && b.East >= b.West
}

// Contains reports whether the point lies inside the box. The boundary is
// inclusive.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.South && lat <= b.North && lon >= b.West && lon <= b.East
}

// Result is the outcome of one parse: the pruned node map, the kept ways
// and any recoverable malformations seen along the way.
type Result struct {
	Nodes  map[int64]Node
	Ways   []Way
	Issues []Issue
}

// ProgressFunc receives (bytesProcessed, totalBytes) after each blob is
// fully consumed. bytesProcessed is monotonically increasing and reaches
// totalBytes on success, modulo a truncated trailing remainder.
type ProgressFunc func(bytesProcessed, totalBytes uint64)

// Metrics receives decode counts during a parse. All methods are called
// from the goroutine running Parse. A nil Metrics is ignored.
type Metrics interface {
	BlobProcessed()
	NodeDecoded()
	NodeKept()
	WayKept()
	WayRejected()
	IssueRecorded()
}
