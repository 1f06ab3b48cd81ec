package osmpbf

import "fmt"

// denseNodes holds the raw parallel arrays of a DenseNodes message before
// delta accumulation.
type denseNodes struct {
	ids      []int64
	lats     []int64
	lons     []int64
	keysVals []uint64
}

func parseDenseNodes(data []byte) (*denseNodes, error) {
	r := newWireReader(data)
	d := &denseNodes{}
	for r.remaining() > 0 {
		field, wt, err := r.readTag()
		if err != nil {
			return nil, err
		}
		switch field {
		case 1: // id, packed sint64 deltas
			if d.ids, err = r.readPackedSignedVarints(); err != nil {
				return nil, err
			}
		case 8: // lat, packed sint64 deltas
			if d.lats, err = r.readPackedSignedVarints(); err != nil {
				return nil, err
			}
		case 9: // lon, packed sint64 deltas
			if d.lons, err = r.readPackedSignedVarints(); err != nil {
				return nil, err
			}
		case 10: // keys_vals, flat packed string-table index pairs
			if d.keysVals, err = r.readPackedVarints(); err != nil {
				return nil, err
			}
		default:
			if err := r.skip(wt); err != nil {
				return nil, err
			}
		}
	}
	return d, nil
}

// decodeDenseNodes reconstructs nodes from the delta-encoded parallel
// arrays, keeping only those inside bbox. Malformed blocks degrade to an
// empty result plus Issues rather than aborting the parse.
//
// The keys_vals array is shared across all nodes in the block: alternating
// key/value string-table indices, with a literal 0 terminating each node's
// tag run. Its cursor advances independently of the id/lat/lon index.
func decodeDenseNodes(data []byte, pb *primitiveBlock, bbox BoundingBox, blobIndex int, m Metrics) ([]Node, []Issue) {
	d, err := parseDenseNodes(data)
	if err != nil {
		return nil, []Issue{{Kind: IssueMalformedGroup, BlobIndex: blobIndex, Detail: err.Error()}}
	}
	if len(d.ids) != len(d.lats) || len(d.ids) != len(d.lons) {
		return nil, []Issue{{
			Kind:      IssueDenseArrayMismatch,
			BlobIndex: blobIndex,
			Detail:    fmt.Sprintf("id/lat/lon lengths %d/%d/%d", len(d.ids), len(d.lats), len(d.lons)),
		}}
	}

	var (
		nodes  []Node
		issues []Issue
	)
	var id, lat, lon int64
	kv := d.keysVals
	ki := 0

	for i := range d.ids {
		id += d.ids[i]
		lat += d.lats[i]
		lon += d.lons[i]

		var tags map[string]string
		badTags := false
		for ki < len(kv) && kv[ki] != 0 {
			if ki+1 >= len(kv) {
				issues = append(issues, Issue{Kind: IssueStringIndex, BlobIndex: blobIndex, Detail: "dangling key index"})
				badTags = true
				ki = len(kv)
				break
			}
			key, okK := pb.lookupString(int64(kv[ki]))
			val, okV := pb.lookupString(int64(kv[ki+1]))
			ki += 2
			if !okK || !okV {
				issues = append(issues, Issue{Kind: IssueStringIndex, BlobIndex: blobIndex, Detail: fmt.Sprintf("node %d tag index out of bounds", id)})
				badTags = true
				continue
			}
			if tags == nil {
				tags = make(map[string]string)
			}
			tags[key] = val
		}
		if ki < len(kv) {
			ki++ // consume the 0 terminator
		}

		if m != nil {
			m.NodeDecoded()
		}
		if badTags {
			continue
		}

		latDeg := pb.coordinate(pb.latOffset, lat)
		lonDeg := pb.coordinate(pb.lonOffset, lon)
		// The bounding-box filter runs per node during decode so nodes
		// outside the box never occupy memory.
		if !bbox.Contains(latDeg, lonDeg) {
			continue
		}
		nodes = append(nodes, Node{ID: id, Lat: latDeg, Lon: lonDeg, Tags: tags})
		if m != nil {
			m.NodeKept()
		}
	}
	return nodes, issues
}
