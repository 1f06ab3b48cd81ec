package osmpbf

import "fmt"

// decodeWay decodes one Way message and applies the routability filter.
// It returns nil when the way is filtered out or malformed; a malformed
// way also yields an Issue. The message bytes are always fully consumed
// regardless of the filter outcome.
func decodeWay(data []byte, pb *primitiveBlock, blobIndex int, m Metrics) (*Way, []Issue) {
	r := newWireReader(data)
	var (
		id       int64
		keys     []uint64
		vals     []uint64
		refDelta []int64
	)
	for r.remaining() > 0 {
		field, wt, err := r.readTag()
		if err != nil {
			return nil, []Issue{{Kind: IssueMalformedGroup, BlobIndex: blobIndex, Detail: err.Error()}}
		}
		switch field {
		case 1: // id
			v, err := r.readVarint()
			if err != nil {
				return nil, []Issue{{Kind: IssueMalformedGroup, BlobIndex: blobIndex, Detail: err.Error()}}
			}
			id = int64(v)
		case 2: // keys, packed string-table indices
			if keys, err = r.readPackedVarints(); err != nil {
				return nil, []Issue{{Kind: IssueMalformedGroup, BlobIndex: blobIndex, Detail: err.Error()}}
			}
		case 3: // vals, packed string-table indices
			if vals, err = r.readPackedVarints(); err != nil {
				return nil, []Issue{{Kind: IssueMalformedGroup, BlobIndex: blobIndex, Detail: err.Error()}}
			}
		case 8: // refs, packed sint64 deltas
			if refDelta, err = r.readPackedSignedVarints(); err != nil {
				return nil, []Issue{{Kind: IssueMalformedGroup, BlobIndex: blobIndex, Detail: err.Error()}}
			}
		default:
			if err := r.skip(wt); err != nil {
				return nil, []Issue{{Kind: IssueMalformedGroup, BlobIndex: blobIndex, Detail: err.Error()}}
			}
		}
	}

	// Keys and vals are zipped by position to form the tag map.
	n := len(keys)
	if len(vals) < n {
		n = len(vals)
	}
	tags := make(map[string]string, n)
	for i := 0; i < n; i++ {
		key, okK := pb.lookupString(int64(keys[i]))
		val, okV := pb.lookupString(int64(vals[i]))
		if !okK || !okV {
			return nil, []Issue{{Kind: IssueStringIndex, BlobIndex: blobIndex, Detail: fmt.Sprintf("way %d tag index out of bounds", id)}}
		}
		tags[key] = val
	}

	if !IsRoutableWay(tags) {
		if m != nil {
			m.WayRejected()
		}
		return nil, nil
	}

	refs := make([]int64, len(refDelta))
	var acc int64
	for i, d := range refDelta {
		acc += d
		refs[i] = acc
	}

	if m != nil {
		m.WayKept()
	}
	return &Way{ID: id, NodeIDs: refs, Tags: tags}, nil
}
