package osmpbf

// primitiveBlock carries the per-block decoding context: the shared string
// pool and the coordinate scaling parameters.
type primitiveBlock struct {
	strings     []string
	granularity int64
	latOffset   int64
	lonOffset   int64
	groups      [][]byte
}

func parsePrimitiveBlock(data []byte) (*primitiveBlock, error) {
	r := newWireReader(data)
	pb := &primitiveBlock{granularity: 100}
	for r.remaining() > 0 {
		field, wt, err := r.readTag()
		if err != nil {
			return nil, err
		}
		switch field {
		case 1: // stringtable
			b, err := r.readBytes()
			if err != nil {
				return nil, err
			}
			if pb.strings, err = parseStringTable(b); err != nil {
				return nil, err
			}
		case 2: // primitivegroup
			b, err := r.readBytes()
			if err != nil {
				return nil, err
			}
			pb.groups = append(pb.groups, b)
		case 17: // granularity
			v, err := r.readVarint()
			if err != nil {
				return nil, err
			}
			pb.granularity = int64(v)
		case 19: // lat_offset
			v, err := r.readVarint()
			if err != nil {
				return nil, err
			}
			pb.latOffset = int64(v)
		case 20: // lon_offset
			v, err := r.readVarint()
			if err != nil {
				return nil, err
			}
			pb.lonOffset = int64(v)
		default:
			if err := r.skip(wt); err != nil {
				return nil, err
			}
		}
	}
	return pb, nil
}

// parseStringTable decodes the per-block shared string pool. Index 0 is
// the empty string by convention and doubles as the dense-node tag
// terminator.
func parseStringTable(data []byte) ([]string, error) {
	r := newWireReader(data)
	var table []string
	for r.remaining() > 0 {
		field, wt, err := r.readTag()
		if err != nil {
			return nil, err
		}
		if field == 1 {
			b, err := r.readBytes()
			if err != nil {
				return nil, err
			}
			table = append(table, string(b))
			continue
		}
		if err := r.skip(wt); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// coordinate converts a delta-accumulated raw value into degrees.
func (pb *primitiveBlock) coordinate(offset, acc int64) float64 {
	return 1e-9 * float64(offset+pb.granularity*acc)
}

// lookupString returns the string-table entry for idx, or false when the
// index is out of bounds.
func (pb *primitiveBlock) lookupString(idx int64) (string, bool) {
	if idx < 0 || idx >= int64(len(pb.strings)) {
		return "", false
	}
	return pb.strings[idx], true
}
