package osmpbf

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/go-kit/log"
)

// maxBlobHeaderSize bounds the 4-byte length prefix; the OSMPBF format
// caps BlobHeader at 64 KiB.
const maxBlobHeaderSize = 64 * 1024

// Parser decodes a complete .osm.pbf byte buffer into routable nodes and
// ways. A Parser owns its accumulator state for the duration of one Parse
// call and must not be shared between concurrent parses; independent
// Parser instances may run concurrently without coordination.
type Parser struct {
	// BBox filters dense nodes during decode. Ways are kept regardless;
	// only the node map is bounded by the box.
	BBox BoundingBox
	// Progress, when set, receives (bytesProcessed, totalBytes) after each
	// blob. Optional.
	Progress ProgressFunc
	// Logger receives one line per recoverable issue. Defaults to a nop
	// logger.
	Logger log.Logger
	// Metrics receives decode counters. Optional.
	Metrics Metrics
}

// NewParser returns a parser filtering nodes to bbox.
func NewParser(bbox BoundingBox) *Parser {
	return &Parser{BBox: bbox, Logger: log.NewNopLogger()}
}

// Parse consumes the whole buffer blob by blob.
//
// The blob length prefix is 4 bytes big-endian, unlike every other length
// in the format. Only "OSMData" blocks are decompressed; "OSMHeader"
// blocks are skipped by offset arithmetic. A partial trailing blob is not
// an error: the file is considered fully consumed up to the last complete
// blob. ctx is checked between blobs, so cancellation latency is bounded
// by one blob.
func (p *Parser) Parse(ctx context.Context, data []byte) (*Result, error) {
	logger := p.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}

	res := &Result{Nodes: make(map[int64]Node)}
	total := uint64(len(data))
	pos := 0
	blobIndex := 0

	for len(data)-pos >= 4 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		headerLen := int(binary.BigEndian.Uint32(data[pos : pos+4]))
		if headerLen <= 0 || headerLen > maxBlobHeaderSize {
			return nil, fmt.Errorf("%w: header length %d", ErrMalformedHeader, headerLen)
		}
		if len(data)-pos-4 < headerLen {
			break // truncated trailer
		}
		hdr, err := parseBlobHeader(data[pos+4 : pos+4+headerLen])
		if err != nil {
			return nil, fmt.Errorf("blob %d: %w", blobIndex, err)
		}

		payloadStart := pos + 4 + headerLen
		if len(data)-payloadStart < hdr.datasize {
			break // truncated trailer
		}

		if hdr.blobType == "OSMData" {
			if err := p.parseDataBlob(data[payloadStart:payloadStart+hdr.datasize], blobIndex, res, logger); err != nil {
				return nil, fmt.Errorf("blob %d: %w", blobIndex, err)
			}
		}

		pos = payloadStart + hdr.datasize
		blobIndex++
		if p.Metrics != nil {
			p.Metrics.BlobProcessed()
		}
		if p.Progress != nil {
			p.Progress(uint64(pos), total)
		}
	}

	p.pruneNodes(res)
	return res, nil
}

// parseDataBlob inflates one OSMData blob and merges its primitive groups
// into the accumulated result. Compression and framing failures are
// structural; damage inside a group degrades to Issues.
func (p *Parser) parseDataBlob(data []byte, blobIndex int, res *Result, logger log.Logger) error {
	b, err := parseBlob(data)
	if err != nil {
		return err
	}
	raw, err := b.inflate()
	if err != nil {
		return err
	}

	pb, err := parsePrimitiveBlock(raw)
	if err != nil {
		// The block envelope itself is damaged; skip it and keep parsing,
		// OSM extracts routinely contain some noise.
		p.recordIssue(res, logger, Issue{Kind: IssueMalformedGroup, BlobIndex: blobIndex, Detail: err.Error()})
		return nil
	}

	for _, group := range pb.groups {
		if err := p.parseGroup(group, pb, blobIndex, res, logger); err != nil {
			p.recordIssue(res, logger, Issue{Kind: IssueMalformedGroup, BlobIndex: blobIndex, Detail: err.Error()})
		}
	}
	return nil
}

// parseGroup walks one PrimitiveGroup. Dense nodes and ways are decoded;
// sparse nodes, relations and changesets are skipped.
func (p *Parser) parseGroup(data []byte, pb *primitiveBlock, blobIndex int, res *Result, logger log.Logger) error {
	r := newWireReader(data)
	for r.remaining() > 0 {
		field, wt, err := r.readTag()
		if err != nil {
			return err
		}
		switch field {
		case 2: // dense
			sub, err := r.readBytes()
			if err != nil {
				return err
			}
			nodes, issues := decodeDenseNodes(sub, pb, p.BBox, blobIndex, p.Metrics)
			for _, n := range nodes {
				res.Nodes[n.ID] = n
			}
			for _, is := range issues {
				p.recordIssue(res, logger, is)
			}
		case 3: // ways
			sub, err := r.readBytes()
			if err != nil {
				return err
			}
			way, issues := decodeWay(sub, pb, blobIndex, p.Metrics)
			if way != nil {
				res.Ways = append(res.Ways, *way)
			}
			for _, is := range issues {
				p.recordIssue(res, logger, is)
			}
		default:
			if err := r.skip(wt); err != nil {
				return err
			}
		}
	}
	return nil
}

// pruneNodes drops every node no kept way references. A way may reference
// nodes decoded in an earlier or later block, so pruning can only run once
// the whole buffer has been consumed.
func (p *Parser) pruneNodes(res *Result) {
	referenced := make(map[int64]struct{})
	for _, w := range res.Ways {
		for _, id := range w.NodeIDs {
			referenced[id] = struct{}{}
		}
	}
	for id := range res.Nodes {
		if _, ok := referenced[id]; !ok {
			delete(res.Nodes, id)
		}
	}
}

func (p *Parser) recordIssue(res *Result, logger log.Logger, is Issue) {
	res.Issues = append(res.Issues, is)
	if p.Metrics != nil {
		p.Metrics.IssueRecorded()
	}
	_ = logger.Log("issue", is.Kind.String(), "blob", is.BlobIndex, "detail", is.Detail)
}
