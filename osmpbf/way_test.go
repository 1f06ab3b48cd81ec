package osmpbf

import "testing"

func TestDecodeWayRefAccumulation(t *testing.T) {
	pb := &primitiveBlock{strings: []string{"", "highway", "track"}, granularity: 100}
	data := encodeWayMsg(wayFixture{
		id:   42,
		keys: []uint64{1},
		vals: []uint64{2},
		refs: []int64{1000, 5, -3, 20},
	})

	way, issues := decodeWay(data, pb, 0, nil)
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	if way == nil {
		t.Fatal("expected a way, got nil")
	}
	if way.ID != 42 {
		t.Errorf("expected id 42, got %d", way.ID)
	}
	wantRefs := []int64{1000, 1005, 1002, 1022}
	if len(way.NodeIDs) != len(wantRefs) {
		t.Fatalf("expected %d refs, got %d", len(wantRefs), len(way.NodeIDs))
	}
	for i, r := range wantRefs {
		if way.NodeIDs[i] != r {
			t.Errorf("ref %d: expected %d, got %d", i, r, way.NodeIDs[i])
		}
	}
	if got := way.Tags["highway"]; got != "track" {
		t.Errorf("expected highway=track, got %q", got)
	}
}

func TestDecodeWayFilteredOut(t *testing.T) {
	pb := &primitiveBlock{strings: []string{"", "highway", "motorway"}, granularity: 100}
	data := encodeWayMsg(wayFixture{
		id:   7,
		keys: []uint64{1},
		vals: []uint64{2},
		refs: []int64{1, 1},
	})

	way, issues := decodeWay(data, pb, 0, nil)
	if way != nil {
		t.Errorf("expected motorway to be rejected, got %+v", way)
	}
	if len(issues) != 0 {
		t.Errorf("filter rejection must not record issues, got %v", issues)
	}
}

func TestDecodeWayBadStringIndex(t *testing.T) {
	pb := &primitiveBlock{strings: []string{"", "highway"}, granularity: 100}
	data := encodeWayMsg(wayFixture{
		id:   9,
		keys: []uint64{1},
		vals: []uint64{50},
		refs: []int64{1},
	})

	way, issues := decodeWay(data, pb, 3, nil)
	if way != nil {
		t.Errorf("expected nil way, got %+v", way)
	}
	if len(issues) != 1 || issues[0].Kind != IssueStringIndex {
		t.Fatalf("expected one IssueStringIndex, got %v", issues)
	}
	if issues[0].BlobIndex != 3 {
		t.Errorf("expected blob index 3, got %d", issues[0].BlobIndex)
	}
}
