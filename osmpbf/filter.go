package osmpbf

// routableHighway lists the highway values kept for hiking and cycling
// routing. Car-oriented classes (motorway through tertiary) and service
// roads are excluded.
var routableHighway = map[string]struct{}{
	"path":          {},
	"footway":       {},
	"cycleway":      {},
	"track":         {},
	"bridleway":     {},
	"steps":         {},
	"pedestrian":    {},
	"living_street": {},
	"residential":   {},
	"unclassified":  {},
}

// IsRoutableWay reports whether a tagged way belongs in a hiking/cycling
// routing graph. It is a pure function so graph builders can reuse the
// predicate on ways obtained from other sources.
//
// A way is routable when its highway tag is in the allow-list, it is not
// access-restricted, and feet are not banned. foot=no is tolerated on
// cycleways, which stay relevant for the cycling profile.
func IsRoutableWay(tags map[string]string) bool {
	hw, ok := tags["highway"]
	if !ok {
		return false
	}
	if _, ok := routableHighway[hw]; !ok {
		return false
	}
	switch tags["access"] {
	case "private", "no":
		return false
	}
	if tags["foot"] == "no" && hw != "cycleway" {
		return false
	}
	return true
}
