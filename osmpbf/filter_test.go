package osmpbf

import "testing"

func TestIsRoutableWay(t *testing.T) {
	tests := []struct {
		name string
		tags map[string]string
		want bool
	}{
		{"path", map[string]string{"highway": "path"}, true},
		{"footway", map[string]string{"highway": "footway"}, true},
		{"track with name", map[string]string{"highway": "track", "name": "Forest Rd"}, true},
		{"steps", map[string]string{"highway": "steps"}, true},
		{"residential", map[string]string{"highway": "residential"}, true},
		{"motorway", map[string]string{"highway": "motorway"}, false},
		{"trunk", map[string]string{"highway": "trunk"}, false},
		{"service", map[string]string{"highway": "service"}, false},
		{"no highway tag", map[string]string{"waterway": "stream"}, false},
		{"empty tags", map[string]string{}, false},
		{"nil tags", nil, false},
		{"private access", map[string]string{"highway": "path", "access": "private"}, false},
		{"access no", map[string]string{"highway": "footway", "access": "no"}, false},
		{"access yes", map[string]string{"highway": "path", "access": "yes"}, true},
		{"foot banned", map[string]string{"highway": "path", "foot": "no"}, false},
		{"foot banned on cycleway", map[string]string{"highway": "cycleway", "foot": "no"}, true},
		{"foot designated", map[string]string{"highway": "path", "foot": "designated"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRoutableWay(tt.tags); got != tt.want {
				t.Errorf("IsRoutableWay(%v) = %v, want %v", tt.tags, got, tt.want)
			}
		})
	}
}
