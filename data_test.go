package spcd3

import "testing"

func TestStateLookupActive(t *testing.T) {
	tests := []struct {
		name   string
		lookup StateLookup
		id     string
		want   bool
	}{
		{name: "nil lookup", lookup: nil, id: "a", want: true},
		{name: "missing id", lookup: StateLookup{"b": {Active: false}}, id: "a", want: true},
		{name: "explicit active", lookup: StateLookup{"a": {Active: true}}, id: "a", want: true},
		{name: "explicit inactive", lookup: StateLookup{"a": {Active: false}}, id: "a", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.lookup.Active(tt.id); got != tt.want {
				t.Errorf("Active(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestDatasetRowActive(t *testing.T) {
	row := Row{"id": "r1", "v": "3"}

	// No states: everything active.
	ds := &Dataset{Rows: []Row{row}}
	if !ds.rowActive(row) {
		t.Error("rowActive = false with nil States, want true")
	}

	// States without identity function: everything active.
	ds.States = StateLookup{"r1": {Active: false}}
	if !ds.rowActive(row) {
		t.Error("rowActive = false with nil Identity, want true")
	}

	// Full contract: lookup decides.
	ds.Identity = func(r Row) string { return r["id"] }
	if ds.rowActive(row) {
		t.Error("rowActive = true for deselected row, want false")
	}
}

func TestDatasetLen(t *testing.T) {
	ds := &Dataset{Rows: []Row{{}, {}, {}}}
	if ds.Len() != 3 {
		t.Errorf("Len = %d, want 3", ds.Len())
	}
}
