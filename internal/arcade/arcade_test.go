package arcade

import (
	"testing"
	"time"
)

func TestNewObserver(t *testing.T) {
	tests := []struct {
		name      string
		lat, lon  float64
		label     string
		wantLabel string
	}{
		{"explicit label", 36.1627, -86.7816, "Nashville, TN", "Nashville, TN"},
		{"label from coordinates", 36.1627, -86.7816, "", "36.1627,-86.7816"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewObserver(tt.lat, tt.lon, tt.label)
			if o.Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", o.Label, tt.wantLabel)
			}
			if o.Lat != tt.lat || o.Lon != tt.lon {
				t.Errorf("coordinates = %v, want %v,%v", o.Coordinates, tt.lat, tt.lon)
			}
		})
	}
}

func TestCoordinatesValid(t *testing.T) {
	tests := []struct {
		c    Coordinates
		want bool
	}{
		{Coordinates{36.1, -86.7}, true},
		{Coordinates{90, 180}, true},
		{Coordinates{-90, -180}, true},
		{Coordinates{90.1, 0}, false},
		{Coordinates{0, -180.5}, false},
	}

	for _, tt := range tests {
		if got := tt.c.Valid(); got != tt.want {
			t.Errorf("%v.Valid() = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestRecordValid(t *testing.T) {
	tests := []struct {
		name string
		rec  *Record
		want bool
	}{
		{"complete", &Record{ID: "1", Name: "Round1", Address: "Opry Mills"}, true},
		{"missing id", &Record{Name: "Round1", Address: "Opry Mills"}, false},
		{"missing name", &Record{ID: "1", Address: "Opry Mills"}, false},
		{"missing address", &Record{ID: "1", Name: "Round1"}, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStateValidate(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		state   *State
		wantErr bool
	}{
		{"valid", &State{CheckedAt: now, Closest: &Record{ID: "12"}}, false},
		{"nil", nil, true},
		{"zero time", &State{Closest: &Record{ID: "12"}}, true},
		{"no record", &State{CheckedAt: now}, true},
		{"record without id", &State{CheckedAt: now, Closest: &Record{Name: "x"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.state.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestClosestState(t *testing.T) {
	loc := time.FixedZone("CST", -6*3600)
	checked := time.Date(2026, 3, 1, 9, 30, 0, 0, loc)
	rec := &Record{ID: "42", Name: "Game Galaxy", Address: "1 Main St"}

	s := (&Closest{Record: rec, DistanceMiles: 2.5, CheckedAt: checked}).State()

	if s.Closest != rec {
		t.Error("State() should reference the closest record")
	}
	if s.DistanceMiles != 2.5 {
		t.Errorf("DistanceMiles = %v, want 2.5", s.DistanceMiles)
	}
	if s.CheckedAt.Location() != time.UTC {
		t.Errorf("CheckedAt should be UTC, got %v", s.CheckedAt.Location())
	}
	if !s.CheckedAt.Equal(checked) {
		t.Errorf("CheckedAt = %v, want %v", s.CheckedAt, checked)
	}
}
