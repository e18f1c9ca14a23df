package core

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestSnapshotOf(t *testing.T) {
	st := Station{ID: "a", Name: "A"}
	boom := errors.New("boom")

	tests := []struct {
		name        string
		state       State
		wantKind    StateKind
		wantPlaying bool
		wantLoading bool
		wantStation bool
		wantErr     bool
	}{
		{"nil", nil, StateIdle, false, false, false, false},
		{"idle", Idle{}, StateIdle, false, false, false, false},
		{"loading", Loading{Station: st}, StateLoading, false, true, true, false},
		{"ready", Ready{Station: st}, StateReady, false, false, true, false},
		{"playing", Playing{Station: st}, StatePlaying, true, false, true, false},
		{"paused", Paused{Station: st}, StatePaused, false, false, true, false},
		{"failed", Failed{Err: boom}, StateFailed, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := SnapshotOf(tt.state, 0.5)
			if snap.State != tt.wantKind {
				t.Errorf("State = %q, want %q", snap.State, tt.wantKind)
			}
			if snap.IsPlaying != tt.wantPlaying {
				t.Errorf("IsPlaying = %v, want %v", snap.IsPlaying, tt.wantPlaying)
			}
			if snap.IsLoading != tt.wantLoading {
				t.Errorf("IsLoading = %v, want %v", snap.IsLoading, tt.wantLoading)
			}
			if snap.HasStation() != tt.wantStation {
				t.Errorf("HasStation() = %v, want %v", snap.HasStation(), tt.wantStation)
			}
			if (snap.Err != nil) != tt.wantErr {
				t.Errorf("Err = %v, wantErr %v", snap.Err, tt.wantErr)
			}
			if snap.IsPlaying && snap.IsLoading {
				t.Error("IsPlaying and IsLoading both true")
			}
			if snap.Volume != 0.5 {
				t.Errorf("Volume = %v, want 0.5", snap.Volume)
			}
		})
	}
}

func TestSnapshotJSONCarriesError(t *testing.T) {
	failed, err := json.Marshal(SnapshotOf(Failed{Err: errors.New("renderer unreachable")}, 0.5))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(failed), `"error":"renderer unreachable"`) {
		t.Errorf("failed snapshot JSON = %s, want error text", failed)
	}

	idle, err := json.Marshal(SnapshotOf(Idle{}, 0.5))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(idle), `"error"`) {
		t.Errorf("idle snapshot JSON = %s, want no error field", idle)
	}
}

func TestClampVolume(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{1.5, 1},
	}
	for _, tt := range tests {
		if got := ClampVolume(tt.in); got != tt.want {
			t.Errorf("ClampVolume(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStationURLs(t *testing.T) {
	s := Station{StreamURL: "http://a", FallbackURLs: []string{"http://b", "", "http://c"}}
	got := s.URLs()
	want := []string{"http://a", "http://b", "http://c"}
	if len(got) != len(want) {
		t.Fatalf("URLs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("URLs()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
