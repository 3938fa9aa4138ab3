package entity_test

import (
	"testing"

	"ikedadada/go-onionoo/internal/domain/entity"
	vo "ikedadada/go-onionoo/internal/domain/value_object"
)

func fingerprints(d entity.Directory) []string {
	out := make([]string, 0, d.Len())
	for _, r := range d.Relays() {
		out = append(out, r.Fingerprint().String())
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func makeTestDirectory(t *testing.T) entity.Directory {
	t.Helper()
	return entity.NewDirectory([]*entity.Relay{
		makeTestRelay(t, "R1", []string{"Guard", "Running"}, nil),
		makeTestRelay(t, "R2", []string{"Exit", "Running"}, nil),
		makeTestRelay(t, "R3", []string{"Running"}, nil),
		makeTestRelay(t, "R4", []string{"Guard", "Exit"}, nil),
		makeTestRelay(t, "R5", []string{"Guard"}, nil),
	})
}

func TestDirectory_Filters(t *testing.T) {
	dir := makeTestDirectory(t)

	tests := []struct {
		name string
		got  entity.Directory
		want []string
	}{
		{"all", dir, []string{"R1", "R2", "R3", "R4", "R5"}},
		{"entries", dir.Entries(), []string{"R1", "R4", "R5"}},
		{"exits", dir.Exits(), []string{"R2", "R4"}},
		{"running", dir.Filter(func(r *entity.Relay) bool { return r.HasFlag(vo.FlagRunning) }), []string{"R1", "R2", "R3"}},
		{"none", dir.Filter(func(*entity.Relay) bool { return false }), []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fingerprints(tt.got); !equalStrings(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDirectory_FilterIsSubsequence(t *testing.T) {
	dir := makeTestDirectory(t)
	for _, filtered := range []entity.Directory{dir.Entries(), dir.Exits()} {
		all := dir.Relays()
		i := 0
		for _, r := range filtered.Relays() {
			for i < len(all) && all[i] != r {
				i++
			}
			if i == len(all) {
				t.Fatalf("relay %s out of order or missing from source", r.Fingerprint())
			}
			i++
		}
	}
}

func TestDirectory_FindByFingerprint(t *testing.T) {
	dir := makeTestDirectory(t)

	fp, _ := vo.NewFingerprint("R3")
	r, ok := dir.FindByFingerprint(fp)
	if !ok {
		t.Fatal("expected R3 to be found")
	}
	if r.Fingerprint().String() != "R3" {
		t.Errorf("found wrong relay %s", r.Fingerprint())
	}

	missing, _ := vo.NewFingerprint("r3")
	if _, ok := dir.FindByFingerprint(missing); ok {
		t.Error("lookup must be case-sensitive")
	}
}

func TestDirectory_RelaysReturnsCopy(t *testing.T) {
	dir := makeTestDirectory(t)
	rs := dir.Relays()
	rs[0] = nil
	if dir.Relays()[0] == nil {
		t.Error("mutating Relays() result must not affect the directory")
	}

	src := []*entity.Relay{makeTestRelay(t, "X", nil, nil)}
	d := entity.NewDirectory(src)
	src[0] = nil
	if d.Relays()[0] == nil {
		t.Error("NewDirectory must copy its input")
	}
}

func TestDirectory_Empty(t *testing.T) {
	var dir entity.Directory
	if dir.Len() != 0 {
		t.Errorf("expected empty directory, got %d", dir.Len())
	}
	if dir.Entries().Len() != 0 || dir.Exits().Len() != 0 {
		t.Error("filters of empty directory must be empty")
	}
}
