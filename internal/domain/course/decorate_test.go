package course

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
)

func TestDeriveStatus_StableAcrossCalls(t *testing.T) {
	for id := 1; id <= 100; id++ {
		first := DeriveStatus(id)
		for i := 0; i < 5; i++ {
			if got := DeriveStatus(id); got != first {
				t.Fatalf("DeriveStatus(%d) not stable: got %q, want %q", id, got, first)
			}
		}
	}
}

func TestDeriveStatus_ValidMember(t *testing.T) {
	valid := make(map[Status]bool, len(Statuses))
	for _, s := range Statuses {
		valid[s] = true
	}
	for id := 0; id < 200; id++ {
		if s := DeriveStatus(id); !valid[s] {
			t.Errorf("DeriveStatus(%d) = %q, not a valid status", id, s)
		}
	}
}

func TestDeriveStatus_CoversAllStatuses(t *testing.T) {
	seen := make(map[Status]bool)
	for id := 0; id < 1000; id++ {
		seen[DeriveStatus(id)] = true
	}
	if len(seen) != len(Statuses) {
		t.Errorf("expected all %d statuses over 1000 ids, saw %d: %v", len(Statuses), len(seen), seen)
	}
}

func TestDeriveDuration_StableAndInRange(t *testing.T) {
	re := regexp.MustCompile(`^(\d+) weeks$`)
	for id := 1; id <= 200; id++ {
		d := DeriveDuration(id)
		if d != DeriveDuration(id) {
			t.Fatalf("DeriveDuration(%d) not stable", id)
		}
		m := re.FindStringSubmatch(d)
		if m == nil {
			t.Fatalf("DeriveDuration(%d) = %q, want \"N weeks\"", id, d)
		}
		weeks, err := strconv.Atoi(m[1])
		if err != nil {
			t.Fatal(err)
		}
		if weeks < 1 || weeks > maxDurationWeeks {
			t.Errorf("DeriveDuration(%d) = %q, weeks out of [1,%d]", id, d, maxDurationWeeks)
		}
	}
}

func TestDeriveDuration_IndependentOfStatus(t *testing.T) {
	// The two fields hash distinct seeds; identical ids must not force the
	// same bucket in both derivations for every id.
	same := 0
	for id := 0; id < 100; id++ {
		s := DeriveStatus(id)
		d := DeriveDuration(id)
		if strings.HasPrefix(d, strconv.Itoa(int(indexOf(s)+1))) {
			same++
		}
	}
	if same == 100 {
		t.Error("status and duration derivations appear coupled for all ids")
	}
}

func indexOf(s Status) int {
	for i, v := range Statuses {
		if v == s {
			return i
		}
	}
	return -1
}
