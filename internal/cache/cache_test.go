package cache

import "testing"

func TestApplyMastery(t *testing.T) {
	got := ApplyMastery(Stats{Today: 4, Week: 17})
	if got.Today != 5 || got.Week != 18 {
		t.Errorf("ApplyMastery = %+v, want {5 18}", got)
	}

	got = ApplyMastery(Stats{})
	if got.Today != 1 || got.Week != 1 {
		t.Errorf("ApplyMastery from zero = %+v, want {1 1}", got)
	}
}

func TestUpsertContribution(t *testing.T) {
	testCases := []struct {
		name    string
		entries []Contribution
		date    string
		want    []Contribution
	}{
		{
			name:    "existing day increments",
			entries: []Contribution{{Date: "2024-05-01", Count: 2}, {Date: "2024-05-02", Count: 1}},
			date:    "2024-05-02",
			want:    []Contribution{{Date: "2024-05-01", Count: 2}, {Date: "2024-05-02", Count: 2}},
		},
		{
			name:    "missing day appends at one",
			entries: []Contribution{{Date: "2024-05-01", Count: 2}},
			date:    "2024-05-03",
			want:    []Contribution{{Date: "2024-05-01", Count: 2}, {Date: "2024-05-03", Count: 1}},
		},
		{
			name:    "empty calendar",
			entries: nil,
			date:    "2024-05-03",
			want:    []Contribution{{Date: "2024-05-03", Count: 1}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := UpsertContribution(tc.entries, tc.date)
			if len(got) != len(tc.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tc.want))
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("entry %d = %+v, want %+v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestUpsertContributionDoesNotMutateInput(t *testing.T) {
	entries := []Contribution{{Date: "2024-05-01", Count: 2}}
	_ = UpsertContribution(entries, "2024-05-01")
	if entries[0].Count != 2 {
		t.Errorf("input slice mutated: %+v", entries[0])
	}
}
