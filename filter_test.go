package bearprof

import (
	"testing"
)

func TestFilterScenarios(t *testing.T) {
	t.Parallel()

	scenarios := []Scenario{
		{Label: "UNION"},
		{Label: "UNION_NESTED"},
		{Label: "TUPLE"},
	}

	tests := []struct {
		name     string
		patterns []string
		want     []string
		wantErr  bool
	}{
		{
			name:     "no patterns keeps everything",
			patterns: nil,
			want:     []string{"UNION", "UNION_NESTED", "TUPLE"},
		},
		{
			name:     "exact label",
			patterns: []string{"UNION"},
			want:     []string{"UNION"},
		},
		{
			name:     "glob prefix",
			patterns: []string{"UNION*"},
			want:     []string{"UNION", "UNION_NESTED"},
		},
		{
			name:     "multiple patterns union",
			patterns: []string{"TUPLE", "UNION"},
			want:     []string{"UNION", "TUPLE"},
		},
		{
			name:     "no match",
			patterns: []string{"DICT*"},
			want:     nil,
		},
		{
			name:     "invalid pattern",
			patterns: []string{"UNION", "["},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := FilterScenarios(scenarios, tt.patterns)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FilterScenarios() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			var labels []string
			for _, s := range got {
				labels = append(labels, s.Label)
			}
			if len(labels) != len(tt.want) {
				t.Fatalf("FilterScenarios() = %v, want %v", labels, tt.want)
			}
			for i := range labels {
				if labels[i] != tt.want[i] {
					t.Errorf("FilterScenarios()[%d] = %q, want %q", i, labels[i], tt.want[i])
				}
			}
		})
	}
}
