package repositories

import "testing"

func TestClampLibraryLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero falls back to default", 0, defaultLibraryLimit},
		{"negative falls back to default", -10, defaultLibraryLimit},
		{"within range passes through", 150, 150},
		{"max passes through", maxLibraryLimit, maxLibraryLimit},
		{"over max is capped, not reset", 300, maxLibraryLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampLibraryLimit(tt.limit); got != tt.want {
				t.Errorf("clampLibraryLimit(%d) = %d, want %d", tt.limit, got, tt.want)
			}
		})
	}
}
