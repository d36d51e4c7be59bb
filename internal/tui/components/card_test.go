package components

import "testing"

func TestLayoutRowSumsToTotal(t *testing.T) {
	tests := []struct {
		total, n int
	}{
		{100, 4},
		{101, 4},
		{103, 4},
		{80, 3},
		{7, 2},
	}
	for _, tc := range tests {
		widths := LayoutRow(tc.total, tc.n)
		if len(widths) != tc.n {
			t.Fatalf("LayoutRow(%d, %d) returned %d widths", tc.total, tc.n, len(widths))
		}
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tc.total {
			t.Fatalf("LayoutRow(%d, %d) sums to %d", tc.total, tc.n, sum)
		}
		// No width may differ from another by more than one
		for _, w := range widths {
			if w < widths[len(widths)-1] || w > widths[0] {
				t.Fatalf("LayoutRow(%d, %d) uneven: %v", tc.total, tc.n, widths)
			}
		}
	}

	if LayoutRow(100, 0) != nil {
		t.Fatal("LayoutRow with n=0 should return nil")
	}
}

func TestTabIdxByKey(t *testing.T) {
	if idx := TabIdxByKey('w'); idx != 1 {
		t.Fatalf("TabIdxByKey('w') = %d, want 1", idx)
	}
	if idx := TabIdxByKey('x'); idx != 3 {
		t.Fatalf("TabIdxByKey('x') = %d, want 3", idx)
	}
	if idx := TabIdxByKey('z'); idx != -1 {
		t.Fatalf("TabIdxByKey('z') = %d, want -1", idx)
	}
}
