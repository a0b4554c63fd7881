package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 5, 5)

	tests := []struct {
		x, y     int
		expected bool
	}{
		{10, 10, true},
		{14, 14, true},
		{12, 12, true},
		{15, 10, false},
		{10, 15, false},
		{9, 10, false},
	}

	for _, tc := range tests {
		if got := r.Contains(tc.x, tc.y); got != tc.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestRectEdgesAndInset(t *testing.T) {
	r := NewRect(2, 3, 10, 6)
	if r.Right() != 12 || r.Bottom() != 9 {
		t.Errorf("edges = %d,%d", r.Right(), r.Bottom())
	}
	in := r.Inset(1)
	if in != NewRect(3, 4, 8, 4) {
		t.Errorf("Inset(1) = %+v", in)
	}
	if got := NewRect(0, 0, 1, 1).Inset(2); got.W != 0 || got.H != 0 {
		t.Errorf("Inset should not go negative, got %+v", got)
	}
}

func TestCentered(t *testing.T) {
	tests := []struct {
		name                 string
		w, h, outerW, outerH int
		expected             Rect
	}{
		{"fits", 10, 4, 30, 10, NewRect(10, 3, 10, 4)},
		{"exact", 30, 10, 30, 10, NewRect(0, 0, 30, 10)},
		{"too big", 40, 20, 30, 10, NewRect(0, 0, 40, 20)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Centered(tc.w, tc.h, tc.outerW, tc.outerH); got != tc.expected {
				t.Errorf("Centered() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(3, 5) != 3 || Min(5, 3) != 3 {
		t.Error("Min failed")
	}
	if Max(3, 5) != 5 || Max(5, 3) != 5 {
		t.Error("Max failed")
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame(ActionLeft, ActionSelect)
	if !f.Has(ActionLeft) || !f.Has(ActionSelect) || f.Has(ActionUp) {
		t.Errorf("unexpected actions %v", f.Actions)
	}
	f.Clear()
	if !f.Empty() {
		t.Error("Clear should remove all actions")
	}
	var zero InputFrame
	if zero.Has(ActionQuit) {
		t.Error("zero frame has no actions")
	}
	zero.Set(ActionQuit)
	if !zero.Has(ActionQuit) {
		t.Error("Set on zero frame should work")
	}
	if ActionHint.String() != "Hint" {
		t.Errorf("String() = %q", ActionHint.String())
	}
}
