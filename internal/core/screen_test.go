package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetStyled(5, 5, 'X', Style{FG: ColorRed, Bold: true})
	cell := s.GetCell(5, 5)
	if cell.Rune != 'X' || cell.Style.FG != ColorRed || !cell.Style.Bold {
		t.Errorf("GetCell(5, 5) = %+v", cell)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 2)
	s.SetStyled(1, 1, '#', Fg(ColorBlue))
	s.Clear()
	if cell := s.GetCell(1, 1); cell.Rune != ' ' || cell.Style != Plain {
		t.Errorf("Clear should reset cells, got %+v", cell)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawTextStyled(2, 1, "Moves 12", Fg(ColorYellow))

	if got := s.Row(1); got != "  Moves 12" {
		t.Errorf("Row(1) = %q", got)
	}
	if s.GetCell(2, 1).Style.FG != ColorYellow {
		t.Error("text should keep its style")
	}

	// clipped at the right edge
	s.DrawText(8, 0, "abc")
	if got := s.Row(0); got != "        ab" {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "WIN", Plain)
	if got := s.Row(0); got != "    WIN    " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenFillRect(t *testing.T) {
	s := NewScreen(5, 4)
	s.FillRect(NewRect(1, 1, 2, 2), '#', Plain)

	expected := strings.Join([]string{
		"     ",
		" ##  ",
		" ##  ",
		"     ",
	}, "\n")
	if got := s.String(); got != expected {
		t.Errorf("String() =\n%s\nexpected:\n%s", got, expected)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(s.Bounds(), Plain)

	expected := strings.Join([]string{
		"┌──┐",
		"│  │",
		"└──┘",
	}, "\n")
	if got := s.String(); got != expected {
		t.Errorf("String() =\n%s\nexpected:\n%s", got, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(5, 5)
	s.Set(0, 0, 'X')
	s.Resize(3, 2)

	if s.Width() != 3 || s.Height() != 2 {
		t.Errorf("Resize: got %dx%d", s.Width(), s.Height())
	}
	if s.Get(0, 0) != ' ' {
		t.Error("Resize should clear the buffer")
	}
}

func TestScreenRowOutOfBounds(t *testing.T) {
	s := NewScreen(3, 1)
	if got := s.Row(5); got != "   " {
		t.Errorf("Row(5) = %q", got)
	}
}
