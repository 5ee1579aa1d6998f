package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Date", "WPM", "Accuracy"}
	rows := [][]string{
		{"2024-01-02", "85", "97.50%"},
		{"今日", "7", "8.00%"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Date        WPM  Accuracy" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "2024-01-02   85    97.50%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "今日          7     8.00%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}
