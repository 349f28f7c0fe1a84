package theme

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

func TestTruncateASCII(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate(short, 10) = %q, want unchanged", got)
	}
	got := Truncate("a much longer headline", 10)
	if !strings.HasSuffix(got, "…") {
		t.Errorf("Truncate = %q, want ellipsis suffix", got)
	}
	if w := runewidth.StringWidth(got); w > 10 {
		t.Errorf("Truncate width = %d, want <= 10", w)
	}
}

func TestTruncateCJK(t *testing.T) {
	title := "央行宣布下调存款准备金率0.5个百分点"
	got := Truncate(title, 12)

	if !utf8.ValidString(got) {
		t.Fatalf("Truncate produced invalid UTF-8: %q", got)
	}
	if w := runewidth.StringWidth(got); w > 12 {
		t.Errorf("Truncate width = %d, want <= 12 (wide runes count double)", w)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("Truncate = %q, want ellipsis suffix", got)
	}
}

func TestTruncateMixedWidth(t *testing.T) {
	got := Truncate("Gold rally 黄金大涨 continues", 16)
	if !utf8.ValidString(got) {
		t.Fatalf("Truncate produced invalid UTF-8: %q", got)
	}
	if w := runewidth.StringWidth(got); w > 16 {
		t.Errorf("Truncate width = %d, want <= 16", w)
	}
}
