package scraper

import "testing"

func TestCleanText(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"", ""},
		{"  plain  text ", "plain text"},
		{"<p>Banjir <b>di</b> Timika</p>", "Banjir di Timika"},
		{"Baris\n\tsatu   dua", "Baris satu dua"},
	}
	for _, tc := range cases {
		if got := CleanText(tc.in); got != tc.want {
			t.Errorf("CleanText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	if got := Summarize("kurz", 10); got != "kurz" {
		t.Errorf("short text = %q, want unchanged", got)
	}

	got := Summarize("satu dua tiga empat lima", 12)
	if got != "satu dua…" {
		t.Errorf("Summarize = %q, want cut at word boundary with ellipsis", got)
	}

	// HTML wird vor dem Kürzen entfernt.
	if got := Summarize("<p>satu dua</p>", 100); got != "satu dua" {
		t.Errorf("Summarize html = %q", got)
	}
}
