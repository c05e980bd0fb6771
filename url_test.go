package reactor

import "testing"

func TestUrlRoundTrip(t *testing.T) {
	cases := []string{
		"amqp://guest/guest@localhost:5672",
		"localhost",
		"localhost:5672",
		"amqp://localhost",
		"[::1]:5672",
		"user@example.com:1234",
	}
	for _, s := range cases {
		u, err := ParseURL(s)
		if err != nil {
			t.Fatalf("ParseURL(%q): %v", s, err)
		}
		if got := u.String(); got != s {
			t.Errorf("round trip mismatch: ParseURL(%q).String() = %q", s, got)
		}
	}
}

func TestUrlDefaults(t *testing.T) {
	u, err := ParseURL("localhost")
	if err != nil {
		t.Fatalf("ParseURL: %v", err)
	}
	if u.Scheme != DefaultScheme || u.Port != DefaultPort {
		t.Fatalf("expected default scheme/port, got %+v", u)
	}
}

func TestUrlsRoundRobinRestarts(t *testing.T) {
	urls, err := NewUrls("host-a:5672", "host-b:5672")
	if err != nil {
		t.Fatalf("NewUrls: %v", err)
	}
	seq := []string{
		urls.Next().Host,
		urls.Next().Host,
		urls.Next().Host,
		urls.Next().Host,
	}
	want := []string{"host-a", "host-b", "host-a", "host-b"}
	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("round-robin sequence = %v, want %v", seq, want)
		}
	}
}
