package reactor

import "testing"

func TestDefaultConfigUrlsResolvesConnectURL(t *testing.T) {
	cfg := DefaultConfig()
	urls, err := cfg.Urls()
	if err != nil {
		t.Fatalf("Urls: %v", err)
	}
	if got := urls.Next().String(); got != "amqp://localhost:5672" {
		t.Fatalf("Urls().Next() = %q, want default ConnectURL", got)
	}
}

func TestConfigUrlsPrefersConnectURLs(t *testing.T) {
	cfg := Config{
		ConnectURL:  "amqp://should-not-be-used:5672",
		ConnectURLs: []string{"amqp://a:5672", "amqp://b:5672"},
	}
	urls, err := cfg.Urls()
	if err != nil {
		t.Fatalf("Urls: %v", err)
	}
	if got := urls.Next().Host; got != "a" {
		t.Fatalf("first resolved host = %q, want a", got)
	}
	if got := urls.Next().Host; got != "b" {
		t.Fatalf("second resolved host = %q, want b", got)
	}
}

func TestConfigUrlsRejectsEmpty(t *testing.T) {
	var cfg Config
	if _, err := cfg.Urls(); err != ErrNoAddress {
		t.Fatalf("Urls() error = %v, want ErrNoAddress", err)
	}
}
