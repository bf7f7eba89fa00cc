package util

import (
	"reflect"
	"testing"
)

func TestBrowserCommand(t *testing.T) {
	t.Parallel()

	url := LocalURL(20262)
	if url != "http://localhost:20262" {
		t.Fatalf("LocalURL=%q", url)
	}

	cases := map[string][]string{
		"windows": {"rundll32", "url.dll,FileProtocolHandler", url},
		"darwin":  {"open", url},
		"linux":   {"xdg-open", url},
		"freebsd": {"xdg-open", url},
	}
	for goos, want := range cases {
		if got := BrowserCommand(goos, url); !reflect.DeepEqual(got, want) {
			t.Fatalf("BrowserCommand(%s)=%v, want %v", goos, got, want)
		}
	}
}

func TestFallbackCommands(t *testing.T) {
	t.Parallel()

	url := LocalURL(8080)
	if got := FallbackCommands("windows", url); !reflect.DeepEqual(got, [][]string{{"explorer", url}}) {
		t.Fatalf("windows fallback=%v", got)
	}
	linux := FallbackCommands("linux", url)
	if len(linux) != len(linuxFallbackBrowsers) || linux[0][0] != "google-chrome" || linux[0][1] != url {
		t.Fatalf("linux fallback=%v", linux)
	}
	if got := FallbackCommands("darwin", url); got != nil {
		t.Fatalf("darwin fallback=%v", got)
	}
}
