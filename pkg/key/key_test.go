package key

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestLegend(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	if err := (&Key{Out: &buf}).Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Lists", "Interface", "♥", "⚐", "Watched", "toggle favorites"} {
		if !strings.Contains(out, want) {
			t.Errorf("legend missing %q:\n%s", want, out)
		}
	}
	lines := strings.Split(out, "\n")
	var favorites string
	for _, l := range lines {
		if strings.Contains(l, "Favorites") {
			favorites = l
		}
	}
	if f := strings.Fields(favorites); len(f) != 4 || f[0] != "f" {
		t.Fatalf("favorites row = %q", favorites)
	}
}
