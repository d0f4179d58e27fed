package docs

import (
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	got := strings.Join(Topics(), ",")
	if got != "config,drag,keys,overview" {
		t.Fatalf("topics=%s", got)
	}
}

func TestGet(t *testing.T) {
	md, ok := Get(" KEYS ")
	if !ok || !strings.HasPrefix(md, "# Keys") {
		t.Fatalf("Get(keys)=%q,%v", md, ok)
	}
	for _, bad := range []string{"", "missing", "../docs", "content/keys"} {
		if _, ok := Get(bad); ok {
			t.Fatalf("Get(%q) succeeded", bad)
		}
	}
}

func TestRender(t *testing.T) {
	md, _ := Get("overview")
	out, err := Render(md, 60, "notty")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "checklist") || !strings.Contains(out, "Todo") {
		t.Fatalf("unexpected render:\n%s", out)
	}
}
