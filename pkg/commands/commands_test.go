package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestCommandTree(t *testing.T) {
	root := New()
	want := map[string]bool{"ui": false, "month": false, "day": false, "export": false, "version": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing %q command", name)
		}
	}
	if root.PersistentFlags().Lookup("base-url") == nil {
		t.Error("missing --base-url")
	}
}

func TestDayRejectsBadDate(t *testing.T) {
	root := New()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"day", "tomorrow"})
	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "YYYY-MM-DD") {
		t.Fatalf("expected a date error, got %v", err)
	}
}
