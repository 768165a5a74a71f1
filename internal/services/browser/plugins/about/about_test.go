package about

import (
	"context"
	"strings"
	"testing"
)

func TestHelpMenuItem(t *testing.T) {
	t.Parallel()

	items, err := New("1.2.0").HelpMenuItems(context.Background())
	if err != nil {
		t.Fatalf("HelpMenuItems() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].Priority != 999 {
		t.Fatalf("priority = %d, want 999", items[0].Priority)
	}
}

func TestPanelCarriesVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		version string
		want    string
	}{
		{version: "1.2.0", want: "pgconsole 1.2.0"},
		{version: "", want: "pgconsole dev"},
	}
	for _, tc := range tests {
		panels, err := New(tc.version).Panels(context.Background())
		if err != nil {
			t.Fatalf("Panels() error = %v", err)
		}
		if len(panels) != 1 || !strings.Contains(panels[0].Content, tc.want) {
			t.Fatalf("panels = %+v, want content containing %q", panels, tc.want)
		}
	}
}

func TestOtherHooksContributeNothing(t *testing.T) {
	t.Parallel()

	items, err := New("").FileMenuItems(context.Background())
	if err != nil || items != nil {
		t.Fatalf("FileMenuItems() = %v, %v, want nil, nil", items, err)
	}
}
