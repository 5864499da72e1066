package output

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestRenderModuleTree(t *testing.T) {
	tests := []struct {
		name    string
		modules map[string]string
		want    []string
	}{
		{
			name:    "empty",
			modules: nil,
			want:    nil,
		},
		{
			name: "flat modules sorted by name",
			modules: map[string]string{
				"subject": "",
				"admin":   "",
				"docs":    "no package.json",
			},
			want: []string{
				"projects/",
				"├── admin/",
				"├── docs/",
				"└── subject/",
			},
		},
		{
			name: "nested modules below an intermediate directory",
			modules: map[string]string{
				"apps/admin": "",
				"apps/cms":   "",
				"shared":     "",
			},
			want: []string{
				"projects/",
				"├── apps/",
				"│   ├── admin/",
				"│   └── cms/",
				"└── shared/",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderModuleTree("projects", tt.modules)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}

			lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
			assert.Len(t, lines, len(tt.want))
			for i, want := range tt.want {
				assert.True(t, strings.HasPrefix(lines[i], want), "line %d: got %q, want prefix %q", i, lines[i], want)
			}
		})
	}
}

func TestRenderModuleTree_Notes(t *testing.T) {
	got := RenderModuleTree("projects", map[string]string{
		".":    "root module",
		"docs": "no package.json",
	})

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "root module")
	assert.Contains(t, lines[1], "no package.json")
	idx := strings.Index(lines[1], "no package.json")
	assert.Equal(t, noteColumn, lipgloss.Width(lines[1][:idx]), "notes start at the note column")
}
