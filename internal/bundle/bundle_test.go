package bundle

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() (*Registry, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	return NewRegistry(logger), &buf
}

func TestMakeMap(t *testing.T) {
	m := MakeMap([]string{"a.sh", "b.sh"}, "/srv/scripts", "/root/deploy")
	assert.Equal(t, map[string]string{
		"/root/deploy/a.sh": "/srv/scripts/a.sh",
		"/root/deploy/b.sh": "/srv/scripts/b.sh",
	}, m)
}

func TestRegisterSimple(t *testing.T) {
	r, _ := newTestRegistry()
	r.RegisterSimple("web",
		[]string{"setup.sh"},
		[]string{"/etc/app.conf"},
		"scripts", "files", "/srv/bundles", "/root/deploy")

	b, ok := r.Get("web")
	require.True(t, ok)
	assert.Equal(t, map[string]string{
		"/root/deploy/setup.sh": "/srv/bundles/scripts/setup.sh",
	}, b.ScriptMap)
	assert.Equal(t, map[string]string{
		"/etc/app.conf": "/srv/bundles/files/app.conf",
	}, b.FileMap)
}

func TestRegisterSimple_DuplicateScriptsCollapse(t *testing.T) {
	r, _ := newTestRegistry()
	r.RegisterSimple("dup", []string{"run.sh", "run.sh"}, nil,
		"scripts", "files", "/srv", "/root/deploy")
	b, ok := r.Get("dup")
	require.True(t, ok)
	assert.Len(t, b.ScriptMap, 1)
}

func TestRegisterOverwrite(t *testing.T) {
	r, buf := newTestRegistry()
	r.Register("web", map[string]string{"/t/a": "/s/a"}, nil)
	assert.NotContains(t, buf.String(), "overwriting bundle")

	r.Register("web", map[string]string{"/t/b": "/s/b"}, nil)
	assert.Contains(t, buf.String(), "overwriting bundle")

	b, ok := r.Get("web")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"/t/b": "/s/b"}, b.ScriptMap, "last write wins, old map fully replaced")
	assert.Equal(t, 1, r.Len())
}

func TestRegisterNilMaps(t *testing.T) {
	r, _ := newTestRegistry()
	r.Register("empty", nil, nil)
	b, ok := r.Get("empty")
	require.True(t, ok)
	assert.NotNil(t, b.ScriptMap)
	assert.NotNil(t, b.FileMap)
}

func TestNamesSorted(t *testing.T) {
	r, _ := newTestRegistry()
	r.Register("web", nil, nil)
	r.Register("base", nil, nil)
	r.Register("db", nil, nil)
	assert.Equal(t, []string{"base", "db", "web"}, r.Names())
}

func TestMatch(t *testing.T) {
	r, _ := newTestRegistry()
	r.Register("web", nil, nil)
	r.Register("web-tls", nil, nil)
	r.Register("db", nil, nil)

	tests := []struct {
		pattern string
		want    []string
	}{
		{"web*", []string{"web", "web-tls"}},
		{"*", []string{"db", "web", "web-tls"}},
		{"db", []string{"db"}},
		{"nope*", nil},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := r.Match(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchBadPattern(t *testing.T) {
	r, _ := newTestRegistry()
	r.Register("web", nil, nil)
	_, err := r.Match("[")
	assert.Error(t, err)
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		want     bool
	}{
		{"marker", "#!/bin/sh\n# split-lines: true\necho hi\n", true},
		{"uppercase", "# SPLIT-LINES: TRUE\n", true},
		{"no space", "split-lines:true", true},
		{"false", "# split-lines: false\n", false},
		{"absent", "echo hi\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLines(tt.contents))
		})
	}
}
