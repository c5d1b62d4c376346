package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

type pkgHarness struct {
	t   *testing.T
	dir string
}

func newPkg(t *testing.T) *pkgHarness {
	t.Helper()
	return &pkgHarness{t: t, dir: t.TempDir()}
}

func (p *pkgHarness) write(rel, content string) string {
	p.t.Helper()
	path := filepath.Join(p.dir, rel)
	require.NoError(p.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(p.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (p *pkgHarness) out(rel string) string {
	return filepath.Join(p.dir, rel)
}

func (p *pkgHarness) read(rel string) string {
	p.t.Helper()
	b, err := os.ReadFile(filepath.Join(p.dir, rel))
	require.NoError(p.t, err)
	return string(b)
}

// writeHud lays down a package shaped like examples/hud.
func writeHud(p *pkgHarness) {
	p.write("hud.go", `package hud

import (
	"github.com/sghaida/onready/examples/scene"
	"github.com/sghaida/onready/ready"
)

type Hud struct {
	scene.Base

	scoreLabel *scene.Label `+"`onready:\"ScoreLabel\"`"+`
	title      scene.Node
}

//onready:path TitleNode
func (h *Hud) Title() scene.Node { return h.title }

func (h *Hud) Ready(reg *ready.Registry) (*ready.Result, error) { return nil, nil }

func (h *Hud) SetScore(text string) {}
`)
}

// bufLogger returns a logger writing logfmt to the returned buffer.
func bufLogger() (*charmlog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := charmlog.NewWithOptions(&buf, charmlog.Options{Formatter: charmlog.LogfmtFormatter})
	return l, &buf
}

func assertContainsInOrder(t *testing.T, s string, parts ...string) {
	t.Helper()
	pos := 0
	for _, part := range parts {
		i := strings.Index(s[pos:], part)
		if i < 0 {
			t.Fatalf("expected to find %q after pos=%d in:\n%s", part, pos, s)
		}
		pos += i + len(part)
	}
}
