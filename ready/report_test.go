package ready_test

import (
	"bytes"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/sghaida/onready/ready"
)

func TestDiagnostic_Message(t *testing.T) {
	t.Parallel()

	d := ready.Diagnostic{Component: ready.Component, Member: "Title", Type: "hud.Hud", Path: "TitleNode"}
	assert.Equal(t, `onready: property Title in hud.Hud is marked with path "TitleNode" but lacks a setter`, d.Message())
}

func TestLogReporter_WritesWarning(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := charmlog.NewWithOptions(&buf, charmlog.Options{Level: charmlog.DebugLevel})
	logger.SetFormatter(charmlog.LogfmtFormatter)

	rep := ready.NewLogReporter(logger)
	rep.Report(ready.Diagnostic{Component: ready.Component, Member: "Title", Type: "hud.Hud", Path: "TitleNode"})

	out := buf.String()
	assert.Contains(t, out, "level=warn")
	assert.Contains(t, out, "member=Title")
	assert.Contains(t, out, "type=hud.Hud")
	assert.Contains(t, out, "path=TitleNode")
	assert.Contains(t, out, "component=onready")
}

func TestReporterFunc_And_Discard(t *testing.T) {
	t.Parallel()

	var got []string
	rep := ready.ReporterFunc(func(d ready.Diagnostic) { got = append(got, d.Member) })
	rep.Report(ready.Diagnostic{Member: "a"})
	ready.Discard.Report(ready.Diagnostic{Member: "b"})

	assert.Equal(t, []string{"a"}, got)
	assert.NotNil(t, ready.DefaultReporter())
	assert.NotNil(t, ready.NewLogReporter(nil))
}
