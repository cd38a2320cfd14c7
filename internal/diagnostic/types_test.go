package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_Collect(t *testing.T) {
	var d Diagnostics

	assert.True(t, d.IsValid())
	assert.NoError(t, d.Error())

	d.AddInfo(CodeSelected, "selected for generation", "inventory.Item", "")
	d.AddWarning(CodeEnumEmpty, "enum has no constants", "inventory.Grade", "")
	d.AddError(CodeFlatten, "flatten requires a struct type", "inventory.Item", "Count")

	assert.False(t, d.IsValid())
	assert.True(t, d.HasErrors())
	require.Len(t, d.All(), 3)
	assert.Equal(t, DiagnosticError, d.All()[0].Severity)
	assert.Equal(t, DiagnosticInfo, d.All()[2].Severity)

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t, "inventory.Item.Count: [E_FLATTEN] flatten requires a struct type", err.Error())
}

func TestDiagnostics_AddAndMerge(t *testing.T) {
	var a, b Diagnostics

	a.Add(Diagnostic{Severity: DiagnosticWarning, Code: CodeEnumEmpty, Message: "empty"})
	b.Add(Diagnostic{Severity: DiagnosticError, Code: CodeDirective, Message: "bad", Type: "T", Pos: "a.go:3:6"})
	b.Add(Diagnostic{Severity: DiagnosticInfo, Message: "note"})

	a.Merge(b)
	assert.Len(t, a.Errors, 1)
	assert.Len(t, a.Warnings, 1)
	assert.Len(t, a.Infos, 1)
	assert.Equal(t, "a.go:3:6 T: [E_DIRECTIVE] bad", a.Errors[0].String())
	assert.Equal(t, "note", a.Infos[0].String())
}

func TestDiagnosticSeverity_String(t *testing.T) {
	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(7).String())
}
