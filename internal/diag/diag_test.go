package diag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Baleg00/tau/internal/source"
)

func TestBag_FullAfterCapacityErrors(t *testing.T) {
	b := NewBag(2)
	require.False(t, b.Full())

	b.Report(Diagnostic{Severity: SeverityError, Title: "first"})
	require.False(t, b.Full())

	b.Report(Diagnostic{Severity: SeverityError, Title: "second"})
	require.True(t, b.Full())

	b.Report(Diagnostic{Severity: SeverityError, Title: "dropped"})
	require.Len(t, b.Errors(), 2, "errors past capacity must be dropped, not appended")
}

func TestBag_WarningsNeverFillTheBag(t *testing.T) {
	b := NewBag(1)
	for i := 0; i < 10; i++ {
		b.Report(Diagnostic{Severity: SeverityWarning, Title: "warn"})
	}
	require.False(t, b.Full())
	require.Len(t, b.Warnings(), 10)
	require.False(t, b.HasErrors())
}

func TestNewBag_NonPositiveCapacityUsesDefault(t *testing.T) {
	b := NewBag(0)
	require.Equal(t, DefaultCapacity, b.capacity)
}

func TestBag_RenderWritesCrumbWithLocation(t *testing.T) {
	reg := source.NewRegistry()
	f := reg.LoadString("main.tau", "let x = 1;\n")

	b := NewBag(DefaultCapacity)
	b.Report(Diagnostic{
		Severity: SeverityError,
		Code:     12,
		Title:    "undefined identifier 'x'",
		Loc:      source.Location{FileID: f.ID, Offset: 4, Length: 1},
	})

	var buf bytes.Buffer
	b.Render(&buf, nil, reg)

	out := buf.String()
	require.Contains(t, out, "Error (E0012): undefined identifier 'x'")
	require.Contains(t, out, "main.tau:1:")
	require.Contains(t, out, "let x = 1;")
}
