package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AnalysisError
		want string
	}{
		{
			name: "code and message",
			err:  InvalidInput("threshold must be positive"),
			want: "[INVALID_INPUT] threshold must be positive",
		},
		{
			name: "with section and detail",
			err:  MissingColumn("Box_Office").InSection("seasonal-box-office"),
			want: `[MISSING_COLUMN] seasonal-box-office: column "Box_Office" not found (column=Box_Office)`,
		},
		{
			name: "with cause",
			err:  RenderFailed("heatmap", errors.New("disk full")),
			want: "[RENDER_FAILED] failed to render heatmap: disk full",
		},
		{
			name: "details are sorted",
			err:  EmptySelection("genres").WithDetail("prefix", "Genre_").WithDetail("denied", 7),
			want: "[EMPTY_SELECTION] no genres selected (denied=7, prefix=Genre_)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAnalysisError_Unwrap(t *testing.T) {
	root := errors.New("unexpected EOF")
	err := LoadFailed("films.csv", root)

	assert.True(t, errors.Is(err, root))
	assert.Equal(t, "films.csv", err.Details["path"])
}

func TestAnalysisError_IsByCode(t *testing.T) {
	wrapped := fmt.Errorf("director-success: %w", MissingColumn("Title"))

	assert.True(t, errors.Is(wrapped, ErrMissingColumn))
	assert.False(t, errors.Is(wrapped, ErrEmptySelection))

	var ae *AnalysisError
	require.True(t, errors.As(wrapped, &ae))
	assert.Equal(t, CodeMissingColumn, ae.Code)
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		code  Code
		check func(error) bool
	}{
		{"missing column", MissingColumn("x"), CodeMissingColumn, IsMissingColumn},
		{"empty selection", EmptySelection("rows"), CodeEmptySelection, IsEmptySelection},
		{"invalid input", InvalidInput("bad"), CodeInvalidInput, IsInvalidInput},
		{"render failed", RenderFailed("chord", nil), CodeRenderFailed, func(err error) bool { return errors.Is(err, ErrRenderFailed) }},
		{"load failed", fmt.Errorf("wrap: %w", LoadFailed("a.xlsx", nil)), CodeLoadFailed, func(err error) bool { return errors.Is(err, ErrLoadFailed) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, CodeOf(tt.err))
			assert.True(t, tt.check(tt.err))
		})
	}

	assert.Equal(t, Code(""), CodeOf(errors.New("plain")))
	assert.False(t, IsMissingColumn(nil))
}
