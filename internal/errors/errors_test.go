package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "message only",
			err:  &Error{Type: ErrorTypeParse, Message: "bad yaml"},
			want: "bad yaml",
		},
		{
			name: "with code",
			err:  &Error{Type: ErrorTypeParse, Code: "yaml_syntax", Message: "bad yaml"},
			want: "[yaml_syntax] bad yaml",
		},
		{
			name: "with path and cause",
			err:  &Error{Code: "file_read_error", Message: "failed to read file", Path: "a.yaml", Cause: fmt.Errorf("denied")},
			want: "[file_read_error] a.yaml: failed to read file: denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestCopyBuilders(t *testing.T) {
	t.Parallel()

	base := Create(CodeHistoryTimeout)
	withPath := base.WithPath("/data/db")

	assert.Empty(t, base.Path, "builders must not mutate the original")
	assert.Equal(t, "/data/db", withPath.Path)
	assert.Equal(t, base.Code, withPath.Code)

	cause := errors.New("deadline exceeded")
	wrapped := withPath.WithCause(cause)
	assert.ErrorIs(t, wrapped, wrapped)
	assert.Equal(t, cause, errors.Unwrap(wrapped))
}

func TestCreateFromRegistry(t *testing.T) {
	t.Parallel()

	err := Create(CodeYAMLSyntax)
	assert.Equal(t, ErrorTypeParse, err.Type)
	assert.Equal(t, CodeYAMLSyntax, err.Code)

	unknown := Create("no_such_code")
	assert.Equal(t, ErrorTypeInternal, unknown.Type)
}

func TestTypeHelpers(t *testing.T) {
	t.Parallel()

	err := ErrHistoryTimeout(errors.New("slow"))
	assert.True(t, IsProvider(err))
	assert.False(t, IsParse(err))
	assert.Equal(t, ErrorTypeProvider, GetType(err))

	wrapped := fmt.Errorf("outer: %w", err)
	assert.True(t, IsProvider(wrapped), "type survives wrapping")

	assert.Equal(t, ErrorTypeUnknown, GetType(errors.New("plain")))
}
