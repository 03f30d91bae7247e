package format

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormat_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format OutputFormat
		want   bool
	}{
		{name: "text format", format: TextFormat, want: true},
		{name: "json format", format: JSONFormat, want: true},
		{name: "invalid format", format: "yaml", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.format.IsValid())
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	f, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, TextFormat, f)

	f, err = Parse(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, JSONFormat, f)

	_, err = Parse("xml")
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestWrite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  OutputFormat
		text    string
		value   any
		want    string
		wantErr bool
	}{
		{
			name:   "text appends newline",
			format: TextFormat,
			text:   "Button",
			want:   "Button\n",
		},
		{
			name:   "json encodes value",
			format: JSONFormat,
			text:   "ignored",
			value:  map[string]string{"name": "Button"},
			want:   "{\n  \"name\": \"Button\"\n}\n",
		},
		{
			name:    "unknown format",
			format:  "xml",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			err := Write(&buf, tt.format, tt.text, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}
