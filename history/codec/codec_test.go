package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/revertable/history"
)

type settings struct {
	Theme string `json:"theme" yaml:"theme" toml:"theme"`
	Width int    `json:"width" yaml:"width" toml:"width"`
}

func mutated() *history.Stack[int] {
	s := history.New(100)
	*s.Mut() = 300
	return s
}

func TestMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{"with history", Options{}, `{"current":300,"history":[100]}`},
		{"omit history", Options{OmitHistory: true}, `{"current":300}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mutated()
			data, err := Marshal(s, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
			assert.Equal(t, 1, s.Len(), "encoding must not touch history")
		})
	}
}

func TestMarshalIndent(t *testing.T) {
	data, err := Marshal(mutated(), Options{Indent: "  "})
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"current\": 300")
}

func TestOmitHistoryPerFormat(t *testing.T) {
	for _, f := range []Format{JSON, YAML, TOML} {
		t.Run(f.String(), func(t *testing.T) {
			data, err := Marshal(mutated(), Options{Format: f, OmitHistory: true})
			require.NoError(t, err)
			assert.Contains(t, string(data), "300")
			assert.NotContains(t, string(data), "history")

			out := history.New(0)
			require.NoError(t, Unmarshal(data, out, f))
			assert.Equal(t, 300, out.Get())
			assert.Equal(t, 0, out.Len())
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, f := range []Format{JSON, YAML, TOML} {
		t.Run(f.String(), func(t *testing.T) {
			s := history.New(settings{Theme: "dark", Width: 80})
			s.Mut().Width = 100
			s.Mut().Theme = "light"

			var buf bytes.Buffer
			require.NoError(t, Write(&buf, s, Options{Format: f}))

			out := history.New(settings{})
			require.NoError(t, Read(&buf, out, f))
			assert.Equal(t, s.Get(), out.Get())
			assert.Equal(t, s.Snapshots(), out.Snapshots())

			require.NoError(t, out.RevertAll())
			assert.Equal(t, settings{Theme: "dark", Width: 80}, out.Get())
		})
	}
}

func TestTOMLDocument(t *testing.T) {
	data, err := Marshal(mutated(), Options{Format: TOML})
	require.NoError(t, err)
	assert.Contains(t, string(data), "current = 300")
	assert.Contains(t, string(data), "history = [100]")
}

func TestUnmarshalErrors(t *testing.T) {
	s := history.New(1)
	*s.Mut() = 2

	err := Unmarshal([]byte(`{"current":`), s, JSON)
	require.Error(t, err)
	assert.Equal(t, 2, s.Get())
	assert.Equal(t, 1, s.Len())

	require.ErrorIs(t, Unmarshal([]byte(`{}`), s, Format(9)), ErrUnknownFormat)
	require.ErrorIs(t, Unmarshal[int]([]byte(`{}`), nil, JSON), ErrNilStack)

	_, err = Marshal(s, Options{Format: Format(9)})
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", JSON},
		{"YAML", YAML},
		{"yml", YAML},
		{" toml ", TOML},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseFormat("xml")
	require.ErrorIs(t, err, ErrUnknownFormat)
	assert.True(t, strings.Contains(err.Error(), "xml"))
	assert.Equal(t, "unknown", Format(9).String())
}
