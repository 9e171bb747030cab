package history

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalJSON(t *testing.T) {
	s := New(100)
	*s.Mut() = 300

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"current":300,"history":[100]}`, string(data))
	assert.Equal(t, 1, s.Len())
}

func TestMarshalJSONEmptyHistory(t *testing.T) {
	data, err := json.Marshal(New("x"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"current":"x","history":[]}`, string(data))
}

func TestJSONRoundTrip(t *testing.T) {
	s := New(point{X: 1, Y: 1})
	s.Mut().X = 2
	s.Mut().Y = 3

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var out Stack[point]
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, s.Get(), out.Get())
	assert.Equal(t, s.Snapshots(), out.Snapshots())

	require.NoError(t, out.Revert())
	assert.Equal(t, point{X: 2, Y: 1}, out.Get())
}

func TestUnmarshalJSONWithoutHistory(t *testing.T) {
	s := New(1)
	*s.Mut() = 2

	require.NoError(t, json.Unmarshal([]byte(`{"current":300}`), s))
	assert.Equal(t, 300, s.Get())
	assert.Equal(t, 0, s.Len())
}

func TestUnmarshalJSONInvalid(t *testing.T) {
	s := New(1)
	err := json.Unmarshal([]byte(`{"current":"nope"}`), s)
	require.Error(t, err)
	assert.Equal(t, 1, s.Get())
}

func TestRecordIsIndependent(t *testing.T) {
	s := New(tags{Names: []string{"a"}})
	s.Mut().Names = []string{"b"}

	rec := s.Record()
	rec.Current.Names[0] = "x"
	rec.History[0].Names[0] = "y"

	assert.Equal(t, []string{"b"}, s.Get().Names)
	assert.Equal(t, []string{"a"}, s.Snapshots()[0].Names)
}
