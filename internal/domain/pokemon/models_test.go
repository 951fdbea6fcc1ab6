package pokemon

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadState_JSON(t *testing.T) {
	for _, state := range []LoadState{Idle, Loading} {
		t.Run(state.String(), func(t *testing.T) {
			data, err := json.Marshal(map[string]LoadState{"state": state})
			require.NoError(t, err)
			assert.JSONEq(t, `{"state":"`+state.String()+`"}`, string(data))

			var decoded map[string]LoadState
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, state, decoded["state"])
		})
	}
}

func TestLoadState_UnmarshalTextRejectsUnknown(t *testing.T) {
	s := Loading
	err := s.UnmarshalText([]byte("busy"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), `"busy"`)
	assert.Equal(t, Loading, s, "state is left untouched")
}
