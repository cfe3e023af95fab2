package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, in := range []string{"PRESENT", "Present", "present", "pReSeNt"} {
		st, ok := ParseStatus(in)
		assert.True(t, ok, in)
		assert.Equal(t, StatusPresent, st)
		assert.True(t, st.IsPresent())
	}

	for _, in := range []string{"presents", " present", "", "Here"} {
		st, ok := ParseStatus(in)
		assert.False(t, ok, in)
		assert.Equal(t, Status(in), st)
		assert.False(t, st.IsPresent(), in)
	}

	st, ok := ParseStatus("excused")
	assert.True(t, ok)
	assert.Equal(t, StatusExcused, st)
}

func TestFlexStringDecoding(t *testing.T) {
	var e SubmitEntry
	require.NoError(t, json.Unmarshal([]byte(`{
		"student_id": 1042,
		"id": "ignored",
		"class": 7,
		"subject": null,
		"day": false,
		"status": {"nested": true}
	}`), &e))

	assert.Equal(t, "1042", e.ResolveStudentID())
	assert.Equal(t, "7", e.ResolveClassName())
	assert.Equal(t, FlexString(""), e.Subject)
	assert.Equal(t, FlexString(""), e.Day)
	assert.Equal(t, FlexString(""), e.Status)
}

func TestFlexStringZeroFallsThrough(t *testing.T) {
	for _, zero := range []string{`0`, `-0`, `0.0`, `0e3`} {
		var e SubmitEntry
		require.NoError(t, json.Unmarshal([]byte(`{"student_id": `+zero+`, "id": "S9"}`), &e), zero)
		assert.Equal(t, "S9", e.ResolveStudentID(), zero)
	}

	var e SubmitEntry
	require.NoError(t, json.Unmarshal([]byte(`{"student_id": "0", "id": "S9"}`), &e))
	assert.Equal(t, "0", e.ResolveStudentID())

	require.NoError(t, json.Unmarshal([]byte(`{"student_id": 0, "id": 0, "student": 0}`), &e))
	assert.Empty(t, e.ResolveStudentID())
}
