package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuizResponseAcceptsNumericIDs(t *testing.T) {
	var rs []QuizResponse
	require.NoError(t, json.Unmarshal([]byte(`[
		{"question_id": 3, "answer": "Often", "answer_index": 2, "score": 2},
		{"question_id": "q4", "answer": 1, "score": 0.5},
		{"question_id": null}
	]`), &rs))

	require.Len(t, rs, 3)
	require.NotNil(t, rs[0].QuestionID)
	assert.Equal(t, FlexString("3"), *rs[0].QuestionID)
	assert.Equal(t, FlexString("Often"), *rs[0].Answer)
	assert.Equal(t, FlexNumber(2), rs[0].AnswerIndex)
	assert.Equal(t, FlexString("q4"), *rs[1].QuestionID)
	assert.Equal(t, FlexString("1"), *rs[1].Answer)
	assert.Equal(t, FlexNumber(0.5), rs[1].Score)
	assert.Nil(t, rs[2].QuestionID)
	assert.Nil(t, rs[2].Answer)
}

func TestQuizResponseLenientNumbers(t *testing.T) {
	var rs []QuizResponse
	require.NoError(t, json.Unmarshal([]byte(`[
		{"question_id": "q1", "answer": "Often", "answer_index": "2", "score": "3"},
		{"question_id": "q2", "score": " 1.5 "},
		{"question_id": "q3", "answer_index": null, "score": "lots"},
		{"question_id": "q4", "score": true}
	]`), &rs))

	require.Len(t, rs, 4)
	assert.Equal(t, FlexNumber(3), rs[0].Score)
	assert.Equal(t, FlexNumber(2), rs[0].AnswerIndex)
	assert.Equal(t, FlexNumber(1.5), rs[1].Score)
	assert.Equal(t, FlexNumber(0), rs[2].Score)
	assert.Equal(t, FlexNumber(0), rs[2].AnswerIndex)
	assert.Equal(t, FlexNumber(0), rs[3].Score)
}

func TestFlexStringNonStringValues(t *testing.T) {
	var f FlexString
	assert.NoError(t, json.Unmarshal([]byte(`true`), &f))
	assert.Equal(t, FlexString("true"), f)
	// objects are valid JSON and kept verbatim
	assert.NoError(t, json.Unmarshal([]byte(`{"a":1}`), &f))
	assert.Error(t, json.Unmarshal([]byte(`{bad`), &f))
}

func TestSessionExpired(t *testing.T) {
	s := Session{ExpiresAt: mustTime(t, "2026-10-15T10:00:00Z")}
	assert.False(t, s.Expired(mustTime(t, "2026-10-15T09:59:59Z")))
	assert.True(t, s.Expired(mustTime(t, "2026-10-15T10:00:01Z")))
}

func mustTime(t *testing.T, v string) time.Time {
	t.Helper()
	tm, err := time.Parse(time.RFC3339, v)
	require.NoError(t, err)
	return tm
}
