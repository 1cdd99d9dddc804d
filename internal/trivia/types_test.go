package trivia

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexIntDecoding(t *testing.T) {
	cases := map[string]int{
		`6`:     6,
		`"6"`:   6,
		`" 4 "`: 4,
		`null`:  0,
		`""`:    0,
		`0`:     0,
	}
	for raw, want := range cases {
		var f FlexInt
		require.NoError(t, json.Unmarshal([]byte(raw), &f), raw)
		assert.Equal(t, want, f.Int(), raw)
	}

	for _, raw := range []string{`"six"`, `4.5`, `true`, `{}`} {
		var f FlexInt
		assert.Error(t, json.Unmarshal([]byte(raw), &f), raw)
	}
}

func TestQuizRequestDecoding(t *testing.T) {
	var req QuizRequest
	body := `{"quiz_category":{"type":"Sports","id":"6"},"previous_questions":[24,"11"]}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	assert.Equal(t, 6, req.CategoryID())
	assert.Equal(t, []int{24, 11}, req.PreviousIDs())

	var all QuizRequest
	require.NoError(t, json.Unmarshal([]byte(`{"previous_questions":[]}`), &all))
	assert.Equal(t, 0, all.CategoryID())
	assert.Empty(t, all.PreviousIDs())
}

func TestCategoryMapJSON(t *testing.T) {
	raw, err := json.Marshal(CategoryMap([]Category{{ID: 1, Type: "Science"}, {ID: 6, Type: "Sports"}}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"1":"Science","6":"Sports"}`, string(raw))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(notFound("op", ErrNotFound)))
	assert.Equal(t, KindFault, KindOf(assert.AnError))
	assert.ErrorIs(t, notFound("op", ErrNotFound), ErrNotFound)
	assert.Contains(t, badRequest("create question", nil).Error(), "bad_request")
}
