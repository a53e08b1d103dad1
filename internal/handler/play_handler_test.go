package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubmitAnswer_RequiresAuthenticatedUser(t *testing.T) {
	handler := &PlayHandler{}

	c, w := newTestGinContext("POST", "/api/play/answer", map[string]interface{}{
		"question_id":  "7df29530-3bfb-4291-a1cb-58e950907666",
		"answer_index": 0,
	})
	// user_id в контексте отсутствует - middleware не отработал
	handler.SubmitAnswer(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubmitAnswer_ValidationErrors(t *testing.T) {
	handler := &PlayHandler{}

	tests := []struct {
		name string
		body interface{}
	}{
		{
			name: "empty body",
			body: nil,
		},
		{
			name: "question_id not a uuid",
			body: map[string]interface{}{"question_id": "abc", "answer_index": 0},
		},
		{
			name: "missing answer_index",
			body: map[string]interface{}{"question_id": "7df29530-3bfb-4291-a1cb-58e950907666"},
		},
		{
			name: "answer_index out of range",
			body: map[string]interface{}{"question_id": "7df29530-3bfb-4291-a1cb-58e950907666", "answer_index": 9},
		},
		{
			name: "negative answer_index",
			body: map[string]interface{}{"question_id": "7df29530-3bfb-4291-a1cb-58e950907666", "answer_index": -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("POST", "/api/play/answer", tt.body)
			c.Set("user_id", "u1")
			handler.SubmitAnswer(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := parseJSONResponse(t, w)
			assert.Contains(t, resp, "error")
		})
	}
}
