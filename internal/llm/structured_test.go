package llm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testTask struct {
	TaskName string  `json:"taskName"`
	Weight   float64 `json:"weight"`
}

func TestExtractJSON_CleanJSON(t *testing.T) {
	raw := `{"taskName":"Design review","weight":0.95}`
	result, err := ExtractJSON[testTask](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "Design review", result.TaskName)
	assert.Equal(t, 0.95, result.Weight)
}

func TestExtractJSON_FencedJSON(t *testing.T) {
	raw := "```json\n{\"taskName\":\"Tooling\",\"weight\":0.88}\n```"
	result, err := ExtractJSON[testTask](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "Tooling", result.TaskName)
}

func TestExtractJSON_SurroundingText(t *testing.T) {
	raw := "Here is the task:\n{\"taskName\":\"PPAP\",\"weight\":0.72}\nHope that helps!"
	result, err := ExtractJSON[testTask](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "PPAP", result.TaskName)
}

func TestExtractJSON_NestedBraces(t *testing.T) {
	type nested struct {
		Title string            `json:"title"`
		Meta  map[string]string `json:"meta"`
	}
	raw := `{"title":"Plan","meta":{"owner":"PM {lead}"}}`
	result, err := ExtractJSON[nested](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "Plan", result.Title)
	assert.Equal(t, "PM {lead}", result.Meta["owner"])
}

func TestExtractJSON_TopLevelArray(t *testing.T) {
	raw := "Here are the tasks:\n```json\n[{\"taskName\":\"a\",\"weight\":.5},{\"taskName\":\"b]\"}]\n```"
	result, err := ExtractJSON[[]testTask](raw, nil)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, 0.5, result[0].Weight)
	assert.Equal(t, "b]", result[1].TaskName)
}

func TestExtractJSON_ObjectContainingArray(t *testing.T) {
	type wrapper struct {
		Tasks []testTask `json:"tasks"`
	}
	raw := `{"tasks":[{"taskName":"x"}]}`
	result, err := ExtractJSON[wrapper](raw, nil)
	require.NoError(t, err)
	require.Len(t, result.Tasks, 1)
}

func TestExtractJSON_Comments(t *testing.T) {
	raw := "{\n  \"taskName\": \"a // not a comment\", // trailing\n  /* block */ \"weight\": 1\n}"
	result, err := ExtractJSON[testTask](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "a // not a comment", result.TaskName)
	assert.Equal(t, 1.0, result.Weight)
}

func TestExtractJSON_TrailingCommas(t *testing.T) {
	type breakdown struct {
		Tasks []struct {
			TaskName  string `json:"taskName"`
			StartDate string `json:"startDate"`
		} `json:"tasks"`
	}
	raw := "{\"tasks\": [\n  {\"taskName\": \"Fixtures, jigs\", \"startDate\": \"2024-09-09\",},\n  {\"taskName\": \"Trial run\"}, // last\n],\n}"
	result, err := ExtractJSON[breakdown](raw, nil)
	require.NoError(t, err)
	require.Len(t, result.Tasks, 2)
	assert.Equal(t, "Fixtures, jigs", result.Tasks[0].TaskName)
	assert.Equal(t, "2024-09-09", result.Tasks[0].StartDate)
	assert.Equal(t, "Trial run", result.Tasks[1].TaskName)
}

func TestExtractJSON_EscapedQuotes(t *testing.T) {
	raw := `{"taskName":"say \"hi\" {now}","weight":-.25}`
	result, err := ExtractJSON[testTask](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, `say "hi" {now}`, result.TaskName)
	assert.Equal(t, -0.25, result.Weight)
}

func TestExtractJSON_UnterminatedComment(t *testing.T) {
	_, err := ExtractJSON[testTask](`{"taskName":"x" /* oops }`, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_NoJSON(t *testing.T) {
	_, err := ExtractJSON[testTask]("I cannot read this image.", nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_InvalidJSON(t *testing.T) {
	_, err := ExtractJSON[testTask](`{"taskName":"x", broken}`, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_Validation(t *testing.T) {
	validator := func(p testTask) error {
		if p.TaskName == "" {
			return fmt.Errorf("taskName is required")
		}
		return nil
	}

	_, err := ExtractJSON(`{"weight":1}`, validator)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.Contains(t, err.Error(), "validation failed")

	result, err := ExtractJSON(`{"taskName":"ok"}`, validator)
	require.NoError(t, err)
	assert.Equal(t, "ok", result.TaskName)
}
