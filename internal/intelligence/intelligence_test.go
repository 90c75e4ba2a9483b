package intelligence

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLLMClient returns a fixed response and records the last request.
type mockLLMClient struct {
	response string
	err      error
	last     llm.GenerateRequest
}

func (m *mockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.last = req
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "llama3.2"}, nil
}

func (m *mockLLMClient) Available(_ context.Context) bool { return m.err == nil }

const timelineJSON = `Here is the schedule:
{
  "title": "Vehicle Program",
  "startDate": "2024-07-01",
  "endDate": "2025-12-31",
  "rows": [
    {"id": "milestones", "label": "Milestones"},
    {"id": "samples", "label": "Sample Plan", "height": 90}
  ],
  "items": [
    {"rowId": "milestones", "label": "Nomination", "date": "2024-07-22", "type": "milestone"},
    {"id": "p", "rowId": "milestones", "label": "PPAP", "date": "2025-10-27", "type": "milestone", "isCritical": true},
    {"id": "s1", "rowId": "samples", "label": "A1 Build", "date": "2024-09-09", "endDate": "2024-10-23", "type": "range"}
  ]
}`

func TestImageParser_Success(t *testing.T) {
	client := &mockLLMClient{response: timelineJSON}
	p := NewImageParser(client)

	data, err := p.ParseImage(context.Background(), []byte("jpeg"))
	require.NoError(t, err)

	assert.Equal(t, llm.TaskParseImage, client.last.Task)
	assert.True(t, client.last.JSON)
	require.Len(t, client.last.Images, 1)

	assert.Equal(t, "Vehicle Program", data.Title)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, domain.DefaultRowHeight, data.Rows[0].Height)
	assert.Equal(t, 90, data.Rows[1].Height)
	require.Len(t, data.Items, 3)
	assert.NotEmpty(t, data.Items[0].ID, "missing ids are generated")
	assert.True(t, data.Items[1].IsCritical)
	assert.Equal(t, domain.ItemRange, data.Items[2].Kind)
	assert.Empty(t, data.Validate())
}

func TestImageParser_Failures(t *testing.T) {
	tests := []struct {
		name    string
		client  *mockLLMClient
		image   []byte
		wantErr error
	}{
		{"empty image", &mockLLMClient{}, nil, ErrEmptyImage},
		{"unavailable", &mockLLMClient{err: llm.ErrUnavailable}, []byte("x"), llm.ErrUnavailable},
		{"not json", &mockLLMClient{response: "I can't read that chart."}, []byte("x"), llm.ErrInvalidOutput},
		{"unknown row", &mockLLMClient{response: strings.Replace(timelineJSON, `"rowId": "samples"`, `"rowId": "ghost"`, 1)}, []byte("x"), llm.ErrInvalidOutput},
		{"inverted range", &mockLLMClient{response: strings.Replace(timelineJSON, `"endDate": "2024-10-23"`, `"endDate": "2024-01-01"`, 1)}, []byte("x"), llm.ErrInvalidOutput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := NewImageParser(tt.client).ParseImage(context.Background(), tt.image)
			assert.Nil(t, data)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

const breakdownJSON = `{"tasks": [
  {"id": "t1", "taskName": "Tooling", "startDate": "2024-09-09", "endDate": "2024-09-30", "duration": "21 days", "owner": "ME", "status": "Pending",
   "subTasks": [
     {"taskName": "Mould design", "startDate": "2024-09-09", "endDate": "2024-09-16", "status": "In Progress"},
     {"id": "t1", "taskName": "Trial shots", "startDate": "2024-09-17", "endDate": "2024-09-30", "status": "Pending"}
   ]},
  {"id": "t2", "taskName": "Assembly", "startDate": "2024-10-01", "endDate": "2024-10-23", "duration": "3 weeks", "owner": "PE", "status": "Pending"}
]}`

func TestBreakdownGenerator_Success(t *testing.T) {
	client := &mockLLMClient{response: breakdownJSON}
	g := NewBreakdownGenerator(client)
	items := []domain.TimelineItem{
		{Label: "A1 Build", Date: domain.MustDate("2024-09-09"), EndDate: domain.DatePtr(domain.MustDate("2024-10-23")), Kind: domain.ItemRange},
		{Label: "Gate", Date: domain.MustDate("2024-11-04"), Kind: domain.ItemMilestone},
	}

	forest, err := g.GenerateBreakdown(context.Background(), "Sample Plan", items)
	require.NoError(t, err)

	assert.Equal(t, llm.TaskBreakdown, client.last.Task)
	assert.Contains(t, client.last.UserPrompt, `"Sample Plan"`)
	assert.Contains(t, client.last.UserPrompt, "A1 Build (2024-09-09 to 2024-10-23), Gate (2024-11-04)")

	require.Len(t, forest, 2)
	assert.Equal(t, "t1", forest[0].ID)
	require.Len(t, forest[0].SubTasks, 2)
	assert.NotEmpty(t, forest[0].SubTasks[0].ID)
	assert.NotEqual(t, "t1", forest[0].SubTasks[1].ID, "duplicate ids are replaced")
	assert.Equal(t, domain.WBSInProgress, forest[0].SubTasks[0].Status)
	assert.Equal(t, "PE", forest[1].Owner)
	assert.Empty(t, domain.ValidateWBS(forest))
}

func TestBreakdownGenerator_BareArray(t *testing.T) {
	client := &mockLLMClient{response: "```json\n[{\"id\":\"a\",\"taskName\":\"A\",\"startDate\":\"2024-01-01\",\"endDate\":\"2024-01-02\"}]\n```"}

	forest, err := NewBreakdownGenerator(client).GenerateBreakdown(context.Background(), "Dev", nil)
	require.NoError(t, err)
	require.Len(t, forest, 1)
	assert.Equal(t, domain.WBSPending, forest[0].Status)
	assert.Contains(t, client.last.UserPrompt, "(none)")
}

func TestBreakdownGenerator_Failures(t *testing.T) {
	for name, client := range map[string]*mockLLMClient{
		"timeout":      {err: llm.ErrTimeout},
		"prose":        {response: "Sorry, I cannot help."},
		"wrong object": {response: `{"steps": 3}`},
		"bad dates":    {response: `{"tasks":[{"id":"a","taskName":"A","startDate":"2024-02-01","endDate":"2024-01-01"}]}`},
	} {
		t.Run(name, func(t *testing.T) {
			forest, err := NewBreakdownGenerator(client).GenerateBreakdown(context.Background(), "Dev", nil)
			assert.Error(t, err)
			assert.Nil(t, forest)
		})
	}
}

func TestBreakdownGenerator_EmptyTasks(t *testing.T) {
	forest, err := NewBreakdownGenerator(&mockLLMClient{response: `{"tasks": []}`}).GenerateBreakdown(context.Background(), "Dev", nil)
	require.NoError(t, err)
	assert.Empty(t, forest)
}

// TestBreakdownGenerator_WithHTTPTestServer exercises the full HTTP path:
// httptest → Ollama client → generator → extraction and validation.
func TestBreakdownGenerator_WithHTTPTestServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "json", body["format"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"model": "test-model", "response": breakdownJSON})
	}))
	defer srv.Close()

	cfg := llm.DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = srv.URL
	cfg.Model = "test-model"
	cfg.MaxRetries = 0

	g := NewBreakdownGenerator(llm.NewClient(cfg, llm.NoopObserver{}))
	forest, err := g.GenerateBreakdown(context.Background(), "Sample Plan", nil)
	require.NoError(t, err)
	assert.Len(t, forest, 2)
}
