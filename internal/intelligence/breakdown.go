package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/gantt/internal/dategrid"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/importer"
	"github.com/alexanderramin/gantt/internal/llm"
)

// breakdownResponse is the JSON structure the LLM is asked for.
type breakdownResponse struct {
	Tasks []importer.WBSImport `json:"tasks"`
}

type breakdownGenerator struct {
	client llm.LLMClient
}

// NewBreakdownGenerator creates a BreakdownGenerator backed by an LLM client.
func NewBreakdownGenerator(client llm.LLMClient) BreakdownGenerator {
	return &breakdownGenerator{client: client}
}

func (g *breakdownGenerator) GenerateBreakdown(ctx context.Context, phaseLabel string, items []domain.TimelineItem) ([]domain.WBSItem, error) {
	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskBreakdown,
		SystemPrompt: breakdownSystemPrompt,
		UserPrompt:   fmt.Sprintf(breakdownUserPrompt, phaseLabel, itemsContext(items)),
		JSON:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("llm breakdown failed: %w", err)
	}

	nodes, err := extractTasks(resp.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to extract breakdown: %w", err)
	}

	importer.AssignWBSIDs(nodes)
	if errs := importer.ValidateWBS(nodes); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", llm.ErrInvalidOutput, errors.Join(errs...))
	}
	return importer.ConvertWBS(nodes)
}

// extractTasks accepts the requested {"tasks": [...]} object as well as a
// bare array, which some models return regardless of instructions.
func extractTasks(text string) ([]importer.WBSImport, error) {
	obj, objErr := llm.ExtractJSON[breakdownResponse](text, nil)
	if objErr == nil && obj.Tasks != nil {
		return obj.Tasks, nil
	}
	arr, err := llm.ExtractJSON[[]importer.WBSImport](text, nil)
	if err == nil {
		return arr, nil
	}
	if objErr != nil {
		return nil, objErr
	}
	return nil, err
}

// itemsContext lists the phase's items as "label (start to end)".
func itemsContext(items []domain.TimelineItem) string {
	if len(items) == 0 {
		return "(none)"
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		s := it.Label + " (" + dategrid.FormatDate(it.Date)
		if it.EndDate != nil {
			s += " to " + dategrid.FormatDate(*it.EndDate)
		}
		parts = append(parts, s+")")
	}
	return strings.Join(parts, ", ")
}
