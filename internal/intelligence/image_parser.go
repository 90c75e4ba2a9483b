package intelligence

import (
	"context"
	"fmt"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/importer"
	"github.com/alexanderramin/gantt/internal/llm"
)

type imageParser struct {
	client llm.LLMClient
}

// NewImageParser creates an ImageParser backed by a vision-capable client.
func NewImageParser(client llm.LLMClient) ImageParser {
	return &imageParser{client: client}
}

func (p *imageParser) ParseImage(ctx context.Context, image []byte) (*domain.TimelineData, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}

	resp, err := p.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskParseImage,
		SystemPrompt: parseImageSystemPrompt,
		UserPrompt:   parseImageUserPrompt,
		Images:       [][]byte{image},
		JSON:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("llm image parse failed: %w", err)
	}

	schema, err := llm.ExtractJSON[importer.TimelineSchema](resp.Text, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to extract timeline: %w", err)
	}
	if schema.Title == "" {
		schema.Title = "Imported Plan"
	}
	importer.AssignIDs(&schema)

	data, err := importer.Build(&schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", llm.ErrInvalidOutput, err)
	}
	return data, nil
}
