package suggest

import (
	"context"
	"errors"
	"strings"

	"github.com/cloudwego/eino/compose"

	"gigportal/internal/ai"
	"gigportal/internal/models"
)

type Input struct {
	Article models.News
	Rubrics []string
	LLM     *ai.Client
}

type Output struct {
	Rubric  []string `json:"rubric"`
	Tags    []string `json:"tags"`
	Summary string   `json:"summary"`
}

type cleanedInput struct {
	Title   string
	Lead    string
	Content string
	Rubrics []string
	LLM     *ai.Client
}

// Pipeline runs the rubric-suggestion flow as an eino graph: clean the
// article text, ask the model, then cap and normalize the output.
type Pipeline struct {
	runnable compose.Runnable[Input, Output]
}

func NewPipeline() (*Pipeline, error) {
	graph := compose.NewGraph[Input, Output]()
	if err := graph.AddLambdaNode("cleaner", compose.InvokableLambda(cleanerNode)); err != nil {
		return nil, err
	}
	if err := graph.AddLambdaNode("extractor", compose.InvokableLambda(extractorNode)); err != nil {
		return nil, err
	}
	if err := graph.AddLambdaNode("formatter", compose.InvokableLambda(formatterNode)); err != nil {
		return nil, err
	}
	if err := graph.AddEdge(compose.START, "cleaner"); err != nil {
		return nil, err
	}
	if err := graph.AddEdge("cleaner", "extractor"); err != nil {
		return nil, err
	}
	if err := graph.AddEdge("extractor", "formatter"); err != nil {
		return nil, err
	}
	if err := graph.AddEdge("formatter", compose.END); err != nil {
		return nil, err
	}

	runnable, err := graph.Compile(context.Background(), compose.WithGraphName("rubric_suggestion"))
	if err != nil {
		return nil, err
	}

	return &Pipeline{runnable: runnable}, nil
}

func (p *Pipeline) Run(ctx context.Context, input Input) (Output, error) {
	if p == nil || p.runnable == nil {
		return Output{}, errors.New("suggestion pipeline not initialized")
	}
	return p.runnable.Invoke(ctx, input)
}

func cleanerNode(ctx context.Context, input Input) (cleanedInput, error) {
	content := stripTags(input.Article.Content)
	if len(content) > 6000 {
		content = content[:6000]
	}
	lead := strings.TrimSpace(input.Article.Lead)
	if lead == "" {
		lead = content
		if len(lead) > 200 {
			lead = lead[:200]
		}
	}
	return cleanedInput{
		Title:   input.Article.Title,
		Lead:    lead,
		Content: content,
		Rubrics: input.Rubrics,
		LLM:     input.LLM,
	}, nil
}

func extractorNode(ctx context.Context, input cleanedInput) (Output, error) {
	if input.LLM == nil || !input.LLM.Enabled() {
		return Output{}, errors.New("llm not configured")
	}

	s, err := input.LLM.Suggest(ctx, ai.SuggestInput{
		Title:   input.Title,
		Lead:    input.Lead,
		Content: input.Content,
		Rubrics: input.Rubrics,
	})
	if err != nil {
		return Output{}, err
	}
	return Output{Rubric: s.Rubric, Tags: s.Tags, Summary: s.Summary}, nil
}

func formatterNode(ctx context.Context, out Output) (Output, error) {
	if len(out.Rubric) > 4 {
		out.Rubric = out.Rubric[:4]
	}
	if len(out.Tags) > 10 {
		out.Tags = out.Tags[:10]
	}
	out.Summary = strings.TrimSpace(out.Summary)
	return out, nil
}

// stripTags flattens article HTML into text for the prompt; a rough pass is
// enough here, the model does not need well-formed markup.
func stripTags(raw string) string {
	var b strings.Builder
	inTag := false
	for _, r := range raw {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteByte(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
