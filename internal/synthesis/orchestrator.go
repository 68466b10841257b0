// ABOUTME: Synthesis orchestrator: runs the five fixed analytical sub-queries
// ABOUTME: Retrieves context, prompts the LLM, and routes one field per sub-query
package synthesis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/fitanalysis/server/internal/models"
)

// DefaultTopK is the number of chunks retrieved per sub-query
const DefaultTopK = 10

// Retriever finds the chunks most relevant to a query
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]models.KnowledgeChunk, error)
}

// Generator runs one text-generation call and returns the raw response
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// generationPayload is the JSON object each generation call is asked to
// return. All fields are optional; a parse failure yields the zero value.
type generationPayload struct {
	VideoTitle        string   `json:"video_title"`
	Channel           string   `json:"channel"`
	GoodPoints        []string `json:"good_points"`
	BadPoints         []string `json:"bad_points"`
	Conclusion        string   `json:"conclusion"`
	ActualWorkout     string   `json:"actual_workout"`
	ScientificBacking string   `json:"scientific_backing"`
}

// subQuery pairs one fixed analytical question with the single payload
// field it contributes to the aggregate.
type subQuery struct {
	text   string
	assign func(agg *models.AnalysisPayload, p *generationPayload)
}

// The five analytical sub-queries, run in this order. Each routes exactly
// one field of its parsed response into the aggregate.
var subQueries = []subQuery{
	{
		text: "Find good points and positive aspects mentioned in the content",
		assign: func(agg *models.AnalysisPayload, p *generationPayload) {
			if p.GoodPoints != nil {
				agg.GoodPoints = p.GoodPoints
			}
		},
	},
	{
		text: "Find bad points, criticisms, or negative aspects mentioned in the content",
		assign: func(agg *models.AnalysisPayload, p *generationPayload) {
			if p.BadPoints != nil {
				agg.BadPoints = p.BadPoints
			}
		},
	},
	{
		text: "Extract workout plan, exercises, sets, and reps mentioned",
		assign: func(agg *models.AnalysisPayload, p *generationPayload) {
			agg.WorkoutPlan = p.ActualWorkout
		},
	},
	{
		text: "Write a conclusion summarizing the overall assessment",
		assign: func(agg *models.AnalysisPayload, p *generationPayload) {
			agg.Conclusion = p.Conclusion
		},
	},
	{
		text: "How well is the workout supported by research?",
		assign: func(agg *models.AnalysisPayload, p *generationPayload) {
			agg.ScientificBacking = p.ScientificBacking
		},
	},
}

// Orchestrator assembles a full video analysis from retrieval plus
// generation. The five generation calls run sequentially.
type Orchestrator struct {
	retriever Retriever
	generator Generator
	topK      int
	logger    *log.Logger
}

// NewOrchestrator creates a synthesis orchestrator
func NewOrchestrator(retriever Retriever, generator Generator, topK int, logger *log.Logger) *Orchestrator {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{
		retriever: retriever,
		generator: generator,
		topK:      topK,
		logger:    logger,
	}
}

// Synthesize answers all five sub-queries and assembles the aggregate
// analysis. Retrieval and generation errors propagate; a response that
// fails to parse degrades that sub-query to its zero value and the run
// continues.
func (o *Orchestrator) Synthesize(ctx context.Context, videoTitle string) (*models.VideoAnalysis, error) {
	analysis := &models.VideoAnalysis{
		VideoTitle: videoTitle,
		Analysis:   models.NewAnalysisPayload(),
	}

	for _, q := range subQueries {
		payload, err := o.runSubQuery(ctx, q.text)
		if err != nil {
			return nil, err
		}
		q.assign(&analysis.Analysis, payload)
	}

	return analysis, nil
}

// runSubQuery retrieves context for one sub-query, invokes the generator
// once, and parses the response.
func (o *Orchestrator) runSubQuery(ctx context.Context, query string) (*generationPayload, error) {
	chunks, err := o.retriever.Search(ctx, query, o.topK)
	if err != nil {
		return nil, fmt.Errorf("retrieve context for %q: %w", query, err)
	}

	prompt := buildPrompt(buildContext(chunks), query)

	response, err := o.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate analysis for %q: %w", query, err)
	}

	var payload generationPayload
	if err := json.Unmarshal([]byte(ExtractJSON(response)), &payload); err != nil {
		o.logger.Printf("could not parse generation response for %q, using empty result: %v", query, err)
		return &generationPayload{}, nil
	}

	return &payload, nil
}

// buildContext renders retrieved chunks as a context block: three lines
// per chunk (source, type, text) with a blank line between chunks.
func buildContext(chunks []models.KnowledgeChunk) string {
	var b strings.Builder
	for _, chunk := range chunks {
		b.WriteString("Source: ")
		b.WriteString(chunk.SourceID)
		b.WriteString("\n")
		b.WriteString("Type: ")
		b.WriteString(string(chunk.SourceType))
		b.WriteString("\n")
		b.WriteString("Content: ")
		b.WriteString(chunk.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}

// buildPrompt fills the fixed analysis prompt template
func buildPrompt(contextBlock, query string) string {
	return fmt.Sprintf(
		"Based on the following context from research papers and video transcripts, analyze the fitness video:\n\n"+
			"Context:\n%s\n\n"+
			"Please provide a structured analysis in JSON format with the following fields:\n"+
			"- video_title: The title of the video\n"+
			"- channel: The channel name\n"+
			"- good_points: Array of positive aspects of the workout\n"+
			"- bad_points: Array of potential issues or concerns\n"+
			"- conclusion: Overall assessment\n"+
			"- actual_workout: Description of the actual exercises and routine\n"+
			"- scientific_backing: How well the workout is supported by research\n\n"+
			"Query: %s",
		contextBlock, query)
}

// ExtractJSON strips an optional Markdown code fence (optionally labeled
// "json") from a generation response, leaving the JSON body.
func ExtractJSON(response string) string {
	trimmed := strings.TrimSpace(response)
	if strings.HasPrefix(trimmed, "```json") {
		trimmed = trimmed[len("```json"):]
	} else if strings.HasPrefix(trimmed, "```") {
		trimmed = trimmed[len("```"):]
	}
	if strings.HasSuffix(trimmed, "```") {
		trimmed = trimmed[:len(trimmed)-len("```")]
	}
	return strings.TrimSpace(trimmed)
}
