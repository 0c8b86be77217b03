package engine

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tatianab/escape-room/internal/models"
)

//go:embed prompts/describe_room.txt
var describeRoomPrompt string

// DefaultModel is the Gemini model used by the narrator.
const DefaultModel = "gemini-2.5-flash"

// RoomView is the read-only snapshot handed to a narrator.
type RoomView struct {
	Title       string
	Description string
	Scenery     []string
	Objects     []ObjectView
	Heading     string
	Facing      string
	Inventory   []string
	TimeLeft    string
}

type ObjectView struct {
	Name     string
	Kind     models.Kind
	Resolved bool
}

// Narrator turns a room snapshot into prose for the "look" command. It never
// affects puzzle state.
type Narrator interface {
	Describe(ctx context.Context, view RoomView) (string, error)
}

// StaticNarrator describes the room from its definition alone.
type StaticNarrator struct{}

func (StaticNarrator) Describe(_ context.Context, v RoomView) (string, error) {
	var b strings.Builder
	b.WriteString(v.Description)
	if v.Facing != "" {
		fmt.Fprintf(&b, "\n\nYou are facing the %s.", v.Facing)
	} else {
		b.WriteString("\n\nYou are facing a bare wall.")
	}
	return b.String(), nil
}

// GeminiNarrator asks a Gemini model to describe the room.
type GeminiNarrator struct {
	client *genai.Client
	model  *genai.GenerativeModel
	tmpl   *template.Template
}

func NewGeminiNarrator(ctx context.Context, apiKey, modelName string) (*GeminiNarrator, error) {
	tmpl, err := template.New("describe_room").Parse(describeRoomPrompt)
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &GeminiNarrator{
		client: client,
		model:  client.GenerativeModel(modelName),
		tmpl:   tmpl,
	}, nil
}

func (n *GeminiNarrator) Close() {
	n.client.Close()
}

func (n *GeminiNarrator) Describe(ctx context.Context, v RoomView) (string, error) {
	prompt, err := renderPrompt(n.tmpl, v)
	if err != nil {
		return "", err
	}

	resp, err := n.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}
	return strings.TrimSpace(string(text)), nil
}

func renderPrompt(tmpl *template.Template, v RoomView) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}
