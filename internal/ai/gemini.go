package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const (
	// gemini-2.5-flash balances speed and quality for structured plans.
	defaultModel = "gemini-2.5-flash"

	planSystemInstruction = "Anda adalah ahli strategi pemasaran kelas dunia. Berikan analisis yang tajam, realistis, dan kreatif dalam Bahasa Indonesia."

	chatSystemInstruction = "Anda adalah 'Marko', asisten strategi pemasaran AI. Anda membantu pengguna memahami rencana pemasaran mereka, menjawab pertanyaan tindak lanjut, memberikan ide konten spesifik, dan saran alokasi budget. Jawablah dengan profesional namun ramah dalam Bahasa Indonesia."
)

// GeminiClient talks to the Google Generative AI API. It holds two model
// configurations: one constrained to the plan schema, one for free-form chat.
type GeminiClient struct {
	client    *genai.Client
	planModel *genai.GenerativeModel
	chatModel *genai.GenerativeModel
}

// NewGeminiClient builds the Gemini client for the given API key. When no key
// is configured, callers wire NewDisabledClient instead of constructing this.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}

	planModel := client.GenerativeModel(model)
	planModel.ResponseMIMEType = "application/json"
	planModel.ResponseSchema = planSchema
	planModel.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(planSystemInstruction)}}

	chatModel := client.GenerativeModel(model)
	chatModel.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(chatSystemInstruction)}}

	return &GeminiClient{
		client:    client,
		planModel: planModel,
		chatModel: chatModel,
	}, nil
}

func (c *GeminiClient) Close() {
	c.client.Close()
}

// GenerateStructured sends the prompt with the plan schema attached and
// returns the response text, which is expected to be JSON.
func (c *GeminiClient) GenerateStructured(ctx context.Context, prompt string) (string, error) {
	resp, err := c.planModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	text := responseText(resp)
	if text == "" {
		return "", errors.New("no response from model")
	}

	return text, nil
}

// StartChat opens a conversation on the chat model. Provider-side history is
// carried by the underlying genai session.
func (c *GeminiClient) StartChat() ChatSession {
	return &geminiChat{session: c.chatModel.StartChat()}
}

type geminiChat struct {
	session *genai.ChatSession
}

func (g *geminiChat) SendTurn(ctx context.Context, text string) Stream {
	return &geminiStream{iter: g.session.SendMessageStream(ctx, genai.Text(text))}
}

// geminiStream adapts the genai response iterator to the Stream contract:
// one text fragment per Next call, io.EOF at the end of the reply.
type geminiStream struct {
	iter *genai.GenerateContentResponseIterator
}

func (s *geminiStream) Next() (string, error) {
	for {
		resp, err := s.iter.Next()
		if errors.Is(err, iterator.Done) {
			return "", io.EOF
		}
		if err != nil {
			return "", err
		}

		// Chunks without text parts are skipped rather than surfaced as
		// empty fragments.
		if text := responseText(resp); text != "" {
			return text, nil
		}
	}
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var builder strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			builder.WriteString(string(text))
		}
	}

	return builder.String()
}
