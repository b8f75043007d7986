package ai

import (
	"context"
	"errors"
)

var errMissingAPIKey = errors.New("gemini api key is not configured")

// disabledClient stands in when no API key is configured. The server still
// starts; every generation and chat attempt fails, which the generator
// surfaces as a service-unavailable error.
type disabledClient struct{}

// NewDisabledClient returns a Client whose calls always fail with a missing
// API key error.
func NewDisabledClient() Client {
	return disabledClient{}
}

func (disabledClient) GenerateStructured(context.Context, string) (string, error) {
	return "", errMissingAPIKey
}

func (disabledClient) StartChat() ChatSession {
	return disabledChat{}
}

type disabledChat struct{}

func (disabledChat) SendTurn(context.Context, string) Stream {
	return disabledStream{}
}

type disabledStream struct{}

func (disabledStream) Next() (string, error) {
	return "", errMissingAPIKey
}
