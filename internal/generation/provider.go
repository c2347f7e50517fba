package generation

import "context"

// Provider sends generation requests to an external LLM and returns the raw
// message content of its reply. Implementations hold only static
// configuration and must be safe for concurrent use. They do not retry.
type Provider interface {
	// Send asks for prompts for all generated platforms and returns the
	// reply text, which Parse understands.
	Send(ctx context.Context, userInput string) (string, error)

	// SendSingle asks for one prompt tailored to platform and returns the
	// reply text, which ParseSingle understands.
	SendSingle(ctx context.Context, userInput, platform string) (string, error)
}

// unavailableProvider fails every call with the error that prevented a real
// provider from being built.
type unavailableProvider struct {
	err error
}

// NewUnavailableProvider returns a Provider whose every call fails with err.
// It lets the rest of the service run when generation is misconfigured.
func NewUnavailableProvider(err error) Provider {
	return &unavailableProvider{err: err}
}

func (p *unavailableProvider) Send(ctx context.Context, userInput string) (string, error) {
	return "", p.err
}

func (p *unavailableProvider) SendSingle(ctx context.Context, userInput, platform string) (string, error) {
	return "", p.err
}
