package apperr

// MessageProvider resolves the user-facing message for a code. Responses
// sent to clients always go through it so raw exception text never leaks
// past the service boundary. Overrides are a startup-time concern.
type MessageProvider struct {
	overrides map[Code]string
}

func NewMessageProvider() *MessageProvider {
	return &MessageProvider{overrides: make(map[Code]string)}
}

// Message returns the override for the code if one is registered, otherwise
// the catalog default.
func (p *MessageProvider) Message(code Code) string {
	if msg, ok := p.overrides[code]; ok {
		return msg
	}
	return code.DefaultMessage()
}

// Register installs a message override for a code.
func (p *MessageProvider) Register(code Code, message string) {
	p.overrides[code] = message
}
