package vtcore

import "encoding/json"

// ResponseProvider writes device-query response bytes back toward the
// child process. Grounded on the teacher's providers.go ResponseProvider
// (an io.Writer alias); kept as a narrow interface here instead since the
// engine only ever calls Write.
type ResponseProvider interface {
	Write(p []byte) (int, error)
}

// NoopResponse discards all response bytes.
type NoopResponse struct{}

func (NoopResponse) Write(p []byte) (int, error) { return len(p), nil }

// BellProvider is notified on BEL (0x07).
type BellProvider interface{ Ring() }

// NoopBell ignores bell events.
type NoopBell struct{}

func (NoopBell) Ring() {}

// TitleProvider is notified of OSC 0/1/2 title/icon changes and of
// CSI 22/23 t title-stack push/pop.
type TitleProvider interface {
	SetTitle(title string)
	SetIconName(name string)
	PushTitle()
	PopTitle()
}

// NoopTitle ignores title operations.
type NoopTitle struct{}

func (NoopTitle) SetTitle(string)    {}
func (NoopTitle) SetIconName(string) {}
func (NoopTitle) PushTitle()         {}
func (NoopTitle) PopTitle()          {}

// ClipboardProvider backs OSC 52 clipboard read/write.
type ClipboardProvider interface {
	Read(clipboard byte) string
	Write(clipboard byte, data []byte)
}

// NoopClipboard ignores clipboard operations.
type NoopClipboard struct{}

func (NoopClipboard) Read(byte) string     { return "" }
func (NoopClipboard) Write(byte, []byte) {}

// HyperlinkProvider is notified when an OSC 8 hyperlink is registered.
type HyperlinkProvider interface {
	Registered(id uint32, uri string)
}

// NoopHyperlink ignores hyperlink registration.
type NoopHyperlink struct{}

func (NoopHyperlink) Registered(uint32, string) {}

// RPCProvider handles the private OSC >=1000 / 1010 JSON channel, per
// spec.md §6. Invoked synchronously during Engine.Write; must not block.
// Grounded on the teacher's APCProvider/PMProvider "receive opaque
// payload" shape, specialized to the decoded action/payload envelope.
type RPCProvider interface {
	Handle(action string, payload json.RawMessage)
}

// NoopRPC discards private OSC commands.
type NoopRPC struct{}

func (NoopRPC) Handle(string, json.RawMessage) {}

// rpcEnvelope is the OSC 1010 JSON payload shape: a required "action"
// string plus an optional "params" value passed through as raw JSON; other
// fields are ignored.
type rpcEnvelope struct {
	Action string          `json:"action"`
	Params json.RawMessage `json:"params,omitempty"`
}

var (
	_ ResponseProvider  = NoopResponse{}
	_ BellProvider      = NoopBell{}
	_ TitleProvider     = NoopTitle{}
	_ ClipboardProvider = NoopClipboard{}
	_ HyperlinkProvider = NoopHyperlink{}
	_ RPCProvider       = NoopRPC{}
)
