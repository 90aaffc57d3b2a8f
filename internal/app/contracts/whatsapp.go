package contracts

import "context"

// WhatsAppService is the outbound transport boundary (wa-automate HTTP API).
type WhatsAppService interface {
	Init(ctx context.Context) error
	SendText(ctx context.Context, to, message string) error
	IsConnected() bool
	HostNumber() string
}
