package infra

import "context"

type NotifierInterface interface {
	Toast(ctx context.Context, message, severity string)
	Alert(ctx context.Context, sound string)
}

var _ NotifierInterface = (*WebhookNotifier)(nil)
