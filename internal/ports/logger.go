package ports

import "context"

// Logger — контракт логгера для слоёв вне pkg/logger.
// Контекст передаётся на будущее (request id и т.п.), реализация может его игнорировать.
type Logger interface {
	Infof(ctx context.Context, format string, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, format string, args ...any)
}
