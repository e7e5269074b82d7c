package mail

import (
	"context"
	"log/slog"
)

// PreviewMailer is the development mailer: nothing leaves the process, the
// verification link is logged and handed back as the preview URL so local
// flows (and tests) can follow it directly.
type PreviewMailer struct {
	log *slog.Logger
}

func NewPreviewMailer(log *slog.Logger) *PreviewMailer {
	return &PreviewMailer{log: log}
}

func (m *PreviewMailer) SendVerificationEmail(ctx context.Context, to, name, link string) (Receipt, error) {
	m.log.InfoContext(ctx, "verification email (preview)",
		slog.String("to", to),
		slog.String("link", link),
	)
	return Receipt{PreviewURL: link}, nil
}
