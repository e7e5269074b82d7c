package mail

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderVerification(t *testing.T) {
	body, err := renderVerification("Jane", "https://app.example.com/verify-email?token=abc123")
	require.NoError(t, err)
	require.Contains(t, body, "Jane")
	require.Contains(t, body, "https://app.example.com/verify-email?token=abc123")
	require.Contains(t, body, "24 hours")
}

func TestRenderVerification_EscapesName(t *testing.T) {
	body, err := renderVerification(`<script>alert("x")</script>`, "https://example.com/v")
	require.NoError(t, err)
	require.NotContains(t, body, "<script>")
}

func TestPreviewMailer_ReturnsLinkAsPreview(t *testing.T) {
	m := NewPreviewMailer(slog.Default())

	receipt, err := m.SendVerificationEmail(context.Background(), "jane@example.com", "Jane", "https://example.com/verify-email?token=tok")
	require.NoError(t, err)
	require.Equal(t, "https://example.com/verify-email?token=tok", receipt.PreviewURL)
	require.Empty(t, receipt.MessageID)
}
