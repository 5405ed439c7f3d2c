package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DevTransport writes rendered emails to disk instead of delivering them.
// Useful for local development without an SMTP server or API token.
type DevTransport struct {
	dir string
}

func NewDevTransport(dir string) *DevTransport {
	return &DevTransport{dir: dir}
}

type devMetadata struct {
	Timestamp string `json:"timestamp"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Tag       string `json:"tag,omitempty"`
}

func (t *DevTransport) send(_ context.Context, msg message) error {
	if err := os.MkdirAll(t.dir, 0o755); err != nil {
		return fmt.Errorf("dev mailer: create directory: %w", err)
	}

	now := time.Now()
	base := fmt.Sprintf("%s_%s", now.Format("2006_01_02_150405"), sanitizeFilename(msg.Tag))

	if err := os.WriteFile(filepath.Join(t.dir, base+".html"), []byte(msg.HTML), 0o644); err != nil {
		return fmt.Errorf("dev mailer: write HTML: %w", err)
	}

	meta, err := json.MarshalIndent(devMetadata{
		Timestamp: now.Format(time.RFC3339),
		To:        msg.To,
		Subject:   msg.Subject,
		Tag:       msg.Tag,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("dev mailer: marshal metadata: %w", err)
	}

	if err := os.WriteFile(filepath.Join(t.dir, base+".json"), meta, 0o644); err != nil {
		return fmt.Errorf("dev mailer: write metadata: %w", err)
	}

	return nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = unsafeFilenameChars.ReplaceAllString(s, "")

	const maxLength = 100
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "email"
	}

	return strings.ToLower(s)
}
