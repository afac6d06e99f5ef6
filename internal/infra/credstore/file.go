package credstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/astro-web3/hrdesk-console/pkg/logger"
)

const (
	fileMode = 0o600
	dirMode  = 0o700
)

// File is a credential.Store backed by a single file holding the raw token.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

// DefaultFilePath is $XDG_CONFIG_HOME/hrdesk/token (or the OS equivalent).
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config dir: %w", err)
	}
	return filepath.Join(dir, "hrdesk", "token"), nil
}

func (f *File) Path() string {
	return f.path
}

func (f *File) Get(ctx context.Context) (string, bool) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.WarnContext(ctx, "failed to read credential file, treating as signed out",
				slog.String("path", f.path), slog.Any("error", err))
		}
		return "", false
	}

	token := strings.TrimRight(string(raw), "\r\n")
	if token == "" {
		return "", false
	}
	return token, true
}

func (f *File) Set(_ context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), dirMode); err != nil {
		return fmt.Errorf("failed to create credential dir: %w", err)
	}
	if err := os.WriteFile(f.path, []byte(token), fileMode); err != nil {
		return fmt.Errorf("failed to write credential file: %w", err)
	}
	return nil
}

func (f *File) Clear(_ context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove credential file: %w", err)
	}
	return nil
}
