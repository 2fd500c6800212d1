package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	textExtensions     = []string{".txt"}
	subtitleExtensions = []string{".srt"}
	mediaExtensions    = []string{".mp3", ".wav", ".m4a", ".ogg", ".flac", ".mp4", ".mov", ".mkv", ".webm"}
	linkExtensions     = []string{".url"}
)

// SupportedExtensions lists every file extension Process accepts.
func SupportedExtensions() []string {
	var out []string
	out = append(out, textExtensions...)
	out = append(out, subtitleExtensions...)
	out = append(out, mediaExtensions...)
	out = append(out, linkExtensions...)
	return out
}

func hasExt(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// loadTranscript returns the plain transcript text of path. Media files are
// transcribed with ffmpeg and whisper inside a private temp directory. A .url
// file names a video page whose audio is downloaded first.
func (p *implProcessor) loadTranscript(ctx context.Context, path string) (string, error) {
	switch {
	case hasExt(path, textExtensions):
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read transcript: %w", err)
		}
		return string(data), nil

	case hasExt(path, subtitleExtensions):
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read subtitle: %w", err)
		}
		return parseSRT(string(data)), nil

	case hasExt(path, mediaExtensions):
		return p.transcribeMedia(ctx, func(string) (string, error) { return path, nil })

	case hasExt(path, linkExtensions):
		link, err := readURLFile(path)
		if err != nil {
			return "", err
		}
		return p.transcribeMedia(ctx, func(workDir string) (string, error) {
			return p.downloadAudio(ctx, link, workDir)
		})

	default:
		return "", fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

// transcribeMedia runs fetch, ffmpeg and whisper in a fresh work directory
// that is removed afterwards. fetch returns the media file to transcribe.
func (p *implProcessor) transcribeMedia(ctx context.Context, fetch func(workDir string) (string, error)) (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Temp, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	workDir, err := os.MkdirTemp(p.cfg.Paths.Temp, "transcribe-*")
	if err != nil {
		return "", fmt.Errorf("create work dir: %w", err)
	}
	defer p.cleanupTempDir(ctx, workDir)

	mediaPath, err := fetch(workDir)
	if err != nil {
		return "", err
	}
	audioPath, err := p.extractAudio(ctx, mediaPath, workDir)
	if err != nil {
		return "", fmt.Errorf("extract audio: %w", err)
	}
	srtPath, err := p.transcribe(ctx, audioPath)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	data, err := os.ReadFile(srtPath)
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}
	return parseSRT(string(data)), nil
}
