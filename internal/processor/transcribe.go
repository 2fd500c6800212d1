package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// transcribe runs whisper over audioPath and returns the SRT it wrote next to it.
func (p *implProcessor) transcribe(ctx context.Context, audioPath string) (string, error) {
	// whisper appends .srt to the output prefix
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))
	w := p.cfg.Whisper

	p.logger.Info(ctx, "Transcribing with %d threads: %s", w.Threads, audioPath)

	args := []string{
		"-m", w.ModelPath,
		"-f", audioPath,
		"-osrt",
		"-l", w.Language,
		"-t", strconv.Itoa(w.Threads),
		"-ml", "0",
		"-mc", "0",
		"-bo", "5",
		"--output-file", outputPrefix,
	}
	if w.Prompt != "" {
		args = append(args, "--prompt", w.Prompt)
	}

	if _, err := p.executor.Execute(ctx, w.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	srtPath := outputPrefix + ".srt"
	p.logger.Info(ctx, "Transcription completed: %s", srtPath)
	return srtPath, nil
}
