package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// extractAudio converts any audio or video file to 16kHz mono WAV inside
// workDir, the input format whisper expects. The output name never matches a
// downloaded source already in workDir.
func (p *implProcessor) extractAudio(ctx context.Context, srcPath, workDir string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	audioPath := filepath.Join(workDir, base+".16k.wav")

	p.logger.Info(ctx, "Extracting audio: %s", srcPath)

	// -vn drops any video stream; pcm_s16le keeps the samples uncompressed.
	args := []string{
		"-i", srcPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := p.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	p.logger.Debug(ctx, "Audio extracted: %s", audioPath)
	return audioPath, nil
}
