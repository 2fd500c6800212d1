package processor

import (
	"bufio"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// readURLFile returns the first non-blank, non-comment line of a .url file.
// Only http and https links are accepted.
func readURLFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("read url file: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		u, err := url.Parse(line)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "", fmt.Errorf("invalid video url %q", line)
		}
		return u.String(), nil
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("read url file: %w", err)
	}
	return "", fmt.Errorf("no url in %s", filepath.Base(path))
}

// downloadAudio fetches the audio track of a video page into workDir with
// yt-dlp and returns the downloaded file.
func (p *implProcessor) downloadAudio(ctx context.Context, link, workDir string) (string, error) {
	p.logger.Info(ctx, "Downloading audio: %s", link)

	args := []string{
		"-x",
		"--no-playlist",
		"--no-progress",
		"-o", filepath.Join(workDir, "download.%(ext)s"),
		link,
	}
	if _, err := p.executor.Execute(ctx, p.cfg.Downloader.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("yt-dlp download: %w", err)
	}

	// yt-dlp picks the extension from the source stream.
	matches, err := filepath.Glob(filepath.Join(workDir, "download.*"))
	if err != nil || len(matches) == 0 {
		return "", fmt.Errorf("yt-dlp produced no audio for %s", link)
	}

	p.logger.Debug(ctx, "Audio downloaded: %s", matches[0])
	return matches[0], nil
}
