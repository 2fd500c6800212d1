package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/nguyentantai21042004/caption-qa/internal/chunker"
	"github.com/nguyentantai21042004/caption-qa/internal/config"
	"github.com/nguyentantai21042004/caption-qa/internal/history"
	"github.com/nguyentantai21042004/caption-qa/internal/index"
	"github.com/nguyentantai21042004/caption-qa/internal/logger"
	"github.com/nguyentantai21042004/caption-qa/internal/session"
	"github.com/nguyentantai21042004/caption-qa/internal/summarizer"
)

type fakeEmbedder struct{}

func (fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, float32(len(text) % 7)}, nil
}

type fakeCompleter struct{}

func (fakeCompleter) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	if strings.Contains(prompt, "Question:") {
		return "The team agreed to ship in March.", nil
	}
	return "- Launch moved to March\n- **Hiring** is frozen", nil
}

type wordCounter struct{}

func (wordCounter) CountTokens(text, modelID string) (int, error) {
	return len(strings.Fields(text)), nil
}

// fakeExecutor records commands and emulates whisper by writing an SRT.
type fakeExecutor struct {
	mu    sync.Mutex
	calls []string
	fail  string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()

	if name == f.fail {
		return "", errors.New("exit status 1")
	}
	if name == "yt-dlp" {
		for i, a := range args {
			if a == "-o" {
				out := strings.Replace(args[i+1], "%(ext)s", "webm", 1)
				return "", os.WriteFile(out, []byte("audio"), 0644)
			}
		}
	}
	if name == "whisper-cli" {
		for i, a := range args {
			if a == "--output-file" {
				srt := "1\n00:00:00,000 --> 00:00:02,000\nWe moved the launch.\n\n2\n00:00:02,000 --> 00:00:04,000\nHiring is frozen.\n"
				return "", os.WriteFile(args[i+1]+".srt", []byte(srt), 0644)
			}
		}
	}
	return "", nil
}

func newTestProcessor(t *testing.T, exec *fakeExecutor) (Processor, *config.Config) {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{
		Summarizer: config.SummarizerConfig{DefaultFormat: "bullet points"},
		Whisper:    config.WhisperConfig{BinaryPath: "whisper-cli", ModelPath: "model.bin", Language: "en", Threads: 2},
		Downloader: config.DownloaderConfig{BinaryPath: "yt-dlp"},
		Paths: config.PathsConfig{
			Input:    filepath.Join(root, "input"),
			Output:   filepath.Join(root, "output"),
			Archived: filepath.Join(root, "archived"),
			Temp:     filepath.Join(root, "temp"),
		},
		Pipeline: config.PipelineConfig{Questions: []string{"When is the launch?", ""}},
	}
	if err := os.MkdirAll(cfg.Paths.Input, 0755); err != nil {
		t.Fatal(err)
	}

	log := logger.NewNop()
	svc := session.New(
		chunker.New(config.ChunkingConfig{}),
		index.New(fakeEmbedder{}, 2, log),
		summarizer.New(fakeCompleter{}, wordCounter{}, "test-model", config.SummarizerConfig{}, log),
		fakeCompleter{},
		history.NewMemory(),
		4,
		log,
	)
	return New(cfg, svc, exec, log), cfg
}

func writeInput(t *testing.T, cfg *config.Config, name, content string) string {
	t.Helper()
	path := filepath.Join(cfg.Paths.Input, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func assertOutputs(t *testing.T, cfg *config.Config, name string) string {
	t.Helper()
	for _, f := range []string{name + ".md", name + ".docx", name + ".transcript.docx"} {
		if _, err := os.Stat(filepath.Join(cfg.Paths.Output, f)); err != nil {
			t.Errorf("missing output %s: %v", f, err)
		}
	}
	md, err := os.ReadFile(filepath.Join(cfg.Paths.Output, name+".md"))
	if err != nil {
		t.Fatal(err)
	}
	return string(md)
}

func TestProcessText(t *testing.T) {
	exec := &fakeExecutor{}
	p, cfg := newTestProcessor(t, exec)
	src := writeInput(t, cfg, "standup.txt", "Alice: The launch moved to March.\n\nBob: Hiring is frozen.")

	if err := p.Process(context.Background(), src); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	md := assertOutputs(t, cfg, "standup")
	for _, want := range []string{"# standup", "- Launch moved to March", "direct strategy", "### When is the launch?", "The team agreed to ship in March."} {
		if !strings.Contains(md, want) {
			t.Errorf("summary markdown missing %q:\n%s", want, md)
		}
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source should be moved out of the inbox")
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.Archived, "standup.txt")); err != nil {
		t.Errorf("source not archived: %v", err)
	}
	if len(exec.calls) != 0 {
		t.Errorf("text input should not run external tools, ran %v", exec.calls)
	}
}

func TestProcessAudio(t *testing.T) {
	exec := &fakeExecutor{}
	p, cfg := newTestProcessor(t, exec)
	src := writeInput(t, cfg, "call.mp3", "not really audio")

	if err := p.Process(context.Background(), src); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(exec.calls) != 2 || exec.calls[0] != "ffmpeg" || exec.calls[1] != "whisper-cli" {
		t.Errorf("external calls = %v, want ffmpeg then whisper-cli", exec.calls)
	}
	assertOutputs(t, cfg, "call")

	entries, _ := os.ReadDir(cfg.Paths.Temp)
	if len(entries) != 0 {
		t.Errorf("temp dir should be cleaned up, found %d entries", len(entries))
	}
}

func TestProcessURL(t *testing.T) {
	exec := &fakeExecutor{}
	p, cfg := newTestProcessor(t, exec)
	src := writeInput(t, cfg, "keynote.url", "# recorded talk\n\nhttps://www.youtube.com/watch?v=abc123\n")

	if err := p.Process(context.Background(), src); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	want := []string{"yt-dlp", "ffmpeg", "whisper-cli"}
	if strings.Join(exec.calls, ",") != strings.Join(want, ",") {
		t.Errorf("external calls = %v, want %v", exec.calls, want)
	}
	assertOutputs(t, cfg, "keynote")

	if entries, _ := os.ReadDir(cfg.Paths.Temp); len(entries) != 0 {
		t.Errorf("temp dir should be cleaned up, found %d entries", len(entries))
	}
}

func TestReadURLFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{"plain", "https://example.com/watch?v=1", "https://example.com/watch?v=1", false},
		{"comments and blanks", "# talk\n\n  http://example.com/v/2  \n", "http://example.com/v/2", false},
		{"empty", "\n# nothing here\n", "", true},
		{"not http", "file:///etc/passwd", "", true},
		{"no host", "https:///watch", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "in.url")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			got, err := readURLFile(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("readURLFile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("readURLFile() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProcessFailures(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		fail    string
	}{
		{"blank transcript", "empty.txt", "   \n", ""},
		{"unsupported type", "slides.pdf", "x", ""},
		{"ffmpeg fails", "call.wav", "x", "ffmpeg"},
		{"whisper fails", "call.m4a", "x", "whisper-cli"},
		{"download fails", "talk.url", "https://example.com/v/1", "yt-dlp"},
		{"bad url", "talk.url", "not a link", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, cfg := newTestProcessor(t, &fakeExecutor{fail: tt.fail})
			src := writeInput(t, cfg, tt.file, tt.content)

			if err := p.Process(context.Background(), src); err == nil {
				t.Fatal("Process() should fail")
			}
			if _, err := os.Stat(src); err != nil {
				t.Error("a failed source must stay in the inbox")
			}
		})
	}
}

func TestArchiveKeepsExistingEntry(t *testing.T) {
	p, cfg := newTestProcessor(t, &fakeExecutor{})
	impl := p.(*implProcessor)

	if err := os.MkdirAll(cfg.Paths.Archived, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfg.Paths.Archived, "a.txt"), []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	src := writeInput(t, cfg, "a.txt", "new")

	dest, err := impl.moveToArchived(context.Background(), src)
	if err != nil {
		t.Fatalf("moveToArchived() error = %v", err)
	}
	if filepath.Base(dest) == "a.txt" {
		t.Error("existing archive entry should not be overwritten")
	}
	old, _ := os.ReadFile(filepath.Join(cfg.Paths.Archived, "a.txt"))
	if string(old) != "old" {
		t.Error("existing archive entry was modified")
	}
}

func TestSupportedExtensions(t *testing.T) {
	exts := SupportedExtensions()
	for _, want := range []string{".txt", ".srt", ".mp3", ".wav", ".url"} {
		found := false
		for _, e := range exts {
			if e == want {
				found = true
			}
		}
		if !found {
			t.Errorf("SupportedExtensions() missing %s", want)
		}
	}
}
