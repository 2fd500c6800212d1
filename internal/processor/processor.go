package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/caption-qa/internal/logger"
	"github.com/nguyentantai21042004/caption-qa/internal/models"
	"github.com/nguyentantai21042004/caption-qa/internal/session"
)

// report is everything written for one processed source.
type report struct {
	Name     string
	Summary  string
	Format   models.OutputFormat
	Strategy models.Strategy
	Tokens   int
	Chunks   int
	Answers  []models.QAExchange
	Created  time.Time
}

// Process loads the transcript at path, summarizes it, answers the
// configured questions and writes <name>.md, <name>.docx and
// <name>.transcript.docx to the output folder. The source is archived
// only after the summary is written.
func (p *implProcessor) Process(ctx context.Context, path string) error {
	startTime := time.Now()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	ctx = logger.WithFields(ctx, "source", filepath.Base(path))

	p.logger.Info(ctx, "Processing: %s", path)

	transcript, err := p.loadTranscript(ctx, path)
	if err != nil {
		return err
	}

	sess, err := p.sessions.Initialize(ctx, transcript)
	if err != nil {
		return fmt.Errorf("initialize session: %w", err)
	}
	defer func() {
		if err := p.sessions.Delete(ctx, sess.ID); err != nil {
			p.logger.Warn(ctx, "Failed to release session %s: %v", sess.ID, err)
		}
	}()

	summary, err := sess.Report(ctx, p.format)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	rep := report{
		Name:     name,
		Summary:  summary.Text,
		Format:   p.format,
		Strategy: summary.Strategy,
		Tokens:   summary.Tokens,
		Chunks:   sess.IndexSize(),
		Answers:  p.answerQuestions(ctx, sess),
		Created:  time.Now(),
	}

	if err := os.MkdirAll(p.cfg.Paths.Output, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	md := renderMarkdown(rep)
	mdPath := filepath.Join(p.cfg.Paths.Output, name+".md")
	if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	docxPath := filepath.Join(p.cfg.Paths.Output, name+".docx")
	if err := writeReportDocx(rep, docxPath); err != nil {
		p.logger.Warn(ctx, "Failed to write summary docx: %v", err)
	}
	transcriptPath := filepath.Join(p.cfg.Paths.Output, name+".transcript.docx")
	if err := writeTranscriptDocx(name, transcript, transcriptPath); err != nil {
		p.logger.Warn(ctx, "Failed to write transcript docx: %v", err)
	}

	if _, err := p.moveToArchived(ctx, path); err != nil {
		p.logger.Warn(ctx, "Failed to move source to archived folder: %v", err)
	}

	p.logger.Info(ctx, "[DONE] %s -> %s (%s, %d tokens, %d chunks, %s)",
		name, mdPath, rep.Strategy, rep.Tokens, rep.Chunks, time.Since(startTime).Round(time.Millisecond))
	return nil
}

// answerQuestions skips questions that fail so one bad answer does not
// discard the summary.
func (p *implProcessor) answerQuestions(ctx context.Context, sess *session.Session) []models.QAExchange {
	for _, q := range p.cfg.Pipeline.Questions {
		if _, err := sess.Answer(ctx, q); err != nil {
			p.logger.Warn(ctx, "Failed to answer %q: %v", q, err)
		}
	}

	answers, err := sess.History(ctx)
	if err != nil {
		p.logger.Warn(ctx, "Failed to read answers: %v", err)
		return nil
	}
	return answers
}

func renderMarkdown(rep report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", rep.Name)
	fmt.Fprintf(&b, "_%s_\n\n", reportMeta(rep))
	b.WriteString(strings.TrimSpace(rep.Summary))
	b.WriteString("\n")

	if len(rep.Answers) > 0 {
		b.WriteString("\n## Questions\n")
		for _, ex := range rep.Answers {
			fmt.Fprintf(&b, "\n### %s\n\n%s\n", ex.Question, strings.TrimSpace(ex.Answer))
		}
	}
	return b.String()
}
