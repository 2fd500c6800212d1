package processor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	docFont     = "Times New Roman"
	bodySize    = 12
	sectionSize = 14
	titleSize   = 16
)

var (
	// Models answer in light markdown; only bullets and bold spans survive.
	reListItem = regexp.MustCompile(`^(?:[\-\*•]|\d+[.)])\s+(.+)$`)
	reStrong   = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

// writeReportDocx lays out rep as a Word document: title, a metadata line,
// the summary and then each configured question with its answer.
func writeReportDocx(rep report, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	styled(doc.AddParagraph(""), rep.Name, titleSize).Bold(true)
	styled(doc.AddParagraph(""), reportMeta(rep), bodySize).Italic(true)

	writeModelText(doc, rep.Summary)

	if len(rep.Answers) > 0 {
		styled(doc.AddParagraph(""), "Questions", sectionSize).Bold(true)
		for _, ex := range rep.Answers {
			styled(doc.AddParagraph(""), ex.Question, bodySize).Bold(true)
			writeModelText(doc, ex.Answer)
		}
	}

	return doc.SaveTo(outputPath)
}

// writeTranscriptDocx writes the transcript, one paragraph per non-blank line.
func writeTranscriptDocx(name, transcript, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	styled(doc.AddParagraph(""), name+" (transcript)", titleSize).Bold(true)
	for _, line := range strings.Split(transcript, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			styled(doc.AddParagraph(""), line, bodySize)
		}
	}

	return doc.SaveTo(outputPath)
}

func reportMeta(rep report) string {
	return fmt.Sprintf("%s · %s · %s strategy · %d tokens · %d chunks",
		rep.Created.Format("2006-01-02 15:04"), rep.Format, rep.Strategy, rep.Tokens, rep.Chunks)
}

// writeModelText adds one paragraph per line of an LLM reply. List markers
// become a bullet glyph.
func writeModelText(doc *docx.RootDoc, text string) {
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := reListItem.FindStringSubmatch(line); m != nil {
			line = "• " + m[1]
		}
		addWithStrong(doc.AddParagraph(""), line)
	}
}

// addWithStrong splits line on **bold** spans so they keep their weight.
func addWithStrong(p *docx.Paragraph, line string) {
	plain := reStrong.Split(line, -1)
	strong := reStrong.FindAllStringSubmatch(line, -1)

	for i, part := range plain {
		if part != "" {
			styled(p, part, bodySize)
		}
		if i < len(strong) {
			styled(p, strong[i][1], bodySize).Bold(true)
		}
	}
}

func styled(p *docx.Paragraph, text string, size uint64) *docx.Run {
	text = strings.NewReplacer("**", "", "__", "", "`", "").Replace(text)
	return p.AddText(text).Font(docFont).Size(size).Color("000000")
}
