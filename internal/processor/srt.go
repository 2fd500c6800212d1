package processor

import (
	"regexp"
	"strings"
)

var (
	reSrtIndex = regexp.MustCompile(`^\d+$`)
	reSrtTime  = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}[,.]\d{3}\s*-->`)
)

// parseSRT keeps only the dialogue of an SRT file, one cue per line.
// Consecutive identical cues, a common whisper artifact, are collapsed.
func parseSRT(content string) string {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var (
		cues []string
		cue  []string
		last string
	)
	flush := func() {
		if len(cue) == 0 {
			return
		}
		text := strings.Join(cue, " ")
		cue = cue[:0]
		if text == last {
			return
		}
		cues = append(cues, text)
		last = text
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flush()
		case reSrtTime.MatchString(trimmed):
		case reSrtIndex.MatchString(trimmed) && len(cue) == 0:
		default:
			cue = append(cue, trimmed)
		}
	}
	flush()

	return strings.Join(cues, "\n")
}
