package proxy

import (
	"regexp"
	"strings"
)

// The Vision service has returned its textAnnotation at several different
// nesting levels across API revisions. Every known shape is modeled
// explicitly and tried in a fixed priority order; a total miss extracts as
// empty text, never a panic.

type visionResponse struct {
	TextAnnotation *textAnnotation  `json:"textAnnotation"`
	Result         *annotationHolder `json:"result"`
	Response       *annotationHolder `json:"response"`
}

type annotationHolder struct {
	TextAnnotation *textAnnotation `json:"textAnnotation"`
}

type textAnnotation struct {
	Blocks []textBlock `json:"blocks"`
}

type textBlock struct {
	Lines []textLine `json:"lines"`
}

type textLine struct {
	Text string `json:"text"`
}

var tripleNewlines = regexp.MustCompile(`\n{3,}`)

// extractText pulls recognized text out of a Vision OCR response,
// trying the known textAnnotation locations in priority order. Block
// lines are joined with newlines and blocks separated by a blank line.
func extractText(resp *visionResponse) string {
	if resp == nil {
		return ""
	}

	ta := resp.TextAnnotation
	if ta == nil && resp.Result != nil {
		ta = resp.Result.TextAnnotation
	}
	if ta == nil && resp.Response != nil {
		ta = resp.Response.TextAnnotation
	}
	if ta == nil {
		return ""
	}

	var lines []string
	for _, b := range ta.Blocks {
		for _, l := range b.Lines {
			lines = append(lines, l.Text)
		}
		if len(b.Lines) > 0 {
			lines = append(lines, "")
		}
	}

	joined := strings.Join(lines, "\n")
	joined = tripleNewlines.ReplaceAllString(joined, "\n\n")
	return strings.TrimSpace(joined)
}
