package cue

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ryokoh/cueline/internal/timecode"
)

var (
	timingRegex     = regexp.MustCompile(`(\d{2}:\d{2}:\d{2},\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2},\d{3})`)
	bareNumberRegex = regexp.MustCompile(`^\d+$`)
)

// parses SRT text into a cue list. The grammar is a per-block heuristic
// rather than a strict parse: an integer index line, a timing line, then
// text lines until a blank line or a line that is purely digits (assumed
// to start the next block). Blocks whose timing line does not match are
// skipped without aborting the rest. Either \r\n or \n line endings are
// accepted, and a leading BOM is ignored.
//
// Zero cues is a valid result for input that simply contains none.
func Parse(content string) List {
	content = strings.TrimPrefix(content, "\ufeff")
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	var cues List
	i := 0
	for i < len(lines) {
		if strings.TrimSpace(lines[i]) == "" {
			i++
			continue
		}

		number, _ := strconv.Atoi(strings.TrimSpace(lines[i]))
		i++
		if i >= len(lines) {
			break
		}

		m := timingRegex.FindStringSubmatch(lines[i])
		if m == nil {
			// index consumed, no cue emitted
			i++
			continue
		}
		i++

		var text []string
		for i < len(lines) &&
			strings.TrimSpace(lines[i]) != "" &&
			!bareNumberRegex.MatchString(lines[i]) {
			text = append(text, lines[i])
			i++
		}

		// the timing regex guarantees both timestamps parse
		startSeconds, _ := timecode.Parse(m[1])
		endSeconds, _ := timecode.Parse(m[2])

		cues = append(cues, Cue{
			Number:       number,
			Start:        m[1],
			End:          m[2],
			StartSeconds: startSeconds,
			EndSeconds:   endSeconds,
			Text:         strings.Join(text, "\n"),
		})
	}

	return cues
}

// serializes the list back to SRT text with \n line endings, in list
// order. Keeping the list sorted and renumbered is the caller's job.
func Serialize(cues List) string {
	var sb strings.Builder
	for i := range cues {
		sb.WriteString(strconv.Itoa(cues[i].Number))
		sb.WriteString("\n")
		sb.WriteString(cues[i].Start)
		sb.WriteString(" --> ")
		sb.WriteString(cues[i].End)
		sb.WriteString("\n")
		sb.WriteString(cues[i].Text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
