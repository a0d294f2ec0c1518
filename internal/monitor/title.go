package monitor

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

var countPattern = regexp.MustCompile(`\((\d+)\)`)

// ParseCount extracts the first parenthesized integer from a page title.
// Titles without an indicator parse as 0.
func ParseCount(title string) int {
	match := countPattern.FindStringSubmatch(title)
	if match == nil {
		return 0
	}
	count, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return count
}

// ExtractTitle returns the text of the first <title> element in the HTML
// document read from r. Surrounding whitespace is trimmed the way browsers
// collapse it. An empty string means the document carried no title.
func ExtractTitle(r io.Reader) string {
	tokenizer := html.NewTokenizer(r)
	inTitle := false
	var title strings.Builder

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(title.String())
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if string(name) == "title" {
				inTitle = true
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if string(name) == "title" && inTitle {
				return strings.TrimSpace(title.String())
			}
		case html.TextToken:
			if inTitle {
				title.Write(tokenizer.Text())
			}
		}
	}
}
