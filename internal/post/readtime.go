package post

import "strings"

const wordsPerMinute = 200

// WordCount is a rough count of words in the Markdown body. Markup tokens
// count as words; the estimate does not need to be exact.
func (p *Post) WordCount() int {
	return len(strings.Fields(string(p.Body)))
}

// ReadingMinutes estimates reading time, never less than one minute for a
// non-empty post.
func (p *Post) ReadingMinutes() int {
	words := p.WordCount()
	if words == 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}
