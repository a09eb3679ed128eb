// Package knowledge splits raw knowledge-base text into retrievable passages.
package knowledge

import "strings"

// ChunkConfig controls paragraph splitting for the knowledge base.
type ChunkConfig struct {
	MaxChunks int
}

// DefaultChunkConfig provides sane defaults for splitting.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		MaxChunks: 200,
	}
}

// Paragraph is one blank-line-delimited segment of the knowledge text.
// Section carries the paragraph's heading line when it has one.
type Paragraph struct {
	Text    string
	Section string
}

// SplitParagraphs splits text into trimmed, non-empty paragraphs using
// blank lines as delimiters. Empty input yields an empty result.
func SplitParagraphs(text string) []Paragraph {
	return SplitParagraphsWithConfig(text, DefaultChunkConfig())
}

// SplitParagraphsWithConfig splits text with an explicit configuration.
func SplitParagraphsWithConfig(text string, cfg ChunkConfig) []Paragraph {
	clean := strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if clean == "" {
		return nil
	}
	if cfg.MaxChunks <= 0 {
		cfg = DefaultChunkConfig()
	}

	paragraphs := make([]Paragraph, 0, 8)
	for _, segment := range strings.Split(clean, "\n\n") {
		if cfg.MaxChunks > 0 && len(paragraphs) >= cfg.MaxChunks {
			break
		}
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		paragraphs = append(paragraphs, Paragraph{
			Text:    segment,
			Section: sectionHeading(segment),
		})
	}

	return paragraphs
}

// sectionHeading returns the first line of a multi-line paragraph. A
// single-line paragraph has no separate heading.
func sectionHeading(paragraph string) string {
	idx := strings.IndexByte(paragraph, '\n')
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(paragraph[:idx])
}
