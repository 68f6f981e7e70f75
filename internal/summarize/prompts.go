package summarize

import (
	"strings"
	"unicode/utf8"
)

// TruncationMarker is appended to input text cut at the character limit.
const TruncationMarker = "..."

// Truncate keeps the first max characters of text and appends TruncationMarker
// when text is longer than max. The boolean reports whether it cut anything.
func Truncate(text string, max int) (string, bool) {
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text, false
	}

	count := 0
	for i := range text {
		if count == max {
			return text[:i] + TruncationMarker, true
		}
		count++
	}
	return text, false
}

// BuildPrompt renders the prompt template for style around text.
func BuildPrompt(style Style, text string) string {
	var prompt strings.Builder

	switch style {
	case StyleArticle:
		prompt.WriteString("Rewrite the following website content as a well-structured article.\n\n")
		prompt.WriteString("STRUCTURE:\n")
		prompt.WriteString("1. A clear, descriptive title on the first line\n")
		prompt.WriteString("2. An introduction that sets out the topic and why it matters\n")
		prompt.WriteString("3. The main points, each developed in its own paragraph\n")
		prompt.WriteString("4. A conclusion that ties the main points together\n\n")
		prompt.WriteString("Use a formal, objective tone.\n")

	case StyleProject:
		prompt.WriteString("Summarize the following website content as a project report.\n\n")
		prompt.WriteString("SECTIONS (in this order, each with a heading):\n")
		prompt.WriteString("- Purpose: the goal or problem being addressed\n")
		prompt.WriteString("- Steps: the approach, methods or stages described\n")
		prompt.WriteString("- Results: the outcomes, findings or deliverables\n")
		prompt.WriteString("- Implications: what the results mean and what could follow\n\n")
		prompt.WriteString("Keep each section factual and grounded in the content.\n")

	case StyleBullets:
		prompt.WriteString("Extract the key points from the following website content.\n\n")
		prompt.WriteString("RULES:\n")
		prompt.WriteString("- Output a numbered list of 5-10 points (1., 2., 3., ...)\n")
		prompt.WriteString("- Each point is one concise, self-contained statement\n")
		prompt.WriteString("- Do NOT write any prose paragraphs, introduction or conclusion\n")
		prompt.WriteString("- Output only the numbered list\n")

	case StyleResearch:
		prompt.WriteString("Write a research-style abstract of the following website content.\n\n")
		prompt.WriteString("FORMAT:\n")
		prompt.WriteString("Abstract: a single paragraph covering background, focus, key findings and significance\n")
		prompt.WriteString("Keywords: a comma-separated list of 4-8 keywords\n\n")
		prompt.WriteString("Label the paragraph \"Abstract\" and the list \"Keywords\". Use an academic tone.\n")

	case StyleResume:
		prompt.WriteString("Summarize the following website content as a professional profile suitable for a resume.\n\n")
		prompt.WriteString("RULES:\n")
		prompt.WriteString("- Frame the content in terms of skills, experience and accomplishments\n")
		prompt.WriteString("- Write in concise, polished paragraphs\n")
		prompt.WriteString("- Do NOT use bullet points or numbered lists\n")

	default:
		prompt.WriteString("Summarize the following website content as a general overview.\n\n")
		prompt.WriteString("RULES:\n")
		prompt.WriteString("- Write a single flowing narrative in clear prose\n")
		prompt.WriteString("- Cover the main topic, the key ideas and their significance\n")
		prompt.WriteString("- Do NOT use bullet points, numbered lists or headings\n")
	}

	prompt.WriteString("\nWebsite content:\n---\n")
	prompt.WriteString(text)
	prompt.WriteString("\n---")

	return prompt.String()
}
