// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Translation is the localized rendering of a paper's title and abstract.
type Translation struct {
	// Title is the localized paper title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the localized abstract, technical terms preserved.
	Abstract string `json:"abstract" yaml:"abstract"`
}

// Insight is the structured triple distilled from a paper's abstract.
// All three fields are required; a response missing any of them is
// rejected before anything downstream consumes it.
type Insight struct {
	// Innovation summarizes the core contribution.
	Innovation string `json:"innovation" yaml:"innovation"`

	// Method summarizes the research method.
	Method string `json:"method" yaml:"method"`

	// Result summarizes the main findings.
	Result string `json:"result" yaml:"result"`
}

// DialogueTurn is one utterance by one persona within a dialogue script.
type DialogueTurn struct {
	// Persona is the configured speaker role name.
	Persona string `json:"persona" yaml:"persona"`

	// Text is the utterance.
	Text string `json:"text" yaml:"text"`
}

// DialogueScript is the ordered dialogue generated for one episode. It
// exists only in memory between scripting and synthesis; only its
// rendered text and audio are persisted.
type DialogueScript struct {
	// ShowTitle is the episode headline for the show.
	ShowTitle string `json:"show_title" yaml:"show_title"`

	// Turns is the dialogue in reading order.
	Turns []DialogueTurn `json:"turns" yaml:"turns"`
}

// Render formats the script as plain text, one "Persona: text" line per
// turn. This is the form persisted to storage and the episode record.
func (s DialogueScript) Render() string {
	var b strings.Builder
	if s.ShowTitle != "" {
		b.WriteString(s.ShowTitle)
		b.WriteString("\n\n")
	}
	for _, t := range s.Turns {
		b.WriteString(t.Persona)
		b.WriteString(": ")
		b.WriteString(t.Text)
		b.WriteString("\n")
	}
	return b.String()
}
