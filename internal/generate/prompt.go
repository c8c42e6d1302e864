// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/pdiddy/podcast-engine/pkg/types"
)

// translationPromptTmpl asks for a localized rendering of the paper's
// title and abstract. Technical terms stay in their original form so
// the episode remains searchable against the source paper.
var translationPromptTmpl = template.Must(template.New("translation").Parse(`You are an academic translator. Translate the title and abstract of the following paper into {{.Language}}.

Rules:
- Preserve technical terms, model names, and acronyms in their original form.
- The translated abstract should read naturally in {{.Language}} and stay close to the source, roughly 200-300 characters.
- Respond with a JSON object with exactly two string fields: "title" and "abstract". Do not include any text outside the JSON object.

Title: {{.Title}}

Abstract:
{{.Abstract}}
`))

// insightPromptTmpl distills the abstract into the fixed
// innovation/method/result triple the episode record stores.
var insightPromptTmpl = template.Must(template.New("insight").Parse(`You are a research analyst. Read the paper information below and distill it into three short fields, written in {{.Language}}:

- innovation: the core contribution or novelty, condensed into one or two sentences
- method: how the work was carried out, one or two sentences
- result: the main finding or outcome, one or two sentences

All three fields are required and must be non-empty. Respond with a JSON object containing exactly the fields "innovation", "method", and "result". Do not include any text outside the JSON object.

Title: {{.Title}}
Localized title: {{.LocalTitle}}

Abstract:
{{.Abstract}}

Localized abstract:
{{.LocalAbstract}}
`))

// dialoguePromptTmpl turns the translated metadata and insight triple
// into a two-host conversation for the show.
var dialoguePromptTmpl = template.Must(template.New("dialogue").Parse(`You are the scriptwriter for the podcast "{{.ShowName}}". Write an engaging conversational episode script in {{.Language}} based on the paper below.

Paper:
- Title: {{.LocalTitle}}
- Abstract: {{.LocalAbstract}}
- Innovation: {{.Innovation}}
- Method: {{.Method}}
- Result: {{.Result}}

Requirements:
- Hosts: {{.PersonaList}}. {{.FirstPersona}} leans toward theory and analysis; {{.SecondPersona}} leans toward applications and implications.
- Every turn's "speaker" must be exactly one of the host names above, and every host must speak at least once.
- Structure: opening, background, core innovation, practical value, closing. Around 5-7 minutes when read aloud.
- Tone: professional but warm; the dialogue must flow naturally.

Respond with a JSON object containing "show_title" (an episode headline for the show) and "turns", an array of objects with "speaker" and "text". Do not include any text outside the JSON object.

Example response:
{"show_title": "{{.ShowName}}: Inside a New Reasoning Benchmark", "turns": [{"speaker": "{{.FirstPersona}}", "text": "Welcome back to {{.ShowName}}..."}, {"speaker": "{{.SecondPersona}}", "text": "Today's paper caught my eye because..."}]}
`))

type translationPromptData struct {
	Language string
	Title    string
	Abstract string
}

type insightPromptData struct {
	Language      string
	Title         string
	LocalTitle    string
	Abstract      string
	LocalAbstract string
}

type dialoguePromptData struct {
	Language      string
	ShowName      string
	LocalTitle    string
	LocalAbstract string
	Innovation    string
	Method        string
	Result        string
	PersonaList   string
	FirstPersona  string
	SecondPersona string
}

func renderTranslationPrompt(cfg types.GenerationConfig, c types.PaperCandidate) (string, error) {
	return render(translationPromptTmpl, translationPromptData{
		Language: cfg.Language,
		Title:    c.Title,
		Abstract: c.Abstract,
	})
}

func renderInsightPrompt(cfg types.GenerationConfig, c types.PaperCandidate, tr types.Translation) (string, error) {
	return render(insightPromptTmpl, insightPromptData{
		Language:      cfg.Language,
		Title:         c.Title,
		LocalTitle:    tr.Title,
		Abstract:      c.Abstract,
		LocalAbstract: tr.Abstract,
	})
}

func renderDialoguePrompt(cfg types.GenerationConfig, personas []string, tr types.Translation, in types.Insight) (string, error) {
	data := dialoguePromptData{
		Language:      cfg.Language,
		ShowName:      cfg.ShowName,
		LocalTitle:    tr.Title,
		LocalAbstract: tr.Abstract,
		Innovation:    in.Innovation,
		Method:        in.Method,
		Result:        in.Result,
		PersonaList:   strings.Join(personas, ", "),
	}
	if len(personas) > 0 {
		data.FirstPersona = personas[0]
	}
	if len(personas) > 1 {
		data.SecondPersona = personas[1]
	}
	return render(dialoguePromptTmpl, data)
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
