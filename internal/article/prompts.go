// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package article

import (
	"bytes"
	"fmt"
	"text/template"
)

// systemPrompt is the shared persona instruction for every generation call.
const systemPrompt = "You are an expert at explaining complex AI research papers in simple, " +
	"beginner-friendly terms. You use analogies, examples, and clear language to make " +
	"technical concepts accessible to university students new to AI."

// Template IDs. The generator iterates sectionTemplates in order; the
// remaining IDs are the non-section generation steps.
const (
	TmplBackground   = "background"
	TmplMethodology  = "methodology"
	TmplResults      = "results"
	TmplSignificance = "significance"
	TmplConceptName  = "concept-name"
	TmplConceptBody  = "concept-explanation"
	TmplSummary      = "summary"
	TmplSubtitle     = "subtitle"
)

// PromptTemplate is one generation step as declarative configuration:
// persona, user prompt template, and paragraph budget. Keeping these as
// data lets tests substitute a stub service keyed by ID
// (prd003-generation R1.2).
type PromptTemplate struct {
	ID         string
	System     string
	User       *template.Template
	Paragraphs string
}

// promptData is the input to every user prompt template.
type promptData struct {
	Title     string
	Abstract  string
	Published string
	Concept   string
}

// Render executes the user template for the given paper data.
func (p PromptTemplate) Render(data promptData) (string, error) {
	var buf bytes.Buffer
	if err := p.User.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering prompt %s: %w", p.ID, err)
	}
	return buf.String(), nil
}

func mustTemplate(id, text string) *template.Template {
	return template.Must(template.New(id).Parse(text))
}

// sectionTemplates drives the four prose sections, in fixed order. Each
// call is independent: no section's text feeds another's prompt, so
// stylistic drift between sections is accepted.
var sectionTemplates = []PromptTemplate{
	{
		ID:         TmplBackground,
		System:     systemPrompt,
		Paragraphs: "2-3",
		User: mustTemplate(TmplBackground, `Write a beginner-friendly explanation of why the research in this paper was needed.

Paper Title: {{.Title}}
Abstract: {{.Abstract}}

Requirements:
- Explain in simple terms what problems existed before this research
- Use analogies and everyday examples where possible
- Avoid technical jargon
- Write 2-3 paragraphs
- Target audience: university students new to AI

Focus on the motivation and context, not the solution.`),
	},
	{
		ID:         TmplMethodology,
		System:     systemPrompt,
		Paragraphs: "3-4",
		User: mustTemplate(TmplMethodology, `Explain the key innovation and methodology of this research paper in beginner-friendly terms.

Paper Title: {{.Title}}
Abstract: {{.Abstract}}

Requirements:
- Break down the main approach into simple steps
- Use analogies and metaphors to explain complex concepts
- Avoid mathematical formulas and technical details
- Write 3-4 paragraphs
- Use numbered lists or bullet points where helpful
- Target audience: university students new to AI

Focus on WHAT they did and HOW it works conceptually, not the technical implementation.`),
	},
	{
		ID:         TmplResults,
		System:     systemPrompt,
		Paragraphs: "2-3",
		User: mustTemplate(TmplResults, `Explain the results and achievements of this research paper in beginner-friendly terms.

Paper Title: {{.Title}}
Abstract: {{.Abstract}}

Requirements:
- Explain what the research achieved
- Compare to previous methods if relevant
- Mention specific improvements or breakthroughs
- Write 2-3 paragraphs
- Use simple language and avoid technical metrics
- Target audience: university students new to AI

Focus on the practical impact and what made this work significant.`),
	},
	{
		ID:         TmplSignificance,
		System:     systemPrompt,
		Paragraphs: "2-3",
		User: mustTemplate(TmplSignificance, `Explain why this research paper matters today and its long-term significance in AI.

Paper Title: {{.Title}}
Abstract: {{.Abstract}}
Published: {{.Published}}

Requirements:
- Explain how this research influenced later developments
- Mention specific applications or systems that use this work
- Connect to modern AI systems people know (ChatGPT, etc.)
- Write 2-3 paragraphs
- Use simple language
- Target audience: university students new to AI

Focus on the lasting impact and why someone should care about this paper today.`),
	},
}

// conceptNameTemplate asks for the single key concept, as a short name.
// A distinct call from the explanation so the name can frame its prompt.
var conceptNameTemplate = PromptTemplate{
	ID:     TmplConceptName,
	System: systemPrompt,
	User: mustTemplate(TmplConceptName, `Identify the single most important technical concept introduced or used in this paper that a beginner should understand.

Paper Title: {{.Title}}
Abstract: {{.Abstract}}

Return only the name of the concept (2-4 words maximum). Examples:
- "Self-Attention Mechanism"
- "Convolutional Neural Networks"
- "Adversarial Training"
- "Bidirectional Context"`),
}

// conceptBodyTemplate explains the named concept, analogy-first.
var conceptBodyTemplate = PromptTemplate{
	ID:         TmplConceptBody,
	System:     systemPrompt,
	Paragraphs: "4-5",
	User: mustTemplate(TmplConceptBody, `Provide a detailed, beginner-friendly explanation of "{{.Concept}}" as it relates to the paper "{{.Title}}".

Paper Abstract: {{.Abstract}}

Requirements:
- Start with a simple analogy or real-world example
- Explain how it works step by step
- Use concrete examples
- Explain why this concept is important
- Write 4-5 paragraphs
- Use simple language and avoid jargon
- Target audience: university students new to AI
- Include practical applications where relevant

Make this explanation comprehensive enough that a beginner could understand and explain the concept to someone else.`),
}

var summaryTemplate = PromptTemplate{
	ID:     TmplSummary,
	System: systemPrompt,
	User: mustTemplate(TmplSummary, `Write a single, clear sentence that summarizes the main contribution of this research paper.

Paper Title: {{.Title}}
Abstract: {{.Abstract}}

Requirements:
- One sentence only
- Simple language
- Capture the essence of what this paper achieved
- Target audience: university students new to AI

Example format: "This paper introduced [innovation] which [impact], becoming the foundation for [applications]."`),
}

var subtitleTemplate = PromptTemplate{
	ID:     TmplSubtitle,
	System: systemPrompt,
	User: mustTemplate(TmplSubtitle, `Create an engaging subtitle for a beginner-friendly explanation of this research paper.

Paper Title: {{.Title}}
Abstract: {{.Abstract}}

Requirements:
- 5-10 words
- Capture the main innovation or impact
- Make it appealing to beginners
- Avoid technical jargon

Examples:
- "How the Transformer Architecture Revolutionized AI"
- "The Deep Learning Breakthrough That Started It All"
- "Two Neural Networks Competing to Create Reality"`),
}
