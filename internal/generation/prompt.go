package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"eazyhealth/internal/domain"
)

const explainerSystem = `You are a medical writing assistant specializing in health education.
Your job is to take complex health information and make it accessible to general audiences.
You NEVER provide personalized medical advice or diagnosis.
You always include appropriate disclaimers.`

const analysisSystem = `You are a public health communicator writing weekly summaries for the general public.
You analyze disease surveillance data and explain trends in accessible language.
You avoid alarmism and always provide context.`

const summarySystem = `You are a health news summarizer for general audiences.
You take recent health research or news articles and create accessible summaries.
You cite sources and distinguish between preliminary research and established facts.`

func buildExplainerPrompt(docs []domain.SourceDocument, topicHint, levelPrompt string) string {
	var b strings.Builder

	b.WriteString("Task: Rewrite the following health information for a general audience.\n\n")
	fmt.Fprintf(&b, "Reading Level: %s\n\n", levelPrompt)
	fmt.Fprintf(&b, "Topic Hint: %s\n\n", topicHint)
	b.WriteString(`Structure your response as a JSON object with this exact format:
{
  "title": "Clear, engaging title for this topic",
  "sections": [
    {"heading": "Overview", "content": "Brief overview paragraph"},
    {"heading": "Key Points", "content": "Short paragraphs with main takeaways"},
    {"heading": "Symptoms & Warning Signs", "content": "If applicable, describe symptoms"},
    {"heading": "What Patients Can Do", "content": "General guidance, NOT personalized advice"},
    {"heading": "When to Seek Medical Care", "content": "If applicable, when to contact a doctor"}
  ]
}

Important rules:
- Do NOT invent information not present in the source
- Do NOT provide personalized medical advice
- Use hedging language ("may", "can", "generally")
- Omit sections that do not apply

Here is the input text to rewrite:

`)
	writeDocuments(&b, docs)
	b.WriteString("\nReturn ONLY the JSON object, no other text.")

	return b.String()
}

func buildAnalysisPrompt(stats map[string]any, levelPrompt string) string {
	var b strings.Builder

	b.WriteString("Task: Write a weekly health briefing based on disease surveillance data.\n\n")
	fmt.Fprintf(&b, "Reading Level: %s\n\n", levelPrompt)

	b.WriteString("Data Summary:\n")
	if raw, err := json.MarshalIndent(stats, "", "  "); err == nil {
		b.Write(raw)
	}
	b.WriteString("\n\n")

	b.WriteString(`Structure your response as a JSON object:
{
  "title": "Engaging title for this week's briefing",
  "summary": "1-2 sentence snapshot for preview",
  "body_markdown": "Full briefing in markdown with sections: ## Snapshot, ## What's Trending, ## Context & Factors, ## How to Stay Informed",
  "tags": ["covid", "flu", "respiratory"]
}

Important:
- Use cautious language ("data suggests", "appears to show")
- Provide context (seasonal patterns, data limitations)
- Do NOT provide personalized medical advice
- Do NOT cause unnecessary alarm
- Focus on trends, not individual risk

Return ONLY the JSON object.`)

	return b.String()
}

func buildSummaryPrompt(docs []domain.SourceDocument, topic, levelPrompt string) string {
	var b strings.Builder

	b.WriteString("Task: Write a briefing summarizing recent health news articles.\n\n")
	fmt.Fprintf(&b, "Reading Level: %s\n\n", levelPrompt)
	fmt.Fprintf(&b, "Topic: %s\n\n", topic)
	b.WriteString("Articles:\n\n")
	writeDocuments(&b, docs)
	b.WriteString(`
Structure your response as a JSON object:
{
  "title": "Engaging title summarizing the news",
  "summary": "1-2 sentence overview",
  "body_markdown": "Full summary in markdown with sections: ## Overview, ## Key Findings, ## What This Means, ## Sources",
  "tags": ["research", "treatment"]
}

Important:
- Distinguish between correlation and causation
- Note if research is preliminary, in animals, or small sample
- Cite all sources
- Do NOT overstate findings
- Do NOT provide medical advice

Return ONLY the JSON object.`)

	return b.String()
}

func writeDocuments(b *strings.Builder, docs []domain.SourceDocument) {
	for i, doc := range docs {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}
		fmt.Fprintf(b, "Source: %s\nTitle: %s\nContent: %s\n", doc.URL, doc.Title, doc.Text)
	}
}
