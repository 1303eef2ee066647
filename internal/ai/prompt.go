package ai

import (
	"fmt"
	"strings"
)

// DefaultInstruction is what the flow is asked to produce from the transcript.
const DefaultInstruction = "a blog post based on this video transcript"

// PromptTemplate is the prompt component template of the enrichment flow.
// {references} receives the transcript and {instruction} the task.
const PromptTemplate = `Given the following references and instructions:

Reference 1:
{references}

"Generate only JSON structured output for {instruction} in the following format:
title: title from output || description: description from output and it should be more in detailed || keyword: keyword from output || metaDescription: metaDescription from output || metaTitle: metaTitle from output || metaTag: metatag from output
Replace each placeholder with appropriate values. Ensure the title is concise and engaging, the description provides a detailed overview, and the metadata fields (keyword, metaDescription, metaTitle, metaTag) are SEO-optimized and relevant to {instruction}.
The keyword field must be a single comma separated string.`

// BuildPrompt renders PromptTemplate for chat models that take the whole
// prompt as messages.
func BuildPrompt(transcript, instruction string) (string, string) {
	if instruction == "" {
		instruction = DefaultInstruction
	}

	systemPrompt := `You are a content writer for a blogging platform.
You only use facts present in the transcript.
Return valid JSON with exactly these string fields: title, description, keyword, metaDescription, metaTitle, metaTag.`

	userPrompt := strings.NewReplacer(
		"{references}", transcript,
		"{instruction}", instruction,
	).Replace(PromptTemplate)

	return systemPrompt, userPrompt
}

// BuildTweaks builds the per-component overrides sent with a flow run.
func BuildTweaks(promptComponent, transcript, instruction string) map[string]interface{} {
	if instruction == "" {
		instruction = DefaultInstruction
	}
	if promptComponent == "" {
		return map[string]interface{}{}
	}
	return map[string]interface{}{
		promptComponent: map[string]interface{}{
			"template":    PromptTemplate,
			"references":  transcript,
			"instruction": instruction,
		},
	}
}

// truncateString truncates string to max length
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return fmt.Sprintf("%s...", s[:maxLen])
}
