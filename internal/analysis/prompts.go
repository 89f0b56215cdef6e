package analysis

import (
	"github.com/fintihlupik/LLM-RAG-Agents/internal/llm"
)

const systemPrompt = "You are an expert financial analyst with broad experience reading quarterly " +
	"and annual company reports. Your analysis is precise and objective and focuses on key metrics. " +
	"You always point out important trends and actionable conclusions."

const summarizeInstructions = "Summarize the following financial report in a structured way.\n\n" +
	"Include:\n" +
	"1. **Executive Summary** (2-3 lines)\n" +
	"2. **Key Metrics** (revenue, profit, margins, etc.)\n" +
	"3. **Main Trends** (significant changes)\n" +
	"4. **Risks or Observations** (if any)\n" +
	"5. **Conclusion** (1-2 lines)\n\n"

const compareInstructions = "Compare these two financial reports and highlight the key differences.\n\n"

func summarizePrompt(documentText string) []llm.Message {
	return []llm.Message{
		llm.SystemMessage(systemPrompt),
		llm.UserMessage(summarizeInstructions + "REPORT:\n" + documentText),
	}
}

func comparisonPrompt(first string, second string) []llm.Message {
	return []llm.Message{
		llm.SystemMessage(systemPrompt),
		llm.UserMessage(compareInstructions + "DOCUMENT 1:\n" + first + "\n\nDOCUMENT 2:\n" + second),
	}
}
