package oracle

import "fmt"

// buildPrompt constructs the fact-check prompt. The labeled-field format
// and the five verdict definitions are what parse.go expects back.
func buildPrompt(claim string) string {
	return fmt.Sprintf(`Please fact-check the following claim and provide a structured response:

CLAIM: %q

Please analyze this claim and respond with the following structured format:

VERDICT: [TRUE/FALSE/PARTIALLY_TRUE/MISLEADING/UNVERIFIABLE]
CONFIDENCE: [0.0-1.0]
EVIDENCE: [Brief summary of evidence supporting or refuting the claim]
SOURCES: [List key sources used, separated by semicolons]
REASONING: [Explain your reasoning for the verdict]

Guidelines:
- TRUE: The claim is accurate and supported by reliable evidence
- FALSE: The claim is demonstrably false
- PARTIALLY_TRUE: Some elements are true but others are false or missing context
- MISLEADING: Technically true but presented in a way that misleads
- UNVERIFIABLE: Cannot be verified with available reliable sources

Focus on recent, authoritative sources like government data, academic research, and reputable news organizations. Be specific about numbers and dates when possible.`, claim)
}
