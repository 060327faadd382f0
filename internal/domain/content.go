package domain

import (
	"fmt"
	"strings"
)

const defaultContentTemplate = `# %[1]s

[DECRYPTED_RECORD_ACTIVE]

TYPE: %[2]s
CATEGORY: %[3]s

INSTRUCTIONS:
- Deploy %[1]s sequence.
- Target: High efficiency AI reasoning.
- Constraints: Strictly maintain the identity of a %[4]s.

[PROMPT_BLOCK_START]
System initialization... OK.
Act as a specialized AI architect. Your task is to address the following query while adhering to the %[3]s security protocols. Focus on high-fidelity output.
[USER_QUERY_PLACEHOLDER]`

// GenerateDefaultContent renders the placeholder body shown for a prompt
// without content. The result is never persisted.
func GenerateDefaultContent(p Prompt) string {
	return fmt.Sprintf(defaultContentTemplate, p.Name, p.Tag, p.Category, strings.ToLower(p.Tag))
}

// EffectiveContent returns the stored content, or the generated placeholder
// when the prompt has none.
func EffectiveContent(p Prompt) string {
	if p.Content != "" {
		return p.Content
	}
	return GenerateDefaultContent(p)
}
