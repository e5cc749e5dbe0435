package synth

import (
	"strings"

	"github.com/ymorimoto/sekisan/internal/estimate"
)

// TranscribeInstruction is sent alongside a rasterized page image when the
// vision OCR strategy is active.
const TranscribeInstruction = "This is a scanned page from a Japanese construction or civil-engineering document. " +
	"Transcribe every piece of visible text verbatim, including all numbers, units, and table contents. " +
	"Preserve table structure as markdown tables. Output only the transcription, no commentary."

// SystemPrompt composes the standing instruction: role, task, submission
// context, the estimation policy, and output format. The policy section is
// rendered from the same constants the rule engine computes with.
func SystemPrompt() string {
	var b strings.Builder
	b.WriteString("# Role\n")
	b.WriteString("You are an engineer at a construction consultancy acting as an estimate-drafting assistant.\n\n")

	b.WriteString("# Instruction\n")
	b.WriteString("Draft a cost estimate in the expected format from the information provided. ")
	b.WriteString("Where the reference data contains similar past work, stay consistent with it.\n\n")

	b.WriteString("# Context\n")
	b.WriteString("The user is preparing an estimate for a new project proposal. ")
	b.WriteString("It will be submitted against a public-works budget of the Ministry of Land, ")
	b.WriteString("Infrastructure, Transport and Tourism or a prefectural civil engineering office.\n\n")

	b.WriteString("# Constraints\n")
	b.WriteString(estimate.PolicyText(estimate.FY2025))
	b.WriteString("\nIf the user message includes a precomputed cost breakdown, it is authoritative: ")
	b.WriteString("reproduce its figures exactly and do not recalculate them.\n\n")

	b.WriteString("# Output\n")
	b.WriteString("For each work item state the person-day allocation per technician grade, ")
	b.WriteString("then the cost buildup through to the total price, as markdown tables and bullet lists. ")
	b.WriteString("Write the estimate in the same language as the work description.")
	return b.String()
}

// UserPrompt packages the project fields, the reference corpus, and the
// optional deterministic breakdown into the user message.
func UserPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("Project name: ")
	b.WriteString(strings.TrimSpace(req.ProjectName))
	b.WriteString("\nLocation: ")
	b.WriteString(strings.TrimSpace(req.Location))
	b.WriteString("\nWork description:\n")
	b.WriteString(strings.TrimSpace(req.WorkItems))
	b.WriteString("\n")

	if req.Breakdown != "" {
		b.WriteString("\nCost breakdown (computed deterministically; reproduce these figures exactly):\n")
		b.WriteString(req.Breakdown)
		b.WriteString("\n")
	}

	b.WriteString("\nReference data from past projects:\n")
	if strings.TrimSpace(req.Corpus) == "" {
		b.WriteString("(none available; draft from general industry knowledge and state clearly that no reference data was used)")
	} else {
		b.WriteString(req.Corpus)
	}
	return b.String()
}
