package domain

import "strings"

type RefusalReason string

const (
	RefusalNone             RefusalReason = ""
	RefusalNoRelevantChunks RefusalReason = "no_relevant_chunks"
	RefusalSelfDeclared     RefusalReason = "llm_self_refusal"
	RefusalToolError        RefusalReason = "tool_error"
)

// RefusalSentence is the canonical refusal sentence. The generation prompt
// instructs the model to emit it verbatim and the self-refusal detector
// compares against it; both sides must reference this constant.
const RefusalSentence = "I don't have enough relevant context to answer confidently."

// RefusalDecision records whether the system declined to answer and why.
// Reason is empty iff Refused is false.
type RefusalDecision struct {
	Refused bool
	Reason  RefusalReason
}

// EvidenceRefusal is the pre-generation decision taken when retrieval
// produced no chunk under the distance threshold.
func EvidenceRefusal() RefusalDecision {
	return RefusalDecision{Refused: true, Reason: RefusalNoRelevantChunks}
}

// DetectSelfRefusal compares the generated answer, after trimming
// surrounding whitespace, against the canonical refusal sentence.
func DetectSelfRefusal(answer string) RefusalDecision {
	if strings.TrimSpace(answer) == RefusalSentence {
		return RefusalDecision{Refused: true, Reason: RefusalSelfDeclared}
	}
	return RefusalDecision{}
}

var refusalPhrases = []string{
	"don't have enough relevant context",
	"not enough relevant context",
}

// LooksLikeRefusal reports whether free-form answer text reads as a
// refusal. Used on the agent path, where only the rendered chat message
// is observable and the structured refusal flag is not.
func LooksLikeRefusal(answer string) bool {
	lower := strings.ToLower(answer)
	for _, phrase := range refusalPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
