package service

// Dependency identifies an external collaborator of the analysis pipeline.
type Dependency string

const (
	DepPhonemeModel Dependency = "phoneme_model"
	DepReasoningAPI Dependency = "reasoning_api"
	DepScoreStore   Dependency = "score_store"
	DepProfileStore Dependency = "profile_store"
	DepClipArchive  Dependency = "clip_archive"
)

// FailurePolicy says what happens to a request when a dependency fails.
type FailurePolicy int

const (
	// Fatal failures abort the request with an error response.
	Fatal FailurePolicy = iota
	// BestEffort failures are logged and the request continues.
	BestEffort
)

// failurePolicies is the error policy for each external dependency the
// analysis pipeline touches. Scoring and score persistence are load-bearing;
// personalization and clip archival are not. The phoneme model and reasoning
// API produce the response payload, so they can only be Fatal.
var failurePolicies = map[Dependency]FailurePolicy{
	DepPhonemeModel: Fatal,
	DepReasoningAPI: Fatal,
	DepScoreStore:   Fatal,
	DepProfileStore: BestEffort,
	DepClipArchive:  BestEffort,
}

// PolicyFor returns the failure policy for a dependency. Unknown dependencies
// are treated as Fatal.
func PolicyFor(dep Dependency) FailurePolicy {
	if policy, ok := failurePolicies[dep]; ok {
		return policy
	}
	return Fatal
}
