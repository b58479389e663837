package domain

// MaxPhrasesPerCall is the vendor's fixed cap on suggestions returned by one query.
const MaxPhrasesPerCall = 10

// EstimationResult is the immutable outcome of one estimation.
type EstimationResult struct {
	keyword string
	score   int
}

// NewEstimationResult creates a new EstimationResult
func NewEstimationResult(keyword string, score int) EstimationResult {
	return EstimationResult{keyword: keyword, score: score}
}

// Keyword returns the estimated keyword
func (r EstimationResult) Keyword() string {
	return r.keyword
}

// Score returns the coverage score
func (r EstimationResult) Score() int {
	return r.score
}

// ComputeScore returns floor(matched / (expansionQueries+1) * MaxPhrasesPerCall).
// The +1 accounts for the seed call. The result is not capped: the vendor's
// per-call limit already bounds every call's contribution.
func ComputeScore(matched, expansionQueries int) int {
	if matched <= 0 || expansionQueries < 0 {
		return 0
	}
	return matched * MaxPhrasesPerCall / (expansionQueries + 1)
}
