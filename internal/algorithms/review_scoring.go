package algorithms

import (
	"math"

	"hera_backend/internal/models"
)

const defaultTimeframeWeight = 0.5

// TimeframeWeight is the recency decay applied to a review.
func TimeframeWeight(tf models.Timeframe) float64 {
	switch tf {
	case models.TimeframeLast6Months:
		return 1.0
	case models.Timeframe6To12Months:
		return 0.75
	case models.Timeframe1To2Years:
		return 0.5
	case models.TimeframeOver2Years:
		return 0.25
	default:
		return defaultTimeframeWeight
	}
}

// ReviewAggregate holds weighted percentages over a company's reviews.
type ReviewAggregate struct {
	WitnessedIssuesPercent   int            `json:"witnessed_issues_percent"`
	IssueTypeBreakdown       map[string]int `json:"issue_type_breakdown"`
	ReportedPercent          int            `json:"reported_percent"`
	CompanyResponseBreakdown map[string]int `json:"company_response_breakdown"`
	WouldRecommend           map[string]int `json:"would_recommend"`
}

// ReviewSummary is the result of AggregateReviews. Aggregate and Score are
// nil when there are no reviews.
type ReviewSummary struct {
	TotalReviews int
	Aggregate    *ReviewAggregate
	Score        *int
}

// reviewWeight prefers the weight stored at submission and falls back to
// the timeframe mapping for rows that carry none.
func reviewWeight(r *models.EmployeeReview) float64 {
	if r.Weight > 0 {
		return r.Weight
	}
	return TimeframeWeight(r.ReviewData.Timeframe)
}

// AggregateReviews computes recency-weighted percentages and the employee
// perspective score.
func AggregateReviews(reviews []models.EmployeeReview) ReviewSummary {
	if len(reviews) == 0 {
		return ReviewSummary{}
	}

	var total, witnessed, reported float64
	issueTypes := map[string]float64{}
	responses := map[string]float64{}
	recommend := map[string]float64{
		string(models.RecommendYes):              0,
		string(models.RecommendWithReservations): 0,
		string(models.RecommendNo):               0,
	}

	for i := range reviews {
		r := &reviews[i]
		w := reviewWeight(r)
		d := r.ReviewData
		total += w

		if d.WitnessedIssues.Witnessed() {
			witnessed += w
		}
		if d.Reported.WasReported() {
			reported += w
		}
		for _, it := range d.IssueTypes {
			issueTypes[string(it)] += w
		}
		for _, cr := range d.CompanyResponse {
			responses[string(cr)] += w
		}
		if d.WouldRecommend != "" {
			recommend[string(d.WouldRecommend)] += w
		}
	}

	agg := &ReviewAggregate{
		WitnessedIssuesPercent:   percentOf(witnessed, total),
		IssueTypeBreakdown:       percentages(issueTypes, total),
		ReportedPercent:          percentOf(reported, total),
		CompanyResponseBreakdown: percentages(responses, total),
		WouldRecommend:           percentages(recommend, total),
	}
	score := PerspectiveScore(agg)

	return ReviewSummary{
		TotalReviews: len(reviews),
		Aggregate:    agg,
		Score:        &score,
	}
}

// PerspectiveScore starts at 10, applies each rule in turn and clamps the
// result to [1, 10].
func PerspectiveScore(agg *ReviewAggregate) int {
	score := 10

	switch w := agg.WitnessedIssuesPercent; {
	case w > 60:
		score -= 5
	case w > 30:
		score -= 3
	case w > 10:
		score -= 1
	}

	resp := agg.CompanyResponseBreakdown
	switch na := resp[string(models.ResponseNoAction)]; {
	case na > 40:
		score -= 3
	case na > 20:
		score -= 1
	}

	switch rt := resp[string(models.ResponseRetaliation)]; {
	case rt > 10:
		score -= 4
	case rt > 0:
		score -= 2
	}

	if resp[string(models.ResponseInvestigation)] > 30 && resp[string(models.ResponseDisciplinaryAction)] > 20 {
		score += 2
	}

	switch yes := agg.WouldRecommend[string(models.RecommendYes)]; {
	case yes > 50:
		score += 2
	case yes > 30:
		score += 1
	}

	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}

func percentOf(part, total float64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(part / total * 100))
}

func percentages(sums map[string]float64, total float64) map[string]int {
	out := make(map[string]int, len(sums))
	for k, v := range sums {
		out[k] = percentOf(v, total)
	}
	return out
}
