package algorithms

import (
	"testing"

	"hera_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func review(data models.ReviewData) models.EmployeeReview {
	return models.EmployeeReview{
		ReviewData: data,
		Weight:     TimeframeWeight(data.Timeframe),
		Published:  true,
	}
}

func TestAggregateReviewsEmpty(t *testing.T) {
	summary := AggregateReviews(nil)
	assert.Equal(t, 0, summary.TotalReviews)
	assert.Nil(t, summary.Aggregate)
	assert.Nil(t, summary.Score)
}

func TestAggregateReviewsWorstCase(t *testing.T) {
	data := models.ReviewData{
		WitnessedIssues: models.WitnessedDirect,
		Timeframe:       models.TimeframeLast6Months,
		Reported:        models.ReportedNo,
		CompanyResponse: []models.CompanyResponse{models.ResponseNoAction},
		WouldRecommend:  models.RecommendNo,
	}
	summary := AggregateReviews([]models.EmployeeReview{review(data), review(data)})

	require.NotNil(t, summary.Score)
	assert.Equal(t, 2, summary.TotalReviews)
	assert.Equal(t, 2, *summary.Score)
	assert.Equal(t, 100, summary.Aggregate.WitnessedIssuesPercent)
	assert.Equal(t, 0, summary.Aggregate.ReportedPercent)
	assert.Equal(t, 100, summary.Aggregate.CompanyResponseBreakdown["no_action"])
	assert.Equal(t, map[string]int{"yes": 0, "with_reservations": 0, "no": 100}, summary.Aggregate.WouldRecommend)
}

func TestAggregateReviewsWeighting(t *testing.T) {
	recent := models.ReviewData{
		WitnessedIssues: models.WitnessedNone,
		Timeframe:       models.TimeframeLast6Months,
		Reported:        models.ReportedNo,
		WouldRecommend:  models.RecommendYes,
	}
	old := models.ReviewData{
		WitnessedIssues: models.WitnessedIndirect,
		IssueTypes:      []models.IssueType{models.IssuePayGap},
		Timeframe:       models.TimeframeOver2Years,
		Reported:        models.ReportedHR,
		WouldRecommend:  models.RecommendNo,
	}
	summary := AggregateReviews([]models.EmployeeReview{review(recent), review(old)})

	// total weight 1.25; the old review carries 0.25 of it
	agg := summary.Aggregate
	assert.Equal(t, 20, agg.WitnessedIssuesPercent)
	assert.Equal(t, 20, agg.ReportedPercent)
	assert.Equal(t, 20, agg.IssueTypeBreakdown["pay_gap"])
	assert.Equal(t, 80, agg.WouldRecommend["yes"])
	// 10 - 1 (witnessed > 10) + 2 (yes > 50), clamped
	assert.Equal(t, 10, *summary.Score)
}

func TestAggregateFallsBackToTimeframeWeight(t *testing.T) {
	a := models.EmployeeReview{ReviewData: models.ReviewData{
		WitnessedIssues: models.WitnessedDirect, Timeframe: models.TimeframeLast6Months,
	}}
	b := models.EmployeeReview{ReviewData: models.ReviewData{
		WitnessedIssues: models.WitnessedNone, Timeframe: "unknown_bucket",
	}}
	summary := AggregateReviews([]models.EmployeeReview{a, b})

	// weights 1.0 and 0.5
	assert.Equal(t, 67, summary.Aggregate.WitnessedIssuesPercent)
	assert.Equal(t, 100, summary.Aggregate.ReportedPercent)
}

func TestAggregateCountsUnknownReportedAsReported(t *testing.T) {
	var reviews []models.EmployeeReview
	for _, r := range []models.Reported{"", "yes_anonymous", models.ReportedNo, models.ReportedHR} {
		reviews = append(reviews, models.EmployeeReview{
			ReviewData: models.ReviewData{
				WitnessedIssues: models.WitnessedNone,
				Timeframe:       models.TimeframeLast6Months,
				Reported:        r,
			},
			Weight:    1,
			Published: true,
		})
	}
	summary := AggregateReviews(reviews)

	// only the explicit "no" counts as unreported
	assert.Equal(t, 75, summary.Aggregate.ReportedPercent)
}

func TestAggregateReviewsIsIdempotent(t *testing.T) {
	reviews := []models.EmployeeReview{
		review(models.ReviewData{
			WitnessedIssues: models.WitnessedDirect,
			IssueTypes:      []models.IssueType{models.IssuePayGap},
			Timeframe:       models.Timeframe1To2Years,
			Reported:        models.ReportedHR,
			CompanyResponse: []models.CompanyResponse{models.ResponseNoAction},
			WouldRecommend:  models.RecommendWithReservations,
		}),
		review(models.ReviewData{
			WitnessedIssues: models.WitnessedNone,
			Timeframe:       models.TimeframeLast6Months,
			Reported:        models.ReportedNo,
			WouldRecommend:  models.RecommendYes,
		}),
	}

	first := AggregateReviews(reviews)
	second := AggregateReviews(reviews)
	assert.Equal(t, first, second)
}

func TestPerspectiveScoreClamps(t *testing.T) {
	low := &ReviewAggregate{
		WitnessedIssuesPercent: 90,
		CompanyResponseBreakdown: map[string]int{
			"no_action":   80,
			"retaliation": 50,
		},
		WouldRecommend: map[string]int{"yes": 0},
	}
	assert.Equal(t, 1, PerspectiveScore(low))

	high := &ReviewAggregate{
		CompanyResponseBreakdown: map[string]int{
			"investigation":       60,
			"disciplinary_action": 40,
		},
		WouldRecommend: map[string]int{"yes": 90},
	}
	assert.Equal(t, 10, PerspectiveScore(high))
}

func TestPerspectiveScoreRulesCompose(t *testing.T) {
	agg := &ReviewAggregate{
		WitnessedIssuesPercent: 40, // -3
		CompanyResponseBreakdown: map[string]int{
			"no_action":           25, // -1
			"retaliation":         5,  // -2
			"investigation":       35,
			"disciplinary_action": 25, // +2
		},
		WouldRecommend: map[string]int{"yes": 35}, // +1
	}
	assert.Equal(t, 7, PerspectiveScore(agg))
}

func TestRecommendPercentagesSumToHundred(t *testing.T) {
	answers := []models.Recommendation{models.RecommendYes, models.RecommendWithReservations, models.RecommendNo}
	var reviews []models.EmployeeReview
	for i := 0; i < 7; i++ {
		reviews = append(reviews, review(models.ReviewData{
			WitnessedIssues: models.WitnessedNone,
			Timeframe:       models.Timeframe6To12Months,
			Reported:        models.ReportedNo,
			WouldRecommend:  answers[i%3],
		}))
	}
	agg := AggregateReviews(reviews).Aggregate

	sum := 0
	for _, v := range agg.WouldRecommend {
		assert.GreaterOrEqual(t, v, 0)
		assert.LessOrEqual(t, v, 100)
		sum += v
	}
	assert.InDelta(t, 100, sum, 2)
}
