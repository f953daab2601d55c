package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestAnalysisJSONAccessors(t *testing.T) {
	a := &CompanyAnalysis{AccountabilityScore: 4}
	assert.Nil(t, a.Severity())
	empty, err := a.GetIssues()
	require.NoError(t, err)
	assert.Empty(t, empty)

	affected := int64(1200)
	require.NoError(t, a.SetIssues([]Issue{{Type: "lawsuit", AffectedParties: &affected}}))
	require.NoError(t, a.SetScoreBreakdown(ScoreBreakdown{Severity: "high"}))

	issues, err := a.GetIssues()
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, int64(1200), *issues[0].AffectedParties)
	require.NotNil(t, a.Severity())
	assert.Equal(t, "high", *a.Severity())
	assert.True(t, a.Flagged())
}

func TestGetIssuesLenientCounts(t *testing.T) {
	a := &CompanyAnalysis{Issues: datatypes.JSON(`[
		{"type": "lawsuit", "affected_parties": 1500.0},
		{"type": "settlement", "affected_parties": "2,000"},
		{"type": "strike", "affected_parties": "lots"},
		{"type": "fine", "affected_parties": null},
		null,
		42
	]`)}

	issues, err := a.GetIssues()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadCount)

	require.Len(t, issues, 4)
	require.NotNil(t, issues[0].AffectedParties)
	assert.Equal(t, int64(1500), *issues[0].AffectedParties)
	require.NotNil(t, issues[1].AffectedParties)
	assert.Equal(t, int64(2000), *issues[1].AffectedParties)
	assert.Equal(t, "strike", issues[2].Type)
	assert.Nil(t, issues[2].AffectedParties)
	assert.Nil(t, issues[3].AffectedParties)
}

func TestGetIssuesMalformedColumn(t *testing.T) {
	a := &CompanyAnalysis{Issues: datatypes.JSON(`{"type": "lawsuit"}`)}
	issues, err := a.GetIssues()
	assert.Error(t, err)
	assert.Empty(t, issues)
}

func TestMalformedBreakdownIsIgnored(t *testing.T) {
	a := &CompanyAnalysis{ScoreBreakdown: datatypes.JSON(`not json`)}
	assert.Nil(t, a.GetScoreBreakdown())
}

func TestReviewDataScanRoundTrip(t *testing.T) {
	in := ReviewData{
		WitnessedIssues: WitnessedDirect,
		Timeframe:       TimeframeLast6Months,
		Reported:        ReportedHR,
		WouldRecommend:  RecommendNo,
		CompanyResponse: []CompanyResponse{ResponseNoAction},
	}
	v, err := in.Value()
	require.NoError(t, err)

	var out ReviewData
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)
	assert.Error(t, out.Scan(42))
}

func TestEnumHelpers(t *testing.T) {
	assert.True(t, WitnessedIndirect.Witnessed())
	assert.False(t, WitnessedNone.Witnessed())
	assert.True(t, ReportedExternal.WasReported())
	assert.False(t, ReportedNo.WasReported())
	assert.True(t, Reported("maybe").WasReported())
	assert.True(t, Reported("").WasReported())
	assert.False(t, Timeframe("last_week").Valid())
}
