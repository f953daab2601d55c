package models

// Closed answer sets of the employee review questionnaire.

type WitnessedIssues string
type IssueType string
type Timeframe string
type Reported string
type CompanyResponse string
type Recommendation string

type JobStatus string

const (
	WitnessedDirect   WitnessedIssues = "yes_direct"
	WitnessedIndirect WitnessedIssues = "yes_witnessed"
	WitnessedNone     WitnessedIssues = "no"

	IssueSexualHarassment   IssueType = "sexual_harassment"
	IssueDiscrimination     IssueType = "discrimination"
	IssueAssault            IssueType = "assault"
	IssueRetaliation        IssueType = "retaliation"
	IssuePayGap             IssueType = "pay_gap"
	IssueHostileEnvironment IssueType = "hostile_environment"

	TimeframeLast6Months Timeframe = "last_6_months"
	Timeframe6To12Months Timeframe = "6_12_months"
	Timeframe1To2Years   Timeframe = "1_2_years"
	TimeframeOver2Years  Timeframe = "over_2_years"

	ReportedHR         Reported = "yes_hr"
	ReportedManagement Reported = "yes_management"
	ReportedExternal   Reported = "yes_external"
	ReportedNo         Reported = "no"

	ResponseInvestigation      CompanyResponse = "investigation"
	ResponseDisciplinaryAction CompanyResponse = "disciplinary_action"
	ResponsePolicyChanges      CompanyResponse = "policy_changes"
	ResponseNoAction           CompanyResponse = "no_action"
	ResponseRetaliation        CompanyResponse = "retaliation"

	RecommendYes              Recommendation = "yes"
	RecommendWithReservations Recommendation = "with_reservations"
	RecommendNo               Recommendation = "no"

	JobStatusProcessing JobStatus = "processing"
	JobStatusComplete   JobStatus = "complete"
	JobStatusError      JobStatus = "error"
)

func (w WitnessedIssues) Valid() bool {
	switch w {
	case WitnessedDirect, WitnessedIndirect, WitnessedNone:
		return true
	}
	return false
}

// Witnessed is true for either "yes" answer.
func (w WitnessedIssues) Witnessed() bool {
	return w == WitnessedDirect || w == WitnessedIndirect
}

func (t IssueType) Valid() bool {
	switch t {
	case IssueSexualHarassment, IssueDiscrimination, IssueAssault,
		IssueRetaliation, IssuePayGap, IssueHostileEnvironment:
		return true
	}
	return false
}

func (t Timeframe) Valid() bool {
	switch t {
	case TimeframeLast6Months, Timeframe6To12Months, Timeframe1To2Years, TimeframeOver2Years:
		return true
	}
	return false
}

func (r Reported) Valid() bool {
	switch r {
	case ReportedHR, ReportedManagement, ReportedExternal, ReportedNo:
		return true
	}
	return false
}

// WasReported is true for any answer other than an explicit "no",
// including blank or unknown values.
func (r Reported) WasReported() bool {
	return r != ReportedNo
}

func (c CompanyResponse) Valid() bool {
	switch c {
	case ResponseInvestigation, ResponseDisciplinaryAction, ResponsePolicyChanges,
		ResponseNoAction, ResponseRetaliation:
		return true
	}
	return false
}

func (r Recommendation) Valid() bool {
	switch r {
	case RecommendYes, RecommendWithReservations, RecommendNo:
		return true
	}
	return false
}
