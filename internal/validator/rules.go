package validator

import (
	"log"
	"regexp"
	"strings"

	"hera_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

var tickerPattern = regexp.MustCompile(`^[A-Za-z0-9.\-]{1,10}$`)

var enumMessages = map[string]string{
	"is-witnessed":        "Must be one of: yes_direct, yes_witnessed, no",
	"is-issue-type":       "Must be one of: sexual_harassment, discrimination, assault, retaliation, pay_gap, hostile_environment",
	"is-timeframe":        "Must be one of: last_6_months, 6_12_months, 1_2_years, over_2_years",
	"is-reported":         "Must be one of: yes_hr, yes_management, yes_external, no",
	"is-company-response": "Must be one of: investigation, disciplinary_action, policy_changes, no_action, retaliation",
	"is-recommend":        "Must be one of: yes, with_reservations, no",
}

// registerCustomRules installs the questionnaire and ticker tags. Empty
// values pass; pair with "required" where a value is mandatory.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-witnessed", enumRule(func(s string) bool { return models.WitnessedIssues(s).Valid() }))
	mustRegister("is-issue-type", enumRule(func(s string) bool { return models.IssueType(s).Valid() }))
	mustRegister("is-timeframe", enumRule(func(s string) bool { return models.Timeframe(s).Valid() }))
	mustRegister("is-reported", enumRule(func(s string) bool { return models.Reported(s).Valid() }))
	mustRegister("is-company-response", enumRule(func(s string) bool { return models.CompanyResponse(s).Valid() }))
	mustRegister("is-recommend", enumRule(func(s string) bool { return models.Recommendation(s).Valid() }))
	mustRegister("is-ticker", validateTicker)
}

func enumRule(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return valid(value)
	}
}

func validateTicker(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	return tickerPattern.MatchString(value)
}
