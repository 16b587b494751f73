package policy

import "github.com/tether-education/schoolchoice-da/core"

// The types below mirror the seven tabular input relations a match is built
// from. They are the boundary contract between this package and the tabular
// parsing left to cmd/schoolchoice-da: callers populate these structs from
// CSV, a database, or wherever inputs originate, and hand them to NewDriver.

// VacancyRow is one row of the vacancies relation.
type VacancyRow struct {
	ProgramID        string
	QuotaID          string
	InstitutionID    string
	GradeID          int
	RegularVacancies int
	SpecialVacancies map[int]int // special assignment tag -> vacancy count
}

// VacanciesInput wraps the vacancies relation.
type VacanciesInput struct {
	Rows []VacancyRow
}

// ApplicantRow is one row of the applicants relation. SecuredEnrollment*
// fields are empty strings when the applicant has no secured enrollment
// target.
type ApplicantRow struct {
	ApplicantID                string
	GradeID                    int
	SpecialAssignment          int
	SecuredEnrollmentProgramID string
	SecuredEnrollmentQuotaID   string
	Characteristics            map[string]core.Attribute
}

// ApplicantsInput wraps the applicants relation. HasSpecialAssignmentColumn
// records whether the source table carried a special_assignment column at
// all — applicants are only filtered by assignment type when it did.
type ApplicantsInput struct {
	Rows                       []ApplicantRow
	HasSpecialAssignmentColumn bool
}

// ApplicationRow is one row of the applications relation.
type ApplicationRow struct {
	ApplicantID             string
	ProgramID               string
	QuotaID                 string
	InstitutionID           string
	RankingProgram          int
	PriorityProfileProgram  int
	PriorityNumberQuota     int
	LotteryNumberQuota      float64
}

// ApplicationsInput wraps the applications relation. HasLotteryColumn
// records whether lottery_number_quota was supplied; if false, NewDriver
// fails with ErrConfig, since generating lottery numbers is left to callers.
type ApplicationsInput struct {
	Rows             []ApplicationRow
	HasLotteryColumn bool
}

// PriorityProfileRow is one row of the priority_profiles relation, keyed by
// PriorityProfile. PriorityByQuota maps quota_id -> priority_q{quota_id}
// value; HasSiblingTransition records whether
// priority_profile_sibling_transition was supplied for this row.
type PriorityProfileRow struct {
	PriorityProfile      int
	HasSiblingTransition  bool
	SiblingTransition     int
	PriorityByQuota       map[string]int
}

// PriorityProfilesInput wraps the priority_profiles relation.
type PriorityProfilesInput struct {
	Rows []PriorityProfileRow
}

// CriterionCheck is one `<name>_criteria` / `<name>_value` column pair
// resolved into a (criterion, value) check.
type CriterionCheck struct {
	Criteria string
	Value    core.Attribute
}

// QuotaOrderRow is one row of the quota_order relation.
type QuotaOrderRow struct {
	PriorityProfile int

	SecuredEnrollmentIndicator       bool
	SecuredEnrollmentQuotaIDCriteria string
	SecuredEnrollmentQuotaIDValue    core.Attribute

	// Characteristics maps applicant_characteristic_* name -> criterion
	// check, one entry per applicant_characteristic_*_criteria/_value pair
	// present on this row.
	Characteristics map[string]CriterionCheck

	// OrderedQuotas is the quota_id list sorted by order_q{k} ascending.
	OrderedQuotas []string
}

// QuotaOrderInput wraps the quota_order relation.
type QuotaOrderInput struct {
	Rows []QuotaOrderRow
}

// SiblingRow is one row of the siblings relation.
type SiblingRow struct {
	ApplicantID string
	SiblingID   string
}

// SiblingsInput wraps the siblings relation.
type SiblingsInput struct {
	Rows []SiblingRow
}

// LinkRow is one row of the links relation.
type LinkRow struct {
	ApplicantID string
	LinkedID    string
}

// LinksInput wraps the links relation.
type LinksInput struct {
	Rows []LinkRow
}
