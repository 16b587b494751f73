package policy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tether-education/schoolchoice-da/core"
	"github.com/tether-education/schoolchoice-da/policy"
)

// dummyRules returns a priority_profiles/quota_order pair with exactly one
// row each, under a profile id ("99") no scenario applicant ever carries —
// both tables are non-empty inputs (policy.NewDriver requires at least one
// row in each) but inert for scenarios that don't exercise quota reorder or
// sibling priority.
func dummyRules() (policy.PriorityProfilesInput, policy.QuotaOrderInput) {
	profiles := policy.PriorityProfilesInput{Rows: []policy.PriorityProfileRow{
		{PriorityProfile: 99, PriorityByQuota: map[string]int{}},
	}}
	quotaOrder := policy.QuotaOrderInput{Rows: []policy.QuotaOrderRow{
		{PriorityProfile: 99, OrderedQuotas: nil},
	}}
	return profiles, quotaOrder
}

// checkInvariants verifies the post-run invariants observable through
// Driver's public surface: every applicant ends up matched, and every
// assigned applicant's score law holds.
func checkInvariants(t *testing.T, d *policy.Driver) {
	t.Helper()
	for _, applicant := range d.Applicants() {
		require.True(t, applicant.Matched, "applicant %s must end matched", applicant.ID)
		if applicant.Assigned == nil {
			continue
		}
		score, err := applicant.Assigned.Score(applicant)
		require.NoError(t, err)
		pq := core.ProgramQuota{ProgramID: applicant.Assigned.ProgramID, QuotaID: applicant.Assigned.QuotaID}
		require.Equal(t, float64(applicant.Priority[pq])+applicant.Lottery[pq], score)
	}
}

func applicantRow(id string, grade, special int) policy.ApplicantRow {
	return policy.ApplicantRow{ApplicantID: id, GradeID: grade, SpecialAssignment: special}
}

func application(applicantID, programID, quotaID, institutionID string, ranking, priority int, lottery float64) policy.ApplicationRow {
	return policy.ApplicationRow{
		ApplicantID:            applicantID,
		ProgramID:              programID,
		QuotaID:                quotaID,
		InstitutionID:          institutionID,
		RankingProgram:         ranking,
		PriorityProfileProgram: 1,
		PriorityNumberQuota:    priority,
		LotteryNumberQuota:     lottery,
	}
}

func TestScenario1_SingleSlotContest(t *testing.T) {
	profiles, quotaOrder := dummyRules()
	vacancies := policy.VacanciesInput{Rows: []policy.VacancyRow{
		{ProgramID: "P", QuotaID: "0", InstitutionID: "I1", GradeID: 1, RegularVacancies: 1},
	}}
	applicants := policy.ApplicantsInput{Rows: []policy.ApplicantRow{
		applicantRow("A", 1, 0), applicantRow("B", 1, 0),
	}}
	applications := policy.ApplicationsInput{
		Rows: []policy.ApplicationRow{
			application("A", "P", "0", "I1", 1, 0, 0.3),
			application("B", "P", "0", "I1", 1, 0, 0.7),
		},
		HasLotteryColumn: true,
	}

	d, err := policy.NewDriver(vacancies, applicants, applications, profiles, quotaOrder,
		policy.SiblingsInput{}, policy.LinksInput{})
	require.NoError(t, err)
	require.NoError(t, d.Run())

	var gotA, gotB *core.Applicant
	for _, applicant := range d.Applicants() {
		switch applicant.ID {
		case "A":
			gotA = applicant
		case "B":
			gotB = applicant
		}
	}
	require.NotNil(t, gotA.Assigned)
	require.Equal(t, "P", gotA.Assigned.ProgramID)
	require.Nil(t, gotB.Assigned)
	require.True(t, gotB.Matched)

	program, ok := d.Program("P", "0")
	require.True(t, ok)
	require.Contains(t, program.Waitlist, "B")
	require.Equal(t, 0, program.Waitlist["B"])

	checkInvariants(t, d)
}

func TestScenario2_PriorityBeatsLottery(t *testing.T) {
	profiles, quotaOrder := dummyRules()
	vacancies := policy.VacanciesInput{Rows: []policy.VacancyRow{
		{ProgramID: "P", QuotaID: "0", InstitutionID: "I1", GradeID: 1, RegularVacancies: 1},
	}}
	applicants := policy.ApplicantsInput{Rows: []policy.ApplicantRow{
		applicantRow("A", 1, 0), applicantRow("B", 1, 0),
	}}
	applications := policy.ApplicationsInput{
		Rows: []policy.ApplicationRow{
			application("A", "P", "0", "I1", 1, 1, 0.1),
			application("B", "P", "0", "I1", 1, 0, 0.9),
		},
		HasLotteryColumn: true,
	}

	d, err := policy.NewDriver(vacancies, applicants, applications, profiles, quotaOrder,
		policy.SiblingsInput{}, policy.LinksInput{})
	require.NoError(t, err)
	require.NoError(t, d.Run())

	for _, a := range d.Applicants() {
		if a.ID == "B" {
			require.NotNil(t, a.Assigned)
		}
		if a.ID == "A" {
			require.Nil(t, a.Assigned)
		}
	}
	checkInvariants(t, d)
}

func TestScenario3_CapacityTransfer(t *testing.T) {
	profiles, quotaOrder := dummyRules()
	vacancies := policy.VacanciesInput{Rows: []policy.VacancyRow{
		{ProgramID: "P", QuotaID: "0", InstitutionID: "I1", GradeID: 1, RegularVacancies: 0, SpecialVacancies: map[int]int{1: 2}},
	}}
	applicants := policy.ApplicantsInput{Rows: []policy.ApplicantRow{
		applicantRow("A", 1, 1), applicantRow("C", 1, 0),
	}, HasSpecialAssignmentColumn: true}
	applications := policy.ApplicationsInput{
		Rows: []policy.ApplicationRow{
			application("A", "P", "0", "I1", 1, 0, 0.2),
			application("C", "P", "0", "I1", 1, 0, 0.4),
		},
		HasLotteryColumn: true,
	}

	t.Run("transfer on", func(t *testing.T) {
		d, err := policy.NewDriver(vacancies, applicants, applications, profiles, quotaOrder,
			policy.SiblingsInput{}, policy.LinksInput{}, policy.WithTransferCapacity(true))
		require.NoError(t, err)
		require.NoError(t, d.Run())

		for _, a := range d.Applicants() {
			if a.ID == "C" {
				require.NotNil(t, a.Assigned)
				require.Equal(t, "P", a.Assigned.ProgramID)
			}
		}
		checkInvariants(t, d)
	})

	t.Run("transfer off", func(t *testing.T) {
		d, err := policy.NewDriver(vacancies, applicants, applications, profiles, quotaOrder,
			policy.SiblingsInput{}, policy.LinksInput{})
		require.NoError(t, err)
		require.NoError(t, d.Run())

		for _, a := range d.Applicants() {
			if a.ID == "C" {
				require.Nil(t, a.Assigned)
			}
		}
		checkInvariants(t, d)
	})
}

func TestScenario4_ForcedSecuredEnrollment(t *testing.T) {
	profiles, quotaOrder := dummyRules()
	vacancies := policy.VacanciesInput{Rows: []policy.VacancyRow{
		{ProgramID: "P", QuotaID: "0", InstitutionID: "I1", GradeID: 1, RegularVacancies: 0},
	}}
	applicants := policy.ApplicantsInput{Rows: []policy.ApplicantRow{
		{ApplicantID: "A", GradeID: 1, SecuredEnrollmentProgramID: "P", SecuredEnrollmentQuotaID: "0"},
	}}
	applications := policy.ApplicationsInput{
		Rows:             []policy.ApplicationRow{application("A", "P", "0", "I1", 1, 5, 0.5)},
		HasLotteryColumn: true,
	}

	d, err := policy.NewDriver(vacancies, applicants, applications, profiles, quotaOrder,
		policy.SiblingsInput{}, policy.LinksInput{},
		policy.WithSecuredEnrollment(true), policy.WithForcedSecuredEnrollment(true))
	require.NoError(t, err)
	require.NoError(t, d.Run())

	program, ok := d.Program("P", "0")
	require.True(t, ok)
	require.Equal(t, 1, program.Regular.OverCapacity)
	require.NotContains(t, program.Waitlist, "A")

	for _, a := range d.Applicants() {
		require.NotNil(t, a.Assigned)
		require.Equal(t, "P", a.Assigned.ProgramID)
	}
	checkInvariants(t, d)
}

func TestScenario5_SiblingDynamicPriority(t *testing.T) {
	vacancies := policy.VacanciesInput{Rows: []policy.VacancyRow{
		{ProgramID: "Older-school", QuotaID: "0", InstitutionID: "I", GradeID: 2, RegularVacancies: 1},
		{ProgramID: "Q", QuotaID: "0", InstitutionID: "I", GradeID: 1, RegularVacancies: 1},
	}}
	applicantsInput := policy.ApplicantsInput{Rows: []policy.ApplicantRow{
		applicantRow("Older", 2, 0), applicantRow("Younger", 1, 0),
	}}
	applications := policy.ApplicationsInput{
		Rows: []policy.ApplicationRow{
			application("Older", "Older-school", "0", "I", 1, 0, 0.1),
			application("Younger", "Q", "0", "I", 1, 5, 0.4),
		},
		HasLotteryColumn: true,
	}
	profiles := policy.PriorityProfilesInput{Rows: []policy.PriorityProfileRow{
		{PriorityProfile: 1, HasSiblingTransition: true, SiblingTransition: 2, PriorityByQuota: map[string]int{}},
		{PriorityProfile: 2, PriorityByQuota: map[string]int{"0": 0}},
	}}
	quotaOrder := policy.QuotaOrderInput{Rows: []policy.QuotaOrderRow{
		{PriorityProfile: 99, OrderedQuotas: nil},
	}}
	siblings := policy.SiblingsInput{Rows: []policy.SiblingRow{
		{ApplicantID: "Younger", SiblingID: "Older"},
	}}

	d, err := policy.NewDriver(vacancies, applicantsInput, applications, profiles, quotaOrder,
		siblings, policy.LinksInput{}, policy.WithSiblingPriority(true))
	require.NoError(t, err)
	require.NoError(t, d.Run())

	for _, a := range d.Applicants() {
		if a.ID == "Younger" {
			require.NotNil(t, a.Assigned)
			require.Equal(t, "Q", a.Assigned.ProgramID)
			pq := core.ProgramQuota{ProgramID: "Q", QuotaID: "0"}
			require.Equal(t, 0, a.Priority[pq])
		}
	}
	checkInvariants(t, d)
}

// TestQuotaReorder_ForcedSecuredEnrollmentAloneDoesNotGateSEIndicator verifies
// that a quota_order rule carrying a SecuredEnrollmentIndicator is matched
// unconditionally (the indicator is not checked) when only
// WithForcedSecuredEnrollment is enabled and WithSecuredEnrollment is not —
// the two flags are independent, and only SE truncation activates the
// indicator gate.
func TestQuotaReorder_ForcedSecuredEnrollmentAloneDoesNotGateSEIndicator(t *testing.T) {
	vacancies := policy.VacanciesInput{Rows: []policy.VacancyRow{
		{ProgramID: "P", QuotaID: "QA", InstitutionID: "I1", GradeID: 1, RegularVacancies: 1},
		{ProgramID: "P", QuotaID: "QB", InstitutionID: "I1", GradeID: 1, RegularVacancies: 1},
	}}
	applicants := policy.ApplicantsInput{Rows: []policy.ApplicantRow{
		applicantRow("A", 1, 0),
	}}
	applications := policy.ApplicationsInput{
		Rows: []policy.ApplicationRow{
			application("A", "P", "QA", "I1", 1, 0, 0.1),
			application("A", "P", "QB", "I1", 2, 0, 0.1),
		},
		HasLotteryColumn: true,
	}
	profiles := policy.PriorityProfilesInput{Rows: []policy.PriorityProfileRow{
		{PriorityProfile: 1, PriorityByQuota: map[string]int{"QA": 0, "QB": 0}},
	}}
	quotaOrder := policy.QuotaOrderInput{Rows: []policy.QuotaOrderRow{
		{PriorityProfile: 1, SecuredEnrollmentIndicator: true, OrderedQuotas: []string{"QB", "QA"}},
	}}

	d, err := policy.NewDriver(vacancies, applicants, applications, profiles, quotaOrder,
		policy.SiblingsInput{}, policy.LinksInput{}, policy.WithForcedSecuredEnrollment(true))
	require.NoError(t, err)
	require.NoError(t, d.Run())

	for _, a := range d.Applicants() {
		if a.ID == "A" {
			require.Equal(t, []string{"QB", "QA"}, a.QuotaAtPosition)
		}
	}
	checkInvariants(t, d)
}

func TestScenario6_LinkedReorder(t *testing.T) {
	profiles, quotaOrder := dummyRules()
	vacancies := policy.VacanciesInput{Rows: []policy.VacancyRow{
		{ProgramID: "X-school", QuotaID: "0", InstitutionID: "X", GradeID: 2, RegularVacancies: 1},
		{ProgramID: "Y", QuotaID: "0", InstitutionID: "J", GradeID: 1, RegularVacancies: 1},
		{ProgramID: "Z", QuotaID: "0", InstitutionID: "X", GradeID: 1, RegularVacancies: 1},
		{ProgramID: "W", QuotaID: "0", InstitutionID: "K", GradeID: 1, RegularVacancies: 1},
	}}
	applicantsInput := policy.ApplicantsInput{Rows: []policy.ApplicantRow{
		applicantRow("A", 2, 0), applicantRow("S", 1, 0),
	}}
	applications := policy.ApplicationsInput{
		Rows: []policy.ApplicationRow{
			application("A", "X-school", "0", "X", 1, 0, 0.1),
			application("S", "Y", "0", "J", 1, 0, 0.2),
			application("S", "Z", "0", "X", 2, 0, 0.2),
			application("S", "W", "0", "K", 3, 0, 0.2),
		},
		HasLotteryColumn: true,
	}
	links := policy.LinksInput{Rows: []policy.LinkRow{{ApplicantID: "S", LinkedID: "A"}}}

	d, err := policy.NewDriver(vacancies, applicantsInput, applications, profiles, quotaOrder,
		policy.SiblingsInput{}, links, policy.WithLinkedPostulation(true))
	require.NoError(t, err)
	require.NoError(t, d.Run())

	for _, a := range d.Applicants() {
		if a.ID == "S" {
			require.Equal(t, []string{"Z", "Y", "W"}, a.Postulation)
			require.NotNil(t, a.Assigned)
			require.Equal(t, "Z", a.Assigned.ProgramID)
		}
	}
	checkInvariants(t, d)
}
