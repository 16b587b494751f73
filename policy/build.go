package policy

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/tether-education/schoolchoice-da/core"
)

// entityGraph holds everything NewDriver builds from the seven input tables,
// grouped separately from Driver so build.go stays a pure function of the
// inputs (no logging side effects beyond the warnings collected here).
type entityGraph struct {
	applicantsByID      map[string]*core.Applicant
	applicantOrder      []string
	programs            map[core.ProgramQuota]*core.Program
	orderedGrades       []int
	assignmentTypes     []int
	transitions         transitionTable
	quotaOrder          *quotaOrderIndex
	siblingsByApplicant map[string][]string
	linksByApplicant    map[string][]string
	warnings            []string

	hasSpecialAssignmentColumn bool
}

func buildEntityGraph(
	vacancies VacanciesInput,
	applicants ApplicantsInput,
	applications ApplicationsInput,
	priorityProfiles PriorityProfilesInput,
	quotaOrder QuotaOrderInput,
	siblings SiblingsInput,
	links LinksInput,
	cfg *config,
) (*entityGraph, error) {
	if cfg.checkInputs {
		if err := validateInputs(vacancies, applicants, applications, siblings, links, cfg); err != nil {
			return nil, err
		}
	}
	if !applications.HasLotteryColumn {
		return nil, wrapf(ErrConfig, "applications has no lottery_number_quota column and no external lottery generator is wired")
	}

	transitions, err := buildTransitionTable(priorityProfiles)
	if err != nil {
		return nil, err
	}
	quotaIdx, err := buildQuotaOrderIndex(quotaOrder)
	if err != nil {
		return nil, err
	}

	graph := &entityGraph{
		applicantsByID:             make(map[string]*core.Applicant, len(applicants.Rows)),
		programs:                   make(map[core.ProgramQuota]*core.Program, len(vacancies.Rows)),
		transitions:                transitions,
		quotaOrder:                 quotaIdx,
		siblingsByApplicant:        make(map[string][]string),
		linksByApplicant:           make(map[string][]string),
		hasSpecialAssignmentColumn: applicants.HasSpecialAssignmentColumn,
	}

	for _, row := range siblings.Rows {
		graph.siblingsByApplicant[row.ApplicantID] = append(graph.siblingsByApplicant[row.ApplicantID], row.SiblingID)
	}
	for _, row := range links.Rows {
		graph.linksByApplicant[row.ApplicantID] = append(graph.linksByApplicant[row.ApplicantID], row.LinkedID)
	}

	relevant := make(map[core.ProgramQuota]bool, len(vacancies.Rows))
	for _, row := range vacancies.Rows {
		pq := core.ProgramQuota{ProgramID: row.ProgramID, QuotaID: row.QuotaID}
		total := row.RegularVacancies
		for _, v := range row.SpecialVacancies {
			total += v
		}
		relevant[pq] = total > 0
		graph.programs[pq] = core.NewProgram(row.ProgramID, row.QuotaID, row.InstitutionID, row.GradeID, row.RegularVacancies, row.SpecialVacancies)
	}

	seTarget := make(map[string]core.ProgramQuota, len(applicants.Rows))
	for _, row := range applicants.Rows {
		if row.SecuredEnrollmentProgramID != "" && row.SecuredEnrollmentQuotaID != "" {
			seTarget[row.ApplicantID] = core.ProgramQuota{ProgramID: row.SecuredEnrollmentProgramID, QuotaID: row.SecuredEnrollmentQuotaID}
		}
	}

	type postulationEntry struct {
		app ApplicationRow
	}
	byApplicant := make(map[string][]postulationEntry, len(applicants.Rows))
	appliedApplicants := make(map[string]bool)

	for _, app := range applications.Rows {
		pq := core.ProgramQuota{ProgramID: app.ProgramID, QuotaID: app.QuotaID}
		program, ok := graph.programs[pq]
		if !ok {
			return nil, wrapf(ErrInvalidInput, "application from %s references unknown program/quota (%s,%s)", app.ApplicantID, app.ProgramID, app.QuotaID)
		}
		se, hasSE := seTarget[app.ApplicantID]
		isSE := hasSE && se == pq
		if !relevant[pq] && !isSE {
			program.WaitlistAdd(app.ApplicantID, app.PriorityNumberQuota)
			continue
		}
		byApplicant[app.ApplicantID] = append(byApplicant[app.ApplicantID], postulationEntry{app: app})
		appliedApplicants[app.ApplicantID] = true
	}

	for id, entries := range byApplicant {
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].app.RankingProgram != entries[j].app.RankingProgram {
				return entries[i].app.RankingProgram < entries[j].app.RankingProgram
			}
			return entries[i].app.QuotaID < entries[j].app.QuotaID
		})
		byApplicant[id] = entries
	}

	for _, row := range applicants.Rows {
		if !appliedApplicants[row.ApplicantID] {
			graph.warnings = append(graph.warnings, "applicant "+row.ApplicantID+" has no applications")
		}

		entries := byApplicant[row.ApplicantID]
		postulation := make([]string, len(entries))
		quotaAtPosition := make([]string, len(entries))
		institutionAtPosition := make([]string, len(entries))
		priorityProfile := make(map[string]int, len(entries))
		priority := make(map[core.ProgramQuota]int, len(entries))
		lottery := make(map[core.ProgramQuota]float64, len(entries))

		for i, e := range entries {
			postulation[i] = e.app.ProgramID
			quotaAtPosition[i] = e.app.QuotaID
			institutionAtPosition[i] = e.app.InstitutionID
			priorityProfile[e.app.ProgramID] = e.app.PriorityProfileProgram
			pq := core.ProgramQuota{ProgramID: e.app.ProgramID, QuotaID: e.app.QuotaID}
			priority[pq] = e.app.PriorityNumberQuota
			lottery[pq] = e.app.LotteryNumberQuota
		}

		applicant := core.NewApplicant(
			row.ApplicantID,
			row.GradeID,
			row.SpecialAssignment,
			row.SecuredEnrollmentProgramID,
			row.SecuredEnrollmentQuotaID,
			row.SecuredEnrollmentProgramID != "" && row.SecuredEnrollmentQuotaID != "",
			postulation, quotaAtPosition, institutionAtPosition,
			priorityProfile, priority, lottery,
			graph.siblingsByApplicant[row.ApplicantID],
			graph.linksByApplicant[row.ApplicantID],
			row.Characteristics,
		)
		graph.applicantsByID[row.ApplicantID] = applicant
		graph.applicantOrder = append(graph.applicantOrder, row.ApplicantID)
	}

	grades := make(map[int]struct{})
	for _, row := range applicants.Rows {
		grades[row.GradeID] = struct{}{}
	}
	graph.orderedGrades = make([]int, 0, len(grades))
	for g := range grades {
		graph.orderedGrades = append(graph.orderedGrades, g)
	}
	if cfg.order == OrderAscending {
		sort.Ints(graph.orderedGrades)
	} else {
		sort.Sort(sort.Reverse(sort.IntSlice(graph.orderedGrades)))
	}

	types := make(map[int]struct{})
	for _, row := range vacancies.Rows {
		for tag := range row.SpecialVacancies {
			types[tag] = struct{}{}
		}
	}
	graph.assignmentTypes = make([]int, 0, len(types)+1)
	for t := range types {
		graph.assignmentTypes = append(graph.assignmentTypes, t)
	}
	sort.Ints(graph.assignmentTypes)
	graph.assignmentTypes = append(graph.assignmentTypes, 0)

	return graph, nil
}

func validateInputs(
	vacancies VacanciesInput,
	applicants ApplicantsInput,
	applications ApplicationsInput,
	siblings SiblingsInput,
	links LinksInput,
	cfg *config,
) error {
	applicantIDs := make(map[string]bool, len(applicants.Rows))
	for _, row := range applicants.Rows {
		if applicantIDs[row.ApplicantID] {
			return wrapf(ErrInvalidInput, "applicant_id %q is not unique", row.ApplicantID)
		}
		applicantIDs[row.ApplicantID] = true
	}

	vacancyProgramIDs := make(map[string]bool, len(vacancies.Rows))
	for _, row := range vacancies.Rows {
		vacancyProgramIDs[row.ProgramID] = true
	}

	for _, row := range applications.Rows {
		if !applicantIDs[row.ApplicantID] {
			return wrapf(ErrInvalidInput, "application references unknown applicant_id %q", row.ApplicantID)
		}
		if !vacancyProgramIDs[row.ProgramID] {
			return wrapf(ErrInvalidInput, "application references program_id %q absent from vacancies", row.ProgramID)
		}
	}

	if cfg.linkedPostulationActivation {
		for _, row := range links.Rows {
			if !applicantIDs[row.ApplicantID] || !applicantIDs[row.LinkedID] {
				return wrapf(ErrInvalidInput, "links row (%s,%s) references an unregistered applicant", row.ApplicantID, row.LinkedID)
			}
		}
	}
	if cfg.siblingPriorityActivation {
		for _, row := range siblings.Rows {
			if !applicantIDs[row.ApplicantID] || !applicantIDs[row.SiblingID] {
				return wrapf(ErrInvalidInput, "siblings row (%s,%s) references an unregistered applicant", row.ApplicantID, row.SiblingID)
			}
		}
	}

	return nil
}

// logWarnings emits the non-fatal warnings collected during buildEntityGraph
// through the driver's logger, one line each.
func logWarnings(log *logrus.Entry, warnings []string) {
	for _, w := range warnings {
		log.Warn(w)
	}
}
