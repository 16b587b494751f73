package policy

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tether-education/schoolchoice-da/core"
	"github.com/tether-education/schoolchoice-da/matcher"
)

// Driver is the Policy Driver: it owns the entity graph and sequences the
// matcher across (grade, assignment_type) passes. Driver is not safe for
// concurrent use — execution is single-threaded throughout.
type Driver struct {
	cfg   *config
	graph *entityGraph
	log   *logrus.Entry
}

// NewDriver builds the entity graph from the seven input tables and resolves
// cfg from opts. It performs all structural/referential validation gated by
// WithCheckInputs, unpacks priority profile transitions and quota-order
// rules, groups applications into postulations, and registers applications
// to zero-vacancy programs directly into their waitlists.
func NewDriver(
	vacancies VacanciesInput,
	applicants ApplicantsInput,
	applications ApplicationsInput,
	priorityProfiles PriorityProfilesInput,
	quotaOrder QuotaOrderInput,
	siblings SiblingsInput,
	links LinksInput,
	opts ...Option,
) (*Driver, error) {
	cfg := newConfig(opts...)
	graph, err := buildEntityGraph(vacancies, applicants, applications, priorityProfiles, quotaOrder, siblings, links, cfg)
	if err != nil {
		return nil, err
	}

	log := logrus.NewEntry(logrus.StandardLogger())
	logWarnings(log, graph.warnings)

	return &Driver{cfg: cfg, graph: graph, log: log}, nil
}

// Run matches applicants to programs: for each grade (outer loop, in
// the configured order) and each assignment type (inner loop, specials
// ascending then regular), it applies pre-round mutations, invokes the
// matcher, then applies post-round adjustments. Every Driver.Run call is
// tagged with a fresh run ID so repeated runs (e.g. to verify idempotence)
// are distinguishable in logs.
func (d *Driver) Run() error {
	runLog := d.log.WithField("run_id", uuid.New().String())
	firstGrade := d.graph.orderedGrades[0]

	for _, grade := range d.graph.orderedGrades {
		programsInGrade := d.programsForGrade(grade)

		for _, assignmentType := range d.graph.assignmentTypes {
			applicantsInScope, err := d.applicantsForRound(grade, assignmentType, grade != firstGrade)
			if err != nil {
				return wrapf(err, "grade %d assignment_type %d pre-round mutations", grade, assignmentType)
			}

			runLog.WithFields(logrus.Fields{
				"grade":           grade,
				"assignment_type": assignmentType,
				"applicants":      len(applicantsInScope),
			}).Info("running round")

			if err := matcher.Run(applicantsInScope, programsInGrade); err != nil {
				return wrapf(err, "grade %d assignment_type %d", grade, assignmentType)
			}

			if err := d.afterRoundAdjustments(applicantsInScope, programsInGrade, grade, assignmentType); err != nil {
				return err
			}
		}
	}
	return nil
}

// programsForGrade returns every program at the given grade, regardless of
// assignment type — queue membership is segregated internally.
func (d *Driver) programsForGrade(grade int) map[matcher.ProgramKey]*core.Program {
	out := make(map[matcher.ProgramKey]*core.Program)
	for pq, program := range d.graph.programs {
		if program.GradeID == grade {
			out[pq] = program
		}
	}
	return out
}

// Applicants returns every applicant in the driver, in the insertion order
// of the applicants input table.
func (d *Driver) Applicants() []*core.Applicant {
	out := make([]*core.Applicant, len(d.graph.applicantOrder))
	for i, id := range d.graph.applicantOrder {
		out[i] = d.graph.applicantsByID[id]
	}
	return out
}

// Program looks up a program by (program_id, quota_id).
func (d *Driver) Program(programID, quotaID string) (*core.Program, bool) {
	p, ok := d.graph.programs[core.ProgramQuota{ProgramID: programID, QuotaID: quotaID}]
	return p, ok
}

// ResetMatching restores every program and applicant to post-construction
// state without rebuilding the entity graph, so Run can be invoked again
// over the same inputs.
func (d *Driver) ResetMatching() {
	for _, program := range d.graph.programs {
		program.Reset()
	}
	for _, applicant := range d.graph.applicantsByID {
		applicant.Reset()
	}
}
