package result

import (
	"github.com/tether-education/schoolchoice-da/policy"
)

// Row is one output record: applicant_id and grade_id are always populated;
// the remaining five fields are all null (zero value, Assigned false) iff
// the applicant's final Assigned program is nil.
type Row struct {
	ApplicantID string
	GradeID     int

	Assigned      bool
	ProgramID     string
	InstitutionID string
	QuotaID       string
	AssignedScore float64
	PriorityProfile int
}

// Extract reads the final assignment of every applicant on d, in d's
// insertion order, and emits one Row each. AssignedScore is recomputed via
// Program.Score rather than cached from the matching run, so it always
// reflects the applicant's priority/lottery at the program that ultimately
// holds it — including after a forced secured enrollment, whose score is
// computed at insertion time inside core.Program.ForceSecuredMatch and is
// identical to what Score recomputes here.
func Extract(d *policy.Driver) ([]Row, error) {
	applicants := d.Applicants()
	rows := make([]Row, len(applicants))

	for i, applicant := range applicants {
		rows[i] = Row{ApplicantID: applicant.ID, GradeID: applicant.GradeID}

		if applicant.Assigned == nil {
			continue
		}
		program := applicant.Assigned
		score, err := program.Score(applicant)
		if err != nil {
			return nil, wrapf(ErrExtraction, "applicant %s: %v", applicant.ID, err)
		}

		rows[i].Assigned = true
		rows[i].ProgramID = program.ProgramID
		rows[i].InstitutionID = program.InstitutionID
		rows[i].QuotaID = program.QuotaID
		rows[i].AssignedScore = score
		rows[i].PriorityProfile = applicant.PriorityProfile[program.ProgramID]
	}

	return rows, nil
}
