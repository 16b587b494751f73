package policy

import (
	"github.com/tether-education/schoolchoice-da/core"
	"github.com/tether-education/schoolchoice-da/matcher"
)

// applicantsForRound selects the applicants in (grade, assignmentType),
// applies cross-grade mutations
// (sibling priority, linked reorder) unless this is the first grade of the
// run, then always applies quota reorder and, if enabled, SE truncation.
func (d *Driver) applicantsForRound(grade, assignmentType int, applyCrossGradeMutations bool) ([]*core.Applicant, error) {
	var scope []*core.Applicant
	for _, id := range d.graph.applicantOrder {
		applicant := d.graph.applicantsByID[id]
		if applicant.GradeID != grade {
			continue
		}
		if d.graph.hasSpecialAssignmentColumn && applicant.SpecialAssignment != assignmentType {
			continue
		}
		scope = append(scope, applicant)
	}

	if applyCrossGradeMutations {
		if d.cfg.siblingPriorityActivation {
			for _, applicant := range scope {
				if err := d.applySiblingPriority(applicant); err != nil {
					return nil, err
				}
			}
		}
		if d.cfg.linkedPostulationActivation {
			for _, applicant := range scope {
				d.applyLinkedReorder(applicant)
			}
		}
	}

	for _, applicant := range scope {
		if err := d.applyQuotaReorder(applicant); err != nil {
			return nil, err
		}
	}

	if d.cfg.securedEnrollmentAssignment {
		for _, applicant := range scope {
			if !applicant.HasSE || applicant.Matched {
				continue
			}
			if err := applicant.TruncateAtSecuredEnrollment(); err != nil {
				return nil, wrapf(ErrInvalidSecuredEnrollment, "applicant %s", applicant.ID)
			}
		}
	}

	return scope, nil
}

// afterRoundAdjustments applies the special→regular capacity transfer
// (skipped on the regular pass itself, t==0) and forced
// secured enrollment for every applicant in scope that the round left
// matched to no program and that has an SE target.
func (d *Driver) afterRoundAdjustments(scope []*core.Applicant, programs map[matcher.ProgramKey]*core.Program, grade, assignmentType int) error {
	if assignmentType != 0 && d.cfg.transferCapacityActivation {
		for _, program := range programs {
			delta, err := program.CapacityToTransfer(assignmentType)
			if err != nil {
				return wrapf(err, "capacity transfer at grade %d type %d", grade, assignmentType)
			}
			if delta == 0 {
				continue
			}
			program.ReceiveTransfer(delta)
		}
	}

	if d.cfg.forcedSecuredEnrollmentAssignment {
		for _, applicant := range scope {
			if !(applicant.Matched && applicant.Assigned == nil) || !applicant.HasSE {
				continue
			}
			program, ok := d.graph.programs[core.ProgramQuota{ProgramID: applicant.SEProgramID, QuotaID: applicant.SEQuotaID}]
			if !ok {
				return wrapf(ErrInvalidSecuredEnrollment, "applicant %s: SE program (%s,%s) not found", applicant.ID, applicant.SEProgramID, applicant.SEQuotaID)
			}
			if err := program.ForceSecuredMatch(applicant); err != nil {
				return wrapf(err, "forced secured enrollment for applicant %s", applicant.ID)
			}
			applicant.Matched = true
			applicant.Assigned = program
		}
	}

	return nil
}
