package policy

import (
	"github.com/tether-education/schoolchoice-da/core"
	"github.com/tether-education/schoolchoice-da/criteria"
)

// applySiblingPriority implements dynamic sibling priority: for every
// postulation index whose institution_id is shared with an already-matched
// sibling, strengthen the applicant's priority there via the priority
// profile transition.
func (d *Driver) applySiblingPriority(applicant *core.Applicant) error {
	if applicant.Matched || len(applicant.SiblingIDs) == 0 {
		return nil
	}

	institutionsWithSibling := make(map[string]struct{})
	for _, siblingID := range applicant.SiblingIDs {
		sibling, ok := d.graph.applicantsByID[siblingID]
		if !ok || !sibling.Matched || sibling.Assigned == nil {
			continue
		}
		institutionsWithSibling[sibling.Assigned.InstitutionID] = struct{}{}
	}
	if len(institutionsWithSibling) == 0 {
		return nil
	}

	for i, institutionID := range applicant.InstitutionAtPosition {
		if _, ok := institutionsWithSibling[institutionID]; !ok {
			continue
		}
		programID := applicant.Postulation[i]
		currentProfile := applicant.PriorityProfile[programID]
		newProfile, newPriority, err := d.graph.transitions.resolve(currentProfile, applicant.QuotaAtPosition[i])
		if err != nil {
			return wrapf(err, "applicant %s sibling priority at index %d", applicant.ID, i)
		}
		applicant.ReassignPriorityProfile(i, newProfile, newPriority)
	}
	return nil
}

// applyLinkedReorder implements the linked postulation reorder: permute the
// applicant's postulation so entries co-located with
// an already-matched linked applicant come first, preserving relative order
// within each partition.
func (d *Driver) applyLinkedReorder(applicant *core.Applicant) {
	if applicant.Matched || len(applicant.LinkIDs) == 0 {
		return
	}

	institutionsWithLinked := make(map[string]struct{})
	linkedGrades := make(map[int]struct{})
	for _, linkedID := range applicant.LinkIDs {
		linked, ok := d.graph.applicantsByID[linkedID]
		if !ok || !linked.Matched || linked.Assigned == nil {
			continue
		}
		institutionsWithLinked[linked.Assigned.InstitutionID] = struct{}{}
		linkedGrades[linked.Assigned.GradeID] = struct{}{}
	}
	if len(institutionsWithLinked) == 0 {
		return
	}

	var first, rest []int
	for i, institutionID := range applicant.InstitutionAtPosition {
		if _, ok := institutionsWithLinked[institutionID]; ok {
			first = append(first, i)
		} else {
			rest = append(rest, i)
		}
	}
	order := append(first, rest...)
	applicant.ReorderPostulation(order, linkedGrades)
}

// applyQuotaReorder handles, for each program_id in the applicant's
// postulation whose priority_profile has quota_order rules, walking the
// rules in input order and applying the first one that matches.
func (d *Driver) applyQuotaReorder(applicant *core.Applicant) error {
	if applicant.Matched {
		return nil
	}

	seenPrograms := make(map[string]bool)
	for _, programID := range applicant.Postulation {
		if seenPrograms[programID] {
			continue
		}
		seenPrograms[programID] = true

		profile, ok := applicant.PriorityProfile[programID]
		if !ok || !d.graph.quotaOrder.hasRulesFor(profile) {
			continue
		}

		isSE := applicant.HasSE && applicant.SEProgramID == programID
		for _, rule := range d.graph.quotaOrder.byProfile[profile] {
			if d.cfg.securedEnrollmentAssignment {
				if rule.SecuredEnrollmentIndicator != isSE {
					continue
				}
				if isSE {
					ok, err := criteria.Evaluate(applicant.SEQuotaID, rule.SecuredEnrollmentQuotaIDCriteria, rule.SecuredEnrollmentQuotaIDValue)
					if err != nil {
						return wrapf(ErrConfig, "applicant %s quota reorder: %v", applicant.ID, err)
					}
					if !ok {
						continue
					}
				}
			}

			matched, err := d.evaluateCharacteristics(applicant, rule)
			if err != nil {
				return err
			}
			if !matched {
				continue
			}

			applicant.ReorderPostulationByQuota(programID, rule.OrderedQuotas)
			break
		}
	}
	return nil
}

func (d *Driver) evaluateCharacteristics(applicant *core.Applicant, rule QuotaOrderRow) (bool, error) {
	for _, name := range d.graph.quotaOrder.characteristics {
		check, hasRule := rule.Characteristics[name]
		if !hasRule {
			continue
		}
		attr, ok := applicant.Characteristics[name]
		if !ok {
			return false, wrapf(ErrConfig, "applicant %s has no characteristic %q", applicant.ID, name)
		}
		ok, err := criteria.Evaluate(attr, check.Criteria, check.Value)
		if err != nil {
			return false, wrapf(ErrConfig, "applicant %s quota reorder characteristic %q: %v", applicant.ID, name, err)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
