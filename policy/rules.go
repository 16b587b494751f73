package policy

import (
	"github.com/tether-education/schoolchoice-da/criteria"
)

// transitionTable indexes PriorityProfilesInput rows by PriorityProfile for
// O(1) lookup during priority profile transitions.
type transitionTable map[int]PriorityProfileRow

func buildTransitionTable(input PriorityProfilesInput) (transitionTable, error) {
	if len(input.Rows) == 0 {
		return nil, wrapf(ErrConfig, "priority_profiles: at least one row is required")
	}
	table := make(transitionTable, len(input.Rows))
	for _, row := range input.Rows {
		table[row.PriorityProfile] = row
	}
	return table, nil
}

// resolve looks up the applicant's current profile p at quotaID and returns
// the upgraded profile p' and the new priority value.
func (t transitionTable) resolve(currentProfile int, quotaID string) (newProfile int, newPriority int, err error) {
	entry, ok := t[currentProfile]
	if !ok || !entry.HasSiblingTransition {
		return 0, 0, wrapf(ErrMissingTransition, "priority profile %d has no sibling transition", currentProfile)
	}
	next, ok := t[entry.SiblingTransition]
	if !ok {
		return 0, 0, wrapf(ErrMissingTransition, "transitioned profile %d is undefined", entry.SiblingTransition)
	}
	priority, ok := next.PriorityByQuota[quotaID]
	if !ok {
		return 0, 0, wrapf(ErrMissingTransition, "profile %d has no priority for quota %s", next.PriorityProfile, quotaID)
	}
	return next.PriorityProfile, priority, nil
}

// quotaOrderIndex groups quota_order rows by priority_profile, preserving
// input order within each group — rules are walked in input order and the
// FIRST match wins.
type quotaOrderIndex struct {
	byProfile      map[int][]QuotaOrderRow
	characteristics []string
}

func buildQuotaOrderIndex(input QuotaOrderInput) (*quotaOrderIndex, error) {
	idx := &quotaOrderIndex{byProfile: make(map[int][]QuotaOrderRow)}
	seen := make(map[string]struct{})
	for _, row := range input.Rows {
		if row.SecuredEnrollmentQuotaIDCriteria != "" && !criteria.IsKnownCriterion(row.SecuredEnrollmentQuotaIDCriteria) {
			return nil, wrapf(ErrConfig, "quota_order: unknown secured_enrollment_quota_id_criteria %q", row.SecuredEnrollmentQuotaIDCriteria)
		}
		for name, check := range row.Characteristics {
			if !criteria.IsKnownCriterion(check.Criteria) {
				return nil, wrapf(ErrConfig, "quota_order: unknown criteria %q for characteristic %q", check.Criteria, name)
			}
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				idx.characteristics = append(idx.characteristics, name)
			}
		}
		idx.byProfile[row.PriorityProfile] = append(idx.byProfile[row.PriorityProfile], row)
	}
	if len(idx.byProfile) == 0 {
		return nil, wrapf(ErrConfig, "quota_order: at least one row is required")
	}
	return idx, nil
}

// hasRulesFor reports whether priorityProfile has any quota_order rows.
func (idx *quotaOrderIndex) hasRulesFor(priorityProfile int) bool {
	_, ok := idx.byProfile[priorityProfile]
	return ok
}
