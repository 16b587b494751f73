package core

// ProgramQuota identifies a single (program_id, quota_id) scoring slot.
// It is the key applicants use to look up their priority and lottery value
// for a given postulation entry, and the key programs are indexed by
// globally.
type ProgramQuota struct {
	ProgramID string
	QuotaID   string
}

// Attribute is a typed, arbitrary named applicant characteristic value
// consulted by quota-order rules. Concrete values are int, float64, or
// string; the criteria package's DSL evaluator compares them generically.
type Attribute = interface{}

// Applicant is the mutable record tracking one applicant through a match.
// Three parallel slices — Postulation, QuotaAtPosition,
// InstitutionAtPosition — describe the applicant's preference list; they are
// always kept the same length.
//
// Fields are grouped into immutable identity/postulation data (set once at
// construction) and mutation state that a policy.Driver round resets and
// rewrites between runs.
type Applicant struct {
	ID                 string
	GradeID            int
	SpecialAssignment  int // 0 = regular, >=1 = special queue index
	HasSE              bool
	SEProgramID        string
	SEQuotaID          string

	Postulation           []string // program ids, most preferred first
	QuotaAtPosition       []string // parallel to Postulation
	InstitutionAtPosition []string // parallel to Postulation

	PriorityProfile map[string]int             // program_id -> priority profile label
	Priority        map[ProgramQuota]int        // (program_id,quota_id) -> priority, lower is better
	Lottery         map[ProgramQuota]float64    // (program_id,quota_id) -> lottery in [0,1)

	SiblingIDs []string
	LinkIDs    []string

	Characteristics map[string]Attribute

	// Mutation state, reset between runs by Reset.
	Cursor          int // next postulation index to propose
	Matched         bool
	Assigned        *Program
	LinkedReordered bool
	SETruncated     bool
	DynamicPriority []bool // per postulation index
	LinkedGrades    map[int]struct{}

	// originalPostulation/... hold the construction-time preference lists so
	// Reset can restore them without re-building the entity graph.
	originalPostulation           []string
	originalQuotaAtPosition       []string
	originalInstitutionAtPosition []string
}

// NewApplicant constructs an Applicant from its immutable identity and
// postulation data. The three postulation slices must share the same
// length; callers (policy.buildEntityGraph) are responsible for that
// invariant — NewApplicant does not validate it, leaving validation at the
// orchestration boundary rather than in every leaf constructor.
func NewApplicant(
	id string,
	gradeID int,
	specialAssignment int,
	seProgramID, seQuotaID string,
	hasSE bool,
	postulation, quotaAtPosition, institutionAtPosition []string,
	priorityProfile map[string]int,
	priority map[ProgramQuota]int,
	lottery map[ProgramQuota]float64,
	siblingIDs, linkIDs []string,
	characteristics map[string]Attribute,
) *Applicant {
	a := &Applicant{
		ID:                    id,
		GradeID:               gradeID,
		SpecialAssignment:     specialAssignment,
		HasSE:                 hasSE,
		SEProgramID:           seProgramID,
		SEQuotaID:             seQuotaID,
		originalPostulation:           append([]string(nil), postulation...),
		originalQuotaAtPosition:       append([]string(nil), quotaAtPosition...),
		originalInstitutionAtPosition: append([]string(nil), institutionAtPosition...),
		PriorityProfile:       priorityProfile,
		Priority:              priority,
		Lottery:               lottery,
		SiblingIDs:            siblingIDs,
		LinkIDs:               linkIDs,
		Characteristics:       characteristics,
	}
	a.Reset()
	return a
}

// Reset restores all mutation state to post-construction values: the
// postulation slices are restored from the originals, Matched/Assigned are
// cleared, and DynamicPriority is re-zeroed — unless the applicant has an
// empty postulation, in which case it is initialized already matched to no
// program.
func (a *Applicant) Reset() {
	a.Postulation = append([]string(nil), a.originalPostulation...)
	a.QuotaAtPosition = append([]string(nil), a.originalQuotaAtPosition...)
	a.InstitutionAtPosition = append([]string(nil), a.originalInstitutionAtPosition...)

	a.Cursor = 0
	a.Assigned = nil
	a.LinkedReordered = false
	a.SETruncated = false
	a.LinkedGrades = make(map[int]struct{})

	if len(a.Postulation) == 0 {
		a.Matched = true
		a.DynamicPriority = nil
		return
	}
	a.Matched = false
	a.DynamicPriority = make([]bool, len(a.Postulation))
}

// CurrentProgramQuota returns the (program_id, quota_id) pair the applicant
// is currently proposing to, i.e. at index Cursor.
func (a *Applicant) CurrentProgramQuota() ProgramQuota {
	return ProgramQuota{
		ProgramID: a.Postulation[a.Cursor],
		QuotaID:   a.QuotaAtPosition[a.Cursor],
	}
}

// Advance moves the proposal cursor forward by one and reports whether the
// applicant has any postulation left to propose to.
func (a *Applicant) Advance() (hasMore bool) {
	a.Cursor++
	return a.Cursor < len(a.Postulation)
}

// ReassignPriorityProfile sets the priority profile and the priority at
// postulation index i to newProfile and newPriority, as used by the dynamic
// sibling priority mutation, and latches DynamicPriority[i]. It writes the
// supplied values unconditionally: it does not compare newPriority with the
// current priority, so a transition table whose new value is a larger number
// weakens the priority at that index.
func (a *Applicant) ReassignPriorityProfile(index int, newProfile int, newPriority int) {
	programID := a.Postulation[index]
	quotaID := a.QuotaAtPosition[index]
	a.PriorityProfile[programID] = newProfile
	a.Priority[ProgramQuota{ProgramID: programID, QuotaID: quotaID}] = newPriority
	a.DynamicPriority[index] = true
}

// ReorderPostulation permutes the three postulation slices according to
// order (a permutation of indices into the current slices) and records
// linkedGrades, implementing the linked-postulation reorder mutation.
// Latches LinkedReordered. order is applied to the current slices, so a
// second call with the same order permutes them again.
func (a *Applicant) ReorderPostulation(order []int, linkedGrades map[int]struct{}) {
	newPost := make([]string, len(order))
	newQuota := make([]string, len(order))
	newInst := make([]string, len(order))
	for newIdx, oldIdx := range order {
		newPost[newIdx] = a.Postulation[oldIdx]
		newQuota[newIdx] = a.QuotaAtPosition[oldIdx]
		newInst[newIdx] = a.InstitutionAtPosition[oldIdx]
	}
	a.Postulation = newPost
	a.QuotaAtPosition = newQuota
	a.InstitutionAtPosition = newInst
	a.LinkedReordered = true
	a.LinkedGrades = linkedGrades
}

// ReorderPostulationByQuota replaces the quota_at_position entries for every
// postulation index pointing at programID with the subset of orderedQuotas
// present among those positions, preserving orderedQuotas' order.
func (a *Applicant) ReorderPostulationByQuota(programID string, orderedQuotas []string) {
	var indexes []int
	present := make(map[string]bool)
	for i, pid := range a.Postulation {
		if pid == programID {
			indexes = append(indexes, i)
			present[a.QuotaAtPosition[i]] = true
		}
	}
	if len(indexes) == 0 {
		return
	}
	var filtered []string
	for _, q := range orderedQuotas {
		if present[q] {
			filtered = append(filtered, q)
		}
	}
	for k, idx := range indexes {
		if k < len(filtered) {
			a.QuotaAtPosition[idx] = filtered[k]
		}
	}
}

// TruncateAtSecuredEnrollment cuts the three postulation slices to end at
// the LAST occurrence of SEProgramID (intentionally the last, not the
// first, occurrence) and hard-sets the priority at (SEProgramID,
// SEQuotaID) to 0, the strongest integer. Returns an
// ErrNoSecuredEnrollment-wrapped error if SEProgramID never appears in
// Postulation.
func (a *Applicant) TruncateAtSecuredEnrollment() error {
	lastIdx := -1
	for i, pid := range a.Postulation {
		if pid == a.SEProgramID {
			lastIdx = i
		}
	}
	if lastIdx == -1 {
		return wrapf(ErrNoSecuredEnrollment, "applicant %s: SE program %s not in postulation", a.ID, a.SEProgramID)
	}
	a.SETruncated = true
	a.Postulation = a.Postulation[:lastIdx+1]
	a.QuotaAtPosition = a.QuotaAtPosition[:lastIdx+1]
	a.InstitutionAtPosition = a.InstitutionAtPosition[:lastIdx+1]
	a.DynamicPriority = a.DynamicPriority[:lastIdx+1]
	a.Priority[ProgramQuota{ProgramID: a.SEProgramID, QuotaID: a.SEQuotaID}] = SecuredEnrollmentPriority
	return nil
}

// SecuredEnrollmentPriority is the hard-coded strongest priority assigned to
// an applicant's own secured-enrollment slot.
const SecuredEnrollmentPriority = 0
