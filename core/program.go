package core

// Program aggregates one regular AssignmentQueue plus zero or more special
// queues keyed by a small positive integer tag, and owns a waitlist of
// applicants who failed to enter any of its queues.
//
// ProgramID/QuotaID/InstitutionID/GradeID are immutable after construction;
// they are also the key a policy.Driver's global program map is indexed by
// (ProgramID, QuotaID).
type Program struct {
	ProgramID     string
	QuotaID       string
	InstitutionID string
	GradeID       int

	Regular *AssignmentQueue
	Special map[int]*AssignmentQueue // assignment type tag (>=1) -> queue

	Waitlist map[string]int // applicant_id -> priority (integer portion only)

	// Transferred/Received are informational flags set by
	// CapacityToTransfer/ReceiveTransfer.
	Transferred bool
	Received    bool
}

// NewProgram constructs a Program with a regular queue of regularCapacity
// and one special queue per entry of specialCapacities.
func NewProgram(programID, quotaID, institutionID string, gradeID int, regularCapacity int, specialCapacities map[int]int) *Program {
	special := make(map[int]*AssignmentQueue, len(specialCapacities))
	for tag, cap := range specialCapacities {
		special[tag] = NewAssignmentQueue(cap)
	}
	return &Program{
		ProgramID:     programID,
		QuotaID:       quotaID,
		InstitutionID: institutionID,
		GradeID:       gradeID,
		Regular:       NewAssignmentQueue(regularCapacity),
		Special:       special,
		Waitlist:      make(map[string]int),
	}
}

// QueueFor returns the AssignmentQueue matching assignmentType: 0 selects
// the regular queue, k>0 selects the special_k queue. Undefined special
// types return ErrInvalidAssignmentType.
func (p *Program) QueueFor(assignmentType int) (*AssignmentQueue, error) {
	if assignmentType == 0 {
		return p.Regular, nil
	}
	q, ok := p.Special[assignmentType]
	if !ok {
		return nil, wrapf(ErrInvalidAssignmentType, "program %s quota %s: type %d", p.ProgramID, p.QuotaID, assignmentType)
	}
	return q, nil
}

// Score computes applicant's score at (ProgramID, QuotaID): the sum of its
// priority (non-negative int, lower better) and lottery (real in [0,1)),
// which sorts lexicographically by (priority, lottery) — the sole tie-break
// rule. Returns ErrMissingScore if the applicant has no
// entry for this (program, quota) pair.
func (p *Program) Score(a *Applicant) (float64, error) {
	pq := ProgramQuota{ProgramID: p.ProgramID, QuotaID: p.QuotaID}
	priority, ok := a.Priority[pq]
	if !ok {
		return 0, wrapf(ErrMissingScore, "applicant %s has no priority at (%s,%s)", a.ID, p.ProgramID, p.QuotaID)
	}
	lottery, ok := a.Lottery[pq]
	if !ok {
		return 0, wrapf(ErrMissingScore, "applicant %s has no lottery at (%s,%s)", a.ID, p.ProgramID, p.QuotaID)
	}
	return float64(priority) + lottery, nil
}

// CapacityToTransfer computes and applies the unidirectional special→regular
// capacity transfer: if the fromType queue is
// under-filled, the unused delta is subtracted from that queue's capacity,
// the program's Transferred flag is set, and delta is returned for the
// caller to pass to ReceiveTransfer. Returns 0 (no-op) if the queue is full
// or has zero capacity.
func (p *Program) CapacityToTransfer(fromType int) (int, error) {
	q, err := p.QueueFor(fromType)
	if err != nil {
		return 0, err
	}
	if len(q.AssignedApplicants) >= q.Capacity {
		return 0, nil
	}
	delta := q.Capacity - len(q.AssignedApplicants)
	if delta == 0 {
		return 0, nil
	}
	q.ModifyCapacity(-delta)
	p.Transferred = true
	return delta, nil
}

// ReceiveTransfer adds delta to the regular queue's capacity and marks the
// program's Received flag.
func (p *Program) ReceiveTransfer(delta int) {
	p.Regular.ModifyCapacity(delta)
	p.Received = true
}

// ForceSecuredMatch appends applicant to the queue matching its
// SpecialAssignment tag, over capacity, and removes it from the waitlist —
// the only operation allowed to push a queue above capacity.
func (p *Program) ForceSecuredMatch(a *Applicant) error {
	q, err := p.QueueFor(a.SpecialAssignment)
	if err != nil {
		return err
	}
	score, err := p.Score(a)
	if err != nil {
		return err
	}
	q.ModifyOverCapacity(1)
	q.Add(a, score)
	delete(p.Waitlist, a.ID)
	return nil
}

// WaitlistAdd sets (idempotent overwrite) the waitlist priority for
// applicantID.
func (p *Program) WaitlistAdd(applicantID string, priority int) {
	p.Waitlist[applicantID] = priority
}

// Reset restores the program (both queues and waitlist) to post-construction
// state, clearing the Transferred/Received flags, without rebuilding the
// entity graph.
func (p *Program) Reset() {
	p.Transferred = false
	p.Received = false
	p.Regular.Reset()
	for _, q := range p.Special {
		q.Reset()
	}
	p.Waitlist = make(map[string]int)
}
