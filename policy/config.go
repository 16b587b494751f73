package policy

// Order selects the direction grades are processed in.
type Order string

const (
	OrderDescending Order = "descending"
	OrderAscending  Order = "ascending"
)

// config holds the six boolean feature flags plus the grade processing
// order. All flags default false, including CheckInputs; Order is the only
// field with a non-zero default, which is descending.
type config struct {
	order                              Order
	siblingPriorityActivation          bool
	linkedPostulationActivation        bool
	securedEnrollmentAssignment        bool
	forcedSecuredEnrollmentAssignment  bool
	transferCapacityActivation         bool
	checkInputs                        bool
}

// Option mutates a config. Later options override earlier ones.
type Option func(*config)

// newConfig resolves defaults then applies opts in order.
func newConfig(opts ...Option) *config {
	cfg := &config{
		order: OrderDescending,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithOrder sets the grade processing direction. Any value other than
// OrderAscending is treated as OrderDescending.
func WithOrder(order Order) Option {
	return func(cfg *config) { cfg.order = order }
}

// WithSiblingPriority toggles dynamic sibling priority.
func WithSiblingPriority(enabled bool) Option {
	return func(cfg *config) { cfg.siblingPriorityActivation = enabled }
}

// WithLinkedPostulation toggles linked postulation reorder.
func WithLinkedPostulation(enabled bool) Option {
	return func(cfg *config) { cfg.linkedPostulationActivation = enabled }
}

// WithSecuredEnrollment toggles SE truncation.
func WithSecuredEnrollment(enabled bool) Option {
	return func(cfg *config) { cfg.securedEnrollmentAssignment = enabled }
}

// WithForcedSecuredEnrollment toggles forced-SE post-round assignment,
// independent of WithSecuredEnrollment.
func WithForcedSecuredEnrollment(enabled bool) Option {
	return func(cfg *config) { cfg.forcedSecuredEnrollmentAssignment = enabled }
}

// WithTransferCapacity toggles special→regular capacity transfer.
func WithTransferCapacity(enabled bool) Option {
	return func(cfg *config) { cfg.transferCapacityActivation = enabled }
}

// WithCheckInputs toggles structural/referential input validation.
// Defaults to false; pass true to validate inputs before a run.
func WithCheckInputs(enabled bool) Option {
	return func(cfg *config) { cfg.checkInputs = enabled }
}
