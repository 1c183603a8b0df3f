package costmodel

// Option customises New.
type Option func(*options)

type options struct {
	customerNames []string
	facilityNames []string
}

// WithCustomerNames labels customers; len(names) must equal the number of rows
// and names must be unique and non-empty.
func WithCustomerNames(names []string) Option {
	return func(o *options) { o.customerNames = names }
}

// WithFacilityNames labels facilities; len(names) must equal the number of
// columns and names must be unique and non-empty.
func WithFacilityNames(names []string) Option {
	return func(o *options) { o.facilityNames = names }
}
