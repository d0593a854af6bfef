package enums

// TestimonialStatus controls whether a testimonial renders on the public site.
type TestimonialStatus string

const (
	TestimonialStatusActive   TestimonialStatus = "active"
	TestimonialStatusInactive TestimonialStatus = "inactive"
)

func (s TestimonialStatus) String() string {
	return string(s)
}

// ParseTestimonialStatus treats anything other than "inactive" as active,
// matching how the dashboard submits the toggle.
func ParseTestimonialStatus(value string) TestimonialStatus {
	if value == string(TestimonialStatusInactive) {
		return TestimonialStatusInactive
	}
	return TestimonialStatusActive
}
