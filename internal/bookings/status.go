package bookings

// Status is the booking lifecycle state. The only legal transition is
// PENDING -> CONFIRMED; CONFIRMED is terminal.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// Type distinguishes the three registration products
type Type string

const (
	TypePass        Type = "pass"
	TypeSponsorship Type = "sponsorship"
	TypeSpeakerPass Type = "speakerpass"
)

func (t Type) IsValid() bool {
	switch t {
	case TypePass, TypeSponsorship, TypeSpeakerPass:
		return true
	}
	return false
}

func (t Type) String() string {
	return string(t)
}

// Payment method identifiers recorded at confirmation
const (
	PaymentMethodRazorpay = "razorpay"
	PaymentMethodPaypal   = "paypal"
)
