package models

import "time"

// ContactForm is the enquiry posted from the contact page
type ContactForm struct {
	Name             string `json:"name" form:"name" binding:"required,max=200"`
	Email            string `json:"email" form:"email" binding:"required,email"`
	Phone            string `json:"phone" form:"phone" binding:"max=50"`
	Subject          string `json:"subject" form:"subject" binding:"required,max=200"`
	PropertyInterest string `json:"property_interest" form:"propertyInterest" binding:"omitempty,oneof=commercial retail residential development other"`
	Message          string `json:"message" form:"message" binding:"required,max=5000"`
}

// Option is one choice in a form select
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// PropertyInterestOptions are the choices offered by the contact form
var PropertyInterestOptions = []Option{
	{Value: "commercial", Label: "Commercial Office"},
	{Value: "retail", Label: "Retail Space"},
	{Value: "residential", Label: "Residential"},
	{Value: "development", Label: "Development Site"},
	{Value: "other", Label: "Other"},
}

type SubmissionState string

const (
	SubmissionPending SubmissionState = "pending"
	SubmissionSuccess SubmissionState = "success"
	SubmissionError   SubmissionState = "error"
)

// Submission tracks one simulated contact form submission. Nothing is sent
// anywhere; the state only moves from pending to success after a delay.
type Submission struct {
	ID          string          `json:"id"`
	State       SubmissionState `json:"state"`
	Form        ContactForm     `json:"-"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}
