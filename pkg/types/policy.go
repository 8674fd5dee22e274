// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the policy-extract tool:
// the field identifiers, the extracted policy record, and configuration.
package types

// Field identifies one target field of an insurance policy record.
type Field string

const (
	FieldPolicyholderName Field = "policyholder_name"
	FieldVehicleNumber    Field = "vehicle_number"
	FieldPolicyType       Field = "policy_type"
	FieldPolicyNumber     Field = "policy_number"
	FieldInsurerName      Field = "insurer_name"
	FieldPolicyStartDate  Field = "policy_start_date"
	FieldPolicyEndDate    Field = "policy_end_date"
	FieldPremiumAmount    Field = "premium_amount"
	FieldContactNumber    Field = "contact_number"
)

// AllFields lists every field in record order.
var AllFields = []Field{
	FieldPolicyholderName,
	FieldVehicleNumber,
	FieldPolicyType,
	FieldPolicyNumber,
	FieldInsurerName,
	FieldPolicyStartDate,
	FieldPolicyEndDate,
	FieldPremiumAmount,
	FieldContactNumber,
}

// Valid reports whether f is one of the declared fields.
func (f Field) Valid() bool {
	for _, known := range AllFields {
		if f == known {
			return true
		}
	}
	return false
}

// PolicyRecord is the fixed-shape result of extracting one document.
// Every field is always present when serialized; a field that could not be
// extracted holds the empty string.
type PolicyRecord struct {
	PolicyholderName string `json:"policyholder_name" yaml:"policyholder_name"`
	VehicleNumber    string `json:"vehicle_number" yaml:"vehicle_number"`
	PolicyType       string `json:"policy_type" yaml:"policy_type"`
	PolicyNumber     string `json:"policy_number" yaml:"policy_number"`
	InsurerName      string `json:"insurer_name" yaml:"insurer_name"`

	// PolicyStartDate and PolicyEndDate are ISO dates (YYYY-MM-DD).
	PolicyStartDate string `json:"policy_start_date" yaml:"policy_start_date"`
	PolicyEndDate   string `json:"policy_end_date" yaml:"policy_end_date"`

	// PremiumAmount is a fixed-point decimal without thousands separators.
	PremiumAmount string `json:"premium_amount" yaml:"premium_amount"`

	ContactNumber string `json:"contact_number" yaml:"contact_number"`
}

// Get returns the value stored for f, or "" for an unknown field.
func (r *PolicyRecord) Get(f Field) string {
	if p := r.slot(f); p != nil {
		return *p
	}
	return ""
}

// Set stores value for f. It reports false when f is not a declared field.
func (r *PolicyRecord) Set(f Field, value string) bool {
	p := r.slot(f)
	if p == nil {
		return false
	}
	*p = value
	return true
}

// Map returns the record keyed by field identifier. The map always holds
// exactly one entry per declared field.
func (r *PolicyRecord) Map() map[Field]string {
	m := make(map[Field]string, len(AllFields))
	for _, f := range AllFields {
		m[f] = r.Get(f)
	}
	return m
}

// Filled returns the number of non-empty fields.
func (r *PolicyRecord) Filled() int {
	n := 0
	for _, f := range AllFields {
		if r.Get(f) != "" {
			n++
		}
	}
	return n
}

func (r *PolicyRecord) slot(f Field) *string {
	switch f {
	case FieldPolicyholderName:
		return &r.PolicyholderName
	case FieldVehicleNumber:
		return &r.VehicleNumber
	case FieldPolicyType:
		return &r.PolicyType
	case FieldPolicyNumber:
		return &r.PolicyNumber
	case FieldInsurerName:
		return &r.InsurerName
	case FieldPolicyStartDate:
		return &r.PolicyStartDate
	case FieldPolicyEndDate:
		return &r.PolicyEndDate
	case FieldPremiumAmount:
		return &r.PremiumAmount
	case FieldContactNumber:
		return &r.ContactNumber
	}
	return nil
}
