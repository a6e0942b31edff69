package patterns

import "github.com/varalys/piiguard/internal/types"

type recognizer struct {
	entity types.EntityType
	scan   func(text string) []types.DetectedSpan
}

var builtin = []recognizer{
	{types.EntitySSN, SSN},
	{types.EntityEmail, Email},
	{types.EntityPhone, Phone},
	{types.EntityIPAddress, IPAddress},
	{types.EntityCreditCard, CreditCard},
	{types.EntityPerson, Person},
	{types.EntityOrganization, Organization},
	{types.EntityCaseNumber, CaseNumber},
	{types.EntityMedicalRecord, MedicalRecord},
}

// Scan runs every enabled built-in recognizer plus the given custom patterns,
// in registration order, and returns the raw spans. enabled may be nil to run
// everything.
func Scan(text string, enabled func(types.EntityType) bool, custom []Custom) []types.DetectedSpan {
	if text == "" {
		return nil
	}
	var out []types.DetectedSpan
	for _, r := range builtin {
		if enabled != nil && !enabled(r.entity) {
			continue
		}
		out = append(out, r.scan(text)...)
	}
	for _, c := range custom {
		out = append(out, c.Scan(text)...)
	}
	return out
}

// IDs returns the built-in entity categories in scan order.
func IDs() []types.EntityType {
	out := make([]types.EntityType, 0, len(builtin))
	for _, r := range builtin {
		out = append(out, r.entity)
	}
	return out
}
