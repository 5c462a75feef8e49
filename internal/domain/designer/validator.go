package designer

import "fmt"

// ValidateNoForbiddenChanges diffs a reconciled definition against the
// original and rejects any mutation of an immutable or accounting-semantic
// property. All violations found are accumulated into a single
// ForbiddenChangeError so a second bug never needs a second run to surface.
//
// This check is deliberately redundant with the converter's own re-assertion
// step: it exists to catch converter bugs, not to be the only line of
// defense.
func ValidateNoForbiddenChanges(original, updated *VoucherTypeDefinition) error {
	var violations []string

	if updated.SchemaVersion != original.SchemaVersion {
		violations = append(violations, fmt.Sprintf("schemaVersion changed from %d to %d", original.SchemaVersion, updated.SchemaVersion))
	}
	if updated.ID != original.ID {
		violations = append(violations, fmt.Sprintf("id changed from %s to %s", original.ID, updated.ID))
	}
	if updated.CompanyID != original.CompanyID {
		violations = append(violations, fmt.Sprintf("companyId changed from %s to %s", original.CompanyID, updated.CompanyID))
	}
	if updated.Code != original.Code {
		violations = append(violations, fmt.Sprintf("code changed from %s to %s", original.Code, updated.Code))
	}
	if updated.Module != original.Module {
		violations = append(violations, fmt.Sprintf("module changed from %q to %q", original.Module, updated.Module))
	}

	if len(updated.RequiredPostingRoles) != len(original.RequiredPostingRoles) {
		violations = append(violations, fmt.Sprintf("requiredPostingRoles count changed from %d to %d", len(original.RequiredPostingRoles), len(updated.RequiredPostingRoles)))
	} else {
		for i, role := range original.RequiredPostingRoles {
			if updated.RequiredPostingRoles[i] != role {
				violations = append(violations, fmt.Sprintf("requiredPostingRoles[%d] changed from %s to %s", i, role, updated.RequiredPostingRoles[i]))
			}
		}
	}

	for i := range original.HeaderFields {
		o := &original.HeaderFields[i]
		u := updated.HeaderFieldByID(o.ID)
		if u == nil {
			violations = append(violations, fmt.Sprintf("header field %s was removed", o.ID))
			continue
		}
		if u.IsPosting != o.IsPosting {
			violations = append(violations, fmt.Sprintf("field %s: isPosting changed from %t to %t", o.ID, o.IsPosting, u.IsPosting))
		}
		if u.PostingRole != o.PostingRole {
			violations = append(violations, fmt.Sprintf("field %s: postingRole changed from %q to %q", o.ID, o.PostingRole, u.PostingRole))
		}
	}

	if len(violations) > 0 {
		return &ForbiddenChangeError{Violations: violations}
	}
	return nil
}
