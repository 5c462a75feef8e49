package designer

import (
	"errors"
	"testing"

	"github.com/mahmudadem/ERP03-sub002/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardNavigation(t *testing.T) {
	registry := NewRegistry()

	t.Run("starts on type selection and blocks until a type is chosen", func(t *testing.T) {
		w := NewWizard(registry)
		assert.Equal(t, StepSelectType, w.CurrentStep())
		assert.False(t, w.NextStep())
		assert.Equal(t, StepSelectType, w.CurrentStep())

		require.NoError(t, w.SelectVoucherType(VoucherCodePayment))
		assert.True(t, w.NextStep())
		assert.Equal(t, StepFieldSelection, w.CurrentStep())
	})

	t.Run("walks forward to review and stops", func(t *testing.T) {
		w := NewWizard(registry)
		require.NoError(t, w.SelectVoucherType(VoucherCodeJournalEntry))
		for w.NextStep() {
		}
		assert.Equal(t, StepReview, w.CurrentStep())
		assert.False(t, w.NextStep())
	})

	t.Run("prev step is a no-op on the first step", func(t *testing.T) {
		w := NewWizard(registry)
		assert.False(t, w.PrevStep())

		require.NoError(t, w.SelectVoucherType(VoucherCodePayment))
		require.True(t, w.NextStep())
		assert.True(t, w.PrevStep())
		assert.Equal(t, StepSelectType, w.CurrentStep())
	})

	t.Run("field selection gate requires every core field", func(t *testing.T) {
		w := NewWizard(registry)
		require.NoError(t, w.SelectVoucherType(VoucherCodeJournalEntry))
		require.True(t, w.NextStep())
		require.Equal(t, StepFieldSelection, w.CurrentStep())

		w.DeselectField("date")
		assert.False(t, w.NextStep())
		assert.Equal(t, StepFieldSelection, w.CurrentStep())

		w.SelectField("date")
		assert.True(t, w.NextStep())
		assert.Equal(t, StepLineConfig, w.CurrentStep())
	})

	t.Run("rejects an unknown voucher type", func(t *testing.T) {
		w := NewWizard(registry)
		err := w.SelectVoucherType(VoucherCode("INVOICE"))
		var unknown *UnknownVoucherTypeError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "", string(w.VoucherType()))
	})
}

func TestWizardFieldSelection(t *testing.T) {
	registry := NewRegistry()

	t.Run("selecting a type seeds its core fields", func(t *testing.T) {
		w := NewWizard(registry)
		require.NoError(t, w.SelectVoucherType(VoucherCodePayment))

		reg, err := registry.VoucherType(VoucherCodePayment)
		require.NoError(t, err)
		assert.Equal(t, reg.CoreFieldIDs(), w.SelectedFieldIDs())
	})

	t.Run("seeding is a union and idempotent", func(t *testing.T) {
		w := NewWizard(registry)
		require.NoError(t, w.SelectVoucherType(VoucherCodePayment))
		w.SelectField("reference")

		before := w.SelectedFieldIDs()
		require.NoError(t, w.SelectVoucherType(VoucherCodePayment))
		assert.Equal(t, before, w.SelectedFieldIDs())

		// duplicates are ignored
		w.SelectField("reference")
		assert.Equal(t, before, w.SelectedFieldIDs())
	})

	t.Run("table vouchers get the essential line columns", func(t *testing.T) {
		w := NewWizard(registry)
		require.NoError(t, w.SelectVoucherType(VoucherCodeJournalEntry))
		assert.Equal(t, []string{"account", "debit", "credit"}, w.LineColumnIDs())

		single := NewWizard(registry)
		require.NoError(t, single.SelectVoucherType(VoucherCodePayment))
		assert.Empty(t, single.LineColumnIDs())
	})
}

func TestWizardOverlay(t *testing.T) {
	registry := NewRegistry()

	newPaymentWizard := func(t *testing.T) (*Wizard, VoucherTypeRegistry) {
		t.Helper()
		w := NewWizard(registry)
		require.NoError(t, w.SelectVoucherType(VoucherCodePayment))
		reg, err := registry.VoucherType(VoucherCodePayment)
		require.NoError(t, err)
		return w, reg
	}

	t.Run("stores only the changed properties", func(t *testing.T) {
		w, reg := newPaymentWizard(t)

		amount := reg.FieldByID("amount").Clone()
		amount.Label = "Payment Amount"
		require.NoError(t, w.UpdateFields([]FieldDefinitionV2{amount}))

		o, ok := w.OverlayFor("amount")
		require.True(t, ok)
		require.NotNil(t, o.Label)
		assert.Equal(t, "Payment Amount", *o.Label)
		assert.Nil(t, o.Width)
		assert.Nil(t, o.Style)
		assert.Nil(t, o.Placeholder)
	})

	t.Run("reverting an edit deletes the overlay entry", func(t *testing.T) {
		w, reg := newPaymentWizard(t)

		// A shared field with only a label change yields exactly {label}.
		reference := reg.FieldByID("reference").Clone()
		reference.Label = "Bank Reference"
		require.NoError(t, w.UpdateFields([]FieldDefinitionV2{reference}))
		o, ok := w.OverlayFor("reference")
		require.True(t, ok)
		require.NotNil(t, o.Label)
		assert.Equal(t, "Bank Reference", *o.Label)
		assert.Nil(t, o.Width)
		assert.Nil(t, o.Style)
		assert.Nil(t, o.Placeholder)

		require.NoError(t, w.UpdateFields([]FieldDefinitionV2{reg.FieldByID("reference").Clone()}))
		_, ok = w.OverlayFor("reference")
		assert.False(t, ok)
		assert.Empty(t, w.Overlay())
	})

	t.Run("reset field drops the customization", func(t *testing.T) {
		w, reg := newPaymentWizard(t)

		date := reg.FieldByID("date").Clone()
		date.Width = WidthFull
		require.NoError(t, w.UpdateFields([]FieldDefinitionV2{date}))
		_, ok := w.OverlayFor("date")
		require.True(t, ok)

		w.ResetField("date")
		_, ok = w.OverlayFor("date")
		assert.False(t, ok)
	})

	t.Run("personal fields are stored whole", func(t *testing.T) {
		w, _ := newPaymentWizard(t)

		note := NewPersonalField(FieldConfig{
			ID:    "myNote",
			Label: "My Note",
			Type:  FieldTypeTextarea,
			Width: WidthFull,
		})
		require.NoError(t, w.UpdateFields([]FieldDefinitionV2{note}))

		personal := w.PersonalFields()
		require.Len(t, personal, 1)
		assert.Equal(t, "myNote", personal[0].ID)
		assert.Equal(t, CategoryPersonal, personal[0].Category)
		assert.Empty(t, w.Overlay())
	})

	t.Run("rejects a system-category field unknown to the registry", func(t *testing.T) {
		w, reg := newPaymentWizard(t)

		rogue := reg.FieldByID("amount").Clone()
		rogue.ID = "notInRegistry"
		err := w.UpdateFields([]FieldDefinitionV2{rogue})

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "UNKNOWN_SYSTEM_FIELD", domainErr.Code)
	})

	t.Run("a rejected batch changes nothing", func(t *testing.T) {
		w, reg := newPaymentWizard(t)

		amount := reg.FieldByID("amount").Clone()
		amount.Label = "Payment Amount"
		require.NoError(t, w.UpdateFields([]FieldDefinitionV2{amount}))

		// The rogue field is last, so everything ahead of it would have been
		// applied already if the update were not all-or-nothing.
		reverted := reg.FieldByID("amount").Clone()
		note := NewPersonalField(FieldConfig{ID: "myNote", Label: "My Note", Type: FieldTypeText})
		rogue := reg.FieldByID("date").Clone()
		rogue.ID = "notInRegistry"
		err := w.UpdateFields([]FieldDefinitionV2{reverted, note, rogue})
		require.Error(t, err)

		o, ok := w.OverlayFor("amount")
		require.True(t, ok, "overlay entry must survive the rejected batch")
		require.NotNil(t, o.Label)
		assert.Equal(t, "Payment Amount", *o.Label)
		assert.Empty(t, w.PersonalFields())
		assert.Equal(t, 1, w.Summary().CoreFieldCount)
	})

	t.Run("requires a voucher type", func(t *testing.T) {
		w := NewWizard(registry)
		err := w.UpdateFields(nil)
		var precondition *PreconditionError
		require.True(t, errors.As(err, &precondition))
	})
}

func TestWizardLineColumns(t *testing.T) {
	registry := NewRegistry()

	newJournalWizard := func(t *testing.T) *Wizard {
		t.Helper()
		w := NewWizard(registry)
		require.NoError(t, w.SelectVoucherType(VoucherCodeJournalEntry))
		return w
	}

	t.Run("optional columns can be added and removed", func(t *testing.T) {
		w := newJournalWizard(t)
		require.NoError(t, w.AddLineColumn("costCenter"))
		assert.Contains(t, w.LineColumnIDs(), "costCenter")

		// adding twice does not duplicate
		require.NoError(t, w.AddLineColumn("costCenter"))
		assert.Len(t, w.LineColumnIDs(), 4)

		require.NoError(t, w.RemoveLineColumn("costCenter"))
		assert.NotContains(t, w.LineColumnIDs(), "costCenter")
	})

	t.Run("essential columns can never be removed", func(t *testing.T) {
		w := newJournalWizard(t)
		for _, id := range []string{"account", "debit", "credit"} {
			err := w.RemoveLineColumn(id)
			var domainErr *shared.DomainError
			require.True(t, errors.As(err, &domainErr), "column %s", id)
			assert.Equal(t, "ESSENTIAL_COLUMN", domainErr.Code)
		}
		assert.Equal(t, []string{"account", "debit", "credit"}, w.LineColumnIDs())
	})

	t.Run("rejects columns the system does not define", func(t *testing.T) {
		w := newJournalWizard(t)
		err := w.AddLineColumn("madeUpColumn")
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "UNKNOWN_LINE_COLUMN", domainErr.Code)
	})
}

func TestWizardValidateAndSummary(t *testing.T) {
	registry := NewRegistry()

	t.Run("reports missing type and fields", func(t *testing.T) {
		w := NewWizard(registry)
		issues := w.Validate()
		require.Len(t, issues, 1)
		assert.Equal(t, "error", issues[0].Severity)
	})

	t.Run("clean configuration has no findings", func(t *testing.T) {
		w := NewWizard(registry)
		require.NoError(t, w.SelectVoucherType(VoucherCodeJournalEntry))
		assert.Empty(t, w.Validate())
	})

	t.Run("reports a deselected core field", func(t *testing.T) {
		w := NewWizard(registry)
		require.NoError(t, w.SelectVoucherType(VoucherCodeJournalEntry))
		w.DeselectField("description")

		issues := w.Validate()
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0].Message, "description")
	})

	t.Run("summary counts fields by category", func(t *testing.T) {
		w := NewWizard(registry)
		require.NoError(t, w.SelectVoucherType(VoucherCodePayment))
		reg, err := registry.VoucherType(VoucherCodePayment)
		require.NoError(t, err)

		amount := reg.FieldByID("amount").Clone()
		amount.Label = "Payment Amount"
		fields := []FieldDefinitionV2{
			amount,
			reg.FieldByID("date").Clone(),
			reg.FieldByID("reference").Clone(),
			NewPersonalField(FieldConfig{ID: "myNote", Label: "My Note", Type: FieldTypeText}),
		}
		require.NoError(t, w.UpdateFields(fields))

		s := w.Summary()
		assert.Equal(t, VoucherCodePayment, s.VoucherType)
		assert.Equal(t, 2, s.CoreFieldCount)
		assert.Equal(t, 1, s.SharedFieldCount)
		assert.Equal(t, 1, s.PersonalFieldCount)
		assert.Equal(t, []string{"amount"}, s.CustomizedFieldIDs)
	})

	t.Run("reset clears everything", func(t *testing.T) {
		w := NewWizard(registry)
		require.NoError(t, w.SelectVoucherType(VoucherCodeJournalEntry))
		require.True(t, w.NextStep())
		require.NoError(t, w.AddLineColumn("project"))

		w.Reset()
		assert.Equal(t, StepSelectType, w.CurrentStep())
		assert.Equal(t, VoucherCode(""), w.VoucherType())
		assert.Empty(t, w.SelectedFieldIDs())
		assert.Empty(t, w.LineColumnIDs())
	})
}
