package designer

import "github.com/shopspring/decimal"

// NewRegistry builds the default system field registry: the backend's
// contractual CORE and SHARED field catalog for each of the four voucher
// types, plus the essential/optional line-table column split.
func NewRegistry() *Registry {
	zero := decimal.Zero

	dateField := func() FieldDefinitionV2 {
		return NewCoreField(FieldConfig{
			ID:              "date",
			Label:           "Date",
			Type:            FieldTypeDate,
			Required:        true,
			Width:           WidthHalf,
			SemanticMeaning: "Posting date of the voucher; drives the accounting period",
		})
	}
	descriptionField := func(required bool) FieldDefinitionV2 {
		cfg := FieldConfig{
			ID:              "description",
			Label:           "Description",
			Type:            FieldTypeTextarea,
			Required:        required,
			Width:           WidthFull,
			SemanticMeaning: "Narration shown in the journal and on printed vouchers",
		}
		if required {
			return NewCoreField(cfg)
		}
		return NewSharedField(cfg)
	}
	amountField := func() FieldDefinitionV2 {
		return NewCoreField(FieldConfig{
			ID:              "amount",
			Label:           "Amount",
			Type:            FieldTypeNumber,
			Required:        true,
			Width:           WidthHalf,
			ValidationRules: &ValidationRules{MinValue: &zero},
			SemanticMeaning: "Monetary amount posted to both ledger sides",
		})
	}
	currencyField := func() FieldDefinitionV2 {
		return NewCoreField(FieldConfig{
			ID:              "currency",
			Label:           "Currency",
			Type:            FieldTypeSelect,
			Required:        true,
			Width:           WidthQuarter,
			SemanticMeaning: "Transaction currency; selects the exchange rate applied at posting",
		})
	}
	cashAccountField := func() FieldDefinitionV2 {
		return NewCoreField(FieldConfig{
			ID:              "cashAccountId",
			Label:           "Cash Account",
			Type:            FieldTypeRelation,
			Required:        true,
			Width:           WidthHalf,
			SemanticMeaning: "Cash or bank ledger account on the money side of the posting",
		})
	}

	// Each catalog entry gets its own slice. FieldByID hands out pointers
	// into the catalog, so sharing one backing array across voucher types
	// would let a mutation leak between them.
	sharedDefaults := func() []FieldDefinitionV2 {
		return []FieldDefinitionV2{
			NewSharedField(FieldConfig{
				ID:              "reference",
				Label:           "Reference",
				Type:            FieldTypeText,
				Width:           WidthHalf,
				SemanticMeaning: "External document reference (bank transaction, cheque number)",
			}),
			NewSharedField(FieldConfig{
				ID:              "costCenter",
				Label:           "Cost Center",
				Type:            FieldTypeRelation,
				Width:           WidthHalf,
				SemanticMeaning: "Analytic dimension carried onto every generated ledger line",
			}),
			NewSharedField(FieldConfig{
				ID:              "attachments",
				Label:           "Attachments",
				Type:            FieldTypeUpload,
				Width:           WidthFull,
				SemanticMeaning: "Supporting documents kept with the voucher",
			}),
			NewSharedField(FieldConfig{
				ID:              "exchangeRate",
				Label:           "Exchange Rate",
				Type:            FieldTypeNumber,
				Width:           WidthQuarter,
				ValidationRules: &ValidationRules{MinValue: &zero},
				SemanticMeaning: "Override of the company exchange rate for this voucher",
			}),
		}
	}

	types := map[VoucherCode]VoucherTypeRegistry{
		VoucherCodePayment: {
			Code: VoucherCodePayment,
			CoreFields: []FieldDefinitionV2{
				dateField(),
				amountField(),
				cashAccountField(),
				NewCoreField(FieldConfig{
					ID:              "expenseAccountId",
					Label:           "Expense Account",
					Type:            FieldTypeRelation,
					Required:        true,
					Width:           WidthHalf,
					SemanticMeaning: "Expense or payable account debited by the payment",
				}),
				descriptionField(true),
				currencyField(),
			},
			SharedFields: sharedDefaults(),
		},
		VoucherCodeReceipt: {
			Code: VoucherCodeReceipt,
			CoreFields: []FieldDefinitionV2{
				dateField(),
				amountField(),
				cashAccountField(),
				NewCoreField(FieldConfig{
					ID:              "incomeAccountId",
					Label:           "Income Account",
					Type:            FieldTypeRelation,
					Required:        true,
					Width:           WidthHalf,
					SemanticMeaning: "Income or receivable account credited by the receipt",
				}),
				descriptionField(true),
				currencyField(),
			},
			SharedFields: sharedDefaults(),
		},
		VoucherCodeJournalEntry: {
			Code: VoucherCodeJournalEntry,
			CoreFields: []FieldDefinitionV2{
				dateField(),
				descriptionField(true),
			},
			SharedFields: append([]FieldDefinitionV2{
				NewSharedField(FieldConfig{
					ID:              "journalNumber",
					Label:           "Journal Number",
					Type:            FieldTypeText,
					Width:           WidthQuarter,
					SemanticMeaning: "Display-only sequence number within the journal book",
				}),
			}, sharedDefaults()...),
		},
		VoucherCodeOpeningBalance: {
			Code: VoucherCodeOpeningBalance,
			CoreFields: []FieldDefinitionV2{
				dateField(),
				descriptionField(true),
			},
			SharedFields: sharedDefaults(),
		},
	}

	return &Registry{
		types: types,
		essentialCols: []LineColumn{
			{ID: "account", Label: "Account", Type: FieldTypeRelation, Width: WidthThird, Essential: true},
			{ID: "debit", Label: "Debit", Type: FieldTypeNumber, Width: WidthQuarter, Essential: true},
			{ID: "credit", Label: "Credit", Type: FieldTypeNumber, Width: WidthQuarter, Essential: true},
		},
		optionalCols: []LineColumn{
			{ID: "lineDescription", Label: "Line Description", Type: FieldTypeText, Width: WidthThird},
			{ID: "costCenter", Label: "Cost Center", Type: FieldTypeRelation, Width: WidthQuarter},
			{ID: "project", Label: "Project", Type: FieldTypeRelation, Width: WidthQuarter},
			{ID: "taxCode", Label: "Tax Code", Type: FieldTypeSelect, Width: WidthQuarter},
			{ID: "dueDate", Label: "Due Date", Type: FieldTypeDate, Width: WidthQuarter},
		},
	}
}
