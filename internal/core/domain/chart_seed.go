package domain

// AccountSeed describes a starter account.
type AccountSeed struct {
	Code          string
	Name          string
	AccountType   AccountType
	SubType       string
	TaxCode       string
	NormalBalance NormalBalance
}

// DefaultChartOfAccounts returns the starter chart for a Canadian sole proprietor.
// Expense tax codes are T2125 line numbers.
func DefaultChartOfAccounts() []AccountSeed {
	return []AccountSeed{
		{"1000", "Cash", Asset, SubTypeCurrentAsset, "", DebitBalance},
		{"1050", "Business Bank Account", Asset, SubTypeCurrentAsset, "", DebitBalance},
		{"1100", "Accounts Receivable", Asset, SubTypeCurrentAsset, "", DebitBalance},
		{"1200", "Prepaid Expenses", Asset, SubTypeCurrentAsset, "", DebitBalance},
		{"1300", "GST/HST Receivable", Asset, SubTypeCurrentAsset, "", DebitBalance},
		{"1500", "Computer Equipment", Asset, SubTypeFixedAsset, "", DebitBalance},
		{"1510", "Office Equipment", Asset, SubTypeFixedAsset, "", DebitBalance},
		{"1520", "Accum. Depreciation - Equipment", Asset, SubTypeFixedAsset, "", CreditBalance},
		{"1600", "Vehicles", Asset, SubTypeFixedAsset, "", DebitBalance},
		{"1610", "Accum. Depreciation - Vehicles", Asset, SubTypeFixedAsset, "", CreditBalance},

		{"2000", "Accounts Payable", Liability, SubTypeCurrentLiability, "", CreditBalance},
		{"2100", "GST/HST Payable", Liability, SubTypeCurrentLiability, "", CreditBalance},
		{"2200", "Income Tax Payable", Liability, SubTypeCurrentLiability, "", CreditBalance},
		{"2300", "Credit Card Payable", Liability, SubTypeCurrentLiability, "", CreditBalance},

		{"3000", "Owner's Equity", Equity, SubTypeEquity, "", CreditBalance},
		{"3100", "Owner's Draws", Equity, SubTypeEquity, "", DebitBalance},
		{"3200", "Retained Earnings", Equity, SubTypeEquity, "", CreditBalance},

		{"4000", "Service Revenue", Revenue, SubTypeRevenue, "", CreditBalance},
		{"4100", "Product Sales", Revenue, SubTypeRevenue, "", CreditBalance},
		{"4200", "Other Income", Revenue, SubTypeRevenue, "", CreditBalance},

		{"5000", "Advertising & Marketing", Expense, SubTypeExpense, "8521", DebitBalance},
		{"5050", "Bad Debts", Expense, SubTypeExpense, "8590", DebitBalance},
		{"5100", "Bank Fees & Interest", Expense, SubTypeExpense, "8710", DebitBalance},
		{"5150", "Insurance", Expense, SubTypeExpense, "8690", DebitBalance},
		{"5200", "Meals & Entertainment", Expense, SubTypeExpense, "8523", DebitBalance},
		{"5250", "Office Supplies", Expense, SubTypeExpense, "8810", DebitBalance},
		{"5300", "Professional Fees", Expense, SubTypeExpense, "8860", DebitBalance},
		{"5350", "Rent", Expense, SubTypeExpense, "8910", DebitBalance},
		{"5400", "Repairs & Maintenance", Expense, SubTypeExpense, "8960", DebitBalance},
		{"5450", "Software & Subscriptions", Expense, SubTypeExpense, "8810", DebitBalance},
		{"5500", "Telephone & Internet", Expense, SubTypeExpense, "8220", DebitBalance},
		{"5550", "Travel", Expense, SubTypeExpense, "9200", DebitBalance},
		{"5600", "Utilities", Expense, SubTypeExpense, "9220", DebitBalance},
		{"5650", "Vehicle Expenses", Expense, SubTypeExpense, "9281", DebitBalance},
		{"5700", "Contractor Payments", Expense, SubTypeExpense, "8810", DebitBalance},
		{"5750", "Employee Wages", Expense, SubTypeExpense, "9060", DebitBalance},
		{"5800", "Shipping", Expense, SubTypeExpense, "8810", DebitBalance},
		{"5850", "Taxes & Licenses", Expense, SubTypeExpense, "8760", DebitBalance},
		{"5900", "Depreciation", Expense, SubTypeExpense, "9936", DebitBalance},
		{"5950", "Other Expenses", Expense, SubTypeExpense, "9270", DebitBalance},
		{"5960", "Business-Use-of-Home", Expense, SubTypeExpense, "9945", DebitBalance},

		{"6000", "Cost of Goods Sold", Expense, SubTypeCOGS, "", DebitBalance},
		{"6100", "Inventory Purchases", Expense, SubTypeCOGS, "", DebitBalance},
	}
}
