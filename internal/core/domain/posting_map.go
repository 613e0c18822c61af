package domain

// PostingMap is the static account routing used by the posting rules.
// Values are account codes. Build one with NewPostingMap or DefaultPostingMap; it is read-only afterwards.
type PostingMap struct {
	categories     map[string]string
	paymentMethods map[string]string
	defaultExpense string
	defaultPayment string
	bank           string
	revenue        string
	receivable     string
	payable        string
	gstReceivable  string
	gstPayable     string
}

// PostingMapSpec is the plain-data form of a PostingMap, e.g. as read from YAML.
type PostingMapSpec struct {
	Categories     map[string]string `yaml:"categories"`
	PaymentMethods map[string]string `yaml:"payment_methods"`
	DefaultExpense string            `yaml:"default_expense"`
	DefaultPayment string            `yaml:"default_payment"`
	Bank           string            `yaml:"bank"`
	Revenue        string            `yaml:"revenue"`
	Receivable     string            `yaml:"receivable"`
	Payable        string            `yaml:"payable"`
	GSTReceivable  string            `yaml:"gst_receivable"`
	GSTPayable     string            `yaml:"gst_payable"`
}

// NewPostingMap copies spec into an immutable PostingMap.
func NewPostingMap(spec PostingMapSpec) PostingMap {
	pm := PostingMap{
		categories:     make(map[string]string, len(spec.Categories)),
		paymentMethods: make(map[string]string, len(spec.PaymentMethods)),
		defaultExpense: spec.DefaultExpense,
		defaultPayment: spec.DefaultPayment,
		bank:           spec.Bank,
		revenue:        spec.Revenue,
		receivable:     spec.Receivable,
		payable:        spec.Payable,
		gstReceivable:  spec.GSTReceivable,
		gstPayable:     spec.GSTPayable,
	}
	for k, v := range spec.Categories {
		pm.categories[k] = v
	}
	for k, v := range spec.PaymentMethods {
		pm.paymentMethods[k] = v
	}
	return pm
}

// DefaultPostingMapSpec returns the built-in routing for the default chart of accounts.
func DefaultPostingMapSpec() PostingMapSpec {
	return PostingMapSpec{
		Categories: map[string]string{
			"advertising":             "5000",
			"bad_debts":               "5050",
			"bank_fees":               "5100",
			"insurance":               "5150",
			"meals_and_entertainment": "5200",
			"office_supplies":         "5250",
			"professional_fees":       "5300",
			"rent":                    "5350",
			"repairs_and_maintenance": "5400",
			"software_subscriptions":  "5450",
			"telephone":               "5500",
			"travel":                  "5550",
			"utilities":               "5600",
			"vehicle_expenses":        "5650",
			"contractor_payments":     "5700",
			"employee_wages":          "5750",
			"shipping":                "5800",
			"taxes_and_licenses":      "5850",
			"depreciation":            "5900",
			"other":                   "5950",
			"business_use_of_home":    "5960",
			"inventory":               "6100",
			"cogs":                    "6000",
		},
		PaymentMethods: map[string]string{
			"cash":          "1000",
			"credit_card":   "2300",
			"debit":         "1050",
			"bank_transfer": "1050",
			"cheque":        "1050",
			"other":         "1050",
		},
		DefaultExpense: "5950",
		DefaultPayment: "1050",
		Bank:           "1050",
		Revenue:        "4000",
		Receivable:     "1100",
		Payable:        "2000",
		GSTReceivable:  "1300",
		GSTPayable:     "2100",
	}
}

// DefaultPostingMap is NewPostingMap(DefaultPostingMapSpec()).
func DefaultPostingMap() PostingMap {
	return NewPostingMap(DefaultPostingMapSpec())
}

// ExpenseAccountFor returns the expense account code for a subcategory, falling back to the default.
func (m PostingMap) ExpenseAccountFor(subcategory string) string {
	if code, ok := m.categories[subcategory]; ok {
		return code
	}
	return m.defaultExpense
}

// PaymentAccountFor returns the funding account code for a payment method, falling back to the default.
func (m PostingMap) PaymentAccountFor(method string) string {
	if code, ok := m.paymentMethods[method]; ok {
		return code
	}
	return m.defaultPayment
}

func (m PostingMap) DefaultExpense() string { return m.defaultExpense }
func (m PostingMap) Bank() string           { return m.bank }
func (m PostingMap) Revenue() string        { return m.revenue }
func (m PostingMap) Receivable() string     { return m.receivable }
func (m PostingMap) Payable() string        { return m.payable }
func (m PostingMap) GSTReceivable() string  { return m.gstReceivable }
func (m PostingMap) GSTPayable() string     { return m.gstPayable }

// Spec returns a copy of the routing as plain data.
func (m PostingMap) Spec() PostingMapSpec {
	spec := PostingMapSpec{
		Categories:     make(map[string]string, len(m.categories)),
		PaymentMethods: make(map[string]string, len(m.paymentMethods)),
		DefaultExpense: m.defaultExpense,
		DefaultPayment: m.defaultPayment,
		Bank:           m.bank,
		Revenue:        m.revenue,
		Receivable:     m.receivable,
		Payable:        m.payable,
		GSTReceivable:  m.gstReceivable,
		GSTPayable:     m.gstPayable,
	}
	for k, v := range m.categories {
		spec.Categories[k] = v
	}
	for k, v := range m.paymentMethods {
		spec.PaymentMethods[k] = v
	}
	return spec
}
