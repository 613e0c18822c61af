package config

import (
	"fmt"
	"os"

	"github.com/SscSPs/books_ledger/internal/core/domain"
	"gopkg.in/yaml.v3"
)

// LoadPostingMap reads a YAML posting map. Keys left out of the file keep their built-in values;
// categories and payment_methods entries are merged over the built-in tables.
func LoadPostingMap(path string) (domain.PostingMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.PostingMap{}, fmt.Errorf("reading posting map: %w", err)
	}
	return ParsePostingMap(data)
}

// ParsePostingMap decodes YAML posting map overrides.
func ParsePostingMap(data []byte) (domain.PostingMap, error) {
	var override domain.PostingMapSpec
	if err := yaml.Unmarshal(data, &override); err != nil {
		return domain.PostingMap{}, fmt.Errorf("parsing posting map: %w", err)
	}

	spec := domain.DefaultPostingMapSpec()
	for k, v := range override.Categories {
		spec.Categories[k] = v
	}
	for k, v := range override.PaymentMethods {
		spec.PaymentMethods[k] = v
	}
	setIfPresent := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setIfPresent(&spec.DefaultExpense, override.DefaultExpense)
	setIfPresent(&spec.DefaultPayment, override.DefaultPayment)
	setIfPresent(&spec.Bank, override.Bank)
	setIfPresent(&spec.Revenue, override.Revenue)
	setIfPresent(&spec.Receivable, override.Receivable)
	setIfPresent(&spec.Payable, override.Payable)
	setIfPresent(&spec.GSTReceivable, override.GSTReceivable)
	setIfPresent(&spec.GSTPayable, override.GSTPayable)

	return domain.NewPostingMap(spec), nil
}
