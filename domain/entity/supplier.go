package entity

type Supplier struct {
	Base
	Name             string  `json:"name"`
	ContactPerson    string  `json:"contact_person"`
	Address          string  `json:"address"`
	City             string  `json:"city"`
	PostalCode       string  `json:"postal_code"`
	Country          string  `json:"country"`
	Phone            string  `json:"phone"`
	Email            string  `json:"email"`
	TaxNumber        string  `json:"tax_number"`
	BankAccount      string  `json:"bank_account"`
	BankName         string  `json:"bank_name"`
	Notes            string  `json:"notes"`
	PaymentTermsDays int     `json:"payment_terms_days"`
}
