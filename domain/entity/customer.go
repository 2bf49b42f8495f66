package entity

type Customer struct {
	Base
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	PostalCode    string  `json:"postal_code"`
	Country       string  `json:"country"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email"`
	TaxNumber     string  `json:"tax_number"`
	Notes         string  `json:"notes"`
	CreditLimit   float64 `json:"credit_limit"`
	CurrentCredit float64 `json:"current_credit"`
}
