package model

// PaymentMethodType is the kind of payment accepted by a company.
type PaymentMethodType string

const (
	PaymentBankTransfer  PaymentMethodType = "BANK_TRANSFER"
	PaymentCard          PaymentMethodType = "CARD"
	PaymentDigitalWallet PaymentMethodType = "DIGITAL_WALLET"
	PaymentCash          PaymentMethodType = "CASH"
)

// Valid reports whether t is a known payment method type.
func (t PaymentMethodType) Valid() bool {
	switch t {
	case PaymentBankTransfer, PaymentCard, PaymentDigitalWallet, PaymentCash:
		return true
	}
	return false
}

// PaymentMethod is a way attendees can pay a company.
type PaymentMethod struct {
	Base

	CompanyID     string            `json:"companyId"`
	Name          string            `json:"name"`
	Type          PaymentMethodType `json:"type"`
	Description   string            `json:"description,omitempty"`
	AccountHolder string            `json:"accountHolder,omitempty"`
	AccountNumber string            `json:"accountNumber,omitempty"`
	Currency      string            `json:"currency,omitempty"`
	Instructions  string            `json:"instructions,omitempty"`
}

// PaymentMethod attribute names.
const (
	PaymentMethodCompanyID     = "company_id"
	PaymentMethodName          = "name"
	PaymentMethodTypeField     = "type"
	PaymentMethodDescription   = "description"
	PaymentMethodAccountHolder = "account_holder"
	PaymentMethodAccountNumber = "account_number"
	PaymentMethodCurrency      = "currency"
	PaymentMethodInstructions  = "instructions"
)
