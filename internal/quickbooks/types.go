package quickbooks

// Ref is a QuickBooks entity reference (id plus display name).
type Ref struct {
	Value string `json:"value"`
	Name  string `json:"name,omitempty"`
}

// EmailAddress wraps an email address field.
type EmailAddress struct {
	Address string `json:"Address"`
}

// Phone wraps a free-form phone number field.
type Phone struct {
	FreeFormNumber string `json:"FreeFormNumber"`
}

// Customer is a QuickBooks customer record.
type Customer struct {
	ID               string        `json:"Id"`
	DisplayName      string        `json:"DisplayName"`
	CompanyName      string        `json:"CompanyName,omitempty"`
	PrimaryEmailAddr *EmailAddress `json:"PrimaryEmailAddr,omitempty"`
	PrimaryPhone     *Phone        `json:"PrimaryPhone,omitempty"`
	Balance          float64       `json:"Balance"`
	Active           bool          `json:"Active"`
}

// Line is an invoice or expense line item.
type Line struct {
	Description string  `json:"Description,omitempty"`
	Amount      float64 `json:"Amount"`
	DetailType  string  `json:"DetailType"`
}

// Invoice is a QuickBooks invoice. Dates are ISO YYYY-MM-DD strings as
// delivered by the API.
type Invoice struct {
	ID          string `json:"Id"`
	DocNumber   string `json:"DocNumber,omitempty"`
	CustomerRef Ref    `json:"CustomerRef"`
	TxnDate     string `json:"TxnDate"`
	DueDate     string `json:"DueDate"`
	TotalAmt    float64 `json:"TotalAmt"`
	Balance     float64 `json:"Balance"`
	EmailStatus string `json:"EmailStatus,omitempty"`
	Line        []Line `json:"Line,omitempty"`
}

// Account is an entry in the chart of accounts.
type Account struct {
	ID             string  `json:"Id"`
	Name           string  `json:"Name"`
	AccountType    string  `json:"AccountType"`
	AccountSubType string  `json:"AccountSubType,omitempty"`
	CurrentBalance float64 `json:"CurrentBalance"`
	Active         bool    `json:"Active"`
	Classification string  `json:"Classification"`
}

// AccountExpenseDetail is the account-based expense detail of a purchase
// line.
type AccountExpenseDetail struct {
	AccountRef Ref `json:"AccountRef"`
}

// PurchaseLine is a purchase line item.
type PurchaseLine struct {
	Description                  string                `json:"Description,omitempty"`
	Amount                       float64               `json:"Amount"`
	DetailType                   string                `json:"DetailType"`
	AccountBasedExpenseLineDetail *AccountExpenseDetail `json:"AccountBasedExpenseLineDetail,omitempty"`
}

// Purchase is a QuickBooks purchase (expense) transaction.
type Purchase struct {
	ID          string         `json:"Id"`
	DocNumber   string         `json:"DocNumber,omitempty"`
	TxnDate     string         `json:"TxnDate"`
	TotalAmt    float64        `json:"TotalAmt"`
	PaymentType string         `json:"PaymentType,omitempty"`
	EntityRef   *Ref           `json:"EntityRef,omitempty"`
	AccountRef  Ref            `json:"AccountRef"`
	Line        []PurchaseLine `json:"Line,omitempty"`
}

// Payment is a customer payment transaction.
type Payment struct {
	ID                  string  `json:"Id"`
	TxnDate             string  `json:"TxnDate"`
	TotalAmt            float64 `json:"TotalAmt"`
	CustomerRef         Ref     `json:"CustomerRef"`
	DepositToAccountRef *Ref    `json:"DepositToAccountRef,omitempty"`
}

// Bill is a vendor bill transaction.
type Bill struct {
	ID        string  `json:"Id"`
	DocNumber string  `json:"DocNumber,omitempty"`
	TxnDate   string  `json:"TxnDate"`
	DueDate   string  `json:"DueDate"`
	TotalAmt  float64 `json:"TotalAmt"`
	Balance   float64 `json:"Balance"`
	VendorRef Ref     `json:"VendorRef"`
}

// QueryResult is the entity payload of a query response. Only the entity
// matching the FROM clause is populated.
type QueryResult struct {
	Customer []Customer `json:"Customer,omitempty"`
	Invoice  []Invoice  `json:"Invoice,omitempty"`
	Account  []Account  `json:"Account,omitempty"`
	Purchase []Purchase `json:"Purchase,omitempty"`
	Payment  []Payment  `json:"Payment,omitempty"`
	Bill     []Bill     `json:"Bill,omitempty"`

	StartPosition int `json:"startPosition,omitempty"`
	MaxResults    int `json:"maxResults,omitempty"`
	TotalCount    int `json:"totalCount,omitempty"`
}

// QueryResponse is the envelope returned by the /query endpoint.
type QueryResponse struct {
	QueryResponse QueryResult `json:"QueryResponse"`
	Time          string      `json:"time,omitempty"`
}
