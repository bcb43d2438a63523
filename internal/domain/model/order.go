package model

// CompanyInfo is the supplier snapshot shown on the order form.
type CompanyInfo struct {
	Name       string `json:"name" validate:"required,max=120"`
	Director   string `json:"director" validate:"max=120"`
	Address    string `json:"address" validate:"max=200"`
	PostalCode string `json:"postalCode" validate:"max=120"`
	Phone      string `json:"phone" validate:"max=40"`
	Email      string `json:"email" validate:"omitempty,email,max=254"`
	VATNumber  string `json:"vatNumber" validate:"max=40"`
}

// ClientInfo identifies the customer placing the order.
type ClientInfo struct {
	Name       string `json:"name" validate:"required,max=120"`
	Company    string `json:"company" validate:"max=120"`
	Address    string `json:"address" validate:"required,max=200"`
	PostalCode string `json:"postalCode" validate:"required,max=120"`
	Phone      string `json:"phone" validate:"required,max=40"`
	Email      string `json:"email" validate:"required,email,max=254"`
}

// OrderItem is one line of the product quantity table.
type OrderItem struct {
	ProductID   string  `json:"productId" validate:"max=64"`
	ProductName string  `json:"productName" validate:"required,max=120"`
	Size        string  `json:"size" validate:"max=40"`
	Quantity    int     `json:"quantity" validate:"gte=0,lte=10000"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0,lte=100000"`
	Total       float64 `json:"total" validate:"gte=0,lte=1000000000"`
}

// OrderSubmission is the inbound order payload. It lives for a single request.
type OrderSubmission struct {
	Date        string      `json:"date" validate:"required,max=40"`
	Company     CompanyInfo `json:"company"`
	Client      ClientInfo  `json:"client"`
	Items       []OrderItem `json:"items" validate:"required,min=1,max=200,dive"`
	Subtotal    float64     `json:"subtotal" validate:"gte=0,lte=1000000000"`
	VAT         float64     `json:"vat" validate:"gte=0,lte=1000000000"`
	Total       float64     `json:"total" validate:"gte=0,lte=1000000000"`
	AccessToken string      `json:"accessToken"`
}

// OrderLine is a server computed order line.
type OrderLine struct {
	ProductName string
	Size        string
	Quantity    int
	UnitPrice   float64
	Total       float64
}

// OrderSummary is what gets rendered into notification emails.
type OrderSummary struct {
	Date         string
	Company      CompanyInfo
	Client       ClientInfo
	Lines        []OrderLine
	Subtotal     float64
	VATRate      float64
	VAT          float64
	Total        float64
	FreeDelivery bool
}
