package banking

type Address struct {
	StreetNumber string `json:"street_number"`
	StreetName   string `json:"street_name"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
}

type Geocode struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Customer struct {
	ID        string   `json:"_id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Address   *Address `json:"address,omitempty"`
}

type Account struct {
	ID         string  `json:"_id"`
	Type       string  `json:"type"`
	Nickname   string  `json:"nickname"`
	Rewards    float64 `json:"rewards"`
	Balance    float64 `json:"balance"`
	CustomerID string  `json:"customer_id,omitempty"`
}

type Purchase struct {
	ID           string  `json:"_id"`
	MerchantID   string  `json:"merchant_id"`
	Medium       string  `json:"medium,omitempty"`
	PurchaseDate string  `json:"purchase_date,omitempty"`
	Amount       float64 `json:"amount"`
	Description  string  `json:"description,omitempty"`
	Status       string  `json:"status,omitempty"`
}

type Merchant struct {
	ID      string   `json:"_id"`
	Name    string   `json:"name"`
	Address *Address `json:"address,omitempty"`
	Geocode *Geocode `json:"geocode,omitempty"`
}

type NewCustomer struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Address   Address `json:"address"`
}

type NewAccount struct {
	Type     string  `json:"type"`
	Nickname string  `json:"nickname"`
	Rewards  float64 `json:"rewards"`
	Balance  float64 `json:"balance"`
}

type NewMerchant struct {
	Name    string  `json:"name"`
	Address Address `json:"address"`
	Geocode Geocode `json:"geocode"`
}

type NewPurchase struct {
	MerchantID   string  `json:"merchant_id"`
	Medium       string  `json:"medium"`
	PurchaseDate string  `json:"purchase_date"`
	Amount       float64 `json:"amount"`
	Description  string  `json:"description"`
}
