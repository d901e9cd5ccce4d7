package business

// Details is the singleton business identity printed on exported reports.
// The logo is stored as a data URL, same as the records it replaces.
type Details struct {
	Logo           string `json:"logo"`
	Name           string `json:"name"`
	BusinessNumber string `json:"businessNumber"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	BankName       string `json:"bankName"`
	BankBranch     string `json:"bankBranch"`
	BankAccount    string `json:"bankAccount"`
}
