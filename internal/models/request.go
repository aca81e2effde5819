package models

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
}

type VerifyRequest struct {
	SessionID string `json:"sessionId"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderInput is the JSON document carried in the orderData multipart field.
// Copies and TotalCost accept either numbers or numeric strings since the
// form posts whatever the browser serialised.
type OrderInput struct {
	CustomerName        string     `json:"customerName"`
	PhoneNumber         string     `json:"phoneNumber"`
	PrintType           string     `json:"printType"`
	BindingColorType    string     `json:"bindingColorType"`
	Copies              FlexNumber `json:"copies"`
	PaperSize           string     `json:"paperSize"`
	PrintSide           string     `json:"printSide"`
	SelectedPages       string     `json:"selectedPages"`
	ColorPages          string     `json:"colorPages"`
	BWPages             string     `json:"bwPages"`
	SpecialInstructions string     `json:"specialInstructions"`
	SubmittedAt         string     `json:"submittedAt,omitempty"`
	TotalCost           FlexNumber `json:"totalCost"`
}
