package models

import (
	"time"
)

const StatusPending = "pending"

// Order is one customer print job. Files is filled by the store when the
// order is read back; it is never written through this struct.
type Order struct {
	ID                  string      `gorm:"primaryKey" json:"id"`
	CustomerName        string      `json:"customerName"`
	PhoneNumber         string      `json:"phoneNumber"`
	PrintType           string      `json:"printType"`
	BindingColorType    string      `json:"bindingColorType"`
	Copies              int         `json:"copies"`
	PaperSize           string      `json:"paperSize"`
	PrintSide           string      `json:"printSide"`
	SelectedPages       string      `json:"selectedPages"`
	ColorPages          string      `json:"colorPages"`
	BWPages             string      `gorm:"column:bw_pages" json:"bwPages"`
	SpecialInstructions string      `json:"specialInstructions"`
	SubmittedAt         time.Time   `json:"submittedAt"`
	Status              string      `json:"status"`
	TotalCost           float64     `json:"totalCost"`
	CreatedAt           time.Time   `json:"createdAt"`
	Files               []OrderFile `gorm:"-" json:"files"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderFile struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	OrderID      string    `json:"orderId"`
	OriginalName string    `json:"originalName"`
	FileName     string    `json:"fileName"`
	FilePath     string    `json:"filePath"`
	FileSize     int64     `json:"fileSize"`
	MimeType     string    `json:"mimeType"`
	PageCount    int       `json:"pageCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (OrderFile) TableName() string {
	return "order_files"
}

// AdminSession is a server-side record of an issued admin token. A session
// is valid while the current time is strictly before ExpiresAt.
type AdminSession struct {
	Token     string `gorm:"primaryKey"`
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (AdminSession) TableName() string {
	return "admin_sessions"
}

// ValidAt reports whether the session is still usable at t.
func (s AdminSession) ValidAt(t time.Time) bool {
	return t.Before(s.ExpiresAt)
}
