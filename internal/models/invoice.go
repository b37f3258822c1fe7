package models

import (
	"time"
)

// fileStemLayout yields a sortable numeric timestamp, e.g. 20250131142501.
const fileStemLayout = "20060102150405"

// Invoice is one billing document as submitted by a client. Display fields
// are passed through verbatim; numeric fields tolerate strings and nulls.
type Invoice struct {
	InvoiceNumber string `json:"invoiceNumber,omitempty"`
	InvoiceDate   string `json:"invoiceDate,omitempty"`
	DueDate       string `json:"dueDate,omitempty"`

	CustomerName    string `json:"customerName,omitempty"`
	CustomerAddress string `json:"customerAddress,omitempty"`
	CustomerPhone   string `json:"customerPhone,omitempty"`
	CustomerEmail   string `json:"customerEmail,omitempty"`

	// Print order, top to bottom.
	Products []Product `json:"products"`

	Subtotal   Numeric `json:"subtotal,omitzero"`
	TaxRate    Numeric `json:"taxRate,omitzero"`
	GrandTotal Numeric `json:"grandTotal,omitzero"`
}

// Product is a single invoice line. TotalProduct is printed as supplied and
// never checked against Quantity × UnitPrice.
type Product struct {
	ProductName  string  `json:"productName,omitempty"`
	Quantity     Numeric `json:"quantity,omitzero"`
	UnitPrice    Numeric `json:"unitPrice,omitzero"`
	TotalProduct Numeric `json:"totalProduct,omitzero"`
}

// TaxAmount is grandTotal − subtotal. The tax rate is only a label.
func (i *Invoice) TaxAmount() float64 {
	return i.GrandTotal.Float() - i.Subtotal.Float()
}

// FileStem names the generated document: the invoice number, or a timestamp
// taken from now when the invoice has none. The invoice itself is not changed.
func (i *Invoice) FileStem(now time.Time) string {
	if i.InvoiceNumber != "" {
		return i.InvoiceNumber
	}
	return now.Format(fileStemLayout)
}

// Empty reports whether no field at all was supplied.
func (i *Invoice) Empty() bool {
	return i.InvoiceNumber == "" && i.InvoiceDate == "" && i.DueDate == "" &&
		i.CustomerName == "" && i.CustomerAddress == "" &&
		i.CustomerPhone == "" && i.CustomerEmail == "" &&
		i.Products == nil &&
		i.Subtotal.IsZero() && i.TaxRate.IsZero() && i.GrandTotal.IsZero()
}
