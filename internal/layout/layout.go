// Package layout turns an invoice into the ordered drawing operations of its
// printed page.
//
// Coordinates are PDF points on a US Letter page with the origin at the
// bottom-left corner. The cursor starts near the top and only moves down.
// Positions are fixed: nothing is measured, wrapped or paginated, so long
// values may overlap the next column and long product lists run off the page.
package layout

import (
	"fmt"

	"github.com/diewo77/hoadon/internal/fonts"
	"github.com/diewo77/hoadon/internal/models"
	"github.com/diewo77/hoadon/internal/numfmt"
)

// Page size in points (US Letter).
const (
	PageWidth  = 612.0
	PageHeight = 792.0
)

const (
	marginLeft = 50.0
	ruleInset  = 40.0

	headerRightX = 300.0

	colName      = 50.0
	colQuantity  = 250.0
	colUnitPrice = 350.0
	colTotal     = 450.0

	titleSize   = 24.0
	sectionSize = 14.0
	bodySize    = 12.0

	lineStep    = 20.0
	sectionGap  = 40.0
	ruleGap     = 10.0
	afterRule   = 15.0
	summaryGap  = 30.0
	titleOffset = 50.0
	bodyOffset  = 100.0
)

// Printed labels.
const (
	labelTitle        = "HÓA ĐƠN"
	labelNumber       = "Số hóa đơn: "
	labelDate         = "Ngày lập: "
	labelDueDate      = "Ngày đáo hạn: "
	labelCustomer     = "Thông tin khách hàng:"
	labelCustomerName = "Tên khách hàng: "
	labelAddress      = "Địa chỉ: "
	labelPhone        = "Điện thoại: "
	labelEmail        = "Email: "
	labelProduct      = "Sản phẩm"
	labelQuantity     = "Số lượng"
	labelUnitPrice    = "Đơn giá"
	labelLineTotal    = "Thành tiền"
	labelSubtotal     = "Tổng tiền hàng:"
	labelGrandTotal   = "Tổng thanh toán:"
)

// Kind identifies a drawing primitive.
type Kind int

const (
	SetFont Kind = iota + 1
	Text
	Line
)

func (k Kind) String() string {
	switch k {
	case SetFont:
		return "SetFont"
	case Text:
		return "Text"
	case Line:
		return "Line"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// DrawOp is one drawing instruction. Which fields are meaningful depends on
// Kind: Role and Size for SetFont, X, Y and Text for Text, X, Y, X2 and Y2
// for Line.
type DrawOp struct {
	Kind Kind
	Role fonts.Role
	Size float64
	X, Y float64
	X2   float64
	Y2   float64
	Text string
}

func (op DrawOp) String() string {
	switch op.Kind {
	case SetFont:
		return fmt.Sprintf("SetFont(%s, %g)", op.Role, op.Size)
	case Text:
		return fmt.Sprintf("Text(%g, %g, %q)", op.X, op.Y, op.Text)
	case Line:
		return fmt.Sprintf("Line(%g, %g, %g, %g)", op.X, op.Y, op.X2, op.Y2)
	}
	return op.Kind.String()
}

// SetFontOp selects the face bound to role at size points.
func SetFontOp(role fonts.Role, size float64) DrawOp {
	return DrawOp{Kind: SetFont, Role: role, Size: size}
}

// TextOp draws s with its baseline starting at (x, y).
func TextOp(x, y float64, s string) DrawOp {
	return DrawOp{Kind: Text, X: x, Y: y, Text: s}
}

// LineOp draws a straight segment.
func LineOp(x1, y1, x2, y2 float64) DrawOp {
	return DrawOp{Kind: Line, X: x1, Y: y1, X2: x2, Y2: y2}
}

// Layout returns the drawing operations for inv. It is deterministic and
// does not modify inv.
func Layout(inv *models.Invoice) []DrawOp {
	ops := make([]DrawOp, 0, 40+4*len(inv.Products))
	emit := func(op ...DrawOp) { ops = append(ops, op...) }

	emit(
		SetFontOp(fonts.Bold, titleSize),
		TextOp(marginLeft, PageHeight-titleOffset, labelTitle),
		SetFontOp(fonts.Regular, bodySize),
	)

	y := PageHeight - bodyOffset
	emit(
		TextOp(marginLeft, y, labelNumber+inv.InvoiceNumber),
		TextOp(headerRightX, y, labelDate+inv.InvoiceDate),
	)
	y -= lineStep
	emit(TextOp(marginLeft, y, labelDueDate+inv.DueDate))

	y -= sectionGap
	emit(
		SetFontOp(fonts.Bold, sectionSize),
		TextOp(marginLeft, y, labelCustomer),
		SetFontOp(fonts.Regular, bodySize),
	)
	for _, row := range []string{
		labelCustomerName + inv.CustomerName,
		labelAddress + inv.CustomerAddress,
		labelPhone + inv.CustomerPhone,
		labelEmail + inv.CustomerEmail,
	} {
		y -= lineStep
		emit(TextOp(marginLeft, y, row))
	}

	y -= sectionGap
	emit(
		SetFontOp(fonts.Bold, bodySize),
		TextOp(colName, y, labelProduct),
		TextOp(colQuantity, y, labelQuantity),
		TextOp(colUnitPrice, y, labelUnitPrice),
		TextOp(colTotal, y, labelLineTotal),
	)
	y -= ruleGap
	emit(LineOp(ruleInset, y, PageWidth-ruleInset, y))
	y -= afterRule

	emit(SetFontOp(fonts.Regular, bodySize))
	for _, p := range inv.Products {
		emit(
			TextOp(colName, y, p.ProductName),
			TextOp(colQuantity, y, p.Quantity.Format(0)),
			TextOp(colUnitPrice, y, p.UnitPrice.Format(2)),
			TextOp(colTotal, y, p.TotalProduct.Format(0)),
		)
		y -= lineStep
	}

	y -= summaryGap
	emit(LineOp(ruleInset, y, PageWidth-ruleInset, y))
	y -= lineStep
	emit(
		SetFontOp(fonts.Bold, bodySize),
		TextOp(colUnitPrice, y, labelSubtotal),
		TextOp(colTotal, y, inv.Subtotal.Format(0)),
	)
	y -= lineStep
	emit(
		TextOp(colUnitPrice, y, TaxLabel(inv)),
		TextOp(colTotal, y, numfmt.FormatFloat(inv.TaxAmount(), 0)),
	)
	y -= lineStep
	emit(
		TextOp(colUnitPrice, y, labelGrandTotal),
		TextOp(colTotal, y, inv.GrandTotal.Format(0)),
	)
	return ops
}

// TaxLabel echoes the tax rate exactly as supplied, e.g. "Thuế (8%):".
func TaxLabel(inv *models.Invoice) string {
	return "Thuế (" + inv.TaxRate.Text() + "%):"
}
