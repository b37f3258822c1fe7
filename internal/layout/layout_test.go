package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/diewo77/hoadon/internal/fonts"
	"github.com/diewo77/hoadon/internal/models"
)

func sampleInvoice() *models.Invoice {
	return &models.Invoice{
		InvoiceNumber:   "HD-0001",
		InvoiceDate:     "01/02/2025",
		DueDate:         "15/02/2025",
		CustomerName:    "Trần Thị B",
		CustomerAddress: "12 Lê Lợi, Huế",
		CustomerPhone:   "0905 123 456",
		CustomerEmail:   "b@example.vn",
		Products: []models.Product{
			{
				ProductName:  "Bánh mì",
				Quantity:     models.NumericString("1200"),
				UnitPrice:    models.Number(15000),
				TotalProduct: models.NumericString("18,000,000"),
			},
		},
		Subtotal:   models.NumericString("18000000.00"),
		TaxRate:    models.NumericString("8"),
		GrandTotal: models.Number(19440000),
	}
}

func TestLayout_FullSequence(t *testing.T) {
	got := Layout(sampleInvoice())
	want := []DrawOp{
		SetFontOp(fonts.Bold, 24),
		TextOp(50, 742, "HÓA ĐƠN"),
		SetFontOp(fonts.Regular, 12),
		TextOp(50, 692, "Số hóa đơn: HD-0001"),
		TextOp(300, 692, "Ngày lập: 01/02/2025"),
		TextOp(50, 672, "Ngày đáo hạn: 15/02/2025"),
		SetFontOp(fonts.Bold, 14),
		TextOp(50, 632, "Thông tin khách hàng:"),
		SetFontOp(fonts.Regular, 12),
		TextOp(50, 612, "Tên khách hàng: Trần Thị B"),
		TextOp(50, 592, "Địa chỉ: 12 Lê Lợi, Huế"),
		TextOp(50, 572, "Điện thoại: 0905 123 456"),
		TextOp(50, 552, "Email: b@example.vn"),
		SetFontOp(fonts.Bold, 12),
		TextOp(50, 512, "Sản phẩm"),
		TextOp(250, 512, "Số lượng"),
		TextOp(350, 512, "Đơn giá"),
		TextOp(450, 512, "Thành tiền"),
		LineOp(40, 502, 572, 502),
		SetFontOp(fonts.Regular, 12),
		TextOp(50, 487, "Bánh mì"),
		TextOp(250, 487, "1,200"),
		TextOp(350, 487, "15,000.00"),
		TextOp(450, 487, "18,000,000"),
		LineOp(40, 437, 572, 437),
		SetFontOp(fonts.Bold, 12),
		TextOp(350, 417, "Tổng tiền hàng:"),
		TextOp(450, 417, "18,000,000"),
		TextOp(350, 397, "Thuế (8%):"),
		TextOp(450, 397, "1,440,000"),
		TextOp(350, 377, "Tổng thanh toán:"),
		TextOp(450, 377, "19,440,000"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("layout mismatch (-want +got):\n%s", diff)
	}
}

func TestLayout_EmptyProducts(t *testing.T) {
	inv := sampleInvoice()
	inv.Products = nil
	ops := Layout(inv)

	if len(ops) != 28 {
		t.Fatalf("expected 28 ops without rows, got %d", len(ops))
	}
	texts := map[string]bool{}
	lines := 0
	for _, op := range ops {
		switch op.Kind {
		case Text:
			texts[op.Text] = true
		case Line:
			lines++
		}
	}
	for _, want := range []string{"HÓA ĐƠN", "Số hóa đơn: HD-0001", "Thông tin khách hàng:", "Sản phẩm", "Thành tiền", "Tổng tiền hàng:", "Thuế (8%):", "Tổng thanh toán:"} {
		if !texts[want] {
			t.Errorf("missing text %q", want)
		}
	}
	if lines != 2 {
		t.Errorf("expected 2 rules, got %d", lines)
	}
	last := ops[len(ops)-1]
	if last.Y != 397 {
		t.Errorf("grand total at y=%v, want 397", last.Y)
	}
}

func TestLayout_TaxAmountIgnoresRate(t *testing.T) {
	for _, rate := range []models.Numeric{models.Number(10), models.Number(0), models.NumericString("abc"), {}} {
		inv := &models.Invoice{
			Subtotal:   models.Number(100),
			GrandTotal: models.Number(110),
			TaxRate:    rate,
		}
		ops := Layout(inv)
		label := TaxLabel(inv)
		var amount string
		for i, op := range ops {
			if op.Kind == Text && op.Text == label {
				amount = ops[i+1].Text
			}
		}
		if amount != "10" {
			t.Errorf("rate %q: tax amount = %q, want 10", rate.Text(), amount)
		}
	}
}

func TestLayout_Defaults(t *testing.T) {
	ops := Layout(&models.Invoice{})
	want := map[string]bool{
		"Số hóa đơn: ":     true,
		"Ngày lập: ":       true,
		"Tên khách hàng: ": true,
		"Thuế (0%):":       true,
	}
	for _, op := range ops {
		delete(want, op.Text)
	}
	if len(want) != 0 {
		t.Errorf("missing default rows: %v", want)
	}
	zeros := 0
	for _, op := range ops {
		if op.Kind == Text && op.X == colTotal && op.Text == "0" {
			zeros++
		}
	}
	if zeros != 3 {
		t.Errorf("expected three zero amounts, got %d", zeros)
	}
}

func TestLayout_Deterministic(t *testing.T) {
	inv := sampleInvoice()
	first := Layout(inv)
	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(first, Layout(inv)); diff != "" {
			t.Fatalf("run %d differs:\n%s", i, diff)
		}
	}
}

func TestLayout_CursorOnlyMovesDown(t *testing.T) {
	inv := sampleInvoice()
	for i := 0; i < 50; i++ {
		inv.Products = append(inv.Products, inv.Products[0])
	}
	prev := PageHeight
	for _, op := range Layout(inv) {
		if op.Kind == SetFont {
			continue
		}
		if op.Y > prev {
			t.Fatalf("%s moves the cursor up from %v", op, prev)
		}
		prev = op.Y
	}
	if prev >= 0 {
		t.Fatalf("expected rows to run past the page bottom, last y=%v", prev)
	}
}

func TestDrawOpString(t *testing.T) {
	if got := TextOp(1, 2, "x").String(); got != `Text(1, 2, "x")` {
		t.Errorf("String() = %s", got)
	}
	if got := SetFontOp(fonts.Bold, 12).String(); got != "SetFont(bold, 12)" {
		t.Errorf("String() = %s", got)
	}
}
