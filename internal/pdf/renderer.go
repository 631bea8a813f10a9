// Package pdf renders administrative reports and payment invoices.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/skillgateway/backend/internal/models"
)

const timestampLayout = "02 Jan 2006 15:04"

type renderer struct{}

// NewRenderer creates a new PDF renderer
func NewRenderer() *renderer {
	return &renderer{}
}

// newReport starts an A4 document with a centered title block and a
// generation timestamp, ready for record rows
func (r *renderer) newReport(title string) *gofpdf.Fpdf {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 15)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, title, "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(110, 110, 110)
	doc.CellFormat(0, 6, "Generated: "+time.Now().Format(timestampLayout), "", 1, "C", false, 0, "")
	doc.SetTextColor(0, 0, 0)
	doc.Ln(4)

	return doc
}

// record writes one two-line report entry separated by a thin rule
func (r *renderer) record(doc *gofpdf.Fpdf, head, detail string) {
	doc.SetFont("Helvetica", "B", 10)
	doc.MultiCell(0, 5, head, "", "L", false)
	doc.SetFont("Helvetica", "", 9)
	doc.MultiCell(0, 5, detail, "", "L", false)
	doc.Ln(1)
	x, y := doc.GetX(), doc.GetY()
	doc.SetDrawColor(200, 200, 200)
	doc.Line(x, y, x+190, y)
	doc.Ln(3)
}

func (r *renderer) output(doc *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// UsersReport renders the registered-users report
func (r *renderer) UsersReport(users []models.User) ([]byte, error) {
	doc := r.newReport("Skill Gateway - Registered Users")

	for _, user := range users {
		contact := user.Email
		if contact == "" {
			contact = user.Phone
		}
		r.record(doc,
			fmt.Sprintf("#%d  %s", user.ID, user.Username),
			fmt.Sprintf("%s | provider: %s | joined %s",
				contact, user.Provider, user.CreatedAt.Format(timestampLayout)),
		)
	}
	if len(users) == 0 {
		doc.SetFont("Helvetica", "I", 10)
		doc.CellFormat(0, 8, "No users registered.", "", 1, "L", false, 0, "")
	}

	return r.output(doc)
}

// PaymentsReport renders the payment-requests report
func (r *renderer) PaymentsReport(requests []models.PaymentRequest) ([]byte, error) {
	doc := r.newReport("Skill Gateway - Payment Requests")

	for _, req := range requests {
		r.record(doc,
			fmt.Sprintf("%s  [%s]", req.OrderID, req.Status),
			fmt.Sprintf("%s (%s) | %s | INR %.2f | UTR %s | %s",
				req.FullName, req.Email, req.CourseTitle, req.Amount,
				req.UTR, req.CreatedAt.Format(timestampLayout)),
		)
	}
	if len(requests) == 0 {
		doc.SetFont("Helvetica", "I", 10)
		doc.CellFormat(0, 8, "No payment requests.", "", 1, "L", false, 0, "")
	}

	return r.output(doc)
}

// ProjectsReport renders the project-submissions report
func (r *renderer) ProjectsReport(projects []models.Project) ([]byte, error) {
	doc := r.newReport("Skill Gateway - Project Submissions")

	for _, project := range projects {
		r.record(doc,
			fmt.Sprintf("#%d  %s", project.ID, project.Title),
			fmt.Sprintf("%s (%s) | %s | %s | %s",
				project.Name, project.Email, project.Category,
				project.FileName, project.CreatedAt.Format(timestampLayout)),
		)
	}
	if len(projects) == 0 {
		doc.SetFont("Helvetica", "I", 10)
		doc.CellFormat(0, 8, "No project submissions.", "", 1, "L", false, 0, "")
	}

	return r.output(doc)
}

// Invoice renders a single approved payment as an invoice
func (r *renderer) Invoice(inv *models.Invoice) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 12, "Skill Gateway", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 12)
	doc.CellFormat(0, 8, fmt.Sprintf("Invoice INV-%d", inv.RequestID), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(110, 110, 110)
	doc.CellFormat(0, 6, inv.CreatedAt.Format(timestampLayout), "", 1, "L", false, 0, "")
	doc.SetTextColor(0, 0, 0)
	doc.Ln(6)

	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(0, 7, "BILL TO", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 6, inv.Username, "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, inv.Email, "", 1, "L", false, 0, "")
	doc.Ln(8)

	rows := [][2]string{
		{"Course", inv.CourseTitle},
		{"Amount", fmt.Sprintf("INR %.2f", inv.Amount)},
		{"Payment method", "UPI"},
		{"Transaction ID (UTR)", inv.UTR},
		{"Status", "PAID"},
	}
	for _, row := range rows {
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(60, 8, row[0], "B", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.CellFormat(130, 8, row[1], "B", 1, "L", false, 0, "")
	}

	doc.Ln(10)
	doc.SetFont("Helvetica", "I", 9)
	doc.SetTextColor(110, 110, 110)
	doc.CellFormat(0, 6, "Thank you for learning with Skill Gateway.", "", 1, "L", false, 0, "")

	return r.output(doc)
}
