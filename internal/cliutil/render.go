package cliutil

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/salesdash/salesdash/salesdash/query"
	"github.com/salesdash/salesdash/salesdash/record"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func dateCell(tx *record.Transaction) string {
	if tx.Date == nil {
		return "-"
	}
	return tx.Date.Format("2006-01-02")
}

func intCell(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

// SalesTable renders a page of transactions as a bordered table.
func SalesTable(page query.Page) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		}).
		Headers("ID", "DATE", "CUSTOMER", "PHONE", "GENDER", "AGE", "REGION", "CATEGORY", "QTY", "FINAL", "PAYMENT", "TAGS")

	for i := range page.Data {
		tx := &page.Data[i]
		t.Row(
			tx.TransactionID,
			dateCell(tx),
			tx.CustomerName,
			tx.PhoneNumber,
			tx.Gender,
			intCell(tx.Age),
			tx.CustomerRegion,
			tx.ProductCategory,
			intCell(tx.Quantity),
			tx.FinalAmount.StringFixed(2),
			tx.PaymentMethod,
			strings.Join(tx.Tags, ", "),
		)
	}
	return t.String()
}

func pageFooter(p query.Pagination) string {
	return fmt.Sprintf("page %d of %d · %d matching · %d per page", p.Page, p.TotalPages, p.Total, p.PageSize)
}

// PrintPage writes page in the given format.
func PrintPage(w io.Writer, format OutputFormat, page query.Page) {
	switch format {
	case FormatJSON:
		PrintJSON(w, page)
	case FormatTable:
		fmt.Fprintln(w, SalesTable(page))
		fmt.Fprintln(w, dimStyle.Render(pageFooter(page.Pagination)))
	default:
		for i := range page.Data {
			tx := &page.Data[i]
			fmt.Fprintf(w, "- %s  %s  %s (%s)  %s  qty %s  %s\n",
				tx.TransactionID, dateCell(tx), tx.CustomerName, tx.PhoneNumber,
				tx.ProductCategory, intCell(tx.Quantity), tx.FinalAmount.StringFixed(2))
		}
		if len(page.Data) == 0 {
			fmt.Fprintln(w, "No matching sales.")
		}
		fmt.Fprintf(w, "\n%s\n", pageFooter(page.Pagination))
	}
}

// PrintOptions writes filter options in the given format.
func PrintOptions(w io.Writer, format OutputFormat, opts query.FilterOptions) {
	if format == FormatJSON {
		PrintJSON(w, opts)
		return
	}
	sections := []struct {
		title  string
		values []string
	}{
		{"Regions", opts.CustomerRegions},
		{"Genders", opts.Genders},
		{"Categories", opts.ProductCategories},
		{"Payment methods", opts.PaymentMethods},
		{"Tags", opts.Tags},
	}
	for _, s := range sections {
		fmt.Fprintln(w, headerStyle.Render(s.title))
		if len(s.values) == 0 {
			fmt.Fprintln(w, dimStyle.Render("  (none)"))
			continue
		}
		for _, v := range s.values {
			fmt.Fprintf(w, "  %s\n", v)
		}
	}
}

// PrintSummary writes summary statistics in the given format.
func PrintSummary(w io.Writer, format OutputFormat, sum query.Summary) {
	if format == FormatJSON {
		PrintJSON(w, sum)
		return
	}
	fmt.Fprintf(w, "Orders:          %d\n", sum.TotalOrders)
	fmt.Fprintf(w, "Units sold:      %d\n", sum.TotalQuantity)
	fmt.Fprintf(w, "Revenue:         %s\n", sum.TotalRevenue.StringFixed(2))
	fmt.Fprintf(w, "Avg order value: %s\n", sum.AvgOrderValue.StringFixed(2))
}
