// Package export renders collections into CSV files the user can hand
// to a spreadsheet. Generation is fully local; no server round trip.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rohanvaze/brokerdesk/internal/domain"
)

// File is a rendered export ready to be written to disk.
type File struct {
	Name    string
	Content string
}

// Customers renders the customer collection: one customer per line, no
// header row, written as customers.csv. Column order matches the web
// export so downstream spreadsheets keep working.
func Customers(customers []domain.Customer) (File, error) {
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{
			c.Name,
			c.Phone,
			c.Email,
			c.Budget,
			string(c.Status),
			c.Interest,
			c.Notes,
			formatDate(c.CreatedAt),
		})
	}
	content, err := render(rows)
	if err != nil {
		return File{}, err
	}
	return File{Name: "customers.csv", Content: content}, nil
}

// Deals renders the deal collection as deals.csv.
func Deals(deals []domain.Deal) (File, error) {
	rows := make([][]string, 0, len(deals))
	for _, d := range deals {
		closeDate := ""
		if d.CloseDate != nil {
			closeDate = formatDate(*d.CloseDate)
		}
		rows = append(rows, []string{
			d.PropertyTitle,
			d.CustomerName,
			string(d.Status),
			d.DealValue,
			d.BrokerageAmount,
			formatDate(d.StartDate),
			closeDate,
			d.Notes,
		})
	}
	content, err := render(rows)
	if err != nil {
		return File{}, err
	}
	return File{Name: "deals.csv", Content: content}, nil
}

// Write saves the export under dir and returns the full path.
func (f File) Write(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, f.Name)
	if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

func render(rows [][]string) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("render csv: %w", err)
	}
	return sb.String(), nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
