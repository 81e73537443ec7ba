package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohanvaze/brokerdesk/internal/domain"
)

func TestCustomers_RowShapeAndFilename(t *testing.T) {
	followUp := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	f, err := Customers([]domain.Customer{
		{
			Name:         "Amit Shah",
			Phone:        "9876543210",
			Email:        "amit@example.com",
			Budget:       "₹2-3 Cr",
			Status:       domain.CustomerInterested,
			Interest:     "3BHK Baner",
			Notes:        `prefers "corner" flats`,
			FollowUpDate: &followUp,
			CreatedAt:    time.Date(2025, time.May, 2, 9, 0, 0, 0, time.UTC),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "customers.csv", f.Name)

	// One entity per line, no header row.
	records, err := csv.NewReader(strings.NewReader(f.Content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"Amit Shah", "9876543210", "amit@example.com", "₹2-3 Cr", "Interested", "3BHK Baner", `prefers "corner" flats`, "2025-05-02"}, records[0])
}

func TestDeals_CloseDateBlankForOpenDeals(t *testing.T) {
	closed := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	f, err := Deals([]domain.Deal{
		{
			PropertyTitle:   "Sunrise Villa",
			CustomerName:    "Priya",
			Status:          domain.DealClosed,
			DealValue:       "₹1.2 Cr",
			BrokerageAmount: "₹2.4 Lakh",
			StartDate:       time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
			CloseDate:       &closed,
		},
		{
			PropertyTitle: "Lakeview Plot",
			CustomerName:  "Rahul",
			Status:        domain.DealFollowUp,
			DealValue:     "₹60 Lakh",
			StartDate:     time.Date(2025, time.May, 20, 0, 0, 0, 0, time.UTC),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "deals.csv", f.Name)

	records, err := csv.NewReader(strings.NewReader(f.Content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2025-06-10", records[0][6])
	assert.Equal(t, "", records[1][6], "open deal carries no close date")
}

func TestFileWrite_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	f := File{Name: "deals.csv", Content: "a,b\n"}

	path, err := f.Write(dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))
}

func TestCustomers_EmptyCollectionIsEmptyFile(t *testing.T) {
	f, err := Customers(nil)
	require.NoError(t, err)
	assert.Equal(t, "customers.csv", f.Name)
	assert.Empty(t, f.Content)
}
