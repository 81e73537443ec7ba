package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohanvaze/brokerdesk/internal/api"
	"github.com/rohanvaze/brokerdesk/internal/config"
	"github.com/rohanvaze/brokerdesk/internal/domain"
	"github.com/rohanvaze/brokerdesk/internal/session"
	"github.com/rohanvaze/brokerdesk/internal/testutil"
)

// testApp wires a full App against the fake backend. When signedIn is
// true the session already carries the fake's token and user.
func testApp(t *testing.T, fake *testutil.FakeAPI, signedIn bool) *App {
	t.Helper()

	db := testutil.NewTestDB(t)
	sess := session.New(session.NewStore(db))
	if signedIn {
		require.NoError(t, sess.Establish(testutil.Token, fake.User))
	}

	client := api.NewClient(api.Config{
		BaseURL: fake.URL(),
		Timeout: 5 * time.Second,
	}, sess, nil)

	cfg := config.Default()
	cfg.ExportDir = t.TempDir()

	return &App{
		Client:  client,
		Session: sess,
		Config:  cfg,
		Now:     func() time.Time { return time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC) },
	}
}

func runCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	root.SilenceUsage = true
	err := root.Execute()
	return buf.String(), err
}

func TestLoginEstablishesSession(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	app := testApp(t, fake, false)

	out, err := runCmd(t, app, "login", "--email", "rohan@example.in", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as")
	assert.True(t, app.Session.Authenticated())
	assert.Equal(t, testutil.Token, app.Session.Token())
}

func TestLoginRejectedPassword(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	app := testApp(t, fake, false)

	_, err := runCmd(t, app, "login", "--email", "rohan@example.in", "--password", "wrong")
	require.ErrorIs(t, err, api.ErrUnauthorized)
	assert.False(t, app.Session.Authenticated())
}

func TestCommandsRequireSession(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	app := testApp(t, fake, false)

	_, err := runCmd(t, app, "dashboard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not signed in")
}

func TestWhoami(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	app := testApp(t, fake, true)

	out, err := runCmd(t, app, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, fake.User.FullName)
	assert.Contains(t, out, string(domain.RoleBroker))
}

func TestLogout(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	app := testApp(t, fake, true)

	out, err := runCmd(t, app, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out.")
	assert.False(t, app.Session.Authenticated())
}

func TestBrokerCommandsGatedByRole(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	fake.User = *testutil.NewTestUser(domain.RoleBuilder)
	app := testApp(t, fake, true)

	_, err := runCmd(t, app, "customer", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker accounts only")

	_, err = runCmd(t, app, "property", "list")
	require.Error(t, err)
}

func TestBuilderCommandsGatedByRole(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	app := testApp(t, fake, true)

	_, err := runCmd(t, app, "project", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "builder accounts only")
}

func TestPropertyListAndAdd(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	fake.Properties = []domain.Property{
		*testutil.NewTestProperty("Sunrise Villa", testutil.WithArea("Wakad")),
	}
	app := testApp(t, fake, true)

	out, err := runCmd(t, app, "property", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Sunrise Villa")
	assert.Contains(t, out, "Wakad")

	out, err = runCmd(t, app, "property", "add",
		"--title", "Green Meadows", "--area", "Baner",
		"--price", "₹1.2 Cr", "--owner", "Suresh Rao")
	require.NoError(t, err)
	assert.Contains(t, out, "Added property Green Meadows")
	require.Len(t, fake.Properties, 2)
	assert.NotEmpty(t, fake.Properties[1].ID)
}

func TestPropertyHotToggle(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	p := testutil.NewTestProperty("Sunrise Villa")
	fake.Properties = []domain.Property{*p}
	app := testApp(t, fake, true)

	out, err := runCmd(t, app, "property", "hot", p.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Marked hot: Sunrise Villa")

	out, err = runCmd(t, app, "property", "hot", p.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Unmarked hot: Sunrise Villa")
}

func TestCustomerExportWritesFile(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	fake.Customers = []domain.Customer{
		*testutil.NewTestCustomer("Asha Patil"),
		*testutil.NewTestCustomer("Vikram Joshi"),
	}
	app := testApp(t, fake, true)
	dir := t.TempDir()

	out, err := runCmd(t, app, "customer", "export", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 2 customers")

	content, err := os.ReadFile(filepath.Join(dir, "customers.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	require.Len(t, lines, 2, "one customer per line, no header row")
	assert.True(t, strings.HasPrefix(lines[0], "Asha Patil,"))
	assert.True(t, strings.HasPrefix(lines[1], "Vikram Joshi,"))
}

func TestDealAddValidatesReferences(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	app := testApp(t, fake, true)

	out, err := runCmd(t, app, "deal", "add",
		"--property", "Sunrise Villa", "--customer", "Asha Patil",
		"--value", "₹1.5 Cr", "--brokerage", "₹3 Lakh")
	require.NoError(t, err)
	assert.Contains(t, out, "Added deal Sunrise Villa / Asha Patil")
	require.Len(t, fake.Deals, 1)
}

func TestDealUpdateRejectsCloseDateOnOpenStatus(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	d := testutil.NewTestDeal("Sunrise Villa", "Asha Patil")
	fake.Deals = []domain.Deal{*d}
	app := testApp(t, fake, true)

	_, err := runCmd(t, app, "deal", "update", d.ID, "--close-date", "2025-03-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "close date is only valid for terminal statuses")
}

func TestDealAnalytics(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	fake.Brokerage = []domain.BrokerageMonth{
		{Month: "2025-01", Amount: 200000, DealsCount: 2},
		{Month: "2025-02", Amount: 300000, DealsCount: 3},
	}
	app := testApp(t, fake, true)

	out, err := runCmd(t, app, "deal", "analytics")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-01")
	assert.Contains(t, out, "2025-02")
}

func TestEventScheduleAndComplete(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	app := testApp(t, fake, true)

	out, err := runCmd(t, app, "event", "add",
		"--title", "Site visit with Asha", "--date", "2025-03-20", "--time", "10:30 AM")
	require.NoError(t, err)
	assert.Contains(t, out, "Scheduled Site visit with Asha on 2025-03-20")
	require.Len(t, fake.Events, 1)

	out, err = runCmd(t, app, "event", "complete", fake.Events[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Completed: Site visit with Asha")
	assert.Equal(t, domain.EventCompleted, fake.Events[0].Status)
}

func TestProjectPlotUpload(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	fake.User = *testutil.NewTestUser(domain.RoleBuilder)
	proj := testutil.NewTestProject("Emerald Enclave", 0, 0)
	fake.Projects = []domain.Project{*proj}
	app := testApp(t, fake, true)

	csvPath := filepath.Join(t.TempDir(), "plots.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(
		"plot_number,size,price,facing,status\n"+
			"A-1,1800 sq ft,₹45 Lakh,East,Available\n"+
			"A-2,2000 sq ft,₹50 Lakh,North,Available\n",
	), 0644))

	out, err := runCmd(t, app, "project", "plot-upload", proj.ID, "--file", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Uploaded 2 plots to Emerald Enclave")
	require.Len(t, fake.Projects[0].Plots, 2)
	assert.Equal(t, 2, fake.Projects[0].TotalPlots)
}

func TestProjectPaymentAdd(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	fake.User = *testutil.NewTestUser(domain.RoleBuilder)
	proj := testutil.NewTestProject("Emerald Enclave", 1, 0)
	proj.Plots = []domain.Plot{{
		PlotNumber: "A-1",
		Status:     domain.PlotReserved,
		Buyer:      &domain.PlotBuyer{Name: "Asha Patil"},
	}}
	fake.Projects = []domain.Project{*proj}
	app := testApp(t, fake, true)

	out, err := runCmd(t, app, "project", "payment-add", proj.ID,
		"--plot", "A-1", "--amount", "₹5 Lakh", "--type", "Booking")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded ₹5 Lakh Booking payment on plot A-1")
	require.Len(t, fake.Projects[0].Plots[0].Payments, 1)
}

func TestNotificationReadAll(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	fake.Notifications = []domain.Notification{
		{ID: "n1", Title: "Payment due", Message: "Plot A-1 installment", IsRead: false},
		{ID: "n2", Title: "Follow-up", Message: "Call Asha", IsRead: false},
	}
	app := testApp(t, fake, true)

	out, err := runCmd(t, app, "notification", "read-all")
	require.NoError(t, err)
	assert.Contains(t, out, "All notifications marked read.")
	for _, n := range fake.Notifications {
		assert.True(t, n.IsRead)
	}
}

func TestCalcCommandsNeedNoSession(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	app := testApp(t, fake, false)

	out, err := runCmd(t, app, "calc", "brokerage", "--value", "10000000", "--percent", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "₹2.00 Lakh")

	out, err = runCmd(t, app, "calc", "plot-size", "--length", "60", "--width", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "1800.00 sq ft")

	out, err = runCmd(t, app, "calc", "stamp-duty", "--value", "10000000")
	require.NoError(t, err)
	assert.Contains(t, out, "₹5.00 Lakh")  // 5% residential
	assert.Contains(t, out, "₹1.00 Lakh")  // 1% registration
	assert.Contains(t, out, "₹6.00 Lakh")  // total
}
