package cli

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohanvaze/brokerdesk/internal/api"
	"github.com/rohanvaze/brokerdesk/internal/domain"
	"github.com/rohanvaze/brokerdesk/internal/teatest"
	"github.com/rohanvaze/brokerdesk/internal/testutil"
)

func newTUIDriver(t *testing.T, fake *testutil.FakeAPI) *teatest.Driver {
	t.Helper()
	app := testApp(t, fake, true)
	d := teatest.New(t, newAppModel(app), teatest.WithSize(100, 32))
	d.DrainInit()
	return d
}

func TestTUIDashboardShowsStatsAndSchedule(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	fake.Properties = []domain.Property{*testutil.NewTestProperty("Sunrise Villa")}
	fake.Customers = []domain.Customer{*testutil.NewTestCustomer("Asha Patil")}
	fake.Events = []domain.Event{
		*testutil.NewTestEvent("Site visit", testutil.WithEventDate(time.Now())),
	}

	d := newTUIDriver(t, fake)

	view := d.View()
	assert.Contains(t, view, "Dashboard")
	assert.Contains(t, view, "Properties")
	assert.Contains(t, view, "Today")
	assert.Contains(t, view, "Site visit")
	assert.Contains(t, view, "Recent listings")
	assert.Contains(t, view, "Sunrise Villa")
	assert.Contains(t, view, "Recent customers")
	assert.Contains(t, view, "Asha Patil")
}

func TestTUIDashboardPanesFailIndependently(t *testing.T) {
	// Stats render even with no events; the Today pane shows its own
	// empty state rather than blanking the dashboard.
	fake := testutil.NewFakeAPI(t)
	d := newTUIDriver(t, fake)

	view := d.View()
	assert.Contains(t, view, "Dashboard")
	assert.Contains(t, view, "Nothing scheduled for today.")
}

func TestTUIPropertyListSearchAndFacet(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	fake.Properties = []domain.Property{
		*testutil.NewTestProperty("Sunrise Villa", testutil.WithArea("Wakad")),
		*testutil.NewTestProperty("Green Meadows", testutil.WithArea("Baner")),
		*testutil.NewTestProperty("City Rental", testutil.WithPropertyStatus(domain.ForRent)),
	}
	d := newTUIDriver(t, fake)

	d.PressKey('p')
	view := d.View()
	assert.Contains(t, view, "Sunrise Villa")
	assert.Contains(t, view, "Green Meadows")
	assert.Contains(t, view, "City Rental")

	// Text search narrows to matching titles.
	d.PressKey('/')
	d.Type("sunrise")
	view = d.View()
	assert.Contains(t, view, "Sunrise Villa")
	assert.NotContains(t, view, "Green Meadows")

	// Esc clears the search and restores the full list.
	d.PressEsc()
	view = d.View()
	assert.Contains(t, view, "Green Meadows")

	// Cycling the status facet to "For Sale" drops the rental.
	d.PressKey('s')
	view = d.View()
	assert.Contains(t, view, "Sunrise Villa")
	assert.NotContains(t, view, "City Rental")
}

func TestTUIPropertyAreaAndTypeFacets(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	fake.Properties = []domain.Property{
		*testutil.NewTestProperty("Sunrise Villa", testutil.WithArea("Baner"), testutil.WithPropertyType(domain.TypeVilla)),
		*testutil.NewTestProperty("Lakeview Heights", testutil.WithArea("Wakad")),
	}
	d := newTUIDriver(t, fake)
	d.PressKey('p')

	view := d.View()
	assert.Contains(t, view, "Sunrise Villa")
	assert.Contains(t, view, "Lakeview Heights")

	// The area cycle runs all → Baner → Wakad, in first-seen order.
	d.PressKey('a')
	view = d.View()
	assert.Contains(t, view, "Sunrise Villa")
	assert.NotContains(t, view, "Lakeview Heights")

	d.PressKey('a')
	view = d.View()
	assert.NotContains(t, view, "Sunrise Villa")
	assert.Contains(t, view, "Lakeview Heights")

	// Back to all areas, then narrow by type instead.
	d.PressKey('a')
	d.PressKey('t')
	view = d.View()
	assert.Contains(t, view, "Sunrise Villa")
	assert.NotContains(t, view, "Lakeview Heights")
}

func TestTUIPropertyToggleHotUsesConfirmedState(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	p := testutil.NewTestProperty("Sunrise Villa")
	fake.Properties = []domain.Property{*p}
	d := newTUIDriver(t, fake)

	d.PressKey('p')
	d.PressKey('h')

	assert.True(t, fake.Properties[0].IsHot)
	assert.Contains(t, d.View(), "Marked hot: Sunrise Villa")

	d.PressKey('h')
	assert.False(t, fake.Properties[0].IsHot)
	assert.Contains(t, d.View(), "Unmarked hot: Sunrise Villa")
}

func TestTUIJumpKeysAreRoleAware(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	fake.User = *testutil.NewTestUser(domain.RoleBuilder)
	fake.Projects = []domain.Project{*testutil.NewTestProject("Emerald Enclave", 40, 12)}
	d := newTUIDriver(t, fake)

	// For a builder, 'p' opens projects, and broker screens stay shut.
	d.PressKey('p')
	assert.Contains(t, d.View(), "Emerald Enclave")

	d.PressKey('d')
	assert.Contains(t, d.View(), "Emerald Enclave")
}

func TestTUICustomerToggleImportant(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	c := testutil.NewTestCustomer("Asha Patil")
	fake.Customers = []domain.Customer{*c}
	d := newTUIDriver(t, fake)

	d.PressKey('c')
	assert.Contains(t, d.View(), "Asha Patil")

	d.PressKey('i')
	assert.True(t, fake.Customers[0].IsImportant)
	assert.Contains(t, d.View(), "Starred: Asha Patil")
}

func TestTUIEventMarkCompleted(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	e := testutil.NewTestEvent("Site visit")
	fake.Events = []domain.Event{*e}
	d := newTUIDriver(t, fake)

	d.PressKey('v')
	assert.Contains(t, d.View(), "Site visit")

	d.PressKey('m')
	assert.Equal(t, domain.EventCompleted, fake.Events[0].Status)
	assert.Contains(t, d.View(), "Completed: Site visit")
}

func TestTUINotificationMarkAllRead(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	fake.Notifications = []domain.Notification{
		{ID: "n1", Title: "Payment due", Message: "Plot A-1 installment"},
		{ID: "n2", Title: "Follow-up", Message: "Call Asha"},
	}
	d := newTUIDriver(t, fake)

	d.PressKey('N')
	view := d.View()
	assert.Contains(t, view, "Payment due")
	assert.Contains(t, view, "2 unread")

	d.PressKey('a')
	view = d.View()
	assert.Contains(t, view, "0 unread")
	for _, n := range fake.Notifications {
		assert.True(t, n.IsRead)
	}
}

func TestTUISignedOutTearsDown(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	d := newTUIDriver(t, fake)

	// Token revoked server-side; the next load hits the 401 interception
	// point and the whole TUI quits.
	fake.Unauthorized = true
	d.PressKey('p')

	assert.True(t, d.Quitting)
	assert.Contains(t, d.View(), "Session expired. Run: brokerdesk login")
}

func TestTUIEscPopsViewStack(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	fake.Properties = []domain.Property{*testutil.NewTestProperty("Sunrise Villa")}
	d := newTUIDriver(t, fake)

	d.PressKey('p')
	assert.Contains(t, d.View(), "Sunrise Villa")

	d.PressEsc()
	assert.Contains(t, d.View(), "Dashboard")
}

func TestTUIQuitOnQ(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	d := newTUIDriver(t, fake)

	d.PressKey('q')
	assert.True(t, d.Quitting)
}

func TestDialogErrorPhaseKeepsValues(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	app := testApp(t, fake, true)
	state := &SharedState{App: app}

	name := "Asha Patil"
	buildForm := func() *huh.Form {
		return huh.NewForm(huh.NewGroup(huh.NewInput().Title("Name").Value(&name)))
	}
	dlg := newDialogView(state, "Test", buildForm, func() (string, error) {
		return "", errors.New("phone already exists")
	})

	// A failed submit pins the error and rebuilds the form over the
	// same bound values.
	m, _ := dlg.Update(submitResultMsg{err: errors.New("phone already exists")})
	dlg = m.(*dialogView)
	assert.Equal(t, dialogError, dlg.phase)
	assert.Contains(t, dlg.View(), "phone already exists")
	assert.Equal(t, "Asha Patil", name)

	// Any key returns to an editable form.
	m, _ = dlg.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	dlg = m.(*dialogView)
	assert.Equal(t, dialogOpen, dlg.phase)

	// Esc discards the dialog.
	m, cmd := dlg.Update(tea.KeyMsg{Type: tea.KeyEsc})
	dlg = m.(*dialogView)
	require.NotNil(t, cmd)
	_, isDone := cmd().(dialogDoneMsg)
	assert.True(t, isDone)
}

func TestDialogSubmitSuccessClosesWithNotice(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	app := testApp(t, fake, true)
	state := &SharedState{App: app}

	buildForm := func() *huh.Form {
		v := ""
		return huh.NewForm(huh.NewGroup(huh.NewInput().Value(&v)))
	}
	dlg := newDialogView(state, "Test", buildForm, func() (string, error) {
		return "saved", nil
	})

	_, cmd := dlg.Update(submitResultMsg{notice: "saved"})
	require.NotNil(t, cmd)
	done, isDone := cmd().(dialogDoneMsg)
	require.True(t, isDone)
	require.NotNil(t, done.nextCmd)
	notice, isNotice := done.nextCmd().(noticeMsg)
	require.True(t, isNotice)
	assert.Equal(t, "saved", notice.text)
}

func TestDialogUnauthorizedSignsOut(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	app := testApp(t, fake, true)
	state := &SharedState{App: app}

	buildForm := func() *huh.Form {
		v := ""
		return huh.NewForm(huh.NewGroup(huh.NewInput().Value(&v)))
	}
	dlg := newDialogView(state, "Test", buildForm, func() (string, error) {
		return "", api.ErrUnauthorized
	})

	_, cmd := dlg.Update(submitResultMsg{err: api.ErrUnauthorized})
	require.NotNil(t, cmd)
	_, isSignedOut := cmd().(signedOutMsg)
	assert.True(t, isSignedOut)
}
