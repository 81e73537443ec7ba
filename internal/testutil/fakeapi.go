package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rohanvaze/brokerdesk/internal/domain"
)

// Token is the bearer token the fake backend accepts.
const Token = "test-token"

// FakeAPI is an in-memory stand-in for the CRM backend. It speaks the
// same wire protocol (bearer auth, {"detail": ...} error bodies) and
// serves whatever collections the test seeds into it.
type FakeAPI struct {
	Server *httptest.Server

	mu            sync.Mutex
	User          domain.User
	Properties    []domain.Property
	Customers     []domain.Customer
	Deals         []domain.Deal
	Projects      []domain.Project
	Events        []domain.Event
	Notifications []domain.Notification
	Brokerage     []domain.BrokerageMonth

	// Unauthorized forces every request to fail with 401 when set.
	Unauthorized bool
}

// NewFakeAPI starts the fake backend. It is shut down when the test
// completes.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	f := &FakeAPI{
		User: *NewTestUser(domain.RoleBroker),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the backend base URL.
func (f *FakeAPI) URL() string {
	return f.Server.URL
}

func (f *FakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/")
	parts := strings.Split(path, "/")

	// Login and signup are the only unauthenticated endpoints.
	if r.Method == http.MethodPost && path == "auth/login" {
		f.login(w, r)
		return
	}
	if r.Method == http.MethodPost && path == "auth/signup" {
		f.signup(w, r)
		return
	}
	if f.Unauthorized || r.Header.Get("Authorization") != "Bearer "+Token {
		detail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	switch {
	case r.Method == http.MethodGet && path == "auth/me":
		writeJSON(w, f.User)
	case r.Method == http.MethodGet && path == "dashboard/stats":
		if f.User.Role == domain.RoleBuilder {
			total, sold := f.plotCounts()
			writeJSON(w, map[string]any{
				"total_projects": len(f.Projects),
				"total_plots":    total,
				"sold_plots":     sold,
			})
			return
		}
		writeJSON(w, map[string]any{
			"total_properties": len(f.Properties),
			"total_customers":  len(f.Customers),
			"active_deals":     f.activeDeals(),
		})

	case path == "properties":
		f.collection(w, r, &f.Properties)
	case len(parts) == 3 && parts[0] == "properties" && parts[2] == "hot":
		f.toggleHot(w, r, parts[1])
	case r.Method == http.MethodGet && path == "properties/areas/list":
		writeJSON(w, map[string]any{"areas": f.areas()})
	case r.Method == http.MethodGet && path == "properties/types/list":
		writeJSON(w, map[string]any{"types": []string{"Villa", "Apartment", "Plot", "House"}})
	case len(parts) == 2 && parts[0] == "properties":
		f.item(w, r, &f.Properties, parts[1])

	case path == "customers":
		f.collection(w, r, &f.Customers)
	case len(parts) == 3 && parts[0] == "customers" && parts[2] == "important":
		f.toggleImportant(w, r, parts[1])
	case len(parts) == 2 && parts[0] == "customers":
		f.item(w, r, &f.Customers, parts[1])

	case r.Method == http.MethodGet && path == "deals/analytics/brokerage":
		writeJSON(w, map[string]any{"brokerage_data": f.Brokerage})
	case path == "deals":
		f.collection(w, r, &f.Deals)
	case len(parts) == 2 && parts[0] == "deals":
		f.item(w, r, &f.Deals, parts[1])

	case path == "projects":
		f.collection(w, r, &f.Projects)
	case len(parts) == 3 && parts[0] == "projects" && parts[2] == "plots":
		f.projectPlots(w, r, parts[1])
	case len(parts) == 3 && parts[0] == "projects" && parts[2] == "bulk-upload":
		f.bulkUploadPlots(w, r, parts[1])
	case len(parts) == 4 && parts[0] == "projects" && parts[2] == "plots":
		f.updatePlot(w, r, parts[1], parts[3])
	case len(parts) == 5 && parts[0] == "projects" && parts[2] == "plots" && parts[4] == "payments":
		f.addPayment(w, r, parts[1], parts[3])
	case len(parts) == 2 && parts[0] == "projects":
		f.item(w, r, &f.Projects, parts[1])

	case r.Method == http.MethodGet && path == "events/today/list":
		writeJSON(w, f.eventsToday())
	case r.Method == http.MethodGet && path == "events/upcoming/list":
		writeJSON(w, f.eventsUpcoming())
	case path == "events":
		f.collection(w, r, &f.Events)
	case len(parts) == 3 && parts[0] == "events" && parts[2] == "complete":
		f.completeEvent(w, r, parts[1])
	case len(parts) == 2 && parts[0] == "events":
		f.item(w, r, &f.Events, parts[1])

	case r.Method == http.MethodGet && path == "notifications/unread/count":
		writeJSON(w, map[string]int{"count": f.unreadCount()})
	case r.Method == http.MethodPatch && path == "notifications/mark-all-read":
		for i := range f.Notifications {
			f.Notifications[i].IsRead = true
		}
		writeJSON(w, map[string]string{"message": "ok"})
	case len(parts) == 3 && parts[0] == "notifications" && parts[2] == "read":
		f.markNotificationRead(w, parts[1])
	case path == "notifications":
		f.collection(w, r, &f.Notifications)
	case len(parts) == 2 && parts[0] == "notifications":
		f.item(w, r, &f.Notifications, parts[1])

	default:
		detail(w, http.StatusNotFound, "Not Found")
	}
}

func (f *FakeAPI) login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Email == "" {
		detail(w, http.StatusUnprocessableEntity, "email and password required")
		return
	}
	if creds.Password == "wrong" {
		detail(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}
	writeJSON(w, map[string]any{
		"access_token": Token,
		"token_type":   "bearer",
		"user":         f.User,
	})
}

// collection handles GET list and POST create on a top-level resource.
func collectionList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	writeJSON(w, items)
}

func (f *FakeAPI) collection(w http.ResponseWriter, r *http.Request, items any) {
	switch typed := items.(type) {
	case *[]domain.Property:
		listOrCreate(w, r, typed, func(p *domain.Property) { p.ID = uuid.New().String() })
	case *[]domain.Customer:
		listOrCreate(w, r, typed, func(c *domain.Customer) { c.ID = uuid.New().String() })
	case *[]domain.Deal:
		listOrCreate(w, r, typed, func(d *domain.Deal) { d.ID = uuid.New().String() })
	case *[]domain.Project:
		listOrCreate(w, r, typed, func(p *domain.Project) { p.ID = uuid.New().String() })
	case *[]domain.Event:
		listOrCreate(w, r, typed, func(e *domain.Event) { e.ID = uuid.New().String() })
	case *[]domain.Notification:
		listOrCreate(w, r, typed, func(n *domain.Notification) { n.ID = uuid.New().String() })
	default:
		detail(w, http.StatusNotFound, "Not Found")
	}
}

func listOrCreate[T any](w http.ResponseWriter, r *http.Request, items *[]T, assignID func(*T)) {
	switch r.Method {
	case http.MethodGet:
		collectionList(w, *items)
	case http.MethodPost:
		var created T
		if err := json.NewDecoder(r.Body).Decode(&created); err != nil {
			detail(w, http.StatusUnprocessableEntity, "invalid body")
			return
		}
		assignID(&created)
		*items = append(*items, created)
		writeJSON(w, created)
	default:
		detail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	}
}

func (f *FakeAPI) item(w http.ResponseWriter, r *http.Request, items any, id string) {
	switch typed := items.(type) {
	case *[]domain.Property:
		itemOps(w, r, typed, id, func(p *domain.Property) string { return p.ID })
	case *[]domain.Customer:
		itemOps(w, r, typed, id, func(c *domain.Customer) string { return c.ID })
	case *[]domain.Deal:
		itemOps(w, r, typed, id, func(d *domain.Deal) string { return d.ID })
	case *[]domain.Project:
		itemOps(w, r, typed, id, func(p *domain.Project) string { return p.ID })
	case *[]domain.Event:
		itemOps(w, r, typed, id, func(e *domain.Event) string { return e.ID })
	case *[]domain.Notification:
		itemOps(w, r, typed, id, func(n *domain.Notification) string { return n.ID })
	default:
		detail(w, http.StatusNotFound, "Not Found")
	}
}

func itemOps[T any](w http.ResponseWriter, r *http.Request, items *[]T, id string, identity func(*T) string) {
	idx := -1
	for i := range *items {
		if identity(&(*items)[i]) == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		detail(w, http.StatusNotFound, "Not Found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, (*items)[idx])
	case http.MethodPut:
		// Decode over the stored copy so the identity survives a
		// partial body.
		updated := (*items)[idx]
		if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
			detail(w, http.StatusUnprocessableEntity, "invalid body")
			return
		}
		(*items)[idx] = updated
		writeJSON(w, (*items)[idx])
	case http.MethodDelete:
		*items = append((*items)[:idx], (*items)[idx+1:]...)
		writeJSON(w, map[string]string{"message": "deleted"})
	default:
		detail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	}
}

func (f *FakeAPI) toggleHot(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPatch {
		detail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	for i := range f.Properties {
		if f.Properties[i].ID == id {
			f.Properties[i].IsHot = !f.Properties[i].IsHot
			writeJSON(w, f.Properties[i])
			return
		}
	}
	detail(w, http.StatusNotFound, "Property not found")
}

func (f *FakeAPI) toggleImportant(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPatch {
		detail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	for i := range f.Customers {
		if f.Customers[i].ID == id {
			f.Customers[i].IsImportant = !f.Customers[i].IsImportant
			writeJSON(w, f.Customers[i])
			return
		}
	}
	detail(w, http.StatusNotFound, "Customer not found")
}

func (f *FakeAPI) completeEvent(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPatch {
		detail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	for i := range f.Events {
		if f.Events[i].ID == id {
			f.Events[i].Status = domain.EventCompleted
			writeJSON(w, f.Events[i])
			return
		}
	}
	detail(w, http.StatusNotFound, "Event not found")
}

func (f *FakeAPI) markNotificationRead(w http.ResponseWriter, id string) {
	for i := range f.Notifications {
		if f.Notifications[i].ID == id {
			f.Notifications[i].IsRead = true
			writeJSON(w, f.Notifications[i])
			return
		}
	}
	detail(w, http.StatusNotFound, "Notification not found")
}

func (f *FakeAPI) signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string      `json:"email"`
		Password string      `json:"password"`
		FullName string      `json:"full_name"`
		Role     domain.Role `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		detail(w, http.StatusUnprocessableEntity, "email and password required")
		return
	}
	f.User.Email = req.Email
	f.User.FullName = req.FullName
	f.User.Role = req.Role
	writeJSON(w, map[string]any{
		"access_token": Token,
		"token_type":   "bearer",
		"user":         f.User,
	})
}

func (f *FakeAPI) findProject(id string) *domain.Project {
	for i := range f.Projects {
		if f.Projects[i].ID == id {
			return &f.Projects[i]
		}
	}
	return nil
}

// recount refreshes a project's derived plot counters.
func recount(p *domain.Project) {
	p.TotalPlots = len(p.Plots)
	p.SoldPlots, p.AvailablePlots, p.ReservedPlots = 0, 0, 0
	for _, plot := range p.Plots {
		switch plot.Status {
		case domain.PlotSold:
			p.SoldPlots++
		case domain.PlotReserved:
			p.ReservedPlots++
		default:
			p.AvailablePlots++
		}
	}
}

func (f *FakeAPI) projectPlots(w http.ResponseWriter, r *http.Request, projectID string) {
	p := f.findProject(projectID)
	if p == nil {
		detail(w, http.StatusNotFound, "Project not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		plots := p.Plots
		if status := r.URL.Query().Get("status"); status != "" {
			filtered := []domain.Plot{}
			for _, plot := range plots {
				if string(plot.Status) == status {
					filtered = append(filtered, plot)
				}
			}
			plots = filtered
		}
		collectionList(w, plots)
	case http.MethodPost:
		var plot domain.Plot
		if err := json.NewDecoder(r.Body).Decode(&plot); err != nil {
			detail(w, http.StatusUnprocessableEntity, "invalid body")
			return
		}
		p.Plots = append(p.Plots, plot)
		recount(p)
		writeJSON(w, p)
	default:
		detail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	}
}

func (f *FakeAPI) updatePlot(w http.ResponseWriter, r *http.Request, projectID, plotNumber string) {
	if r.Method != http.MethodPut {
		detail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	p := f.findProject(projectID)
	if p == nil {
		detail(w, http.StatusNotFound, "Project not found")
		return
	}
	for i := range p.Plots {
		if p.Plots[i].PlotNumber == plotNumber {
			var plot domain.Plot
			if err := json.NewDecoder(r.Body).Decode(&plot); err != nil {
				detail(w, http.StatusUnprocessableEntity, "invalid body")
				return
			}
			p.Plots[i] = plot
			recount(p)
			writeJSON(w, p)
			return
		}
	}
	detail(w, http.StatusNotFound, "Plot not found")
}

func (f *FakeAPI) addPayment(w http.ResponseWriter, r *http.Request, projectID, plotNumber string) {
	if r.Method != http.MethodPost {
		detail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	p := f.findProject(projectID)
	if p == nil {
		detail(w, http.StatusNotFound, "Project not found")
		return
	}
	for i := range p.Plots {
		if p.Plots[i].PlotNumber == plotNumber {
			var payment domain.Payment
			if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
				detail(w, http.StatusUnprocessableEntity, "invalid body")
				return
			}
			p.Plots[i].Payments = append(p.Plots[i].Payments, payment)
			writeJSON(w, p)
			return
		}
	}
	detail(w, http.StatusNotFound, "Plot not found")
}

func (f *FakeAPI) bulkUploadPlots(w http.ResponseWriter, r *http.Request, projectID string) {
	if r.Method != http.MethodPost {
		detail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	p := f.findProject(projectID)
	if p == nil {
		detail(w, http.StatusNotFound, "Project not found")
		return
	}
	var body struct {
		Plots []domain.Plot `json:"plots"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		detail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}
	p.Plots = append(p.Plots, body.Plots...)
	recount(p)
	writeJSON(w, p)
}

func (f *FakeAPI) plotCounts() (total, sold int) {
	for _, p := range f.Projects {
		total += p.TotalPlots
		sold += p.SoldPlots
	}
	return total, sold
}

func (f *FakeAPI) eventsUpcoming() []domain.Event {
	now := time.Now()
	out := []domain.Event{}
	for _, e := range f.Events {
		if e.Date.After(now) {
			out = append(out, e)
		}
	}
	return out
}

func (f *FakeAPI) activeDeals() int {
	n := 0
	for _, d := range f.Deals {
		if d.Status != domain.DealClosed && d.Status != domain.DealCancelled {
			n++
		}
	}
	return n
}

func (f *FakeAPI) areas() []string {
	seen := map[string]bool{}
	var areas []string
	for _, p := range f.Properties {
		if p.Area != "" && !seen[p.Area] {
			seen[p.Area] = true
			areas = append(areas, p.Area)
		}
	}
	return areas
}

func (f *FakeAPI) eventsToday() []domain.Event {
	today := time.Now()
	out := []domain.Event{}
	for _, e := range f.Events {
		if e.Date.Year() == today.Year() && e.Date.YearDay() == today.YearDay() {
			out = append(out, e)
		}
	}
	return out
}

func (f *FakeAPI) unreadCount() int {
	n := 0
	for _, note := range f.Notifications {
		if !note.IsRead {
			n++
		}
	}
	return n
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func detail(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": message})
}
