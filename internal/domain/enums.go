package domain

type Role string

const (
	RoleBroker  Role = "broker"
	RoleBuilder Role = "builder"
)

type PropertyStatus string

const (
	ForSale PropertyStatus = "For Sale"
	ForRent PropertyStatus = "For Rent"
)

type PropertyType string

const (
	TypeVilla     PropertyType = "Villa"
	TypeApartment PropertyType = "Apartment"
	TypePlot      PropertyType = "Plot"
	TypeHouse     PropertyType = "House"
)

type CustomerStatus string

const (
	CustomerInterested CustomerStatus = "Interested"
	CustomerCall       CustomerStatus = "Call"
	CustomerVisit      CustomerStatus = "Visit"
	CustomerVisitDone  CustomerStatus = "Visit Done"
	CustomerFollowUp   CustomerStatus = "Follow-up"
	CustomerDealLost   CustomerStatus = "Deal Lost"
	CustomerClosed     CustomerStatus = "Closed"
)

type DealStatus string

const (
	DealInterested        DealStatus = "Interested"
	DealCall              DealStatus = "Call"
	DealVisitDone         DealStatus = "Visit Done"
	DealFollowUp          DealStatus = "Follow-up"
	DealCancelled         DealStatus = "Cancelled"
	DealClosed            DealStatus = "Closed"
	DealAgreement         DealStatus = "Agreement"
	DealRegistry          DealStatus = "Registry"
	DealBrokerageReceived DealStatus = "Brokerage Received"
)

// TerminalDealStatuses are the states in which a deal carries a close date.
var TerminalDealStatuses = map[DealStatus]bool{
	DealClosed:            true,
	DealCancelled:         true,
	DealBrokerageReceived: true,
}

type PlotStatus string

const (
	PlotAvailable PlotStatus = "Available"
	PlotReserved  PlotStatus = "Reserved"
	PlotSold      PlotStatus = "Sold"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentOverdue PaymentStatus = "Overdue"
)

type NotificationType string

const (
	NotifyPayment  NotificationType = "payment"
	NotifyFollowUp NotificationType = "followup"
	NotifyInquiry  NotificationType = "inquiry"
	NotifyMeeting  NotificationType = "meeting"
)

type EventType string

const (
	EventVisit         EventType = "visit"
	EventCall          EventType = "call"
	EventMeeting       EventType = "meeting"
	EventDocumentation EventType = "documentation"
	EventRegistry      EventType = "registry"
)

type EventStatus string

const (
	EventScheduled EventStatus = "scheduled"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

// Ordered enum value lists, as presented in selection menus.
var (
	PropertyStatuses = []PropertyStatus{ForSale, ForRent}
	PropertyTypes    = []PropertyType{TypeVilla, TypeApartment, TypePlot, TypeHouse}
	CustomerStatuses = []CustomerStatus{
		CustomerInterested, CustomerCall, CustomerVisit, CustomerVisitDone,
		CustomerFollowUp, CustomerDealLost, CustomerClosed,
	}
	DealStatuses = []DealStatus{
		DealInterested, DealCall, DealVisitDone, DealFollowUp,
		DealAgreement, DealRegistry, DealBrokerageReceived, DealClosed, DealCancelled,
	}
	PlotStatuses = []PlotStatus{PlotAvailable, PlotReserved, PlotSold}
	EventTypes   = []EventType{EventVisit, EventCall, EventMeeting, EventDocumentation, EventRegistry}
)

// ValidFacings is the canonical set of accepted facing strings.
var ValidFacings = map[string]bool{
	"North": true, "South": true, "East": true, "West": true,
	"North-East": true, "North-West": true, "South-East": true, "South-West": true,
}
