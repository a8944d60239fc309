package http

import "time"

// Error is the uniform error payload returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateDeliveryRequest is the payload for creating a delivery.
type CreateDeliveryRequest struct {
	PickupText        string    `json:"pickup_text"`
	PickupLatitude    float64   `json:"pickup_latitude"`
	PickupLongitude   float64   `json:"pickup_longitude"`
	DropoffText       string    `json:"dropoff_text"`
	DropoffLatitude   float64   `json:"dropoff_latitude"`
	DropoffLongitude  float64   `json:"dropoff_longitude"`
	ParcelDescription string    `json:"parcel_description"`
	ContactNumber     string    `json:"contact_number"`
	DeliveryDate      time.Time `json:"delivery_date"`
	PriceAmount       int64     `json:"price_amount"`
}

// CreateDeliveryResponse returns the identifier of the created delivery.
type CreateDeliveryResponse struct {
	ID string `json:"id"`
}

// TransitionDeliveryRequest names the status the delivery should move to.
type TransitionDeliveryRequest struct {
	Target string `json:"target"`
}

// AssignDeliveryRequest names the agent an admin binds to a delivery.
type AssignDeliveryRequest struct {
	AgentID string `json:"agent_id"`
}

// UnassignedDelivery is one entry of the claimable feed.
type UnassignedDelivery struct {
	ID                string    `json:"id"`
	TrackingID        string    `json:"tracking_id"`
	PickupText        string    `json:"pickup_text"`
	DropoffText       string    `json:"dropoff_text"`
	ParcelDescription string    `json:"parcel_description"`
	DeliveryDate      time.Time `json:"delivery_date"`
	PriceAmount       int64     `json:"price_amount"`
	CreatedAt         time.Time `json:"created_at"`
}

// OwnerDelivery is one entry of an owner's delivery list.
type OwnerDelivery struct {
	ID              string    `json:"id"`
	TrackingID      string    `json:"tracking_id"`
	Status          string    `json:"status"`
	DropoffText     string    `json:"dropoff_text"`
	AssignedAgentID *string   `json:"assigned_agent_id,omitempty"`
	DeliveryDate    time.Time `json:"delivery_date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AgentDelivery is one entry of an agent's worklist.
type AgentDelivery struct {
	ID            string    `json:"id"`
	TrackingID    string    `json:"tracking_id"`
	Status        string    `json:"status"`
	PickupText    string    `json:"pickup_text"`
	DropoffText   string    `json:"dropoff_text"`
	ContactNumber string    `json:"contact_number"`
	DeliveryDate  time.Time `json:"delivery_date"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TrackedDelivery is the public tracking view. It deliberately carries no
// owner or agent identifiers.
type TrackedDelivery struct {
	TrackingID   string          `json:"tracking_id"`
	Status       string          `json:"status"`
	PickupText   string          `json:"pickup_text"`
	DropoffText  string          `json:"dropoff_text"`
	DeliveryDate time.Time       `json:"delivery_date"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Timeline     []TimelineEntry `json:"timeline"`
}

// TimelineEntry is one recorded status change in the public view.
type TimelineEntry struct {
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
