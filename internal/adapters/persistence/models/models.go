package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Roles     []Role         `gorm:"many2many:user_roles" json:"roles"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// RoleNames returns the user's role names
func (u *User) RoleNames() []string {
	names := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		names[i] = r.Name
	}
	return names
}

// UserResponse DTO
type UserResponse struct {
	ID       uint     `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Roles:    u.RoleNames(),
	}
}

// Role represents roles table. Reference data: seeded once at bootstrap,
// never deleted while a user still references it.
type Role struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;size:20;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
}

func (Role) TableName() string {
	return "roles"
}

// ============================================================
// Trip Tables
// ============================================================

// Trip represents trips table
type Trip struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	StartDate   time.Time      `gorm:"type:date" json:"start_date"`
	EndDate     time.Time      `gorm:"type:date" json:"end_date"`
	ImageURL    string         `gorm:"size:255" json:"image_url,omitempty"`
	OwnerID     uint           `gorm:"not null;index" json:"owner_id"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner         *User           `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Collaborators []User          `gorm:"many2many:trip_collaborators" json:"collaborators,omitempty"`
	Itinerary     []ItineraryItem `gorm:"foreignKey:TripID" json:"itinerary,omitempty"`
	BudgetItems   []BudgetItem    `gorm:"foreignKey:TripID" json:"budget_items,omitempty"`
	PackingList   []PackingItem   `gorm:"foreignKey:TripID" json:"packing_list,omitempty"`
	Destinations  []Destination   `gorm:"foreignKey:TripID" json:"destinations,omitempty"`
}

func (Trip) TableName() string {
	return "trips"
}

// ItineraryItem represents itinerary_items table
type ItineraryItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TripID      uint      `gorm:"not null;index" json:"trip_id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Location    string    `gorm:"size:200" json:"location"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Activities []Activity `gorm:"foreignKey:ItineraryItemID" json:"activities,omitempty"`
}

func (ItineraryItem) TableName() string {
	return "itinerary_items"
}

// Activity represents activities table. Start/end are times of day ("15:04").
type Activity struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	ItineraryItemID uint   `gorm:"not null;index" json:"itinerary_item_id"`
	Title           string `gorm:"size:200;not null" json:"title"`
	Description     string `gorm:"type:text" json:"description"`
	Location        string `gorm:"size:200" json:"location"`
	StartTime       string `gorm:"size:10" json:"start_time"`
	EndTime         string `gorm:"size:10" json:"end_time"`
}

func (Activity) TableName() string {
	return "activities"
}

// Destination represents destinations table
type Destination struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	TripID        uint      `gorm:"not null;index" json:"trip_id"`
	Name          string    `gorm:"size:200;not null" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	ArrivalDate   time.Time `gorm:"type:date" json:"arrival_date"`
	DepartureDate time.Time `gorm:"type:date" json:"departure_date"`
	Location      string    `gorm:"size:200" json:"location"`
}

func (Destination) TableName() string {
	return "destinations"
}

// BudgetItem represents budget_items table
type BudgetItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	TripID      uint    `gorm:"not null;index" json:"trip_id"`
	Description string  `gorm:"size:255" json:"description"`
	Amount      float64 `gorm:"type:decimal(12,2);not null" json:"amount"`
	Category    string  `gorm:"size:100" json:"category"`
}

func (BudgetItem) TableName() string {
	return "budget_items"
}

// PackingItem represents packing_items table
type PackingItem struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TripID   uint   `gorm:"not null;index" json:"trip_id"`
	Name     string `gorm:"size:200;not null" json:"name"`
	Category string `gorm:"size:100" json:"category"`
	IsPacked bool   `gorm:"default:false" json:"is_packed"`
}

func (PackingItem) TableName() string {
	return "packing_items"
}

// ============================================================
// Response DTOs
// ============================================================

// TripResponse DTO flattens the trip entity graph
type TripResponse struct {
	ID            uint                     `json:"id"`
	Title         string                   `json:"title"`
	Description   string                   `json:"description"`
	StartDate     time.Time                `json:"start_date"`
	EndDate       time.Time                `json:"end_date"`
	ImageURL      string                   `json:"image_url,omitempty"`
	Owner         *UserResponse            `json:"owner,omitempty"`
	Collaborators []*UserResponse          `json:"collaborators"`
	Itinerary     []*ItineraryItemResponse `json:"itinerary"`
	BudgetItems   []BudgetItem             `json:"budget_items"`
	PackingList   []PackingItem            `json:"packing_list"`
	Destinations  []Destination            `json:"destinations"`
}

func (t *Trip) ToResponse() *TripResponse {
	resp := &TripResponse{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		StartDate:     t.StartDate,
		EndDate:       t.EndDate,
		ImageURL:      t.ImageURL,
		Collaborators: make([]*UserResponse, len(t.Collaborators)),
		Itinerary:     make([]*ItineraryItemResponse, len(t.Itinerary)),
		BudgetItems:   t.BudgetItems,
		PackingList:   t.PackingList,
		Destinations:  t.Destinations,
	}
	if t.Owner != nil {
		resp.Owner = t.Owner.ToResponse()
	}
	for i := range t.Collaborators {
		resp.Collaborators[i] = t.Collaborators[i].ToResponse()
	}
	for i := range t.Itinerary {
		resp.Itinerary[i] = t.Itinerary[i].ToResponse()
	}
	return resp
}

// ItineraryItemResponse DTO
type ItineraryItemResponse struct {
	ID          uint       `json:"id"`
	TripID      uint       `json:"trip_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	Location    string     `json:"location"`
	Activities  []Activity `json:"activities"`
}

func (i *ItineraryItem) ToResponse() *ItineraryItemResponse {
	return &ItineraryItemResponse{
		ID:          i.ID,
		TripID:      i.TripID,
		Title:       i.Title,
		Description: i.Description,
		StartTime:   i.StartTime,
		EndTime:     i.EndTime,
		Location:    i.Location,
		Activities:  i.Activities,
	}
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Role{},
		&User{},
		&Trip{},
		&ItineraryItem{},
		&Activity{},
		&Destination{},
		&BudgetItem{},
		&PackingItem{},
	)
}
