// Package model holds the persisted row types shared by the record store and
// the services above it.
package model

import "time"

// Restaurant owns exactly one cover image and zero or more gallery photos.
type Restaurant struct {
	ID         int64          `json:"id"`
	Name       string         `json:"name"`
	Slug       string         `json:"slug"`
	CoverImage string         `json:"coverImage"`
	Photos     []GalleryPhoto `json:"photos,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// GalleryPhoto is owned by exactly one restaurant.
type GalleryPhoto struct {
	ID           int64     `json:"id"`
	RestaurantID int64     `json:"restaurantId"`
	ImageURL     string    `json:"imageUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PhotographyPhoto is unowned and deleted individually.
type PhotographyPhoto struct {
	ID        int64     `json:"id"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VideoLink is a record-only resource, no file attached.
type VideoLink struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	VideoURL  string    `json:"videoUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Admin is a backoffice account. New registrations stay unapproved until the
// approval token is redeemed.
type Admin struct {
	ID              int64      `json:"id"`
	AdminName       string     `json:"adminName"`
	Email           string     `json:"email"`
	PasswordHash    string     `json:"-"`
	Approved        bool       `json:"approved"`
	ApprovalToken   string     `json:"-"`
	ResetOTP        string     `json:"-"`
	ResetOTPExpires *time.Time `json:"-"`
	CreatedAt       time.Time  `json:"createdAt"`
}
