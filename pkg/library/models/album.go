package models

import (
	"fmt"
	"time"
)

// Album is a user-curated collection of assets. Albums can be shared with
// other users, which grants download access to the contained assets.
type Album struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerID     string    `gorm:"index;not null;size:36" json:"owner_id"`
	Name        string    `gorm:"not null;size:255" json:"name"`
	Description string    `gorm:"size:1024" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Assets contained in the album.
	Assets []Asset `gorm:"many2many:album_assets;" json:"assets,omitempty"`

	// SharedWith lists users granted access to the album.
	SharedWith []User `gorm:"many2many:album_shares;" json:"shared_with,omitempty"`
}

// TableName returns the table name for Album.
func (Album) TableName() string {
	return "albums"
}

// Validate checks if the album has valid configuration.
func (a *Album) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("album name is required")
	}
	if a.OwnerID == "" {
		return fmt.Errorf("album owner is required")
	}
	return nil
}

// IsSharedWith reports whether the album is shared with the given user.
// SharedWith must be preloaded.
func (a *Album) IsSharedWith(userID string) bool {
	for _, u := range a.SharedWith {
		if u.ID == userID {
			return true
		}
	}
	return false
}
