package models

import (
	"path/filepath"
	"time"
)

// AssetType distinguishes still images from videos.
type AssetType string

const (
	AssetTypeImage AssetType = "image"
	AssetTypeVideo AssetType = "video"
)

// Asset is a single photo or video in the library.
//
// Assets are created by external ingestion and are read-only for the
// download subsystem. LivePhotoVideoID is a weak reference to the motion
// clip paired with a still photo; the referenced asset is a normal Asset
// fetched separately.
type Asset struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	OwnerID string `gorm:"index;not null;size:36" json:"owner_id"`

	// OriginalPath is the storage path of the original media file,
	// relative to the content store root (or S3 key).
	OriginalPath string `gorm:"not null;size:1024" json:"original_path"`

	// OriginalName is the display name without extension, as uploaded.
	OriginalName string `gorm:"not null;size:255" json:"original_name"`

	Type AssetType `gorm:"not null;size:16" json:"type"`

	// SizeBytes is nil when the size is not yet known (ingestion still
	// probing the file). Unknown sizes count as zero during packing.
	SizeBytes *int64 `json:"size_bytes,omitempty"`

	// LivePhotoVideoID references the paired motion clip of a live photo.
	LivePhotoVideoID *string `gorm:"size:36;index" json:"live_photo_video_id,omitempty"`

	// TakenAt is the capture timestamp used by calendar queries.
	TakenAt   time.Time `gorm:"index;not null" json:"taken_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName returns the table name for Asset.
func (Asset) TableName() string {
	return "assets"
}

// Size returns the asset's byte size, or 0 when unknown.
func (a *Asset) Size() int64 {
	if a.SizeBytes == nil {
		return 0
	}
	return *a.SizeBytes
}

// Ext returns the file extension of the original path, including the dot.
func (a *Asset) Ext() string {
	return filepath.Ext(a.OriginalPath)
}

// IsLivePhoto reports whether the asset references a paired motion clip.
func (a *Asset) IsLivePhoto() bool {
	return a.LivePhotoVideoID != nil && *a.LivePhotoVideoID != ""
}

// AssetPage is one bounded batch of assets from paged retrieval, plus the
// continuation cursor. An empty NextCursor means the sequence is exhausted.
type AssetPage struct {
	Assets     []Asset
	NextCursor string
}
