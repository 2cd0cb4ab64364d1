package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ImageMetadata describes an uploaded listing image. The bytes themselves
// live in the upload store; this record is what the rest of the system
// references.
type ImageMetadata struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ImageID      string             `bson:"imageId" json:"imageId"`
	OriginalName string             `bson:"originalName" json:"originalName"`
	FileName     string             `bson:"fileName" json:"fileName"`
	FileSize     int64              `bson:"fileSize" json:"fileSize"`
	Width        int                `bson:"width,omitempty" json:"width,omitempty"`
	Height       int                `bson:"height,omitempty" json:"height,omitempty"`
	UploadedBy   string             `bson:"uploadedBy" json:"uploadedBy"`
	UploadedAt   time.Time          `bson:"uploadedAt" json:"uploadedAt"`
}
