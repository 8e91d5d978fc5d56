package models

import "time"

// Contact request statuses.
const (
	ContactStatusPending  = "Pendiente"
	ContactStatusAnswered = "Respondido"
	ContactStatusClosed   = "Cerrado"
)

// Media file types, derived from the upload MIME type.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
	MediaTypeFile  = "file"
)

// BlogPost is an article shown on the public blog.
type BlogPost struct {
	ID               string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title            string    `json:"title" gorm:"type:varchar(200);not null"`
	ShortDescription string    `json:"short_description" gorm:"type:varchar(500)"`
	LongDescription  string    `json:"long_description" gorm:"type:text"`
	ImageURL         string    `json:"image_url" gorm:"type:varchar(500)"`
	Author           string    `json:"author" gorm:"type:varchar(100)"`
	Date             time.Time `json:"date" gorm:"autoCreateTime;index"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ContactRequest is a message submitted through the public contact form.
type ContactRequest struct {
	ID      string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name    string    `json:"name" gorm:"type:varchar(100);not null"`
	Email   string    `json:"email" gorm:"type:varchar(255);not null"`
	Subject string    `json:"subject" gorm:"type:varchar(200)"`
	Message string    `json:"message" gorm:"type:text;not null"`
	Status  string    `json:"status" gorm:"type:varchar(20);not null"`
	Date    time.Time `json:"date" gorm:"autoCreateTime;index"`
}

// MediaFile references an uploaded file kept in the blob store.
type MediaFile struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	FileName  string    `json:"file_name" gorm:"type:varchar(255);not null;index"`
	URL       string    `json:"url" gorm:"type:varchar(500);not null"`
	PublicID  string    `json:"public_id" gorm:"type:varchar(255);not null"`
	FileType  string    `json:"file_type" gorm:"type:varchar(10);not null;index"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
