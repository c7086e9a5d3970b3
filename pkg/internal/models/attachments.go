package models

// Attachment is the file record that rides on a message. It is exclusively
// owned by its message and goes away with it; the blob storage behind
// FileUrl is handled elsewhere.
type Attachment struct {
	ID         string    `json:"id"`
	MessageID  string    `json:"message_id"`
	FileName   string    `json:"file_name"`
	FileUrl    string    `json:"file_url"`
	FileSize   int64     `json:"file_size"`
	MimeType   string    `json:"mime_type"`
	UploadedAt Timestamp `json:"uploaded_at"`
}
