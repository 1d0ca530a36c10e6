package model

// UploadOptions tune an object upload.
type UploadOptions struct {
	// Folder is the key prefix under which the object is stored.
	Folder string

	// CacheControl is the Cache-Control metadata of the object.
	CacheControl string
}

// StoredObject identifies an uploaded object.
type StoredObject struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// File is an uploaded file received from a client.
type File struct {
	Name     string
	MimeType string
	Data     []byte
}
