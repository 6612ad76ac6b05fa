package models

// PackRef names a pack stored on the pack host.
type PackRef struct {
	// ID is the pack id; the archive is stored as {ID}.zip.
	ID string `json:"id"`
}

// PackUpload describes the file part of an upload received by the pack host.
type PackUpload struct {
	// ID is the pack id taken from the request path.
	ID string `json:"id"`

	// FileName is the file name announced in the part's Content-Disposition.
	FileName string `json:"file_name"`

	// ContentType is the media type announced for the part.
	ContentType string `json:"content_type,omitempty"`
}
