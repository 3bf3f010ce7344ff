package export

// File is a generated download: the bytes plus what the HTTP layer
// needs to serve them.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeZIP  = "application/zip"
)
