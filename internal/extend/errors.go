package extend

import "errors"

var (
	// ErrAuth means the API token was rejected by the vendor.
	ErrAuth = errors.New("extend api token rejected")
	// ErrProcessorNotFound means the configured processor id is unknown to the vendor.
	ErrProcessorNotFound = errors.New("extend processor not found")
	// ErrUpload covers transport and size failures while sending the file.
	ErrUpload = errors.New("extend file upload failed")
	// ErrExtraction covers vendor-side processing failures and malformed output.
	ErrExtraction = errors.New("extend extraction failed")
)
