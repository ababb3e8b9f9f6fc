package dto

// QrRequest parámetros del QR de mesa. Format acepta "png" o "pdf".
type QrRequest struct {
	Format string `json:"format" query:"format"`
	Label  string `json:"label" query:"label"`
}
