package domain

// Spreadsheet columns recognised by the bulk upload.
const (
	ColumnSource        = "Source"
	ColumnDestination   = "Destination"
	ColumnDepartureTime = "Departure Time"
	ColumnStatus        = "Status"
	ColumnIsPaid        = "Is Paid"
)

// RawRow is one untyped spreadsheet row keyed by header name.
// It lives only for the duration of a single upload.
type RawRow map[string]string

// RowValidationError reports one problem in one uploaded row.
// Row is the line number as seen in the spreadsheet: the header is line 1,
// so the first data row is line 2.
type RowValidationError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// UploadResult is returned for every bulk upload attempt.
// Errors is never nil so it always encodes as a JSON array.
type UploadResult struct {
	Success  bool                 `json:"success"`
	Inserted int                  `json:"inserted"`
	Errors   []RowValidationError `json:"errors"`
	Message  string               `json:"message,omitempty"`
}
