package status

// Status is a custom type to represent the possible status
type Status int

const (
	// Idle means the service is available for a new job
	Idle Status = 0

	// Loading means the filing file is being downloaded and decoded
	Loading Status = 1

	// Processing means filing rows are being turned into staged entities
	Processing Status = 2

	// Merging means staged entities are being written to production
	Merging Status = 3
)

var (
	statusText = map[Status]string{
		Idle:       "System is idle",
		Loading:    "System is loading filings",
		Processing: "System is processing filings",
		Merging:    "System is merging staged entities",
	}
)

// Text returns a text for a status. It returns the empty
// string if the status is unknown.
func Text(status Status) string {
	return statusText[status]
}

func (s Status) String() string {
	return Text(s)
}
