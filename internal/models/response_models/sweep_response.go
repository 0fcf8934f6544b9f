package response_models

// SweepError is one failed record in a scheduler batch. The batch keeps
// going; failures are reported, not fatal.
type SweepError struct {
	SubscriptionID string `json:"subscription_id"`
	UserID         string `json:"user_id"`
	Error          string `json:"error"`
}

// SweepReport is the internal batch summary shared by both sweeps; the HTTP
// layer renames the counter per endpoint.
type SweepReport struct {
	OK        bool
	Message   string
	Processed int
	Total     int
	Errors    []SweepError
}

type RemovalReport struct {
	OK      bool         `json:"ok"`
	Message string       `json:"message"`
	Removed int          `json:"removed"`
	Total   int          `json:"total"`
	Errors  []SweepError `json:"errors,omitempty"`
}

type NotificationReport struct {
	OK       bool         `json:"ok"`
	Message  string       `json:"message"`
	Notified int          `json:"notified"`
	Total    int          `json:"total"`
	Errors   []SweepError `json:"errors,omitempty"`
}

func (r *SweepReport) AsRemoval() RemovalReport {
	return RemovalReport{OK: r.OK, Message: r.Message, Removed: r.Processed, Total: r.Total, Errors: r.Errors}
}

func (r *SweepReport) AsNotification() NotificationReport {
	return NotificationReport{OK: r.OK, Message: r.Message, Notified: r.Processed, Total: r.Total, Errors: r.Errors}
}
