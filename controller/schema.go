package controller

// Detail is the conventional single-message payload.
type Detail struct {
	Detail any `json:"detail"`
}

// ID is the conventional created-resource payload.
type ID struct {
	ID any `json:"id"`
}

// Ok wraps a message in the conventional success payload.
func Ok(message any) Detail {
	if message == nil {
		message = "ok"
	}
	return Detail{Detail: message}
}
