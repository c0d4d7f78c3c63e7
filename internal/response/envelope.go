// Package response defines the uniform result wrapper returned by every
// inventory operation, together with the outcome classification callers
// branch on to pick a transport status.
package response

import "net/http"

// Caller-visible outcome codes. These are part of the wire contract and
// must be preserved bit-exact.
const (
	CodeOK       = "0000" // success
	CodeInternal = "0001" // unexpected internal failure
	CodeNotFound = "0002" // product not found / empty result set
	CodeRejected = "0003" // category not found, or the store refused a save/update
)

// Metadata messages. The message distinguishes success from failure at a
// glance; the detail carries the operation-specific text.
const (
	MessageOK    = "ok"
	MessageError = "error"
)

// Outcome classifies the result of an operation.
type Outcome int

const (
	OK Outcome = iota
	NotFound
	Invalid
	Internal
)

// HTTPStatus maps an outcome to its transport status code.
func (o Outcome) HTTPStatus() int {
	switch o {
	case OK:
		return http.StatusOK
	case NotFound:
		return http.StatusNotFound
	case Invalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Metadata is the status block present in every envelope: a human-readable
// outcome message, the machine-readable code, and a detail message.
type Metadata struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Detail  string `json:"detail"`
}

// Product is the wire representation of a product. Image is emitted as
// base64 by encoding/json.
type Product struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	Account    int64  `json:"account"`
	Image      []byte `json:"image"`
	CategoryID int64  `json:"categoryId"`
}

// Envelope is the uniform response wrapper. Metadata is populated exactly
// once per response; Products is populated only on success paths that
// return data.
type Envelope struct {
	Metadata Metadata  `json:"metadata"`
	Products []Product `json:"products,omitempty"`
}

// SetMetadata overwrites the metadata block. Idempotent, no accumulation.
func (e *Envelope) SetMetadata(message, code, detail string) {
	e.Metadata = Metadata{Message: message, Code: code, Detail: detail}
}
