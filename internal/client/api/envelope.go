package api

import (
	"encoding/json"

	"github.com/dmitrijs2005/campusevents/internal/client/models"
)

// Envelope is the uniform response shape of the campus events backend:
//
//	{success: bool, data?, message?, token?, pagination?}
type Envelope struct {
	Success    bool               `json:"success"`
	Data       json.RawMessage    `json:"data,omitempty"`
	Message    string             `json:"message,omitempty"`
	Token      string             `json:"token,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// Decode unmarshals the envelope's data payload into out.
func (e *Envelope) Decode(out any) error {
	if len(e.Data) == 0 {
		return nil
	}
	return json.Unmarshal(e.Data, out)
}
