package dto

import (
	"encoding/json"
	"time"
)

type ResultResponse struct {
	ID        string          `json:"id"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

type ListResultsResponse struct {
	Results []ResultResponse `json:"results"`
}
