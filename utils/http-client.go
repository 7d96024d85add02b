package utils

import (
	"net/http"
	"time"
)

// NewHTTPClient vraća deljeni HTTP klijent za pozive ka eksternim servisima.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 10 * time.Second,
	}
}
