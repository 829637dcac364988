package domain

import (
	"net"
	"strconv"
	"strings"
	"time"
)

// InstanceStatus is the lifecycle status of a registered instance.
type InstanceStatus string

const (
	StatusStarting     InstanceStatus = "STARTING"
	StatusUp           InstanceStatus = "UP"
	StatusDown         InstanceStatus = "DOWN"
	StatusOutOfService InstanceStatus = "OUT_OF_SERVICE"
	StatusUnknown      InstanceStatus = "UNKNOWN"
)

// ParseInstanceStatus maps a case-insensitive status name to InstanceStatus.
// Empty input yields StatusUp, the status an instance registers with by default.
func ParseInstanceStatus(s string) (InstanceStatus, bool) {
	if s == "" {
		return StatusUp, true
	}
	switch st := InstanceStatus(strings.ToUpper(s)); st {
	case StatusStarting, StatusUp, StatusDown, StatusOutOfService, StatusUnknown:
		return st, true
	default:
		return "", false
	}
}

// Well-known metadata keys.
const (
	// MetadataBaseURL overrides the URL derived from host and port.
	MetadataBaseURL = "base-url"
	// MetadataSecure set to "true" switches the derived URL to https.
	MetadataSecure = "secure"
)

// Instance is a registry entry describing one running instance of an application.
// TTLMs is the lease duration the instance registered with; an instance that is not renewed within it expires.
type Instance struct {
	InstanceID string            `json:"instance_id"`
	App        string            `json:"app"`
	Host       string            `json:"host"`
	Port       int               `json:"port"`
	Status     InstanceStatus    `json:"status"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
	TTLMs      int               `json:"ttl_ms"`
}

// Viable reports whether the instance carries a usable network address.
// Registries may hand out placeholder entries; those are not viable.
func (i Instance) Viable() bool {
	return i.Host != "" && i.Port > 0
}

// Address returns host:port.
func (i Instance) Address() string {
	return net.JoinHostPort(i.Host, strconv.Itoa(i.Port))
}

// BaseURL returns the root URL at which the instance serves HTTP, without a trailing slash.
func (i Instance) BaseURL() string {
	if u := strings.TrimRight(i.Metadata[MetadataBaseURL], "/"); u != "" {
		return u
	}
	scheme := "http"
	if strings.EqualFold(i.Metadata[MetadataSecure], "true") {
		scheme = "https"
	}
	return scheme + "://" + i.Address()
}
