package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstance_BaseURL(t *testing.T) {
	tests := []struct {
		name     string
		instance Instance
		want     string
	}{
		{
			name:     "derived http",
			instance: Instance{Host: "gw1", Port: 10010},
			want:     "http://gw1:10010",
		},
		{
			name:     "derived https when secure",
			instance: Instance{Host: "gw1", Port: 10010, Metadata: map[string]string{MetadataSecure: "TRUE"}},
			want:     "https://gw1:10010",
		},
		{
			name:     "metadata base url wins",
			instance: Instance{Host: "gw1", Port: 10010, Metadata: map[string]string{MetadataBaseURL: "https://gw.example.com/"}},
			want:     "https://gw.example.com",
		},
		{
			name:     "ipv6 host",
			instance: Instance{Host: "::1", Port: 80},
			want:     "http://[::1]:80",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.instance.BaseURL())
		})
	}
}

func TestInstance_Viable(t *testing.T) {
	assert.True(t, Instance{Host: "h", Port: 1}.Viable())
	assert.False(t, Instance{}.Viable())
	assert.False(t, Instance{Host: "h"}.Viable())
	assert.False(t, Instance{Port: 8080}.Viable())
}

func TestParseInstanceStatus(t *testing.T) {
	tests := []struct {
		in     string
		want   InstanceStatus
		wantOK bool
	}{
		{in: "", want: StatusUp, wantOK: true},
		{in: "up", want: StatusUp, wantOK: true},
		{in: "OUT_OF_SERVICE", want: StatusOutOfService, wantOK: true},
		{in: "starting", want: StatusStarting, wantOK: true},
		{in: "sleeping", want: "", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseInstanceStatus(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
