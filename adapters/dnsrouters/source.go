// Package dnsrouters lists edge routers from DNS SRV records, for deployments where routers are not
// registered in the registry.
package dnsrouters

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"
	"time"

	"mymesh/domain"
	"mymesh/helpers"

	"github.com/miekg/dns"
)

// DefaultTimeout bounds one SRV exchange.
const DefaultTimeout = 2 * time.Second

// Source implements interfaces.RouterSource by querying SRV records of name at server.
type Source struct {
	name   string
	server string
	client *dns.Client
}

// NewSource creates a Source. server is host:port of the DNS server; a bare host gets port 53.
// Panics on empty name or server.
func NewSource(name, server string) *Source {
	helpers.StrPanic(name, "adapters.dnsrouters.source.go: name is required")
	helpers.StrPanic(server, "adapters.dnsrouters.source.go: server is required")
	if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(server, "53")
	}
	return &Source{
		name:   dns.Fqdn(name),
		server: server,
		client: &dns.Client{Timeout: DefaultTimeout},
	}
}

// Routers resolves the SRV records and returns one instance per target, ordered by priority.
// NXDOMAIN yields an empty slice.
func (s *Source) Routers(ctx context.Context) ([]domain.Instance, error) {
	m := new(dns.Msg)
	m.SetQuestion(s.name, dns.TypeSRV)
	m.RecursionDesired = true

	in, _, err := s.client.ExchangeContext(ctx, m, s.server)
	if err != nil {
		return nil, fmt.Errorf("srv lookup %s: %w", s.name, err)
	}
	if in.Rcode == dns.RcodeNameError {
		return []domain.Instance{}, nil
	}
	if in.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("srv lookup %s: %s", s.name, dns.RcodeToString[in.Rcode])
	}

	records := make([]*dns.SRV, 0, len(in.Answer))
	for _, answer := range in.Answer {
		if srv, ok := answer.(*dns.SRV); ok {
			records = append(records, srv)
		}
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].Priority < records[j].Priority })

	routers := make([]domain.Instance, 0, len(records))
	for _, srv := range records {
		host := strings.TrimSuffix(srv.Target, ".")
		routers = append(routers, domain.Instance{
			InstanceID: host + ":" + strconv.Itoa(int(srv.Port)),
			App:        domain.GatewayApp,
			Host:       host,
			Port:       int(srv.Port),
			Status:     domain.StatusUp,
		})
	}
	return routers, nil
}
