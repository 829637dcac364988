package handlers

import (
	"mymesh/domain"
)

func toInstanceInfo(i domain.Instance) InstanceInfo {
	info := InstanceInfo{
		InstanceId: i.InstanceID,
		App:        i.App,
		Host:       i.Host,
		Port:       i.Port,
		Status:     InstanceStatus(i.Status),
		Timestamp:  i.Timestamp,
		TtlMs:      i.TTLMs,
	}
	if len(i.Metadata) > 0 {
		metadata := i.Metadata
		info.Metadata = &metadata
	}
	return info
}

// toInstancesResponse converts domain instances to API response.
func toInstancesResponse(instances []domain.Instance) InstancesResponse {
	out := make([]InstanceInfo, 0, len(instances))
	for _, i := range instances {
		out = append(out, toInstanceInfo(i))
	}
	return InstancesResponse{Instances: out}
}

// toApplicationResponse converts a domain application to API response; instances keep registry order.
func toApplicationResponse(app domain.Application) ApplicationResponse {
	return ApplicationResponse{
		Name:      app.Name,
		Instances: toInstancesResponse(app.Instances).Instances,
	}
}
