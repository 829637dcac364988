package domain

// GatewayApp is the application name under which edge routers register.
const GatewayApp = "GATEWAY"

// Application groups the instances registered under one application name.
// An Application with no instances is known to the registry but currently has nothing running.
type Application struct {
	Name      string
	Instances []Instance
}
