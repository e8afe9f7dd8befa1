package handlers

// Endpoint describes one public route.
type Endpoint struct {
	Method      string
	Path        string
	Description string
}

// Key returns the "METHOD /path" form used in response bodies.
func (e Endpoint) Key() string {
	return e.Method + " " + e.Path
}

// Endpoints lists every public route in registration order.
var Endpoints = []Endpoint{
	{Method: "GET", Path: "/", Description: "Health check (this endpoint)"},
	{Method: "GET", Path: "/quote", Description: "Get a random quote"},
	{Method: "GET", Path: "/quotes", Description: "Get all quotes"},
	{Method: "GET", Path: "/quotes/:id", Description: "Get quote by ID"},
	{Method: "GET", Path: "/metrics", Description: "Prometheus metrics"},
}

// EndpointKeys returns the "METHOD /path" form of every endpoint.
func EndpointKeys() []string {
	keys := make([]string, len(Endpoints))
	for i, e := range Endpoints {
		keys[i] = e.Key()
	}
	return keys
}

// endpointDescriptions maps "METHOD /path" to its description.
func endpointDescriptions() map[string]string {
	m := make(map[string]string, len(Endpoints))
	for _, e := range Endpoints {
		m[e.Key()] = e.Description
	}
	return m
}
