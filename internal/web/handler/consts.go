package handler

const (
	// RootPath is the root path the route group.
	RootPath = "/"

	// APIPath is the prefix of all JSON routes.
	APIPath = RootPath + "api"

	// ErrNilServiceFatalLogMsg is used if the router or a service pointer is nil.
	ErrNilServiceFatalLogMsg = "router or service is nil"
)
