package http

import "net/http"

type basicAuth struct {
	username string
	password string
}

func buildBasicAuth(username string, password string) (basicAuth, error) {
	if username == "" || password == "" {
		return basicAuth{}, validationError("server.user and server.pass are required for basic auth", nil)
	}
	return basicAuth{username: username, password: password}, nil
}

func (a basicAuth) apply(request *http.Request) {
	request.SetBasicAuth(a.username, a.password)
}
